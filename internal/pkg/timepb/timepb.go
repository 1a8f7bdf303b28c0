// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package timepb provides conversion functions between xtime values and
// validated proto Date and Clock messages.
//
// The messages are described by a descriptor built at runtime and annotated
// with buf.validate field rules, so range checks are enforced by protovalidate
// rather than hand-written comparisons.
package timepb

import (
	"fmt"
	"math"
	"sync"
	"time"

	validatepb "buf.build/gen/go/bufbuild/protovalidate/protocolbuffers/go/buf/validate"
	"buf.build/go/protovalidate"
	"github.com/bufdev/epochpick/internal/standard/xtime"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	// DateMessageName is the full name of the Date message.
	DateMessageName protoreflect.FullName = "epochpick.time.v1.Date"
	// ClockMessageName is the full name of the Clock message.
	ClockMessageName protoreflect.FullName = "epochpick.time.v1.Clock"
)

// NewProtoDate creates a new validated proto Date from year, month, and day.
//
// Only field ranges are checked here. Whether the day exists in the month is
// checked by xtime.Date.IsValid.
func NewProtoDate(year int, month time.Month, day int) (*dynamicpb.Message, error) {
	descriptors, err := getDescriptors()
	if err != nil {
		return nil, err
	}
	protoDate := dynamicpb.NewMessage(descriptors.date)
	setUint32(protoDate, "year", year)
	setUint32(protoDate, "month", int(month))
	setUint32(protoDate, "day", day)
	if err := protovalidate.Validate(protoDate); err != nil {
		return nil, err
	}
	return protoDate, nil
}

// DateToProto converts an xtime.Date to a validated proto Date.
func DateToProto(date xtime.Date) (*dynamicpb.Message, error) {
	return NewProtoDate(date.Year, date.Month, date.Day)
}

// ProtoToDate converts a validated proto Date to an xtime.Date.
func ProtoToDate(protoDate proto.Message) (xtime.Date, error) {
	if err := checkMessageName(protoDate, DateMessageName); err != nil {
		return xtime.Date{}, err
	}
	if err := protovalidate.Validate(protoDate); err != nil {
		return xtime.Date{}, err
	}
	message := protoDate.ProtoReflect()
	return xtime.Date{
		Year:  getUint32(message, "year"),
		Month: time.Month(getUint32(message, "month")),
		Day:   getUint32(message, "day"),
	}, nil
}

// NewProtoClock creates a new validated proto Clock from hour, minute, and second.
func NewProtoClock(hour int, minute int, second int) (*dynamicpb.Message, error) {
	descriptors, err := getDescriptors()
	if err != nil {
		return nil, err
	}
	protoClock := dynamicpb.NewMessage(descriptors.clock)
	setUint32(protoClock, "hour", hour)
	setUint32(protoClock, "minute", minute)
	setUint32(protoClock, "second", second)
	if err := protovalidate.Validate(protoClock); err != nil {
		return nil, err
	}
	return protoClock, nil
}

// ClockToProto converts an xtime.Clock to a validated proto Clock.
func ClockToProto(clock xtime.Clock) (*dynamicpb.Message, error) {
	return NewProtoClock(clock.Hour, clock.Minute, clock.Second)
}

// ProtoToClock converts a validated proto Clock to an xtime.Clock.
func ProtoToClock(protoClock proto.Message) (xtime.Clock, error) {
	if err := checkMessageName(protoClock, ClockMessageName); err != nil {
		return xtime.Clock{}, err
	}
	if err := protovalidate.Validate(protoClock); err != nil {
		return xtime.Clock{}, err
	}
	message := protoClock.ProtoReflect()
	return xtime.Clock{
		Hour:   getUint32(message, "hour"),
		Minute: getUint32(message, "minute"),
		Second: getUint32(message, "second"),
	}, nil
}

// *** PRIVATE ***

type descriptors struct {
	date  protoreflect.MessageDescriptor
	clock protoreflect.MessageDescriptor
}

var getDescriptors = sync.OnceValues(newDescriptors)

func newDescriptors() (*descriptors, error) {
	fileDescriptor, err := protodesc.NewFile(newFileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		return nil, fmt.Errorf("building time descriptors: %w", err)
	}
	messages := fileDescriptor.Messages()
	return &descriptors{
		date:  messages.ByName(DateMessageName.Name()),
		clock: messages.ByName(ClockMessageName.Name()),
	}, nil
}

// newFileDescriptorProto describes:
//
//	message Date {
//	  uint32 year = 1 [(buf.validate.field).uint32 = {gte: 1, lte: 9999}];
//	  uint32 month = 2 [(buf.validate.field).uint32 = {gte: 1, lte: 12}];
//	  uint32 day = 3 [(buf.validate.field).uint32 = {gte: 1, lte: 31}];
//	}
//	message Clock {
//	  uint32 hour = 1 [(buf.validate.field).uint32.lte = 23];
//	  uint32 minute = 2 [(buf.validate.field).uint32.lte = 59];
//	  uint32 second = 3 [(buf.validate.field).uint32.lte = 59];
//	}
func newFileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("epochpick/time/v1/time.proto"),
		Package: proto.String(string(DateMessageName.Parent())),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String(string(DateMessageName.Name())),
				Field: []*descriptorpb.FieldDescriptorProto{
					newUint32Field("year", 1, 1, 9999),
					newUint32Field("month", 2, 1, 12),
					newUint32Field("day", 3, 1, 31),
				},
			},
			{
				Name: proto.String(string(ClockMessageName.Name())),
				Field: []*descriptorpb.FieldDescriptorProto{
					newUint32Field("hour", 1, 0, 23),
					newUint32Field("minute", 2, 0, 59),
					newUint32Field("second", 3, 0, 59),
				},
			},
		},
	}
}

func newUint32Field(name string, number int32, minValue uint32, maxValue uint32) *descriptorpb.FieldDescriptorProto {
	uint32Rules := &validatepb.UInt32Rules{
		LessThan: &validatepb.UInt32Rules_Lte{Lte: maxValue},
	}
	// Unsigned fields are already bounded below by zero.
	if minValue > 0 {
		uint32Rules.GreaterThan = &validatepb.UInt32Rules_Gte{Gte: minValue}
	}
	options := &descriptorpb.FieldOptions{}
	proto.SetExtension(options, validatepb.E_Field, &validatepb.FieldRules{
		Type: &validatepb.FieldRules_Uint32{Uint32: uint32Rules},
	})
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_UINT32.Enum(),
		Options:  options,
	}
}

// setUint32 sets a uint32 field. Values outside the uint32 range are stored
// as math.MaxUint32 so that the upper bound rule rejects them.
func setUint32(message *dynamicpb.Message, name string, value int) {
	fieldDescriptor := message.Descriptor().Fields().ByName(protoreflect.Name(name))
	uint32Value := uint32(math.MaxUint32)
	if value >= 0 && uint64(value) < math.MaxUint32 {
		uint32Value = uint32(value)
	}
	message.Set(fieldDescriptor, protoreflect.ValueOfUint32(uint32Value))
}

func getUint32(message protoreflect.Message, name string) int {
	fieldDescriptor := message.Descriptor().Fields().ByName(protoreflect.Name(name))
	return int(message.Get(fieldDescriptor).Uint())
}

func checkMessageName(message proto.Message, want protoreflect.FullName) error {
	if message == nil {
		return fmt.Errorf("nil %s", want)
	}
	if got := message.ProtoReflect().Descriptor().FullName(); got != want {
		return fmt.Errorf("expected %s, got %s", want, got)
	}
	return nil
}
