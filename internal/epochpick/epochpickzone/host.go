// Copyright 2026 Peter Edge
//
// All rights reserved.

package epochpickzone

import (
	"os"
	"strings"
	"time"
)

const (
	// tzEnvVar is the environment variable naming the host zone.
	tzEnvVar = "TZ"
	// localtimePath is the conventional link to the host zone file.
	localtimePath = "/etc/localtime"
	// hostZoneFallback is used when the host zone cannot be determined.
	hostZoneFallback = "UTC"
)

// HostZone returns the zone identifier of the host.
//
// It uses $TZ if it names a loadable zone, then the target of /etc/localtime,
// then UTC.
func HostZone(getenv func(string) string) string {
	if tz, ok := lookupTZ(getenv); ok {
		return tz
	}
	if zone, ok := zoneFromLocaltimeLink(localtimePath); ok {
		return zone
	}
	return hostZoneFallback
}

// *** PRIVATE ***

func lookupTZ(getenv func(string) string) (string, bool) {
	// A leading colon is permitted by POSIX and ignored.
	tz := strings.TrimPrefix(getenv(tzEnvVar), ":")
	if !isLoadable(tz) {
		return "", false
	}
	return tz, true
}

// zoneFromLocaltimeLink returns the zone named by the path after the last
// "zoneinfo/" element of the link target.
func zoneFromLocaltimeLink(linkPath string) (string, bool) {
	target, err := os.Readlink(linkPath)
	if err != nil {
		return "", false
	}
	i := strings.LastIndex(target, "zoneinfo/")
	if i < 0 {
		return "", false
	}
	zone := target[i+len("zoneinfo/"):]
	// Some systems link into zoneinfo/posix or zoneinfo/right.
	for _, prefix := range []string{"posix/", "right/"} {
		zone = strings.TrimPrefix(zone, prefix)
	}
	if !isLoadable(zone) {
		return "", false
	}
	return zone, true
}

func isLoadable(zone string) bool {
	if zone == "" || zone == "Local" {
		return false
	}
	_, err := time.LoadLocation(zone)
	return err == nil
}
