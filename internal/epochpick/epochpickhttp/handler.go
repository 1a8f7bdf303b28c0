// Copyright 2026 Peter Edge
//
// All rights reserved.

package epochpickhttp

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bufdev/epochpick/internal/epochpick/epochpickconvert"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickzone"
)

const (
	codeInvalidInput     = "invalid_input"
	codeUnknownZone      = "unknown_zone"
	codeAmbiguousTime    = "ambiguous_time"
	codeSkippedTime      = "skipped_time"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeInternal         = "internal"
)

type handler struct {
	defaultZone    string
	catalog        epochpickzone.Catalog
	logger         *slog.Logger
	disambiguation epochpickconvert.Disambiguation
}

type healthzResponse struct {
	Status string `json:"status"`
}

type zonesResponse struct {
	Source string   `json:"source"`
	Zones  []string `json:"zones"`
}

type successEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, healthzResponse{Status: "ok"})
}

func (h *handler) listZones(w http.ResponseWriter, r *http.Request) {
	zones := h.catalog.Filter(r.URL.Query().Get("filter"))
	if zones == nil {
		zones = []string{}
	}
	writeSuccess(w, http.StatusOK, zonesResponse{Source: h.catalog.Source(), Zones: zones})
}

func (h *handler) convert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dateString := query.Get("date")
	clockString := query.Get("time")
	if dateString == "" || clockString == "" {
		writeError(w, r, http.StatusBadRequest, codeInvalidInput, "date and time are required")
		return
	}
	zone := query.Get("zone")
	if zone == "" {
		zone = h.defaultZone
	}
	disambiguation := h.disambiguation
	if disambiguationString := query.Get("disambiguation"); disambiguationString != "" {
		var err error
		disambiguation, err = epochpickconvert.ParseDisambiguation(disambiguationString)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, codeInvalidInput, err.Error())
			return
		}
	}
	result, err := epochpickconvert.ConvertStrings(
		dateString,
		clockString,
		zone,
		epochpickconvert.ConvertWithDisambiguation(disambiguation),
	)
	if err != nil {
		status, code := mapConvertError(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "convert failed", "error", err)
			writeError(w, r, status, code, "internal error")
			return
		}
		writeError(w, r, status, code, err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, result)
}

func mapConvertError(err error) (int, string) {
	switch {
	case errors.Is(err, epochpickconvert.ErrInvalidInput):
		return http.StatusBadRequest, codeInvalidInput
	case errors.Is(err, epochpickconvert.ErrAmbiguousTime):
		return http.StatusBadRequest, codeAmbiguousTime
	case errors.Is(err, epochpickconvert.ErrSkippedTime):
		return http.StatusBadRequest, codeSkippedTime
	case errors.Is(err, epochpickconvert.ErrUnknownZone):
		return http.StatusNotFound, codeUnknownZone
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Data: data})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	writeJSON(
		w,
		status,
		errorEnvelope{
			Error: errorBody{
				Code:      code,
				Message:   message,
				RequestID: requestIDFromRequest(r),
			},
		},
	)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func requestIDFromRequest(r *http.Request) string {
	if requestID, ok := r.Context().Value(requestIDContextKey{}).(string); ok {
		return requestID
	}
	return strings.TrimSpace(r.Header.Get(RequestIDHeader))
}
