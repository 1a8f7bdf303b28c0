// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package epochpickhttp serves conversions over HTTP.
//
// Routes:
//
//	GET /healthz
//	GET /v1/zones?filter=
//	GET /v1/convert?date=&time=&zone=&disambiguation=
//
// Successful responses are {"data": ...}. Errors are
// {"error": {"code": ..., "message": ..., "request_id": ...}}.
package epochpickhttp

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bufdev/epochpick/internal/epochpick/epochpickconvert"
	"github.com/bufdev/epochpick/internal/epochpick/epochpickzone"
	"github.com/go-chi/chi/v5"
)

const (
	// RequestIDHeader is the header carrying the request ID.
	RequestIDHeader = "X-Request-Id"

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// HandlerOption is a functional option for configuring the handler.
type HandlerOption func(*handler)

// HandlerWithLogger sets the logger.
func HandlerWithLogger(logger *slog.Logger) HandlerOption {
	return func(h *handler) {
		h.logger = logger
	}
}

// HandlerWithDisambiguation sets the DST disambiguation policy used when a
// request does not specify one.
func HandlerWithDisambiguation(disambiguation epochpickconvert.Disambiguation) HandlerOption {
	return func(h *handler) {
		h.disambiguation = disambiguation
	}
}

// NewHandler returns the HTTP handler.
//
// Requests without a zone use defaultZone.
func NewHandler(defaultZone string, catalog epochpickzone.Catalog, options ...HandlerOption) http.Handler {
	h := &handler{
		defaultZone:    defaultZone,
		catalog:        catalog,
		logger:         slog.New(slog.DiscardHandler),
		disambiguation: epochpickconvert.DisambiguationCompatible,
	}
	for _, option := range options {
		option(h)
	}
	return newRouter(h)
}

// Serve serves handler on listener until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, listener net.Listener, handler http.Handler) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	errC := make(chan error, 1)
	go func() {
		errC <- server.Serve(listener)
	}()
	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errC; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// *** PRIVATE ***

func newRouter(h *handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(h.recoverMiddleware)
	r.Use(h.loggingMiddleware)

	r.Get("/healthz", h.healthz)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/zones", h.listZones)
		r.Get("/convert", h.convert)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})
	return r
}
