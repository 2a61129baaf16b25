package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/platewise/api/internal/apperr"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	ErrorKind apperr.Kind `json:"error_kind"`
	Error     string      `json:"error"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidRequest:
		return http.StatusBadRequest
	case apperr.KindInvalidCoupon, apperr.KindDeliveryIneligible, apperr.KindBelowMinimumOrder:
		return http.StatusUnprocessableEntity
	case apperr.KindCatalogMismatch, apperr.KindInvalidTransition, apperr.KindAlreadyTransitioned,
		apperr.KindDuplicateSubmission, apperr.KindSlotUnavailable:
		return http.StatusConflict
	case apperr.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes it as an errorResponse. Server-side kinds
// get a generic message so storage details never reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	msg := err.Error()
	switch {
	case status == http.StatusServiceUnavailable:
		msg = "service temporarily unavailable, please retry"
	case status >= http.StatusInternalServerError:
		msg = "internal server error"
	}

	log := slog.Default().With("request_id", middleware.GetReqID(r.Context()), "error_kind", kind)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		log.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	writeJSON(w, status, errorResponse{ErrorKind: kind, Error: msg})
}

// badRequest writes an INVALID_REQUEST failure for input rejected before it
// reaches a service.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{ErrorKind: apperr.KindInvalidRequest, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}
