package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
)

type errorResponse struct {
	Error     string               `json:"error"`
	Field     string               `json:"field,omitempty"`
	State     domain.CheckoutState `json:"state,omitempty"`
	Retryable bool                 `json:"retryable,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the checkout error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr *domain.ValidationError
		nerr *domain.NotReadyError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.As(err, &nerr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: nerr.Error(), State: nerr.State})
	case errors.Is(err, domain.ErrCommitFailed):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error(), Retryable: true})
	case errors.Is(err, domain.ErrGuestNotFound),
		errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		logger.Error("Unhandled request error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := decodeBody(r, dst); err != nil {
		return &domain.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}

// decodeOptionalJSON leaves dst untouched when the body is empty, whatever
// the declared content length.
func decodeOptionalJSON(r *http.Request, dst any) error {
	if err := decodeBody(r, dst); err != nil && !errors.Is(err, io.EOF) {
		return &domain.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
