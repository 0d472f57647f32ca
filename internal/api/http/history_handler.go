package http

import (
	"net/http"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/repository"
)

const dateLayout = "2006-01-02"

type HistoryHandler struct {
	history repository.CheckoutRepository
	now     func() time.Time
}

func NewHistoryHandler(history repository.CheckoutRepository) *HistoryHandler {
	return &HistoryHandler{history: history, now: time.Now}
}

// List handles GET /api/checkouts?from=&to=. Both bounds accept a date or an
// RFC 3339 timestamp; the default window is the last 24 hours.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	to := h.now()
	if v := q.Get("to"); v != "" {
		t, err := parseBound("to", v)
		if err != nil {
			writeError(w, err)
			return
		}
		to = t
	}
	from := to.Add(-24 * time.Hour)
	if v := q.Get("from"); v != "" {
		t, err := parseBound("from", v)
		if err != nil {
			writeError(w, err)
			return
		}
		from = t
	}
	if !from.Before(to) {
		writeError(w, &domain.ValidationError{Field: "from", Reason: "must be before to"})
		return
	}

	txs, err := h.history.ListCompletedBetween(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from":         from,
		"to":           to,
		"transactions": txs,
		"summary":      domain.SummarizeCheckouts(txs),
	})
}

func parseBound(field, v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Reason: "expected YYYY-MM-DD or RFC 3339 timestamp"}
	}
	return t, nil
}
