package http

import (
	"net/http"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/service"
)

type GuestHandler struct {
	directory service.GuestDirectory
}

func NewGuestHandler(directory service.GuestDirectory) *GuestHandler {
	return &GuestHandler{directory: directory}
}

// Search handles GET /api/guests?q=&mode=
func (h *GuestHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode, err := domain.ParseSearchMode(q.Get("mode"))
	if err != nil {
		writeError(w, err)
		return
	}

	guests, err := h.directory.Find(r.Context(), q.Get("q"), mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guests": guests})
}
