package http

import (
	"errors"
	"net/http"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type CheckoutHandler struct {
	coordinator service.CheckoutCoordinator
	receipts    service.ReceiptService
}

func NewCheckoutHandler(coordinator service.CheckoutCoordinator, receipts service.ReceiptService) *CheckoutHandler {
	return &CheckoutHandler{coordinator: coordinator, receipts: receipts}
}

type checkoutResponse struct {
	service.CheckoutStatus
	Snapshot *domain.StayBillingSnapshot `json:"snapshot,omitempty"`
}

type selectGuestRequest struct {
	GuestID string `json:"guest_id"`
}

type paymentRequest struct {
	Method string `json:"method"`
}

type assessmentRequest struct {
	OverallCondition *string `json:"overall_condition"`
	Notes            *string `json:"notes"`
}

type feedbackRequest struct {
	Rating         *int           `json:"rating"`
	Categories     map[string]int `json:"categories"`
	WouldRecommend *bool          `json:"would_recommend"`
	Comments       *string        `json:"comments"`
}

func (h *CheckoutHandler) respond(w http.ResponseWriter) {
	resp := checkoutResponse{CheckoutStatus: h.coordinator.Status()}
	if snap, err := h.coordinator.Snapshot(); err == nil {
		resp.Snapshot = &snap
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetStatus handles GET /api/checkout
func (h *CheckoutHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.respond(w)
}

// GetSnapshot handles GET /api/checkout/snapshot
func (h *CheckoutHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.coordinator.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// SelectGuest handles POST /api/checkout/guest
func (h *CheckoutHandler) SelectGuest(w http.ResponseWriter, r *http.Request) {
	var req selectGuestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.coordinator.SelectGuest(r.Context(), req.GuestID); err != nil {
		writeError(w, err)
		return
	}
	h.respond(w)
}

// SelectPaymentMethod handles PUT /api/checkout/payment/method
func (h *CheckoutHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	method, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.coordinator.SelectPaymentMethod(method); err != nil {
		writeError(w, err)
		return
	}
	h.respond(w)
}

// ConfirmPayment handles POST /api/checkout/payment/confirm. The method is optional.
func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	var method domain.PaymentMethod
	if req.Method != "" {
		parsed, err := domain.ParsePaymentMethod(req.Method)
		if err != nil {
			writeError(w, err)
			return
		}
		method = parsed
	}
	if err := h.coordinator.ConfirmPayment(method); err != nil {
		writeError(w, err)
		return
	}
	h.respond(w)
}

// AddDamage handles PUT /api/checkout/assessment/damages/{id}
func (h *CheckoutHandler) AddDamage(w http.ResponseWriter, r *http.Request) {
	h.apply(w, h.coordinator.AddDamage(mux.Vars(r)["id"]))
}

// RemoveDamage handles DELETE /api/checkout/assessment/damages/{id}
func (h *CheckoutHandler) RemoveDamage(w http.ResponseWriter, r *http.Request) {
	h.apply(w, h.coordinator.RemoveDamage(mux.Vars(r)["id"]))
}

// AddMaintenanceNeed handles PUT /api/checkout/assessment/maintenance/{id}
func (h *CheckoutHandler) AddMaintenanceNeed(w http.ResponseWriter, r *http.Request) {
	h.apply(w, h.coordinator.AddMaintenanceNeed(mux.Vars(r)["id"]))
}

// RemoveMaintenanceNeed handles DELETE /api/checkout/assessment/maintenance/{id}
func (h *CheckoutHandler) RemoveMaintenanceNeed(w http.ResponseWriter, r *http.Request) {
	h.apply(w, h.coordinator.RemoveMaintenanceNeed(mux.Vars(r)["id"]))
}

// UpdateAssessment handles PUT /api/checkout/assessment
func (h *CheckoutHandler) UpdateAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.OverallCondition != nil {
		level, err := domain.ParseOverallCondition(*req.OverallCondition)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := h.coordinator.SetOverallCondition(level); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Notes != nil {
		if err := h.coordinator.SetNotes(*req.Notes); err != nil {
			writeError(w, err)
			return
		}
	}
	h.respond(w)
}

// UpdateFeedback handles PUT /api/checkout/feedback. The request is
// validated as a whole before anything is applied.
func (h *CheckoutHandler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	categories := make(map[domain.FeedbackCategory]int, len(req.Categories))
	for name, n := range req.Categories {
		cat, err := domain.ParseFeedbackCategory(name)
		if err != nil {
			writeError(w, err)
			return
		}
		if n < 1 || n > 5 {
			writeError(w, &domain.ValidationError{Field: "categories." + name, Reason: "must be between 1 and 5"})
			return
		}
		categories[cat] = n
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		writeError(w, &domain.ValidationError{Field: "rating", Reason: "must be between 1 and 5"})
		return
	}

	if req.Rating != nil {
		if err := h.coordinator.SetRating(*req.Rating); err != nil {
			writeError(w, err)
			return
		}
	}
	for _, cat := range domain.FeedbackCategories {
		n, ok := categories[cat]
		if !ok {
			continue
		}
		if err := h.coordinator.SetCategoryRating(cat, n); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.WouldRecommend != nil {
		if err := h.coordinator.SetRecommend(*req.WouldRecommend); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Comments != nil {
		if err := h.coordinator.SetComments(*req.Comments); err != nil {
			writeError(w, err)
			return
		}
	}
	h.respond(w)
}

// Finalize handles POST /api/checkout/finalize
func (h *CheckoutHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	tx, err := h.coordinator.Finalize(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transaction": tx})
}

// GetReceipt handles GET /api/checkout/receipt
func (h *CheckoutHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.coordinator.Receipt()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// EmailReceipt handles POST /api/checkout/receipt/email
func (h *CheckoutHandler) EmailReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.coordinator.Receipt()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.receipts.SendReceipt(r.Context(), receipt); err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotReady) {
			writeError(w, err)
			return
		}
		logger.WarnContext(r.Context(), "Receipt delivery failed", "room_id", receipt.RoomID, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Retryable: true})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "sent", "to": receipt.GuestEmail})
}

func (h *CheckoutHandler) apply(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	h.respond(w)
}
