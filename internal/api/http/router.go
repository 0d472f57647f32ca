package http

import (
	"net/http"
	"time"

	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/security"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	tm security.TokenManager,
	guests *GuestHandler,
	checkout *CheckoutHandler,
	history *HistoryHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(NewAuthMiddleware(tm).Handler)

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/guests", guests.Search).Methods(http.MethodGet)
	api.HandleFunc("/checkouts", history.List).Methods(http.MethodGet)
	api.HandleFunc("/checkout", checkout.GetStatus).Methods(http.MethodGet)

	c := api.PathPrefix("/checkout/").Subrouter()
	c.HandleFunc("/snapshot", checkout.GetSnapshot).Methods(http.MethodGet)
	c.HandleFunc("/guest", checkout.SelectGuest).Methods(http.MethodPost)
	c.HandleFunc("/payment/method", checkout.SelectPaymentMethod).Methods(http.MethodPut)
	c.HandleFunc("/payment/confirm", checkout.ConfirmPayment).Methods(http.MethodPost)
	c.HandleFunc("/assessment", checkout.UpdateAssessment).Methods(http.MethodPut)
	c.HandleFunc("/assessment/damages/{id}", checkout.AddDamage).Methods(http.MethodPut)
	c.HandleFunc("/assessment/damages/{id}", checkout.RemoveDamage).Methods(http.MethodDelete)
	c.HandleFunc("/assessment/maintenance/{id}", checkout.AddMaintenanceNeed).Methods(http.MethodPut)
	c.HandleFunc("/assessment/maintenance/{id}", checkout.RemoveMaintenanceNeed).Methods(http.MethodDelete)
	c.HandleFunc("/feedback", checkout.UpdateFeedback).Methods(http.MethodPut)
	c.HandleFunc("/finalize", checkout.Finalize).Methods(http.MethodPost)
	c.HandleFunc("/receipt", checkout.GetReceipt).Methods(http.MethodGet)
	c.HandleFunc("/receipt/email", checkout.EmailReceipt).Methods(http.MethodPost)

	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if rec.status >= http.StatusInternalServerError {
			logger.ErrorContext(r.Context(), "HTTP request failed", args...)
			return
		}
		logger.Debug("HTTP request", args...)
	})
}
