package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository/memory"
	"frontdesk-backend/internal/security"
	"frontdesk-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRates = domain.RateTable{
	NightlyRateCents: 8500,
	Services: []domain.ServiceRate{
		{Name: "Desayuno", UnitPriceCents: 1250, Cadence: domain.CadencePerNight},
		{Name: "Parking", UnitPriceCents: 800, Cadence: domain.CadencePerNight},
		{Name: "WiFi Premium", UnitPriceCents: 500, Cadence: domain.CadencePerNight},
	},
	TaxRate:  0.10,
	Currency: "EUR",
}

type failingInventory struct{}

func (failingInventory) UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) error {
	return errors.New("inventory offline")
}

type testServer struct {
	router *mux.Router
	store  *memory.Store
	token  string
}

func newTestServer(t *testing.T, inventory service.RoomInventory) *testServer {
	t.Helper()
	store := memory.NewSeededStore()
	if inventory == nil {
		inventory = service.NewRoomInventory(store.RoomRepository)
	}
	directory := service.NewGuestDirectory(store.GuestRepository)
	coordinator := service.NewCheckoutCoordinator(
		directory,
		service.NewBillingCalculator(testRates),
		inventory,
		store.CheckoutRepository,
		store.GuestRepository,
		nil,
		time.Second,
	)

	tm := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	token, err := tm.GenerateAccessToken("op-1", "Lucía", nil)
	require.NoError(t, err)

	router := NewRouter(tm,
		NewGuestHandler(directory),
		NewCheckoutHandler(coordinator, service.NewLoggingReceiptService()),
		NewHistoryHandler(store.CheckoutRepository),
	)
	return &testServer{router: router, store: store, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return s.doWithToken(t, method, path, body, s.token)
}

func (s *testServer) doWithToken(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestRouter_PublicAndAuth(t *testing.T) {
	s := newTestServer(t, nil)

	assert.Equal(t, http.StatusOK, s.doWithToken(t, http.MethodGet, "/healthz", nil, "").Code)
	assert.Equal(t, http.StatusOK, s.doWithToken(t, http.MethodGet, "/metrics", nil, "").Code)

	rr := s.doWithToken(t, http.MethodGet, "/api/checkout", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = s.doWithToken(t, http.MethodGet, "/api/checkout", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/checkout", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "idle", decode[map[string]any](t, rr)["state"])
}

func TestGuestHandler_Search(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, http.MethodGet, "/api/guests?q=gonz&mode=name", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[struct {
		Guests []domain.Guest `json:"guests"`
	}](t, rr)
	require.Len(t, body.Guests, 1)
	assert.Equal(t, "205", body.Guests[0].RoomID)

	rr = s.do(t, http.MethodGet, "/api/guests?q=", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"guests":[]}`, rr.Body.String())

	rr = s.do(t, http.MethodGet, "/api/guests?q=1&mode=phone", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "mode", decode[errorResponse](t, rr).Field)
}

func TestCheckoutHandler_Flow(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, http.MethodPost, "/api/checkout/guest", map[string]string{"guest_id": "2"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	status := decode[checkoutResponse](t, rr)
	assert.Equal(t, domain.CheckoutStateGuestSelected, status.State)
	require.NotNil(t, status.Snapshot)
	assert.GreaterOrEqual(t, status.Snapshot.Nights, 1)

	rr = s.do(t, http.MethodPost, "/api/checkout/finalize", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, domain.CheckoutStateGuestSelected, decode[errorResponse](t, rr).State)

	rr = s.do(t, http.MethodPost, "/api/checkout/payment/confirm", map[string]string{"method": "cheque"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "method", decode[errorResponse](t, rr).Field)

	rr = s.do(t, http.MethodPost, "/api/checkout/payment/confirm", map[string]string{"method": "efectivo"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.CheckoutStateReady, decode[checkoutResponse](t, rr).State)

	rr = s.do(t, http.MethodPut, "/api/checkout/assessment/damages/wall_damage", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"wall_damage"}, decode[checkoutResponse](t, rr).Assessment.Damages)

	rr = s.do(t, http.MethodPut, "/api/checkout/assessment/damages/broken_window", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "damage", decode[errorResponse](t, rr).Field)

	rr = s.do(t, http.MethodPut, "/api/checkout/assessment/maintenance/deep_cleaning", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodDelete, "/api/checkout/assessment/maintenance/deep_cleaning", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[checkoutResponse](t, rr).Assessment.MaintenanceNeeds)

	rr = s.do(t, http.MethodPut, "/api/checkout/assessment", map[string]string{"overall_condition": "fair", "notes": "Pared rayada"})
	require.Equal(t, http.StatusOK, rr.Code)
	assessment := decode[checkoutResponse](t, rr).Assessment
	assert.Equal(t, domain.ConditionFair, assessment.OverallCondition)
	assert.Equal(t, "Pared rayada", assessment.Notes)

	rr = s.do(t, http.MethodPut, "/api/checkout/feedback", map[string]any{"rating": 5, "categories": map[string]int{"service": 7}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = s.do(t, http.MethodGet, "/api/checkout", nil)
	assert.Nil(t, decode[checkoutResponse](t, rr).Feedback)

	rr = s.do(t, http.MethodPut, "/api/checkout/feedback", map[string]any{"rating": 5, "categories": map[string]int{"service": 4}, "would_recommend": true})
	require.Equal(t, http.StatusOK, rr.Code)
	fb := decode[checkoutResponse](t, rr).Feedback
	require.NotNil(t, fb)
	assert.Equal(t, 5, fb.Rating)
	assert.Equal(t, 4, fb.Categories[domain.FeedbackService])

	rr = s.do(t, http.MethodGet, "/api/checkout/receipt", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[service.Receipt](t, rr).Preview)

	rr = s.do(t, http.MethodPost, "/api/checkout/finalize", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	tx := decode[struct {
		Transaction domain.CheckoutTransaction `json:"transaction"`
	}](t, rr).Transaction
	assert.Equal(t, "op-1", tx.CompletedBy)
	assert.Equal(t, domain.RoomStatusMaintenancePendingCleaning, tx.ResultingRoomStatus)
	assert.Equal(t, domain.PaymentMethodCash, tx.Payment.Method)

	rr = s.do(t, http.MethodPost, "/api/checkout/finalize", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/checkout/receipt", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	receipt := decode[service.Receipt](t, rr)
	assert.False(t, receipt.Preview)
	assert.Equal(t, tx.ID, receipt.TransactionID)

	rr = s.do(t, http.MethodPost, "/api/checkout/receipt/email", nil)
	assert.Equal(t, http.StatusAccepted, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/checkouts?from=2000-01-01", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	history := decode[struct {
		Transactions []domain.CheckoutTransaction `json:"transactions"`
		Summary      domain.CheckoutSummary       `json:"summary"`
	}](t, rr)
	require.Len(t, history.Transactions, 1)
	assert.Equal(t, 1, history.Summary.Count)
	assert.Equal(t, 1, history.Summary.MaintenanceRooms)
	assert.Equal(t, tx.Billing.TotalCents, history.Summary.RevenueCents)

	room, err := s.store.RoomRepository.GetByID(context.Background(), "205")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusMaintenancePendingCleaning, room.Status)
}

func TestCheckoutHandler_Errors(t *testing.T) {
	s := newTestServer(t, failingInventory{})

	rr := s.do(t, http.MethodGet, "/api/checkout/snapshot", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/checkout/guest", map[string]string{"guest_id": "77"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/checkout/guest", map[string]string{"guest": "1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/checkout/guest", map[string]string{"guest_id": "1"})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodPut, "/api/checkout/payment/method", map[string]string{"method": "tarjeta"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.CheckoutStatePaymentPending, decode[checkoutResponse](t, rr).State)
	rr = s.do(t, http.MethodPost, "/api/checkout/payment/confirm", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/checkout/finalize", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.True(t, decode[errorResponse](t, rr).Retryable)

	rr = s.do(t, http.MethodGet, "/api/checkout", nil)
	assert.Equal(t, domain.CheckoutStateReady, decode[checkoutResponse](t, rr).State)

	rr = s.do(t, http.MethodGet, "/api/checkouts?from=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = s.do(t, http.MethodGet, "/api/checkouts?from=2025-08-12&to=2025-08-11", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestConfirmPayment_BodyWithoutLength(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, http.MethodPost, "/api/checkout/guest", map[string]string{"guest_id": "3"})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodPut, "/api/checkout/payment/method", map[string]string{"method": "efectivo"})
	require.Equal(t, http.StatusOK, rr.Code)

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/checkout/payment/confirm", io.NopCloser(strings.NewReader(body)))
		req.ContentLength = -1
		req.Header.Set("Authorization", "Bearer "+s.token)
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, req)
		return rr
	}

	rr = send(`{"method":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "body", decode[errorResponse](t, rr).Field)

	rr = send("")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode[checkoutResponse](t, rr)
	assert.Equal(t, domain.CheckoutStateReady, resp.State)
	assert.Equal(t, domain.PaymentMethodCash, resp.Payment.Method)
	assert.True(t, resp.Payment.Confirmed)
}

func TestLoggingMiddleware_ServerErrors(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter("info", "json", &buf)
	t.Cleanup(func() { logger.Initialize("info", "text") })

	handler := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Empty(t, buf.String())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/fail", nil))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "HTTP request failed", entry["msg"])
	assert.Equal(t, "/fail", entry["path"])
	assert.Equal(t, float64(http.StatusServiceUnavailable), entry["status"])
}
