package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout/checkin"
	"checkout/db"
	"checkout/entity"
	"checkout/flow"
	"checkout/gateway"
	checkouthttp "checkout/http"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, any) error { return nil }

type nopRecovery struct{}

func (nopRecovery) Save(context.Context, db.RecoveryRecord) error { return nil }
func (nopRecovery) Clear(context.Context, string) error           { return nil }

type staticAudit struct {
	entries []db.AuditEntry
}

func (a staticAudit) Recent(ctx context.Context, n int64) ([]db.AuditEntry, error) {
	if int64(len(a.entries)) < n {
		n = int64(len(a.entries))
	}
	return a.entries[:n], nil
}

func intPtr(v int) *int { return &v }

type fixture struct {
	handler  http.Handler
	bookings *gateway.BookingMock
	provider *gateway.PaymentProviderMock
	checkIns *gateway.CheckInMock
	flows    *flow.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	bookings := &gateway.BookingMock{}
	provider := &gateway.PaymentProviderMock{SessionTTL: time.Minute}
	checkIns := &gateway.CheckInMock{Tickets: map[string]entity.Ticket{}}

	deps := flow.Deps{
		Events: &gateway.EventsMock{Event: entity.Event{ID: "event-1", Name: "Summer Gig"}},
		TicketTypes: &gateway.TicketTypesMock{TicketTypes: []entity.TicketType{
			{ID: "general", Name: "General", Price: entity.Money{Amount: 500, Currency: "INR"}, Active: true, MaxPerOrder: 6},
			{ID: "vip", Name: "VIP", Price: entity.Money{Amount: 2000, Currency: "INR"}, Active: true, Remaining: intPtr(3), MaxPerOrder: 6},
		}},
		Coupons:   &gateway.CouponMock{Coupons: map[string]int{"SAVE10": 10}},
		Bookings:  bookings,
		Providers: gateway.NewProviderRegistry(provider),
		Recovery:  nopRecovery{},
		Probe:     gateway.AlwaysOnline{},
		Publisher: nopPublisher{},
	}
	cfg := flow.Config{
		Policy:               entity.SummaryPolicy{ServiceFeePercent: 5, MaxTicketsPerOrder: 10},
		PollInterval:         time.Hour,
		PollFailureThreshold: 3,
	}

	flows := flow.NewManager(cfg, deps)
	t.Cleanup(flows.Close)

	server := checkouthttp.NewServer(
		":0",
		flows,
		checkin.NewService(checkIns, nopPublisher{}),
		staticAudit{entries: []db.AuditEntry{{SessionID: "session-1", Outcome: "payment_succeeded"}}},
	)

	return &fixture{
		handler:  server.Handler(),
		bookings: bookings,
		provider: provider,
		checkIns: checkIns,
		flows:    flows,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) startSession(t *testing.T) string {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/events/event-1/booking-sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var response struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotEmpty(t, response.SessionID)
	return response.SessionID
}

func TestServer_bookingSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	sessionID := f.startSession(t)

	rec := f.do(t, http.MethodGet, "/booking-sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status flow.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, flow.StateSelectingTickets, status.State)

	rec = f.do(t, http.MethodDelete, "/booking-sessions/"+sessionID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/booking-sessions/"+sessionID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_selectionAndSummary(t *testing.T) {
	f := newFixture(t)
	sessionID := f.startSession(t)

	rec := f.do(t, http.MethodPost, "/booking-sessions/"+sessionID+"/selection",
		map[string]any{"ticket_type_id": "general", "delta": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	var status flow.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, int64(1050), status.Summary.Total.Amount, "2 x 500 plus 5% fee")

	rec = f.do(t, http.MethodPost, "/booking-sessions/"+sessionID+"/selection",
		map[string]any{"ticket_type_id": "no-such-type", "delta": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_confirmFlow(t *testing.T) {
	f := newFixture(t)
	f.bookings.Confirmation = entity.BookingConfirmation{
		BookingID:       "booking-1",
		TotalAmount:     entity.Money{Amount: 1050, Currency: "INR"},
		PaymentRequired: true,
	}

	sessionID := f.startSession(t)

	rec := f.do(t, http.MethodPost, "/booking-sessions/"+sessionID+"/selection",
		map[string]any{"ticket_type_id": "general", "delta": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/booking-sessions/"+sessionID+"/contact",
		map[string]any{"first_name": "Asha", "last_name": "Rao", "email": "asha@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/booking-sessions/"+sessionID+"/confirm",
		map[string]any{"payment_method": "upi"})
	require.Equal(t, http.StatusOK, rec.Code)

	var status flow.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, flow.StateAwaitingPayment, status.State)
	require.NotNil(t, status.Payment)
	assert.NotEmpty(t, status.Payment.UpiDeepLink)
	assert.Greater(t, status.SecondsToExpiry, 0)

	// verify while the provider still reports pending
	rec = f.do(t, http.MethodPost, "/booking-sessions/"+sessionID+"/verify-payment", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	f.provider.SetStatus(entity.PaymentStatusSuccess)
	rec = f.do(t, http.MethodPost, "/booking-sessions/"+sessionID+"/verify-payment", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var verify struct {
		PaymentStatus entity.PaymentStatus `json:"payment_status"`
		Status        flow.Status          `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verify))
	assert.Equal(t, entity.PaymentStatusSuccess, verify.PaymentStatus)
	assert.Equal(t, flow.StatePaymentSucceeded, verify.Status.State)
}

func TestServer_confirmFailureSurfacesStatus(t *testing.T) {
	f := newFixture(t)
	f.bookings.Err = gateway.APIError{StatusCode: 400, Message: "not enough seats available"}

	sessionID := f.startSession(t)

	rec := f.do(t, http.MethodPost, "/booking-sessions/"+sessionID+"/selection",
		map[string]any{"ticket_type_id": "general", "delta": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/booking-sessions/"+sessionID+"/contact",
		map[string]any{"first_name": "Asha", "last_name": "Rao", "email": "asha@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/booking-sessions/"+sessionID+"/confirm",
		map[string]any{"payment_method": "upi"})
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var status flow.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, flow.StateBookingFailed, status.State)
	assert.Equal(t, "not enough seats available", status.Message)
}

func TestServer_checkIn(t *testing.T) {
	f := newFixture(t)
	f.checkIns.Tickets["CODE-1"] = entity.Ticket{
		ID:               "ticket-1",
		AttendeeName:     "Asha Rao",
		VerificationCode: "CODE-1",
	}

	rec := f.do(t, http.MethodPost, "/events/event-1/check-in",
		map[string]any{"code": "CODE-1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var ticket entity.Ticket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket))
	assert.True(t, ticket.CheckedIn)

	// second scan of the same code is a conflict
	rec = f.do(t, http.MethodPost, "/events/event-1/check-in",
		map[string]any{"code": "CODE-1"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/events/event-1/check-in",
		map[string]any{"code": "UNKNOWN"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_opsAudit(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/ops/audit?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []db.AuditEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "payment_succeeded", entries[0].Outcome)

	rec = f.do(t, http.MethodGet, "/ops/audit?limit=nope", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
