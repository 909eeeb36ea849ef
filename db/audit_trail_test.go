package db_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout/db"
)

func TestAuditTrail_append(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	trail := db.NewAuditTrail(rdb)

	entry := db.AuditEntry{
		SessionID:  "session-1",
		BookingID:  "booking-1",
		Outcome:    "payment_succeeded",
		RecordedAt: time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(entry)
	require.NoError(t, err)

	mock.ExpectLPush("checkout:audit", payload).SetVal(1)

	require.NoError(t, trail.Append(context.Background(), entry))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditTrail_recent(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	trail := db.NewAuditTrail(rdb)

	entries := []db.AuditEntry{
		{SessionID: "session-2", Outcome: "payment_failed", Detail: "declined", RecordedAt: time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)},
		{SessionID: "session-1", Outcome: "payment_succeeded", RecordedAt: time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)},
	}

	payloads := make([]string, 0, len(entries))
	for _, entry := range entries {
		payload, err := json.Marshal(entry)
		require.NoError(t, err)
		payloads = append(payloads, string(payload))
	}

	mock.ExpectLRange("checkout:audit", 0, 9).SetVal(payloads)

	got, err := trail.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "payment_failed", got[0].Outcome)
	assert.Equal(t, "session-1", got[1].SessionID)

	require.NoError(t, mock.ExpectationsWereMet())
}
