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
	"checkout/entity"
)

func testRecord(expiresAt time.Time) db.RecoveryRecord {
	return db.RecoveryRecord{
		SessionID: "session-1",
		BookingID: "booking-1",
		OrderID:   "order-1",
		Method:    entity.PaymentMethodUpi,
		ExpiresAt: expiresAt,
	}
}

func TestRecoveryStore_saveRefusesExpiredSession(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := db.NewRecoveryRedisStore(rdb)

	err := store.Save(context.Background(), testRecord(time.Now().Add(-time.Minute)))
	require.ErrorIs(t, err, entity.ErrSessionExpired)

	// nothing was written
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecoveryStore_get(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := db.NewRecoveryRedisStore(rdb)

	expiresAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(testRecord(expiresAt))
	require.NoError(t, err)

	mock.ExpectGet("checkout:pending:session-1").SetVal(string(payload))

	record, err := store.Get(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, "booking-1", record.BookingID)
	assert.Equal(t, "order-1", record.OrderID)
	assert.True(t, record.ExpiresAt.Equal(expiresAt))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecoveryStore_getNotFound(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := db.NewRecoveryRedisStore(rdb)

	mock.ExpectGet("checkout:pending:session-1").RedisNil()

	_, err := store.Get(context.Background(), "session-1")
	require.ErrorIs(t, err, db.ErrRecoveryNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecoveryStore_clear(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := db.NewRecoveryRedisStore(rdb)

	mock.ExpectDel("checkout:pending:session-1").SetVal(1)
	require.NoError(t, store.Clear(context.Background(), "session-1"))

	// clearing an absent record is fine too
	mock.ExpectDel("checkout:pending:session-1").SetVal(0)
	require.NoError(t, store.Clear(context.Background(), "session-1"))

	require.NoError(t, mock.ExpectationsWereMet())
}
