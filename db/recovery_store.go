package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"checkout/entity"
)

var ErrRecoveryNotFound = errors.New("no pending payment recorded for this session")

// RecoveryRecord is the state a reconnecting client needs to resume an
// in-flight payment: which order to keep polling and which booking it
// belongs to. It exists from payment initiation until success, explicit
// cancellation, or session expiry.
type RecoveryRecord struct {
	SessionID string               `json:"session_id"`
	BookingID string               `json:"booking_id"`
	OrderID   string               `json:"order_id"`
	Method    entity.PaymentMethod `json:"method"`
	Token     string               `json:"token,omitempty"`
	ExpiresAt time.Time            `json:"expires_at"`
}

type RecoveryRedisStore struct {
	rdb *redis.Client
}

func NewRecoveryRedisStore(rdb *redis.Client) *RecoveryRedisStore {
	if rdb == nil {
		panic("rdb is nil")
	}
	return &RecoveryRedisStore{rdb: rdb}
}

func recoveryKey(sessionID string) string {
	return "checkout:pending:" + sessionID
}

// Save stores the record with a TTL matching the payment session expiry,
// so abandoned sessions clean themselves up.
func (s *RecoveryRedisStore) Save(ctx context.Context, record RecoveryRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal recovery record: %w", err)
	}

	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		return entity.ErrSessionExpired
	}

	err = s.rdb.Set(ctx, recoveryKey(record.SessionID), payload, ttl).Err()
	if err != nil {
		return fmt.Errorf("could not store recovery record: %w", err)
	}
	return nil
}

func (s *RecoveryRedisStore) Get(ctx context.Context, sessionID string) (RecoveryRecord, error) {
	payload, err := s.rdb.Get(ctx, recoveryKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return RecoveryRecord{}, ErrRecoveryNotFound
	}
	if err != nil {
		return RecoveryRecord{}, fmt.Errorf("could not read recovery record: %w", err)
	}

	var record RecoveryRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return RecoveryRecord{}, fmt.Errorf("could not unmarshal recovery record: %w", err)
	}
	return record, nil
}

// Clear removes the record. Clearing an absent record is not an error, the
// success handler and the explicit cancel path may race.
func (s *RecoveryRedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, recoveryKey(sessionID)).Err()
}
