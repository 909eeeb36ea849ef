package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const auditTrailKey = "checkout:audit"

// AuditEntry records one terminal flow outcome for the ops view.
type AuditEntry struct {
	SessionID  string    `json:"session_id,omitempty"`
	BookingID  string    `json:"booking_id,omitempty"`
	TicketID   string    `json:"ticket_id,omitempty"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type AuditTrail struct {
	rdb *redis.Client
}

func NewAuditTrail(rdb *redis.Client) *AuditTrail {
	if rdb == nil {
		panic("rdb is nil")
	}
	return &AuditTrail{rdb: rdb}
}

func (t *AuditTrail) Append(ctx context.Context, entry AuditEntry) error {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not marshal audit entry: %w", err)
	}

	if err := t.rdb.LPush(ctx, auditTrailKey, payload).Err(); err != nil {
		return fmt.Errorf("could not append audit entry: %w", err)
	}
	return nil
}

func (t *AuditTrail) Recent(ctx context.Context, n int64) ([]AuditEntry, error) {
	payloads, err := t.rdb.LRange(ctx, auditTrailKey, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("could not read audit trail: %w", err)
	}

	entries := make([]AuditEntry, 0, len(payloads))
	for _, payload := range payloads {
		var entry AuditEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("could not unmarshal audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
