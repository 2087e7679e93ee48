package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Notification struct {
	EventID   string    `json:"event_id"`
	OrderID   int64     `json:"order_id"`
	EventType string    `json:"event_type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Inbox is a capped Redis list per customer.
type Inbox struct {
	RDB redis.Cmdable
}

func (b Inbox) Push(ctx context.Context, customerID int64, n Notification) error {
	v, err := json.Marshal(n)
	if err != nil {
		return err
	}
	key := InboxKey(customerID)
	_, err = b.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, key, v)
		p.LTrim(ctx, key, 0, InboxLimit-1)
		p.Expire(ctx, key, TTLInbox)
		return nil
	})
	return err
}

// Recent returns up to limit notifications, newest first.
func (b Inbox) Recent(ctx context.Context, customerID int64, limit int) ([]Notification, error) {
	if limit <= 0 || limit > InboxLimit {
		limit = InboxLimit
	}
	raw, err := b.RDB.LRange(ctx, InboxKey(customerID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(raw))
	for _, s := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(s), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// Dedup marks event ids a consumer has already handled.
type Dedup struct {
	RDB     redis.Cmdable
	Service string
}

// First reports whether eventID is seen for the first time.
func (d Dedup) First(ctx context.Context, eventID string) (bool, error) {
	return MarkOnce(ctx, d.RDB, DedupKey(d.Service, eventID), TTLDedup)
}

// Forget drops the marker so a failed event can be retried.
func (d Dedup) Forget(ctx context.Context, eventID string) error {
	return d.RDB.Del(ctx, DedupKey(d.Service, eventID)).Err()
}
