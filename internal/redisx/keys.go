package redisx

import (
	"fmt"
	"time"
)

const (
	// idem:order:create:{customer_id}:{idempotency_key} -> order_id | "pending"
	KeyIdemOrderCreate = "idem:order:create:%d:%s"

	// dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// inbox:{customer_id} -> list of JSON notifications, newest first
	KeyInbox = "inbox:%d"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLClaim       = 30 * time.Second
	TTLDedup       = 48 * time.Hour
	TTLInbox       = 30 * 24 * time.Hour
)

// InboxLimit caps how many notifications one customer keeps.
const InboxLimit = 50

func IdemOrderKey(customerID int64, key string) string {
	return fmt.Sprintf(KeyIdemOrderCreate, customerID, key)
}

func DedupKey(service, eventID string) string {
	return fmt.Sprintf(KeyDedup, service, eventID)
}

func InboxKey(customerID int64) string {
	return fmt.Sprintf(KeyInbox, customerID)
}
