package orders

import (
	"encoding/json"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // one of the consts above
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"` // e.g. "boutique-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID       int64                 `json:"order_id"`
	CustomerID    int64                 `json:"customer_id"`
	Kind          boutique.OfferingKind `json:"type"`
	ProductID     *int64                `json:"product_id,omitempty"`
	ReservationID *int64                `json:"rental_id,omitempty"`
	TotalCents    *int64                `json:"total_cents,omitempty"`
}

type OrderStatusChangedPayload struct {
	OrderID       int64                 `json:"order_id"`
	CustomerID    int64                 `json:"customer_id"`
	Kind          boutique.OfferingKind `json:"type"`
	ReservationID *int64                `json:"rental_id,omitempty"`
	From          boutique.Status       `json:"from"`
	To            boutique.Status       `json:"to"`
}
