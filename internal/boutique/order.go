package boutique

import "time"

type Reservation struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	CustomerID int64     `json:"customer_id"`
	StartDate  Date      `json:"start_date"`
	EndDate    Date      `json:"end_date"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r Reservation) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

type Order struct {
	ID            int64        `json:"id"`
	CustomerID    int64        `json:"customer_id"`
	Kind          OfferingKind `json:"type"`
	ProductID     *int64       `json:"product_id,omitempty"`
	ReservationID *int64       `json:"rental_id,omitempty"`
	Quantity      int          `json:"quantity,omitempty"`
	StartDate     Date         `json:"start_date,omitzero"`
	EndDate       Date         `json:"end_date,omitzero"`
	Description   string       `json:"description,omitempty"`
	TotalCents    *int64       `json:"total_cents,omitempty"`
	Status        Status       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

// OrderView is an order with the display names the dashboard shows next to it.
type OrderView struct {
	Order
	CustomerName string `json:"customer_name"`
	ProductName  string `json:"product_name"`
}

const (
	UnknownCustomerName = "Unknown User"
	CustomItemName      = "Custom Item"
)
