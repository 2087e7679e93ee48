// Package orders owns customer requests (sale, rent, tailoring) and their
// lifecycle, and emits an event after every committed change.
package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	kafkax "github.com/ariefcatur/boutique-orders/internal/kafka"
	"github.com/ariefcatur/boutique-orders/internal/rentals"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(topic string, key, value []byte, headers ...kafkago.Header)
}

// OrderDetails holds the kind-specific part of a new order.
type OrderDetails struct {
	ProductID   *int64        `json:"product_id"`
	Quantity    int           `json:"quantity"`
	StartDate   boutique.Date `json:"start_date"`
	EndDate     boutique.Date `json:"end_date"`
	Description string        `json:"description"`
}

type Ledger struct {
	DB      store.Store
	Rentals *rentals.Ledger
	Events  Publisher // optional
	Service string
	Log     *zap.Logger
	Now     func() time.Time
}

func New(db store.Store, r *rentals.Ledger, events Publisher, service string, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{DB: db, Rentals: r, Events: events, Service: service, Log: log, Now: time.Now}
}

func (l *Ledger) PlaceOrder(ctx context.Context, customerID int64, kind boutique.OfferingKind, d OrderDetails) (boutique.Order, error) {
	if !kind.Valid() {
		return boutique.Order{}, boutique.Validationf("unknown order type %q", kind)
	}

	var out boutique.Order
	err := l.DB.Update(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().Get(ctx, customerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return boutique.NotFoundf("customer %d not found", customerID)
			}
			return err
		}

		o := boutique.Order{
			CustomerID: customerID,
			Kind:       kind,
			Status:     boutique.StatusPending,
			CreatedAt:  l.Now().UTC(),
		}
		var err error
		switch kind {
		case boutique.KindSale:
			err = l.prepareSale(ctx, tx, &o, d)
		case boutique.KindRent:
			err = l.prepareRent(ctx, tx, &o, d)
		case boutique.KindTailoring:
			err = prepareTailoring(ctx, tx, &o, d)
		}
		if err != nil {
			return err
		}
		if err := tx.Orders().Insert(ctx, &o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return boutique.Order{}, err
	}

	l.publish(ctx, TopicOrderPlaced, EventOrderPlaced, out.ID, OrderPlacedPayload{
		OrderID:       out.ID,
		CustomerID:    out.CustomerID,
		Kind:          out.Kind,
		ProductID:     out.ProductID,
		ReservationID: out.ReservationID,
		TotalCents:    out.TotalCents,
	})
	return out, nil
}

// prepareSale prices the order and takes the units out of stock.
func (l *Ledger) prepareSale(ctx context.Context, tx store.Tx, o *boutique.Order, d OrderDetails) error {
	if d.ProductID == nil {
		return boutique.Validationf("product_id is required for a sale")
	}
	qty := d.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return boutique.Validationf("quantity must be positive")
	}
	p, err := tx.Products().GetForUpdate(ctx, *d.ProductID)
	if err != nil {
		return productNotFound(err, *d.ProductID)
	}
	if !p.Offers(boutique.KindSale) || p.PriceCents == nil {
		return boutique.Validationf("product %d is not for sale", p.ID)
	}
	if p.Stock < qty {
		return boutique.Conflictf("product %d is out of stock: available %d, requested %d", p.ID, p.Stock, qty)
	}
	p.Stock -= qty
	p.UpdatedAt = l.Now().UTC()
	if err := tx.Products().Update(ctx, p); err != nil {
		return err
	}

	total := *p.PriceCents * int64(qty)
	o.ProductID = &p.ID
	o.Quantity = qty
	o.TotalCents = &total
	return nil
}

func (l *Ledger) prepareRent(ctx context.Context, tx store.Tx, o *boutique.Order, d OrderDetails) error {
	if d.ProductID == nil {
		return boutique.Validationf("product_id is required for a rental")
	}
	res, err := l.Rentals.ReserveTx(ctx, tx, *d.ProductID, o.CustomerID, d.StartDate, d.EndDate)
	if err != nil {
		return err
	}
	p, err := tx.Products().Get(ctx, *d.ProductID)
	if err != nil {
		return productNotFound(err, *d.ProductID)
	}

	total := *p.RentalRateCents * int64(res.Range().Days())
	o.ProductID = &p.ID
	o.ReservationID = &res.ID
	o.StartDate = res.StartDate
	o.EndDate = res.EndDate
	o.TotalCents = &total
	return nil
}

// prepareTailoring records a free-text request; it is informational and has
// no price.
func prepareTailoring(ctx context.Context, tx store.Tx, o *boutique.Order, d OrderDetails) error {
	desc := strings.TrimSpace(d.Description)
	if desc == "" {
		return boutique.Validationf("a description is required for a tailoring request")
	}
	if d.ProductID != nil {
		p, err := tx.Products().Get(ctx, *d.ProductID)
		if err != nil {
			return productNotFound(err, *d.ProductID)
		}
		if !p.Offers(boutique.KindTailoring) {
			return boutique.Validationf("product %d is not offered for tailoring", p.ID)
		}
		o.ProductID = &p.ID
	}
	o.Description = desc
	return nil
}

// SetStatus moves the order along its lifecycle. A linked reservation follows
// in the same transaction, and a cancelled sale puts its units back in stock.
func (l *Ledger) SetStatus(ctx context.Context, orderID int64, to boutique.Status) (boutique.Order, error) {
	var (
		out  boutique.Order
		from boutique.Status
	)
	err := l.DB.Update(ctx, func(tx store.Tx) error {
		o, err := tx.Orders().Get(ctx, orderID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return boutique.NotFoundf("order %d not found", orderID)
			}
			return err
		}
		if err := boutique.CheckTransition(o.Status, to); err != nil {
			return err
		}
		if err := tx.Orders().UpdateStatus(ctx, o.ID, to); err != nil {
			return err
		}
		if o.ReservationID != nil {
			if _, err := rentals.SetStatusTx(ctx, tx, *o.ReservationID, to); err != nil {
				return err
			}
		}
		if o.Kind == boutique.KindSale && to == boutique.StatusCancelled && o.ProductID != nil {
			if err := l.restock(ctx, tx, *o.ProductID, o.Quantity); err != nil {
				return err
			}
		}
		from = o.Status
		o.Status = to
		out = o
		return nil
	})
	if err != nil {
		return boutique.Order{}, err
	}

	l.publish(ctx, TopicOrderStatusChanged, EventOrderStatusChanged, out.ID, OrderStatusChangedPayload{
		OrderID:       out.ID,
		CustomerID:    out.CustomerID,
		Kind:          out.Kind,
		ReservationID: out.ReservationID,
		From:          from,
		To:            to,
	})
	return out, nil
}

func (l *Ledger) restock(ctx context.Context, tx store.Tx, productID int64, qty int) error {
	p, err := tx.Products().GetForUpdate(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	p.Stock += qty
	p.UpdatedAt = l.Now().UTC()
	return tx.Products().Update(ctx, p)
}

// List returns matching orders newest first, with the customer and product
// names resolved at query time.
func (l *Ledger) List(ctx context.Context, f store.OrderFilter) ([]boutique.OrderView, error) {
	var out []boutique.OrderView
	err := l.DB.View(ctx, func(tx store.Tx) error {
		os, err := tx.Orders().List(ctx, f)
		if err != nil {
			return err
		}
		names, err := loadNames(ctx, tx)
		if err != nil {
			return err
		}
		out = make([]boutique.OrderView, 0, len(os))
		for _, o := range os {
			out = append(out, names.view(o))
		}
		return nil
	})
	return out, err
}

func (l *Ledger) Get(ctx context.Context, orderID int64) (boutique.OrderView, error) {
	var out boutique.OrderView
	err := l.DB.View(ctx, func(tx store.Tx) error {
		o, err := tx.Orders().Get(ctx, orderID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return boutique.NotFoundf("order %d not found", orderID)
			}
			return err
		}
		names, err := loadNames(ctx, tx)
		if err != nil {
			return err
		}
		out = names.view(o)
		return nil
	})
	return out, err
}

type nameIndex struct {
	customers map[int64]string
	products  map[int64]string
}

func loadNames(ctx context.Context, tx store.Tx) (nameIndex, error) {
	us, err := tx.Users().List(ctx)
	if err != nil {
		return nameIndex{}, err
	}
	ps, err := tx.Products().List(ctx)
	if err != nil {
		return nameIndex{}, err
	}
	idx := nameIndex{
		customers: make(map[int64]string, len(us)),
		products:  make(map[int64]string, len(ps)),
	}
	for _, u := range us {
		idx.customers[u.ID] = u.Name
	}
	for _, p := range ps {
		idx.products[p.ID] = p.Name
	}
	return idx, nil
}

func (n nameIndex) view(o boutique.Order) boutique.OrderView {
	v := boutique.OrderView{
		Order:        o,
		CustomerName: boutique.UnknownCustomerName,
		ProductName:  boutique.CustomItemName,
	}
	if name, ok := n.customers[o.CustomerID]; ok {
		v.CustomerName = name
	}
	if o.ProductID != nil {
		if name, ok := n.products[*o.ProductID]; ok {
			v.ProductName = name
		}
	}
	return v
}

func (l *Ledger) publish(ctx context.Context, topic, eventType string, orderID int64, payload any) {
	if l.Events == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    l.Now().UTC(),
		Producer:      l.Service,
		TraceID:       TraceID(ctx),
		CorrelationID: string(PartitionKey(orderID)),
		Payload:       kafkax.MustMarshal(payload),
	}
	l.Events.Publish(topic, PartitionKey(orderID), kafkax.MustMarshal(ev), kafkax.EventHeaders(eventType, ev.EventVersion)...)
	l.Log.Debug("event published", zap.String("type", eventType), zap.Int64("order_id", orderID))
}

func productNotFound(err error, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return boutique.NotFoundf("product %d not found", id)
	}
	return err
}
