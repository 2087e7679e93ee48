// Package rentals keeps the date-ranged holds on rental products.
package rentals

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
)

type Ledger struct {
	DB  store.Store
	Now func() time.Time
}

func New(db store.Store) *Ledger {
	return &Ledger{DB: db, Now: time.Now}
}

// ReservedDates expands every active reservation of the product into the
// individual days it blocks, sorted ascending.
func (l *Ledger) ReservedDates(ctx context.Context, productID int64) ([]boutique.Date, error) {
	var out []boutique.Date
	err := l.DB.View(ctx, func(tx store.Tx) error {
		if _, err := tx.Products().Get(ctx, productID); err != nil {
			return productNotFound(err, productID)
		}
		rs, err := tx.Reservations().ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		seen := map[string]bool{}
		for _, r := range rs {
			if !r.Status.Active() {
				continue
			}
			r.Range().EachDay(func(d boutique.Date) {
				if k := d.String(); !seen[k] {
					seen[k] = true
					out = append(out, d)
				}
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
		return nil
	})
	return out, err
}

func (l *Ledger) Reserve(ctx context.Context, productID, customerID int64, start, end boutique.Date) (boutique.Reservation, error) {
	var out boutique.Reservation
	err := l.DB.Update(ctx, func(tx store.Tx) error {
		var err error
		out, err = l.ReserveTx(ctx, tx, productID, customerID, start, end)
		return err
	})
	return out, err
}

// ReserveTx places a Pending hold inside the caller's transaction. The
// product row is locked first so concurrent holds on it serialize.
func (l *Ledger) ReserveTx(ctx context.Context, tx store.Tx, productID, customerID int64, start, end boutique.Date) (boutique.Reservation, error) {
	want := boutique.DateRange{Start: start, End: end}
	if err := want.Validate(); err != nil {
		return boutique.Reservation{}, err
	}
	p, err := tx.Products().GetForUpdate(ctx, productID)
	if err != nil {
		return boutique.Reservation{}, productNotFound(err, productID)
	}
	if !p.Offers(boutique.KindRent) {
		return boutique.Reservation{}, boutique.Validationf("product %d is not offered for rent", productID)
	}

	existing, err := tx.Reservations().ListByProduct(ctx, productID)
	if err != nil {
		return boutique.Reservation{}, err
	}
	for _, r := range existing {
		if r.Status.Active() && r.Range().Overlaps(want) {
			return boutique.Reservation{}, boutique.Conflictf(
				"product %d is already reserved from %s to %s", productID, r.StartDate, r.EndDate)
		}
	}

	res := boutique.Reservation{
		ProductID:  productID,
		CustomerID: customerID,
		StartDate:  start,
		EndDate:    end,
		Status:     boutique.StatusPending,
		CreatedAt:  l.Now().UTC(),
	}
	if err := tx.Reservations().Insert(ctx, &res); err != nil {
		return boutique.Reservation{}, err
	}
	return res, nil
}

func (l *Ledger) SetStatus(ctx context.Context, id int64, s boutique.Status) (boutique.Reservation, error) {
	var out boutique.Reservation
	err := l.DB.Update(ctx, func(tx store.Tx) error {
		var err error
		out, err = SetStatusTx(ctx, tx, id, s)
		return err
	})
	return out, err
}

// SetStatusTx moves a reservation along the lifecycle inside the caller's
// transaction.
func SetStatusTx(ctx context.Context, tx store.Tx, id int64, s boutique.Status) (boutique.Reservation, error) {
	r, err := tx.Reservations().Get(ctx, id)
	if err != nil {
		return boutique.Reservation{}, notFound(err, id)
	}
	if err := boutique.CheckTransition(r.Status, s); err != nil {
		return boutique.Reservation{}, err
	}
	if err := tx.Reservations().UpdateStatus(ctx, id, s); err != nil {
		return boutique.Reservation{}, err
	}
	r.Status = s
	return r, nil
}

func (l *Ledger) Get(ctx context.Context, id int64) (boutique.Reservation, error) {
	var r boutique.Reservation
	err := l.DB.View(ctx, func(tx store.Tx) error {
		var err error
		r, err = tx.Reservations().Get(ctx, id)
		return notFound(err, id)
	})
	return r, err
}

func (l *Ledger) ListByProduct(ctx context.Context, productID int64) ([]boutique.Reservation, error) {
	var out []boutique.Reservation
	err := l.DB.View(ctx, func(tx store.Tx) error {
		if _, err := tx.Products().Get(ctx, productID); err != nil {
			return productNotFound(err, productID)
		}
		var err error
		out, err = tx.Reservations().ListByProduct(ctx, productID)
		return err
	})
	return out, err
}

func notFound(err error, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return boutique.NotFoundf("reservation %d not found", id)
	}
	return err
}

func productNotFound(err error, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return boutique.NotFoundf("product %d not found", id)
	}
	return err
}
