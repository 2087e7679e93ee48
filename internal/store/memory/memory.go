// Package memory is the in-process store. Writers work on a private copy of
// the state that replaces the shared one only on success.
package memory

import (
	"context"
	"sync"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
)

type state struct {
	products     []boutique.Product
	reservations []boutique.Reservation
	orders       []boutique.Order
	users        []boutique.User
}

func (s *state) clone() *state {
	out := &state{
		products:     make([]boutique.Product, len(s.products)),
		reservations: append([]boutique.Reservation(nil), s.reservations...),
		orders:       make([]boutique.Order, len(s.orders)),
		users:        append([]boutique.User(nil), s.users...),
	}
	for i, p := range s.products {
		out.products[i] = cloneProduct(p)
	}
	for i, o := range s.orders {
		out.orders[i] = cloneOrder(o)
	}
	return out
}

type Store struct {
	mu sync.RWMutex
	st *state
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{st: &state{}}
}

func (s *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	if err := fn(&tx{st: next}); err != nil {
		return err
	}
	s.st = next
	return nil
}

func (s *Store) View(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&tx{st: s.st, readOnly: true})
}

func (s *Store) Close() {}

type tx struct {
	st       *state
	readOnly bool
}

func (t *tx) Products() store.Products         { return products{t} }
func (t *tx) Reservations() store.Reservations { return reservations{t} }
func (t *tx) Orders() store.Orders             { return orders{t} }
func (t *tx) Users() store.Users               { return users{t} }

func (t *tx) writable() error {
	if t.readOnly {
		return store.ErrReadOnly
	}
	return nil
}

func cloneProduct(p boutique.Product) boutique.Product {
	p.Kinds = append([]boutique.OfferingKind(nil), p.Kinds...)
	p.ImageURLs = append([]string{}, p.ImageURLs...)
	if p.PriceCents != nil {
		v := *p.PriceCents
		p.PriceCents = &v
	}
	if p.RentalRateCents != nil {
		v := *p.RentalRateCents
		p.RentalRateCents = &v
	}
	return p
}

func cloneOrder(o boutique.Order) boutique.Order {
	if o.ProductID != nil {
		v := *o.ProductID
		o.ProductID = &v
	}
	if o.ReservationID != nil {
		v := *o.ReservationID
		o.ReservationID = &v
	}
	if o.TotalCents != nil {
		v := *o.TotalCents
		o.TotalCents = &v
	}
	return o
}
