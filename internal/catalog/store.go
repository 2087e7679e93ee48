// Package catalog owns product records.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
)

type Filter struct {
	Kind     boutique.OfferingKind
	Featured *bool
}

func (f Filter) match(p boutique.Product) bool {
	if f.Kind != "" && !p.Offers(f.Kind) {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	return true
}

type Store struct {
	DB  store.Store
	Now func() time.Time
}

func New(db store.Store) *Store {
	return &Store{DB: db, Now: time.Now}
}

func (s *Store) Create(ctx context.Context, d boutique.ProductDraft) (boutique.Product, error) {
	p := d.Product()
	p.Normalize()
	if err := p.Validate(); err != nil {
		return boutique.Product{}, err
	}
	now := s.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	err := s.DB.Update(ctx, func(tx store.Tx) error {
		return tx.Products().Insert(ctx, &p)
	})
	if err != nil {
		return boutique.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id int64, patch boutique.ProductPatch) (boutique.Product, error) {
	var out boutique.Product
	err := s.DB.Update(ctx, func(tx store.Tx) error {
		cur, err := tx.Products().GetForUpdate(ctx, id)
		if err != nil {
			return notFound(err, id)
		}
		next := patch.Apply(cur)
		next.ID = cur.ID
		next.CreatedAt = cur.CreatedAt
		next.UpdatedAt = s.Now().UTC()
		next.Normalize()
		if err := next.Validate(); err != nil {
			return err
		}
		if err := tx.Products().Update(ctx, next); err != nil {
			return err
		}
		out = next
		return nil
	})
	return out, err
}

// Delete refuses to remove a product that open orders or active
// reservations still point at.
func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.DB.Update(ctx, func(tx store.Tx) error {
		if _, err := tx.Products().GetForUpdate(ctx, id); err != nil {
			return notFound(err, id)
		}
		os, err := tx.Orders().List(ctx, store.OrderFilter{ProductID: &id})
		if err != nil {
			return err
		}
		for _, o := range os {
			if !o.Status.Terminal() {
				return boutique.Conflictf("product %d is referenced by open order %d", id, o.ID)
			}
		}
		rs, err := tx.Reservations().ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		for _, r := range rs {
			if r.Status.Active() {
				return boutique.Conflictf("product %d has active reservation %d", id, r.ID)
			}
		}
		return tx.Products().Delete(ctx, id)
	})
}

func (s *Store) Get(ctx context.Context, id int64) (boutique.Product, error) {
	var p boutique.Product
	err := s.DB.View(ctx, func(tx store.Tx) error {
		var err error
		p, err = tx.Products().Get(ctx, id)
		return notFound(err, id)
	})
	return p, err
}

func (s *Store) List(ctx context.Context, f Filter) ([]boutique.Product, error) {
	var out []boutique.Product
	err := s.DB.View(ctx, func(tx store.Tx) error {
		ps, err := tx.Products().List(ctx)
		if err != nil {
			return err
		}
		out = make([]boutique.Product, 0, len(ps))
		for _, p := range ps {
			if f.match(p) {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

func notFound(err error, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return boutique.NotFoundf("product %d not found", id)
	}
	return err
}
