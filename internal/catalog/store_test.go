package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"github.com/ariefcatur/boutique-orders/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)

func newStore() *Store {
	s := New(memory.New())
	s.Now = func() time.Time { return fixedNow }
	return s
}

func dressDraft() boutique.ProductDraft {
	return boutique.ProductDraft{
		Name:            "Summer Floral Dress",
		Kinds:           []boutique.OfferingKind{boutique.KindSale, boutique.KindRent},
		PriceCents:      boutique.Cents(9000),
		RentalRateCents: boutique.Cents(3000),
		Stock:           3,
	}
}

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	a, err := s.Create(ctx, dressDraft())
	require.NoError(t, err)
	b, err := s.Create(ctx, dressDraft())
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.Equal(t, fixedNow, a.CreatedAt)
	assert.NotNil(t, a.ImageURLs)
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	d := dressDraft()
	d.RentalRateCents = nil
	_, err := newStore().Create(context.Background(), d)
	assert.True(t, boutique.IsKind(err, boutique.KindValidation))
}

func TestUpdateMergesAndRevalidates(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	p, err := s.Create(ctx, dressDraft())
	require.NoError(t, err)

	later := fixedNow.Add(time.Hour)
	s.Now = func() time.Time { return later }
	featured := true
	got, err := s.Update(ctx, p.ID, boutique.ProductPatch{Featured: &featured})
	require.NoError(t, err)
	assert.True(t, got.Featured)
	assert.Equal(t, "Summer Floral Dress", got.Name)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, later, got.UpdatedAt)

	rentOnly := []boutique.OfferingKind{boutique.KindRent}
	got, err = s.Update(ctx, p.ID, boutique.ProductPatch{Kinds: &rentOnly})
	require.NoError(t, err)
	assert.Nil(t, got.PriceCents)

	empty := ""
	_, err = s.Update(ctx, p.ID, boutique.ProductPatch{Name: &empty})
	assert.True(t, boutique.IsKind(err, boutique.KindValidation))

	stored, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Floral Dress", stored.Name)
}

func TestUpdateMissing(t *testing.T) {
	name := "x"
	_, err := newStore().Update(context.Background(), 42, boutique.ProductPatch{Name: &name})
	assert.True(t, boutique.IsKind(err, boutique.KindNotFound))
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	_, err := s.Create(ctx, dressDraft())
	require.NoError(t, err)
	_, err = s.Create(ctx, boutique.ProductDraft{
		Name:     "Bespoke Suit",
		Kinds:    []boutique.OfferingKind{boutique.KindTailoring},
		Featured: true,
	})
	require.NoError(t, err)

	all, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	rent, err := s.List(ctx, Filter{Kind: boutique.KindRent})
	require.NoError(t, err)
	require.Len(t, rent, 1)
	assert.Equal(t, "Summer Floral Dress", rent[0].Name)

	yes := true
	featured, err := s.List(ctx, Filter{Featured: &yes})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Bespoke Suit", featured[0].Name)
}

func TestDeleteBlockedByOpenReferences(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	p, err := s.Create(ctx, dressDraft())
	require.NoError(t, err)

	var orderID int64
	require.NoError(t, s.DB.Update(ctx, func(tx store.Tx) error {
		o := boutique.Order{CustomerID: 1, Kind: boutique.KindSale, ProductID: &p.ID, Quantity: 1, Status: boutique.StatusPending}
		err := tx.Orders().Insert(ctx, &o)
		orderID = o.ID
		return err
	}))

	err = s.Delete(ctx, p.ID)
	assert.True(t, boutique.IsKind(err, boutique.KindConflict))

	require.NoError(t, s.DB.Update(ctx, func(tx store.Tx) error {
		return tx.Orders().UpdateStatus(ctx, orderID, boutique.StatusCancelled)
	}))
	require.NoError(t, s.DB.Update(ctx, func(tx store.Tx) error {
		r := boutique.Reservation{
			ProductID: p.ID, CustomerID: 1,
			StartDate: boutique.MustDate("2024-08-01"), EndDate: boutique.MustDate("2024-08-02"),
			Status: boutique.StatusConfirmed,
		}
		return tx.Reservations().Insert(ctx, &r)
	}))
	err = s.Delete(ctx, p.ID)
	assert.True(t, boutique.IsKind(err, boutique.KindConflict))

	require.NoError(t, s.DB.Update(ctx, func(tx store.Tx) error {
		return tx.Reservations().UpdateStatus(ctx, 1, boutique.StatusCompleted)
	}))
	require.NoError(t, s.Delete(ctx, p.ID))

	_, err = s.Get(ctx, p.ID)
	assert.True(t, boutique.IsKind(err, boutique.KindNotFound))
	assert.True(t, boutique.IsKind(s.Delete(ctx, p.ID), boutique.KindNotFound))
}
