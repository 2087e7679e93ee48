package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(name string) boutique.Product {
	return boutique.Product{
		Name:       name,
		Kinds:      []boutique.OfferingKind{boutique.KindSale},
		PriceCents: boutique.Cents(1000),
		Stock:      2,
		ImageURLs:  []string{},
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()

	boom := errors.New("boom")
	err := s.Update(ctx, func(tx store.Tx) error {
		p := product("Gown")
		require.NoError(t, tx.Products().Insert(ctx, &p))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.View(ctx, func(tx store.Tx) error {
		ps, err := tx.Products().List(ctx)
		require.NoError(t, err)
		assert.Empty(t, ps)
		return nil
	}))
}

func TestIDsGrowPastDeletedRows(t *testing.T) {
	ctx := context.Background()
	s := New()

	var ids []int64
	require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
		for _, n := range []string{"a", "b", "c"} {
			p := product(n)
			if err := tx.Products().Insert(ctx, &p); err != nil {
				return err
			}
			ids = append(ids, p.ID)
		}
		return tx.Products().Delete(ctx, 2)
	}))
	assert.Equal(t, []int64{1, 2, 3}, ids)

	require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
		p := product("d")
		require.NoError(t, tx.Products().Insert(ctx, &p))
		assert.Equal(t, int64(4), p.ID)
		return nil
	}))
}

func TestViewIsReadOnly(t *testing.T) {
	ctx := context.Background()
	s := New()
	err := s.View(ctx, func(tx store.Tx) error {
		p := product("Gown")
		return tx.Products().Insert(ctx, &p)
	})
	assert.ErrorIs(t, err, store.ErrReadOnly)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
		p := product("Gown")
		return tx.Products().Insert(ctx, &p)
	}))

	require.NoError(t, s.View(ctx, func(tx store.Tx) error {
		p, err := tx.Products().Get(ctx, 1)
		require.NoError(t, err)
		*p.PriceCents = 1
		p.Kinds[0] = boutique.KindRent
		return nil
	}))
	require.NoError(t, s.View(ctx, func(tx store.Tx) error {
		p, err := tx.Products().Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), *p.PriceCents)
		assert.Equal(t, boutique.KindSale, p.Kinds[0])
		return nil
	}))
}

func TestUsersRejectDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := New()
	err := s.Update(ctx, func(tx store.Tx) error {
		a := boutique.User{Email: "jane@example.com", Name: "Jane", Role: boutique.RoleCustomer}
		require.NoError(t, tx.Users().Insert(ctx, &a))
		b := boutique.User{Email: "JANE@example.com", Name: "Other", Role: boutique.RoleCustomer}
		return tx.Users().Insert(ctx, &b)
	})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestOrdersListNewestFirstWithFilter(t *testing.T) {
	ctx := context.Background()
	s := New()
	pid := int64(9)
	require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
		for i, st := range []boutique.Status{boutique.StatusPending, boutique.StatusConfirmed, boutique.StatusPending} {
			o := boutique.Order{CustomerID: int64(i%2 + 1), Kind: boutique.KindSale, ProductID: &pid, Status: st}
			if err := tx.Orders().Insert(ctx, &o); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, s.View(ctx, func(tx store.Tx) error {
		all, err := tx.Orders().List(ctx, store.OrderFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []int64{3, 2, 1}, []int64{all[0].ID, all[1].ID, all[2].ID})

		cust := int64(1)
		mine, err := tx.Orders().List(ctx, store.OrderFilter{CustomerID: &cust, Status: boutique.StatusPending})
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		other := int64(10)
		none, err := tx.Orders().List(ctx, store.OrderFilter{ProductID: &other})
		require.NoError(t, err)
		assert.Empty(t, none)
		return nil
	}))
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.View(ctx, func(tx store.Tx) error {
		_, err := tx.Orders().Get(ctx, 1)
		assert.ErrorIs(t, err, store.ErrNotFound)
		_, err = tx.Users().GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrNotFound)
		return nil
	}))
}
