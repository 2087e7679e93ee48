package seed

import (
	"context"
	"testing"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/identity"
	"github.com/ariefcatur/boutique-orders/internal/rentals"
	"github.com/ariefcatur/boutique-orders/internal/reporting"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"github.com/ariefcatur/boutique-orders/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadOnce(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	h := identity.Hasher{Cost: bcrypt.MinCost}

	loaded, err := Load(ctx, db, h)
	require.NoError(t, err)
	assert.True(t, loaded)

	loaded, err = Load(ctx, db, h)
	require.NoError(t, err)
	assert.False(t, loaded)

	require.NoError(t, db.View(ctx, func(tx store.Tx) error {
		us, err := tx.Users().List(ctx)
		require.NoError(t, err)
		assert.Len(t, us, len(demoUsers))
		ps, err := tx.Products().List(ctx)
		require.NoError(t, err)
		assert.Len(t, ps, len(demoProducts))
		os, err := tx.Orders().List(ctx, store.OrderFilter{})
		require.NoError(t, err)
		assert.Len(t, os, 4)
		return nil
	}))
}

func TestDemoAccountsCanSignIn(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	h := identity.Hasher{Cost: bcrypt.MinCost}
	_, err := Load(ctx, db, h)
	require.NoError(t, err)

	svc := identity.NewService(db, identity.NewTokens("s", time.Hour, "test"), h)
	sess, err := svc.Authenticate(ctx, "owner@lali.com", DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, boutique.RoleOwner, sess.Role)
}

func TestDemoRentalsBlockDates(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	_, err := Load(ctx, db, identity.Hasher{Cost: bcrypt.MinCost})
	require.NoError(t, err)

	days, err := rentals.New(db).ReservedDates(ctx, 2)
	require.NoError(t, err)
	var got []string
	for _, d := range days {
		got = append(got, d.String())
	}
	assert.Equal(t, []string{"2024-08-10", "2024-08-11", "2024-08-12"}, got)

	_, err = rentals.New(db).Reserve(ctx, 2, 3, boutique.MustDate("2024-08-12"), boutique.MustDate("2024-08-14"))
	assert.True(t, boutique.IsKind(err, boutique.KindConflict))
}

func TestDemoDashboard(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	_, err := Load(ctx, db, identity.Hasher{Cost: bcrypt.MinCost})
	require.NoError(t, err)

	s, err := reporting.New(db).DashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), s.TotalSalesRevenueCents)
	assert.Equal(t, int64(3*3000+4*12000), s.TotalRentalRevenueCents)
	assert.Equal(t, 1, s.PendingOrderCount)
	assert.Equal(t, 1, s.PendingTailoringCount)
}
