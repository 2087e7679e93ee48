package reporting

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

func at(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 10, 0, 0, 0, time.UTC) }

func order(kind boutique.OfferingKind, st boutique.Status, total int64, created time.Time) boutique.Order {
	o := boutique.Order{Kind: kind, Status: st, CreatedAt: created}
	if total > 0 {
		o.TotalCents = boutique.Cents(total)
	}
	return o
}

func TestSummarize(t *testing.T) {
	os := []boutique.Order{
		order(boutique.KindSale, boutique.StatusCompleted, 25000, at(2024, time.July, 15)),
		order(boutique.KindRent, boutique.StatusConfirmed, 9000, at(2024, time.July, 20)),
		order(boutique.KindTailoring, boutique.StatusPending, 0, at(2024, time.July, 22)),
		order(boutique.KindRent, boutique.StatusConfirmed, 48000, at(2024, time.August, 1)),
		order(boutique.KindSale, boutique.StatusPending, 9000, at(2024, time.August, 2)),
		order(boutique.KindSale, boutique.StatusCancelled, 40000, at(2024, time.August, 3)),
	}
	s := Summarize(os)

	assert.Equal(t, int64(25000), s.TotalSalesRevenueCents)
	assert.Equal(t, int64(57000), s.TotalRentalRevenueCents)
	assert.Equal(t, 2, s.PendingOrderCount)
	assert.Equal(t, 1, s.PendingTailoringCount)
	assert.Equal(t, s.PendingOrderCount, s.OrdersByStatus[boutique.StatusPending])
	assert.Equal(t, 1, s.OrdersByStatus[boutique.StatusCancelled])

	require.Len(t, s.MonthlySeries, 2)
	assert.Equal(t, MonthPoint{Month: "2024-07", Label: "July 2024", SalesCents: 25000, RentalsCents: 9000}, s.MonthlySeries[0])
	assert.Equal(t, MonthPoint{Month: "2024-08", Label: "August 2024", RentalsCents: 48000}, s.MonthlySeries[1])
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalSalesRevenueCents)
	assert.NotNil(t, s.MonthlySeries)
	assert.NotNil(t, s.OrdersByStatus)
}

func TestDashboardSummaryReadsLedger(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	require.NoError(t, db.Update(ctx, func(tx store.Tx) error {
		o := order(boutique.KindSale, boutique.StatusCompleted, 25000, at(2024, time.July, 15))
		return tx.Orders().Insert(ctx, &o)
	}))

	s, err := New(db).DashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), s.TotalSalesRevenueCents)
}
