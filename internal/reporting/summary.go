// Package reporting aggregates the order ledger for the staff dashboard. It
// keeps no state of its own; every summary is recomputed from the ledger.
package reporting

import (
	"context"
	"sort"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
)

type MonthPoint struct {
	Month        string `json:"month"` // YYYY-MM
	Label        string `json:"label"` // "July 2024"
	SalesCents   int64  `json:"sales_cents"`
	RentalsCents int64  `json:"rentals_cents"`
}

type Summary struct {
	TotalSalesRevenueCents  int64                   `json:"total_sales_revenue_cents"`
	TotalRentalRevenueCents int64                   `json:"total_rental_revenue_cents"`
	PendingOrderCount       int                     `json:"pending_order_count"`
	PendingTailoringCount   int                     `json:"pending_tailoring_count"`
	OrdersByStatus          map[boutique.Status]int `json:"orders_by_status"`
	MonthlySeries           []MonthPoint            `json:"monthly_series"`
}

type Service struct {
	DB store.Store
}

func New(db store.Store) *Service { return &Service{DB: db} }

// countsAsRevenue: confirmed and completed orders are committed money;
// pending ones may still be cancelled.
func countsAsRevenue(s boutique.Status) bool {
	return s == boutique.StatusConfirmed || s == boutique.StatusCompleted
}

func (s *Service) DashboardSummary(ctx context.Context) (Summary, error) {
	var os []boutique.Order
	err := s.DB.View(ctx, func(tx store.Tx) error {
		var err error
		os, err = tx.Orders().List(ctx, store.OrderFilter{})
		return err
	})
	if err != nil {
		return Summary{}, err
	}
	return Summarize(os), nil
}

// Summarize is the pure aggregation behind DashboardSummary.
func Summarize(os []boutique.Order) Summary {
	sum := Summary{
		OrdersByStatus: map[boutique.Status]int{},
		MonthlySeries:  []MonthPoint{},
	}
	months := map[string]*MonthPoint{}

	for _, o := range os {
		sum.OrdersByStatus[o.Status]++
		if o.Status == boutique.StatusPending {
			sum.PendingOrderCount++
			if o.Kind == boutique.KindTailoring {
				sum.PendingTailoringCount++
			}
		}
		if !countsAsRevenue(o.Status) || o.TotalCents == nil {
			continue
		}

		key := o.CreatedAt.UTC().Format("2006-01")
		mp, ok := months[key]
		if !ok {
			mp = &MonthPoint{Month: key, Label: o.CreatedAt.UTC().Format("January 2006")}
			months[key] = mp
		}
		switch o.Kind {
		case boutique.KindSale:
			sum.TotalSalesRevenueCents += *o.TotalCents
			mp.SalesCents += *o.TotalCents
		case boutique.KindRent:
			sum.TotalRentalRevenueCents += *o.TotalCents
			mp.RentalsCents += *o.TotalCents
		}
	}

	for _, mp := range months {
		sum.MonthlySeries = append(sum.MonthlySeries, *mp)
	}
	sort.Slice(sum.MonthlySeries, func(i, j int) bool {
		return sum.MonthlySeries[i].Month < sum.MonthlySeries[j].Month
	})
	return sum
}
