// Package seed loads the demo boutique: staff and customer accounts, the
// starting catalog and a short order history for the dashboard.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/identity"
	"github.com/ariefcatur/boutique-orders/internal/store"
)

const DemoPassword = "password"

type demoUser struct {
	email, name string
	role        boutique.Role
}

var demoUsers = []demoUser{
	{"owner@lali.com", "Lali Owner", boutique.RoleOwner},
	{"employee@lali.com", "John Doe", boutique.RoleEmployee},
	{"user@lali.com", "Jane Smith", boutique.RoleCustomer},
	{"test.user@example.com", "Test User", boutique.RoleCustomer},
}

var demoProducts = []boutique.Product{
	{
		Name:        "Elegant Evening Gown",
		Kinds:       []boutique.OfferingKind{boutique.KindSale},
		PriceCents:  boutique.Cents(25000),
		Stock:       5,
		ImageURLs:   []string{"/images/products/gown-1.jpg"},
		Description: "A stunning silk gown perfect for formal events.",
		Featured:    true,
	},
	{
		Name:            "Summer Floral Dress",
		Kinds:           []boutique.OfferingKind{boutique.KindSale, boutique.KindRent},
		PriceCents:      boutique.Cents(9000),
		RentalRateCents: boutique.Cents(3000),
		Stock:           3,
		ImageURLs:       []string{"/images/products/dress-1.jpg", "/images/products/dress-2.jpg"},
		Description:     "Light and airy, ideal for a summer day out.",
	},
	{
		Name:        "Classic Business Suit",
		Kinds:       []boutique.OfferingKind{boutique.KindSale, boutique.KindTailoring},
		PriceCents:  boutique.Cents(40000),
		Stock:       8,
		ImageURLs:   []string{"/images/products/suit-1.jpg"},
		Description: "A sharp, modern suit for the professional woman.",
		Featured:    true,
	},
	{
		Name:            "Wedding Tuxedo",
		Kinds:           []boutique.OfferingKind{boutique.KindRent, boutique.KindTailoring},
		RentalRateCents: boutique.Cents(12000),
		Stock:           2,
		ImageURLs:       []string{"/images/products/tuxedo-1.jpg"},
		Description:     "Look your best on the special day with this classic tuxedo.",
		Featured:        true,
	},
}

// Load fills an empty store. It does nothing when any user already exists.
func Load(ctx context.Context, db store.Store, h identity.Hasher) (bool, error) {
	hash, err := h.Hash(DemoPassword)
	if err != nil {
		return false, err
	}

	loaded := false
	err = db.Update(ctx, func(tx store.Tx) error {
		existing, err := tx.Users().List(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		created := time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC)
		users := make([]boutique.User, 0, len(demoUsers))
		for _, du := range demoUsers {
			u := boutique.User{Email: du.email, Name: du.name, Role: du.role, PasswordHash: hash, CreatedAt: created}
			if err := tx.Users().Insert(ctx, &u); err != nil {
				return fmt.Errorf("seed user %s: %w", du.email, err)
			}
			users = append(users, u)
		}

		products := make([]boutique.Product, 0, len(demoProducts))
		for _, dp := range demoProducts {
			p := dp
			p.Normalize()
			p.CreatedAt, p.UpdatedAt = created, created
			if err := tx.Products().Insert(ctx, &p); err != nil {
				return fmt.Errorf("seed product %s: %w", p.Name, err)
			}
			products = append(products, p)
		}

		jane, test := users[2], users[3]
		gown, dress, tuxedo := products[0], products[1], products[3]

		if err := insertOrder(ctx, tx, boutique.Order{
			CustomerID: jane.ID,
			Kind:       boutique.KindSale,
			ProductID:  &gown.ID,
			Quantity:   1,
			TotalCents: boutique.Cents(*gown.PriceCents),
			Status:     boutique.StatusCompleted,
			CreatedAt:  time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC),
		}); err != nil {
			return err
		}
		if err := insertRental(ctx, tx, jane.ID, dress, "2024-08-10", "2024-08-12",
			time.Date(2024, time.July, 20, 10, 0, 0, 0, time.UTC)); err != nil {
			return err
		}
		if err := insertOrder(ctx, tx, boutique.Order{
			CustomerID:  jane.ID,
			Kind:        boutique.KindTailoring,
			Description: "Need to alter the sleeves of my business suit.",
			Status:      boutique.StatusPending,
			CreatedAt:   time.Date(2024, time.July, 22, 10, 0, 0, 0, time.UTC),
		}); err != nil {
			return err
		}
		if err := insertRental(ctx, tx, test.ID, tuxedo, "2024-08-20", "2024-08-23",
			time.Date(2024, time.August, 1, 10, 0, 0, 0, time.UTC)); err != nil {
			return err
		}
		loaded = true
		return nil
	})
	return loaded, err
}

func insertOrder(ctx context.Context, tx store.Tx, o boutique.Order) error {
	if err := tx.Orders().Insert(ctx, &o); err != nil {
		return fmt.Errorf("seed order: %w", err)
	}
	return nil
}

// insertRental writes a confirmed reservation and the rent order linked to it.
func insertRental(ctx context.Context, tx store.Tx, customerID int64, p boutique.Product, start, end string, at time.Time) error {
	r := boutique.Reservation{
		ProductID:  p.ID,
		CustomerID: customerID,
		StartDate:  boutique.MustDate(start),
		EndDate:    boutique.MustDate(end),
		Status:     boutique.StatusConfirmed,
		CreatedAt:  at,
	}
	if err := tx.Reservations().Insert(ctx, &r); err != nil {
		return fmt.Errorf("seed reservation: %w", err)
	}
	total := *p.RentalRateCents * int64(r.Range().Days())
	return insertOrder(ctx, tx, boutique.Order{
		CustomerID:    customerID,
		Kind:          boutique.KindRent,
		ProductID:     &p.ID,
		ReservationID: &r.ID,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		TotalCents:    &total,
		Status:        boutique.StatusConfirmed,
		CreatedAt:     at,
	})
}
