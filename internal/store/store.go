// Package store defines the persistence boundary shared by the ledgers.
//
// Every logical operation runs inside exactly one transaction obtained from
// Store.Update or Store.View, so a reservation and the order linking it are
// written together or not at all.
package store

import (
	"context"
	"errors"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrReadOnly  = errors.New("write in read-only transaction")
)

type Products interface {
	// Insert assigns an id greater than every existing product id.
	Insert(ctx context.Context, p *boutique.Product) error
	Update(ctx context.Context, p boutique.Product) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (boutique.Product, error)
	// GetForUpdate also locks the product row until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (boutique.Product, error)
	List(ctx context.Context) ([]boutique.Product, error)
}

type Reservations interface {
	Insert(ctx context.Context, r *boutique.Reservation) error
	UpdateStatus(ctx context.Context, id int64, s boutique.Status) error
	Get(ctx context.Context, id int64) (boutique.Reservation, error)
	ListByProduct(ctx context.Context, productID int64) ([]boutique.Reservation, error)
}

type OrderFilter struct {
	CustomerID *int64
	ProductID  *int64
	Status     boutique.Status
}

func (f OrderFilter) Match(o boutique.Order) bool {
	if f.CustomerID != nil && o.CustomerID != *f.CustomerID {
		return false
	}
	if f.ProductID != nil && (o.ProductID == nil || *o.ProductID != *f.ProductID) {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	return true
}

type Orders interface {
	Insert(ctx context.Context, o *boutique.Order) error
	UpdateStatus(ctx context.Context, id int64, s boutique.Status) error
	Get(ctx context.Context, id int64) (boutique.Order, error)
	// List returns matching orders newest first.
	List(ctx context.Context, f OrderFilter) ([]boutique.Order, error)
}

type Users interface {
	Insert(ctx context.Context, u *boutique.User) error
	UpdateRole(ctx context.Context, id int64, r boutique.Role) error
	Get(ctx context.Context, id int64) (boutique.User, error)
	GetByEmail(ctx context.Context, email string) (boutique.User, error)
	List(ctx context.Context) ([]boutique.User, error)
}

type Tx interface {
	Products() Products
	Reservations() Reservations
	Orders() Orders
	Users() Users
}

type Store interface {
	// Update runs fn in a read-write transaction committed only if fn
	// returns nil.
	Update(ctx context.Context, fn func(Tx) error) error
	// View runs fn in a read-only transaction.
	View(ctx context.Context, fn func(Tx) error) error
	Close()
}
