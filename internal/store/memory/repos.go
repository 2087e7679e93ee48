package memory

import (
	"context"
	"strings"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
)

type products struct{ t *tx }

func (r products) index(id int64) int {
	for i, p := range r.t.st.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r products) Insert(_ context.Context, p *boutique.Product) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	var max int64
	for _, x := range r.t.st.products {
		if x.ID > max {
			max = x.ID
		}
	}
	p.ID = max + 1
	r.t.st.products = append(r.t.st.products, cloneProduct(*p))
	return nil
}

func (r products) Update(_ context.Context, p boutique.Product) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	i := r.index(p.ID)
	if i < 0 {
		return store.ErrNotFound
	}
	r.t.st.products[i] = cloneProduct(p)
	return nil
}

func (r products) Delete(_ context.Context, id int64) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	i := r.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	r.t.st.products = append(r.t.st.products[:i:i], r.t.st.products[i+1:]...)
	return nil
}

func (r products) Get(_ context.Context, id int64) (boutique.Product, error) {
	i := r.index(id)
	if i < 0 {
		return boutique.Product{}, store.ErrNotFound
	}
	return cloneProduct(r.t.st.products[i]), nil
}

// GetForUpdate needs no extra locking: writers already hold the store lock.
func (r products) GetForUpdate(ctx context.Context, id int64) (boutique.Product, error) {
	return r.Get(ctx, id)
}

func (r products) List(context.Context) ([]boutique.Product, error) {
	out := make([]boutique.Product, 0, len(r.t.st.products))
	for _, p := range r.t.st.products {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

type reservations struct{ t *tx }

func (r reservations) index(id int64) int {
	for i, x := range r.t.st.reservations {
		if x.ID == id {
			return i
		}
	}
	return -1
}

func (r reservations) Insert(_ context.Context, res *boutique.Reservation) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	var max int64
	for _, x := range r.t.st.reservations {
		if x.ID > max {
			max = x.ID
		}
	}
	res.ID = max + 1
	r.t.st.reservations = append(r.t.st.reservations, *res)
	return nil
}

func (r reservations) UpdateStatus(_ context.Context, id int64, s boutique.Status) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	i := r.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	r.t.st.reservations[i].Status = s
	return nil
}

func (r reservations) Get(_ context.Context, id int64) (boutique.Reservation, error) {
	i := r.index(id)
	if i < 0 {
		return boutique.Reservation{}, store.ErrNotFound
	}
	return r.t.st.reservations[i], nil
}

func (r reservations) ListByProduct(_ context.Context, productID int64) ([]boutique.Reservation, error) {
	var out []boutique.Reservation
	for _, x := range r.t.st.reservations {
		if x.ProductID == productID {
			out = append(out, x)
		}
	}
	return out, nil
}

type orders struct{ t *tx }

func (r orders) index(id int64) int {
	for i, x := range r.t.st.orders {
		if x.ID == id {
			return i
		}
	}
	return -1
}

func (r orders) Insert(_ context.Context, o *boutique.Order) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	var max int64
	for _, x := range r.t.st.orders {
		if x.ID > max {
			max = x.ID
		}
	}
	o.ID = max + 1
	r.t.st.orders = append(r.t.st.orders, cloneOrder(*o))
	return nil
}

func (r orders) UpdateStatus(_ context.Context, id int64, s boutique.Status) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	i := r.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	r.t.st.orders[i].Status = s
	return nil
}

func (r orders) Get(_ context.Context, id int64) (boutique.Order, error) {
	i := r.index(id)
	if i < 0 {
		return boutique.Order{}, store.ErrNotFound
	}
	return cloneOrder(r.t.st.orders[i]), nil
}

func (r orders) List(_ context.Context, f store.OrderFilter) ([]boutique.Order, error) {
	var out []boutique.Order
	for i := len(r.t.st.orders) - 1; i >= 0; i-- {
		if o := r.t.st.orders[i]; f.Match(o) {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

type users struct{ t *tx }

func (r users) index(id int64) int {
	for i, x := range r.t.st.users {
		if x.ID == id {
			return i
		}
	}
	return -1
}

func (r users) Insert(_ context.Context, u *boutique.User) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	var max int64
	for _, x := range r.t.st.users {
		if strings.EqualFold(x.Email, u.Email) {
			return store.ErrDuplicate
		}
		if x.ID > max {
			max = x.ID
		}
	}
	u.ID = max + 1
	r.t.st.users = append(r.t.st.users, *u)
	return nil
}

func (r users) UpdateRole(_ context.Context, id int64, role boutique.Role) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	i := r.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	r.t.st.users[i].Role = role
	return nil
}

func (r users) Get(_ context.Context, id int64) (boutique.User, error) {
	i := r.index(id)
	if i < 0 {
		return boutique.User{}, store.ErrNotFound
	}
	return r.t.st.users[i], nil
}

func (r users) GetByEmail(_ context.Context, email string) (boutique.User, error) {
	for _, x := range r.t.st.users {
		if strings.EqualFold(x.Email, email) {
			return x, nil
		}
	}
	return boutique.User{}, store.ErrNotFound
}

func (r users) List(context.Context) ([]boutique.User, error) {
	return append([]boutique.User(nil), r.t.st.users...), nil
}
