package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, customer_id, kind, product_id, reservation_id, quantity, start_date, end_date, description, total_cents, status, created_at`

type orderRepo struct{ tx pgx.Tx }

func (r orderRepo) Insert(ctx context.Context, o *boutique.Order) error {
	id, err := nextID(ctx, r.tx, "orders")
	if err != nil {
		return err
	}
	_, err = r.tx.Exec(ctx, `
		INSERT INTO orders(`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		id, o.CustomerID, string(o.Kind), o.ProductID, o.ReservationID, o.Quantity,
		dateArg(o.StartDate), dateArg(o.EndDate), o.Description, o.TotalCents,
		string(o.Status), o.CreatedAt,
	)
	if err != nil {
		return err
	}
	o.ID = id
	return nil
}

func (r orderRepo) UpdateStatus(ctx context.Context, id int64, s boutique.Status) error {
	ct, err := r.tx.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, id, string(s))
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return store.ErrNotFound
	}
	return nil
}

func (r orderRepo) Get(ctx context.Context, id int64) (boutique.Order, error) {
	return scanOrder(r.tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
}

func (r orderRepo) List(ctx context.Context, f store.OrderFilter) ([]boutique.Order, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.CustomerID != nil {
		add("customer_id=$%d", *f.CustomerID)
	}
	if f.ProductID != nil {
		add("product_id=$%d", *f.ProductID)
	}
	if f.Status != "" {
		add("status=$%d", string(f.Status))
	}

	q := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY id DESC`

	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []boutique.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (boutique.Order, error) {
	var (
		o            boutique.Order
		kind, status string
		start, end   pgtype.Date
	)
	err := row.Scan(&o.ID, &o.CustomerID, &kind, &o.ProductID, &o.ReservationID, &o.Quantity,
		&start, &end, &o.Description, &o.TotalCents, &status, &o.CreatedAt)
	if err != nil {
		return boutique.Order{}, notFound(err)
	}
	o.Kind = boutique.OfferingKind(kind)
	o.Status = boutique.Status(status)
	o.StartDate, o.EndDate = fromPgDate(start), fromPgDate(end)
	o.CreatedAt = utc(o.CreatedAt)
	return o, nil
}
