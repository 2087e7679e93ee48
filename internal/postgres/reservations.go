package postgres

import (
	"context"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, product_id, customer_id, start_date, end_date, status, created_at`

type reservationRepo struct{ tx pgx.Tx }

func (r reservationRepo) Insert(ctx context.Context, res *boutique.Reservation) error {
	id, err := nextID(ctx, r.tx, "reservations")
	if err != nil {
		return err
	}
	_, err = r.tx.Exec(ctx, `
		INSERT INTO reservations(`+reservationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		id, res.ProductID, res.CustomerID, dateArg(res.StartDate), dateArg(res.EndDate),
		string(res.Status), res.CreatedAt,
	)
	if err != nil {
		return err
	}
	res.ID = id
	return nil
}

func (r reservationRepo) UpdateStatus(ctx context.Context, id int64, s boutique.Status) error {
	ct, err := r.tx.Exec(ctx, `UPDATE reservations SET status=$2 WHERE id=$1`, id, string(s))
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return store.ErrNotFound
	}
	return nil
}

func (r reservationRepo) Get(ctx context.Context, id int64) (boutique.Reservation, error) {
	return scanReservation(r.tx.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id))
}

func (r reservationRepo) ListByProduct(ctx context.Context, productID int64) ([]boutique.Reservation, error) {
	rows, err := r.tx.Query(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE product_id=$1 ORDER BY id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []boutique.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanReservation(row pgx.Row) (boutique.Reservation, error) {
	var (
		res        boutique.Reservation
		start, end pgtype.Date
		status     string
	)
	if err := row.Scan(&res.ID, &res.ProductID, &res.CustomerID, &start, &end, &status, &res.CreatedAt); err != nil {
		return boutique.Reservation{}, notFound(err)
	}
	res.StartDate, res.EndDate = fromPgDate(start), fromPgDate(end)
	res.Status = boutique.Status(status)
	res.CreatedAt = utc(res.CreatedAt)
	return res, nil
}
