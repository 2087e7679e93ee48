package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store runs every ledger operation in one pgx transaction.
type Store struct{ DB *pgxpool.Pool }

var _ store.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store { return &Store{DB: pool} }

func (s *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&repos{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) View(ctx context.Context, fn func(store.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&repos{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) Close() { s.DB.Close() }

type repos struct{ tx pgx.Tx }

func (r *repos) Products() store.Products         { return productRepo{r.tx} }
func (r *repos) Reservations() store.Reservations { return reservationRepo{r.tx} }
func (r *repos) Orders() store.Orders             { return orderRepo{r.tx} }
func (r *repos) Users() store.Users               { return userRepo{r.tx} }

// nextID locks the table against other writers and returns max(id)+1.
func nextID(ctx context.Context, tx pgx.Tx, table string) (int64, error) {
	if _, err := tx.Exec(ctx, `LOCK TABLE `+table+` IN EXCLUSIVE MODE`); err != nil {
		return 0, fmt.Errorf("lock %s: %w", table, err)
	}
	var id int64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM `+table).Scan(&id); err != nil {
		return 0, fmt.Errorf("next id %s: %w", table, err)
	}
	return id, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func dateArg(d boutique.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time()
}

func fromPgDate(d pgtype.Date) boutique.Date {
	if !d.Valid {
		return boutique.Date{}
	}
	return boutique.DateOf(d.Time)
}

func utc(t time.Time) time.Time { return t.UTC() }
