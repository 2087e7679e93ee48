package postgres

import (
	"context"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, name, role, password_hash, created_at`

type userRepo struct{ tx pgx.Tx }

func (r userRepo) Insert(ctx context.Context, u *boutique.User) error {
	var taken bool
	if err := r.tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email)=lower($1))`, u.Email).Scan(&taken); err != nil {
		return err
	}
	if taken {
		return store.ErrDuplicate
	}

	id, err := nextID(ctx, r.tx, "users")
	if err != nil {
		return err
	}
	_, err = r.tx.Exec(ctx, `
		INSERT INTO users(`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		id, u.Email, u.Name, string(u.Role), u.PasswordHash, u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r userRepo) UpdateRole(ctx context.Context, id int64, role boutique.Role) error {
	ct, err := r.tx.Exec(ctx, `UPDATE users SET role=$2 WHERE id=$1`, id, string(role))
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return store.ErrNotFound
	}
	return nil
}

func (r userRepo) Get(ctx context.Context, id int64) (boutique.User, error) {
	return scanUser(r.tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (boutique.User, error) {
	return scanUser(r.tx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email)=lower($1)`, email))
}

func (r userRepo) List(ctx context.Context) ([]boutique.User, error) {
	rows, err := r.tx.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []boutique.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(row pgx.Row) (boutique.User, error) {
	var (
		u    boutique.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.PasswordHash, &u.CreatedAt); err != nil {
		return boutique.User{}, notFound(err)
	}
	u.Role = boutique.Role(role)
	u.CreatedAt = utc(u.CreatedAt)
	return u, nil
}
