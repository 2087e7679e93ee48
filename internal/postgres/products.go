package postgres

import (
	"context"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, name, kinds, price_cents, rental_rate_cents, stock, image_urls, description, featured, created_at, updated_at`

type productRepo struct{ tx pgx.Tx }

func (r productRepo) Insert(ctx context.Context, p *boutique.Product) error {
	id, err := nextID(ctx, r.tx, "products")
	if err != nil {
		return err
	}
	_, err = r.tx.Exec(ctx, `
		INSERT INTO products(`+productColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		id, p.Name, kindStrings(p.Kinds), p.PriceCents, p.RentalRateCents, p.Stock,
		images(p.ImageURLs), p.Description, p.Featured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r productRepo) Update(ctx context.Context, p boutique.Product) error {
	ct, err := r.tx.Exec(ctx, `
		UPDATE products SET name=$2, kinds=$3, price_cents=$4, rental_rate_cents=$5, stock=$6,
		       image_urls=$7, description=$8, featured=$9, updated_at=$10
		WHERE id=$1`,
		p.ID, p.Name, kindStrings(p.Kinds), p.PriceCents, p.RentalRateCents, p.Stock,
		images(p.ImageURLs), p.Description, p.Featured, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return store.ErrNotFound
	}
	return nil
}

func (r productRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.tx.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return store.ErrNotFound
	}
	return nil
}

func (r productRepo) Get(ctx context.Context, id int64) (boutique.Product, error) {
	return scanProduct(r.tx.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
}

func (r productRepo) GetForUpdate(ctx context.Context, id int64) (boutique.Product, error) {
	return scanProduct(r.tx.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1 FOR UPDATE`, id))
}

func (r productRepo) List(ctx context.Context) ([]boutique.Product, error) {
	rows, err := r.tx.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []boutique.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (boutique.Product, error) {
	var (
		p     boutique.Product
		kinds []string
	)
	err := row.Scan(&p.ID, &p.Name, &kinds, &p.PriceCents, &p.RentalRateCents, &p.Stock,
		&p.ImageURLs, &p.Description, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return boutique.Product{}, notFound(err)
	}
	p.Kinds = make([]boutique.OfferingKind, 0, len(kinds))
	for _, k := range kinds {
		p.Kinds = append(p.Kinds, boutique.OfferingKind(k))
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	p.CreatedAt, p.UpdatedAt = utc(p.CreatedAt), utc(p.UpdatedAt)
	return p, nil
}

func kindStrings(ks []boutique.OfferingKind) []string {
	out := make([]string, 0, len(ks))
	for _, k := range ks {
		out = append(out, string(k))
	}
	return out
}

func images(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}
