package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/reinierstore/store-api/internal/domain"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
)

var _ repository.OfferRepository = (*OfferRepo)(nil)

// OfferRepo implementación de OfferRepository sobre PostgreSQL.
type OfferRepo struct {
	q Querier
}

// NewOfferRepository construye el adaptador de ofertas.
func NewOfferRepository(q Querier) *OfferRepo {
	return &OfferRepo{q: q}
}

// Create persiste una oferta nueva.
func (r *OfferRepo) Create(ctx context.Context, o *entity.Offer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO offers (id, product_id, title, discount_pct, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.ProductID, o.Title, o.DiscountPct, o.StartsAt, o.EndsAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

// ListActive devuelve las ofertas vigentes con los datos del producto,
// ordenadas por vencimiento más próximo.
func (r *OfferRepo) ListActive(ctx context.Context, now time.Time) ([]repository.OfferView, error) {
	rows, err := r.q.Query(ctx, `
		SELECT o.id, o.product_id, o.title, o.discount_pct, o.starts_at, o.ends_at,
		       p.name, p.image, p.price
		FROM offers o
		JOIN products p ON p.id = o.product_id
		WHERE o.starts_at <= $1 AND o.ends_at > $1
		ORDER BY o.ends_at ASC`, now)
	if err != nil {
		return nil, fmt.Errorf("list active offers: %w", err)
	}
	defer rows.Close()

	var out []repository.OfferView
	for rows.Next() {
		var v repository.OfferView
		err := rows.Scan(
			&v.Offer.ID, &v.Offer.ProductID, &v.Offer.Title, &v.Offer.DiscountPct,
			&v.Offer.StartsAt, &v.Offer.EndsAt,
			&v.ProductName, &v.Image, &v.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
