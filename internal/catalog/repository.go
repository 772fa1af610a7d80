package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type Repository interface {
	ListAll(ctx context.Context) ([]Product, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, name, description, price, original_price, category, rating, reviews,
		       is_new, is_best_seller, is_recommended, discount
		FROM products
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.OriginalPrice,
			&p.Category,
			&p.Rating,
			&p.Reviews,
			&p.IsNew,
			&p.IsBestSeller,
			&p.IsRecommended,
			&p.Discount,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating products: %w", err)
	}

	log.Debug().Int("count", len(products)).Msg("repository: products loaded")

	return products, nil
}

// LoadSnapshot reads the full product set and freezes it into a Snapshot.
func LoadSnapshot(ctx context.Context, repo Repository) (*Snapshot, error) {
	products, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load products: %w", err)
	}
	return NewSnapshot(products), nil
}
