package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shoplore/backend/internal/model"
	"github.com/shoplore/backend/internal/sqlerr"
)

// ReviewRepository performs database operations on the reviews table.
type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a review. Either foreign key may be nil; a non-nil key
// referencing a missing row fails with a foreign key violation, which
// sqlerr translates into a bad-request error naming the missing entity.
func (r *ReviewRepository) Create(ctx context.Context, comment string, customerID, itemID *int64) (*model.Review, error) {
	const query = `
		INSERT INTO reviews (comment, customer_id, item_id)
		VALUES ($1, $2, $3)
		RETURNING id, comment, customer_id, item_id`

	var review model.Review
	err := r.pool.QueryRow(ctx, query, comment, customerID, itemID).
		Scan(&review.ID, &review.Comment, &review.CustomerID, &review.ItemID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return &review, nil
}

// Get fetches a review by id with its customer and item loaded through
// LEFT JOINs, so a null foreign key yields a nil back-reference rather
// than an error.
func (r *ReviewRepository) Get(ctx context.Context, id int64) (*model.Review, error) {
	const query = `
		SELECT r.id, r.comment, r.customer_id, r.item_id,
		       c.name, i.name, i.price
		FROM reviews r
		LEFT JOIN customers c ON c.id = r.customer_id
		LEFT JOIN items i ON i.id = r.item_id
		WHERE r.id = $1`

	var (
		review       model.Review
		customerName *string
		itemName     *string
		itemPrice    decimal.NullDecimal
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&review.ID, &review.Comment, &review.CustomerID, &review.ItemID,
		&customerName, &itemName, &itemPrice,
	)
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:reviews: %w", err))
	}

	if review.CustomerID != nil {
		review.Customer = &model.Customer{
			ID: *review.CustomerID,
		}
		if customerName != nil {
			review.Customer.Name = *customerName
		}
	}
	if review.ItemID != nil {
		review.Item = &model.Item{
			ID:    *review.ItemID,
			Price: itemPrice.Decimal,
		}
		if itemName != nil {
			review.Item.Name = *itemName
		}
	}

	return &review, nil
}

// List returns all reviews, ordered by id, without neighbors loaded.
func (r *ReviewRepository) List(ctx context.Context) ([]model.Review, error) {
	const query = `SELECT id, comment, customer_id, item_id FROM reviews ORDER BY id`

	return scanReviews(r.pool.Query(ctx, query))
}

// ListByCustomer returns the reviews owned by a customer.
func (r *ReviewRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Review, error) {
	const query = `
		SELECT id, comment, customer_id, item_id
		FROM reviews
		WHERE customer_id = $1
		ORDER BY id`

	return scanReviews(r.pool.Query(ctx, query, customerID))
}

// ListByItem returns the reviews owned by an item.
func (r *ReviewRepository) ListByItem(ctx context.Context, itemID int64) ([]model.Review, error) {
	const query = `
		SELECT id, comment, customer_id, item_id
		FROM reviews
		WHERE item_id = $1
		ORDER BY id`

	return scanReviews(r.pool.Query(ctx, query, itemID))
}

// Update replaces a review's comment and both foreign keys, returning
// the updated row. Passing nil clears the corresponding reference.
func (r *ReviewRepository) Update(ctx context.Context, id int64, comment string, customerID, itemID *int64) (*model.Review, error) {
	const query = `
		UPDATE reviews
		SET comment = $2, customer_id = $3, item_id = $4
		WHERE id = $1
		RETURNING id, comment, customer_id, item_id`

	var review model.Review
	err := r.pool.QueryRow(ctx, query, id, comment, customerID, itemID).
		Scan(&review.ID, &review.Comment, &review.CustomerID, &review.ItemID)
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:reviews: %w", err))
	}

	return &review, nil
}

// Delete removes a single review. Its customer and item are untouched.
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM reviews WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:reviews: %w", pgx.ErrNoRows))
	}

	return nil
}

// scanReviews drains a flat review result set. It accepts the (rows,
// err) pair straight from pool.Query so callers stay one-liners.
func scanReviews(rows pgx.Rows, err error) ([]model.Review, error) {
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var review model.Review
		if err := rows.Scan(&review.ID, &review.Comment, &review.CustomerID, &review.ItemID); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return reviews, nil
}
