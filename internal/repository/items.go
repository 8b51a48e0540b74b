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

// ItemRepository performs database operations on the items table and
// its owned reviews.
type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

// Create inserts an item and returns it with the store-assigned id.
func (r *ItemRepository) Create(ctx context.Context, name string, price decimal.Decimal) (*model.Item, error) {
	const query = `INSERT INTO items (name, price) VALUES ($1, $2) RETURNING id, name, price`

	var item model.Item
	if err := r.pool.QueryRow(ctx, query, name, price).Scan(&item.ID, &item.Name, &item.Price); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	item.Reviews = []model.Review{}
	return &item, nil
}

// Get fetches an item by id with its reviews loaded.
func (r *ItemRepository) Get(ctx context.Context, id int64) (*model.Item, error) {
	const query = `SELECT id, name, price FROM items WHERE id = $1`

	var item model.Item
	if err := r.pool.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Price); err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:items: %w", err))
	}

	reviews, err := r.loadReviews(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.Reviews = reviews

	return &item, nil
}

// List returns all items, ordered by id, without reviews loaded.
func (r *ItemRepository) List(ctx context.Context) ([]model.Item, error) {
	const query = `SELECT id, name, price FROM items ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return items, nil
}

// Update replaces an item's name and price and returns the updated row.
func (r *ItemRepository) Update(ctx context.Context, id int64, name string, price decimal.Decimal) (*model.Item, error) {
	const query = `UPDATE items SET name = $2, price = $3 WHERE id = $1 RETURNING id, name, price`

	var item model.Item
	if err := r.pool.QueryRow(ctx, query, id, name, price).Scan(&item.ID, &item.Name, &item.Price); err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:items: %w", err))
	}

	return &item, nil
}

// Delete removes an item. The fk_reviews_item_id_items cascade removes
// the item's reviews in the same statement.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM items WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:items: %w", pgx.ErrNoRows))
	}

	return nil
}

func (r *ItemRepository) loadReviews(ctx context.Context, itemID int64) ([]model.Review, error) {
	const query = `
		SELECT id, comment, customer_id, item_id
		FROM reviews
		WHERE item_id = $1
		ORDER BY id`

	return scanReviews(r.pool.Query(ctx, query, itemID))
}
