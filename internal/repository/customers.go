package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplore/backend/internal/model"
	"github.com/shoplore/backend/internal/sqlerr"
)

// CustomerRepository performs database operations on the customers
// table and its owned reviews.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a customer and returns it with the store-assigned id.
func (r *CustomerRepository) Create(ctx context.Context, name string) (*model.Customer, error) {
	const query = `INSERT INTO customers (name) VALUES ($1) RETURNING id, name`

	var customer model.Customer
	if err := r.pool.QueryRow(ctx, query, name).Scan(&customer.ID, &customer.Name); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	customer.Reviews = []model.Review{}
	return &customer, nil
}

// Get fetches a customer by id with its reviews loaded.
func (r *CustomerRepository) Get(ctx context.Context, id int64) (*model.Customer, error) {
	const query = `SELECT id, name FROM customers WHERE id = $1`

	var customer model.Customer
	if err := r.pool.QueryRow(ctx, query, id).Scan(&customer.ID, &customer.Name); err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:customers: %w", err))
	}

	reviews, err := r.loadReviews(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	customer.Reviews = reviews

	return &customer, nil
}

// List returns all customers, ordered by id, without reviews loaded.
func (r *CustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	const query = `SELECT id, name FROM customers ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var customer model.Customer
		if err := rows.Scan(&customer.ID, &customer.Name); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return customers, nil
}

// Update replaces a customer's name and returns the updated row.
func (r *CustomerRepository) Update(ctx context.Context, id int64, name string) (*model.Customer, error) {
	const query = `UPDATE customers SET name = $2 WHERE id = $1 RETURNING id, name`

	var customer model.Customer
	if err := r.pool.QueryRow(ctx, query, id, name).Scan(&customer.ID, &customer.Name); err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:customers: %w", err))
	}

	return &customer, nil
}

// Delete removes a customer. The fk_reviews_customer_id_customers
// cascade removes the customer's reviews in the same statement.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM customers WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:customers: %w", pgx.ErrNoRows))
	}

	return nil
}

// ListItems returns the distinct items reachable through the customer's
// reviews. The association is derived from the reviews table on every
// call; it has no storage of its own.
func (r *CustomerRepository) ListItems(ctx context.Context, customerID int64) ([]model.Item, error) {
	const query = `
		SELECT DISTINCT i.id, i.name, i.price
		FROM items i
		JOIN reviews r ON r.item_id = i.id
		WHERE r.customer_id = $1
		ORDER BY i.id`

	rows, err := r.pool.Query(ctx, query, customerID)
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

func (r *CustomerRepository) loadReviews(ctx context.Context, customerID int64) ([]model.Review, error) {
	const query = `
		SELECT id, comment, customer_id, item_id
		FROM reviews
		WHERE customer_id = $1
		ORDER BY id`

	return scanReviews(r.pool.Query(ctx, query, customerID))
}
