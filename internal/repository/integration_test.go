//go:build integration
// +build integration

package repository_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shoplore/backend/internal/database"
	"github.com/shoplore/backend/internal/errs"
	"github.com/shoplore/backend/internal/model"
	"github.com/shoplore/backend/internal/repository"
)

// setupTestDB starts a PostgreSQL container, migrates the schema, and
// returns a connected pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("shoplore_test"),
		postgres.WithUsername("shoplore"),
		postgres.WithPassword("shoplore"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := pgx.Connect(ctx, connStr)
	require.NoError(t, err)
	logger := zerolog.Nop()
	require.NoError(t, database.MigrateConn(ctx, &logger, conn))
	require.NoError(t, conn.Close(ctx))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func mustCreateReview(t *testing.T, repos repoSet, comment string, customerID, itemID *int64) *model.Review {
	t.Helper()
	review, err := repos.reviews.Create(context.Background(), comment, customerID, itemID)
	require.NoError(t, err)
	return review
}

type repoSet struct {
	customers *repository.CustomerRepository
	items     *repository.ItemRepository
	reviews   *repository.ReviewRepository
}

func newRepoSet(pool *pgxpool.Pool) repoSet {
	return repoSet{
		customers: repository.NewCustomerRepository(pool),
		items:     repository.NewItemRepository(pool),
		reviews:   repository.NewReviewRepository(pool),
	}
}

func TestDeleteCustomerCascadesToOwnedReviews(t *testing.T) {
	pool := setupTestDB(t)
	repos := newRepoSet(pool)
	ctx := context.Background()

	ana, err := repos.customers.Create(ctx, "Ana")
	require.NoError(t, err)
	bo, err := repos.customers.Create(ctx, "Bo")
	require.NoError(t, err)
	mug, err := repos.items.Create(ctx, "Mug", decimal.RequireFromString("9.99"))
	require.NoError(t, err)

	mustCreateReview(t, repos, "ok", &ana.ID, &mug.ID)
	mustCreateReview(t, repos, "again", &ana.ID, nil)
	kept := mustCreateReview(t, repos, "unrelated", &bo.ID, &mug.ID)

	require.NoError(t, repos.customers.Delete(ctx, ana.ID))

	// Exactly Ana's reviews are gone; Bo's survives, the item survives.
	remaining, err := repos.reviews.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	_, err = repos.items.Get(ctx, mug.ID)
	assert.NoError(t, err)
}

func TestDeleteItemCascadesToOwnedReviews(t *testing.T) {
	pool := setupTestDB(t)
	repos := newRepoSet(pool)
	ctx := context.Background()

	ana, err := repos.customers.Create(ctx, "Ana")
	require.NoError(t, err)
	mug, err := repos.items.Create(ctx, "Mug", decimal.RequireFromString("9.99"))
	require.NoError(t, err)

	mustCreateReview(t, repos, "ok", &ana.ID, &mug.ID)
	freestanding := mustCreateReview(t, repos, "store feedback", &ana.ID, nil)

	require.NoError(t, repos.items.Delete(ctx, mug.ID))

	remaining, err := repos.reviews.ListByCustomer(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, freestanding.ID, remaining[0].ID)
}

func TestCreateReviewRejectsUnknownCustomer(t *testing.T) {
	pool := setupTestDB(t)
	repos := newRepoSet(pool)

	missing := int64(999999)
	_, err := repos.reviews.Create(context.Background(), "ok", &missing, nil)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "REVIEW_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Customer does not exist", httpErr.Message)
}

func TestGetMissingCustomerIsNotFound(t *testing.T) {
	pool := setupTestDB(t)
	repos := newRepoSet(pool)

	_, err := repos.customers.Get(context.Background(), 424242)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Customer not found", httpErr.Message)
}

// The derived Customer→Item association must equal the distinct item
// ids among the customer's reviews, with null item_id reviews excluded.
func TestListItemsDerivedFromReviews(t *testing.T) {
	pool := setupTestDB(t)
	repos := newRepoSet(pool)
	ctx := context.Background()

	ana, err := repos.customers.Create(ctx, "Ana")
	require.NoError(t, err)
	mug, err := repos.items.Create(ctx, "Mug", decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	bowl, err := repos.items.Create(ctx, "Bowl", decimal.RequireFromString("14.50"))
	require.NoError(t, err)

	mustCreateReview(t, repos, "ok", &ana.ID, &mug.ID)
	mustCreateReview(t, repos, "nice", &ana.ID, &bowl.ID)
	mustCreateReview(t, repos, "again", &ana.ID, &mug.ID)
	mustCreateReview(t, repos, "no item", &ana.ID, nil)

	items, err := repos.customers.ListItems(ctx, ana.ID)
	require.NoError(t, err)

	derived := make(map[int64]bool)
	for _, item := range items {
		derived[item.ID] = true
	}

	expected := make(map[int64]bool)
	reviews, err := repos.reviews.ListByCustomer(ctx, ana.ID)
	require.NoError(t, err)
	for _, r := range reviews {
		if r.ItemID != nil {
			expected[*r.ItemID] = true
		}
	}

	assert.Equal(t, expected, derived)
	assert.Len(t, items, 2)
}

func TestGetReviewLoadsNeighbors(t *testing.T) {
	pool := setupTestDB(t)
	repos := newRepoSet(pool)
	ctx := context.Background()

	ana, err := repos.customers.Create(ctx, "Ana")
	require.NoError(t, err)
	mug, err := repos.items.Create(ctx, "Mug", decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	created := mustCreateReview(t, repos, "ok", &ana.ID, &mug.ID)

	review, err := repos.reviews.Get(ctx, created.ID)
	require.NoError(t, err)

	require.NotNil(t, review.Customer)
	assert.Equal(t, "Ana", review.Customer.Name)
	require.NotNil(t, review.Item)
	assert.Equal(t, "Mug", review.Item.Name)
	assert.True(t, review.Item.Price.Equal(decimal.RequireFromString("9.99")))
}

func TestGetFreestandingReviewHasNilNeighbors(t *testing.T) {
	pool := setupTestDB(t)
	repos := newRepoSet(pool)

	created := mustCreateReview(t, repos, "freestanding", nil, nil)

	review, err := repos.reviews.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, review.Customer)
	assert.Nil(t, review.Item)
	assert.Nil(t, review.CustomerID)
	assert.Nil(t, review.ItemID)
}

func TestUpdateReviewClearsReference(t *testing.T) {
	pool := setupTestDB(t)
	repos := newRepoSet(pool)
	ctx := context.Background()

	ana, err := repos.customers.Create(ctx, "Ana")
	require.NoError(t, err)
	created := mustCreateReview(t, repos, "ok", &ana.ID, nil)

	updated, err := repos.reviews.Update(ctx, created.ID, "edited", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Comment)
	assert.Nil(t, updated.CustomerID)
}

func TestCustomerGetLoadsOwnedReviews(t *testing.T) {
	pool := setupTestDB(t)
	repos := newRepoSet(pool)
	ctx := context.Background()

	ana, err := repos.customers.Create(ctx, "Ana")
	require.NoError(t, err)
	mug, err := repos.items.Create(ctx, "Mug", decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	mustCreateReview(t, repos, "ok", &ana.ID, &mug.ID)
	mustCreateReview(t, repos, "again", &ana.ID, nil)

	customer, err := repos.customers.Get(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, customer.Reviews, 2)
	assert.Equal(t, "ok", customer.Reviews[0].Comment)
	assert.Equal(t, "again", customer.Reviews[1].Comment)
}
