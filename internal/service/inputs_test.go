package service_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplore/backend/internal/errs"
	"github.com/shoplore/backend/internal/service"
	"github.com/shoplore/backend/internal/validation"
)

func requireFieldError(t *testing.T, err error, field, message string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, field, httpErr.Errors[0].Field)
	assert.Equal(t, message, httpErr.Errors[0].Error)
}

func TestCustomerInputRequiresName(t *testing.T) {
	err := validation.Validate(&service.CustomerInput{})
	requireFieldError(t, err, "name", "is required")
}

func TestCustomerInputValid(t *testing.T) {
	assert.NoError(t, validation.Validate(&service.CustomerInput{Name: "Ana"}))
}

func TestItemInputRejectsNegativePrice(t *testing.T) {
	err := validation.Validate(&service.ItemInput{
		Name:  "Mug",
		Price: decimal.RequireFromString("-1.00"),
	})
	requireFieldError(t, err, "price", "must not be negative")
}

func TestItemInputAllowsZeroPrice(t *testing.T) {
	assert.NoError(t, validation.Validate(&service.ItemInput{Name: "Sample"}))
}

func TestReviewInputRequiresComment(t *testing.T) {
	err := validation.Validate(&service.ReviewInput{})
	requireFieldError(t, err, "comment", "is required")
}

// Both references are optional: a freestanding review is a valid payload.
func TestReviewInputAllowsMissingReferences(t *testing.T) {
	assert.NoError(t, validation.Validate(&service.ReviewInput{Comment: "ok"}))
}

func TestReviewInputRejectsNonPositiveReference(t *testing.T) {
	zero := int64(0)
	err := validation.Validate(&service.ReviewInput{Comment: "ok", CustomerID: &zero})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "customerid", httpErr.Errors[0].Field)
}
