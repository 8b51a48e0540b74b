package views_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shoplore/backend/internal/model"
	"github.com/shoplore/backend/internal/views"
)

func ptr(v int64) *int64 { return &v }

func anaWithMugReview() (model.Customer, model.Item, model.Review) {
	ana := model.Customer{ID: 1, Name: "Ana"}
	mug := model.Item{ID: 5, Name: "Mug", Price: decimal.RequireFromString("9.99")}
	review := model.Review{
		ID:         10,
		Comment:    "ok",
		CustomerID: ptr(ana.ID),
		ItemID:     ptr(mug.ID),
		Customer:   &ana,
		Item:       &mug,
	}
	return ana, mug, review
}

func TestCustomerViewJSON(t *testing.T) {
	ana, _, review := anaWithMugReview()
	ana.Reviews = []model.Review{review}

	out, err := json.Marshal(views.NewCustomerView(ana))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1,"name":"Ana","reviews":[{"id":10,"comment":"ok"}]}`, string(out))
}

func TestItemViewJSON(t *testing.T) {
	_, mug, review := anaWithMugReview()
	mug.Reviews = []model.Review{review}

	out, err := json.Marshal(views.NewItemView(mug))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":5,"name":"Mug","price":9.99,"reviews":[{"id":10,"comment":"ok"}]}`, string(out))
}

func TestReviewViewJSON(t *testing.T) {
	_, _, review := anaWithMugReview()

	out, err := json.Marshal(views.NewReviewView(review))
	require.NoError(t, err)
	require.JSONEq(t,
		`{"id":10,"comment":"ok","customer":{"id":1,"name":"Ana"},"item":{"id":5,"name":"Mug","price":9.99}}`,
		string(out))
}

// Nested reviews must never carry customer/item fields, and nested
// customer/item must never carry a reviews field, or the cyclic
// relationship graph would never terminate.
func TestNestedFieldExclusions(t *testing.T) {
	ana, mug, review := anaWithMugReview()
	ana.Reviews = []model.Review{review}
	mug.Reviews = []model.Review{review}

	var customerOut struct {
		Reviews []map[string]json.RawMessage `json:"reviews"`
	}
	raw, err := json.Marshal(views.NewCustomerView(ana))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &customerOut))
	require.Len(t, customerOut.Reviews, 1)
	require.NotContains(t, customerOut.Reviews[0], "customer")
	require.NotContains(t, customerOut.Reviews[0], "item")

	var itemOut struct {
		Reviews []map[string]json.RawMessage `json:"reviews"`
	}
	raw, err = json.Marshal(views.NewItemView(mug))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &itemOut))
	require.Len(t, itemOut.Reviews, 1)
	require.NotContains(t, itemOut.Reviews[0], "customer")
	require.NotContains(t, itemOut.Reviews[0], "item")

	var reviewOut struct {
		Customer map[string]json.RawMessage `json:"customer"`
		Item     map[string]json.RawMessage `json:"item"`
	}
	raw, err = json.Marshal(views.NewReviewView(review))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &reviewOut))
	require.NotContains(t, reviewOut.Customer, "reviews")
	require.NotContains(t, reviewOut.Item, "reviews")
}

// A review that references neither side serializes both embeds as
// explicit nulls, not as missing keys and not as an error.
func TestReviewViewNullReferences(t *testing.T) {
	review := model.Review{ID: 7, Comment: "freestanding"}

	out, err := json.Marshal(views.NewReviewView(review))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":7,"comment":"freestanding","customer":null,"item":null}`, string(out))
}

func TestCustomerViewEmptyReviewsList(t *testing.T) {
	out, err := json.Marshal(views.NewCustomerView(model.Customer{ID: 3, Name: "Bo"}))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":3,"name":"Bo","reviews":[]}`, string(out))
}

func TestCustomerViewReviewCountMatches(t *testing.T) {
	ana, _, review := anaWithMugReview()
	second := review
	second.ID = 11
	second.Comment = "again"
	ana.Reviews = []model.Review{review, second}

	view := views.NewCustomerView(ana)
	require.Len(t, view.Reviews, len(ana.Reviews))
}
