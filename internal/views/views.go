// Package views projects model entities into the nested, acyclic
// structures the API serializes.
//
// The relationship graph is naturally cyclic
// (Customer↔Review↔Item↔Review↔Customer…), so each projection is a
// fixed-shape struct bounded to depth 2: nested reviews never carry
// their customer/item back-references, and a review's nested customer
// and item never carry their review collections. Termination is
// guaranteed by the types themselves, not by runtime exclusion rules.
//
// JSON field names (id, name, price, comment, reviews, customer, item)
// are part of the wire contract and must not change.
package views

import (
	"github.com/shopspring/decimal"

	"github.com/shoplore/backend/internal/model"
)

func init() {
	// Prices serialize as bare JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// CustomerView is the full customer projection: scalar fields plus the
// customer's reviews, each stripped of its back-references.
type CustomerView struct {
	ID      int64        `json:"id"`
	Name    string       `json:"name"`
	Reviews []ReviewStub `json:"reviews"`
}

// ItemView is the full item projection, symmetric to CustomerView.
type ItemView struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Reviews []ReviewStub    `json:"reviews"`
}

// ReviewView is the full review projection: scalar fields plus shallow
// embeds of the review's customer and item. Either embed is null when
// the corresponding foreign key is null.
type ReviewView struct {
	ID       int64         `json:"id"`
	Comment  string        `json:"comment"`
	Customer *CustomerStub `json:"customer"`
	Item     *ItemStub     `json:"item"`
}

// ReviewStub is a review with its customer and item excluded, used when
// the review is nested under one of them.
type ReviewStub struct {
	ID      int64  `json:"id"`
	Comment string `json:"comment"`
}

// CustomerStub is a customer with its reviews excluded, used when the
// customer is nested under a review.
type CustomerStub struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemStub is an item with its reviews excluded, used when the item is
// nested under a review.
type ItemStub struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewCustomerView projects a customer and its loaded reviews.
func NewCustomerView(c model.Customer) CustomerView {
	return CustomerView{
		ID:      c.ID,
		Name:    c.Name,
		Reviews: newReviewStubs(c.Reviews),
	}
}

// NewItemView projects an item and its loaded reviews.
func NewItemView(i model.Item) ItemView {
	return ItemView{
		ID:      i.ID,
		Name:    i.Name,
		Price:   i.Price,
		Reviews: newReviewStubs(i.Reviews),
	}
}

// NewReviewView projects a review with shallow customer/item embeds.
// A review side that was not loaded (null foreign key) stays nil and
// serializes as an explicit JSON null.
func NewReviewView(r model.Review) ReviewView {
	view := ReviewView{
		ID:      r.ID,
		Comment: r.Comment,
	}
	if r.Customer != nil {
		view.Customer = &CustomerStub{
			ID:   r.Customer.ID,
			Name: r.Customer.Name,
		}
	}
	if r.Item != nil {
		view.Item = &ItemStub{
			ID:    r.Item.ID,
			Name:  r.Item.Name,
			Price: r.Item.Price,
		}
	}
	return view
}

// NewItemStubs projects the derived Customer→Item association
// (model.Customer.Items) for embedding in API payloads.
func NewItemStubs(items []model.Item) []ItemStub {
	stubs := make([]ItemStub, 0, len(items))
	for _, i := range items {
		stubs = append(stubs, ItemStub{
			ID:    i.ID,
			Name:  i.Name,
			Price: i.Price,
		})
	}
	return stubs
}

func newReviewStubs(reviews []model.Review) []ReviewStub {
	// Always emit a list, never null, even when no reviews are loaded.
	stubs := make([]ReviewStub, 0, len(reviews))
	for _, r := range reviews {
		stubs = append(stubs, ReviewStub{
			ID:      r.ID,
			Comment: r.Comment,
		})
	}
	return stubs
}
