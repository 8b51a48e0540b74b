// Package model defines the persisted entities: customers, items, and
// the reviews linking them.
//
// Relationship shape:
//   - a Customer owns many Reviews (deleting the customer deletes them)
//   - an Item owns many Reviews (same cascade)
//   - a Review optionally references one Customer and one Item
//
// The Customer→Item association is never stored; it is always derived
// from the customer's reviews (see Customer.Items).
package model

import "github.com/shopspring/decimal"

// Customer is a customer row plus its owned reviews, when loaded.
type Customer struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`

	// Reviews holds the customer's reviews when the repository loaded
	// them; nil means "not loaded", not "no reviews".
	Reviews []Review
}

// Items returns the distinct items reachable through this customer's
// loaded reviews, in first-seen order. Reviews without an item
// contribute nothing. The result is computed on every call so it can
// never drift from the underlying reviews.
func (c *Customer) Items() []Item {
	seen := make(map[int64]bool, len(c.Reviews))
	var items []Item
	for _, r := range c.Reviews {
		if r.Item == nil || seen[r.Item.ID] {
			continue
		}
		seen[r.Item.ID] = true
		items = append(items, *r.Item)
	}
	return items
}

// Item is an item row plus its owned reviews, when loaded.
type Item struct {
	ID    int64           `db:"id"`
	Name  string          `db:"name"`
	Price decimal.Decimal `db:"price"`

	// Reviews holds the item's reviews when the repository loaded them.
	Reviews []Review
}

// Review links a customer to an item with a comment. Either side may be
// absent: CustomerID and ItemID are nullable in the schema.
type Review struct {
	ID         int64  `db:"id"`
	Comment    string `db:"comment"`
	CustomerID *int64 `db:"customer_id"`
	ItemID     *int64 `db:"item_id"`

	// Back-references, populated when the repository loads the review
	// with its neighbors. Nil when the FK is null or not loaded.
	Customer *Customer
	Item     *Item
}
