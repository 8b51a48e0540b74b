package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/shoplore/backend/internal/repository"
	"github.com/shoplore/backend/internal/server"
	"github.com/shoplore/backend/internal/validation"
	"github.com/shoplore/backend/internal/views"
)

// ItemService exposes item operations to the surrounding application.
type ItemService struct {
	log   *zerolog.Logger
	repos *repository.Repositories
}

func NewItemService(s *server.Server, repos *repository.Repositories) *ItemService {
	return &ItemService{
		log:   s.Logger,
		repos: repos,
	}
}

// ItemInput is the payload for creating or updating an item.
type ItemInput struct {
	Name  string          `json:"name" validate:"required,max=255"`
	Price decimal.Decimal `json:"price"`
}

func (i *ItemInput) Validate() error {
	if err := validate.Struct(i); err != nil {
		return err
	}

	// Price bounds cannot be expressed as a validator tag on a decimal.
	if i.Price.IsNegative() {
		return validation.CustomValidationErrors{
			{Field: "price", Message: "must not be negative"},
		}
	}

	return nil
}

// Create validates the payload and inserts a new item.
func (s *ItemService) Create(ctx context.Context, input *ItemInput) (*views.ItemView, error) {
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	item, err := s.repos.Items.Create(ctx, input.Name, input.Price)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("item_id", item.ID).Msg("created item")

	view := views.NewItemView(*item)
	return &view, nil
}

// Get returns an item with its reviews, each stripped of
// back-references.
func (s *ItemService) Get(ctx context.Context, id int64) (*views.ItemView, error) {
	item, err := s.repos.Items.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	view := views.NewItemView(*item)
	return &view, nil
}

// List returns all items as shallow stubs.
func (s *ItemService) List(ctx context.Context) ([]views.ItemStub, error) {
	items, err := s.repos.Items.List(ctx)
	if err != nil {
		return nil, err
	}

	return views.NewItemStubs(items), nil
}

// Update validates the payload and replaces the item's fields.
func (s *ItemService) Update(ctx context.Context, id int64, input *ItemInput) (*views.ItemStub, error) {
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	item, err := s.repos.Items.Update(ctx, id, input.Name, input.Price)
	if err != nil {
		return nil, err
	}

	return &views.ItemStub{ID: item.ID, Name: item.Name, Price: item.Price}, nil
}

// Delete removes the item and, through the schema cascade, all reviews
// the item owns.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if err := s.repos.Items.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("item_id", id).Msg("deleted item with owned reviews")
	return nil
}
