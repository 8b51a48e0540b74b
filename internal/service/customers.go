package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shoplore/backend/internal/repository"
	"github.com/shoplore/backend/internal/server"
	"github.com/shoplore/backend/internal/validation"
	"github.com/shoplore/backend/internal/views"
)

// CustomerService exposes customer operations to the surrounding
// application.
type CustomerService struct {
	log   *zerolog.Logger
	repos *repository.Repositories
}

func NewCustomerService(s *server.Server, repos *repository.Repositories) *CustomerService {
	return &CustomerService{
		log:   s.Logger,
		repos: repos,
	}
}

// CustomerInput is the payload for creating or updating a customer.
type CustomerInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (i *CustomerInput) Validate() error {
	return validate.Struct(i)
}

// Create validates the payload and inserts a new customer.
func (s *CustomerService) Create(ctx context.Context, input *CustomerInput) (*views.CustomerView, error) {
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	customer, err := s.repos.Customers.Create(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("customer_id", customer.ID).Msg("created customer")

	view := views.NewCustomerView(*customer)
	return &view, nil
}

// Get returns a customer with its reviews, each stripped of
// back-references.
func (s *CustomerService) Get(ctx context.Context, id int64) (*views.CustomerView, error) {
	customer, err := s.repos.Customers.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	view := views.NewCustomerView(*customer)
	return &view, nil
}

// List returns all customers as shallow stubs.
func (s *CustomerService) List(ctx context.Context) ([]views.CustomerStub, error) {
	customers, err := s.repos.Customers.List(ctx)
	if err != nil {
		return nil, err
	}

	stubs := make([]views.CustomerStub, 0, len(customers))
	for _, c := range customers {
		stubs = append(stubs, views.CustomerStub{ID: c.ID, Name: c.Name})
	}
	return stubs, nil
}

// Update validates the payload and replaces the customer's fields.
func (s *CustomerService) Update(ctx context.Context, id int64, input *CustomerInput) (*views.CustomerStub, error) {
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	customer, err := s.repos.Customers.Update(ctx, id, input.Name)
	if err != nil {
		return nil, err
	}

	return &views.CustomerStub{ID: customer.ID, Name: customer.Name}, nil
}

// Delete removes the customer and, through the schema cascade, all
// reviews the customer owns.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.repos.Customers.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("customer_id", id).Msg("deleted customer with owned reviews")
	return nil
}

// Items returns the distinct items the customer has reviewed, derived
// from the reviews table.
func (s *CustomerService) Items(ctx context.Context, id int64) ([]views.ItemStub, error) {
	// Surface a 404 for a missing customer instead of an empty list.
	if _, err := s.repos.Customers.Get(ctx, id); err != nil {
		return nil, err
	}

	items, err := s.repos.Customers.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	return views.NewItemStubs(items), nil
}
