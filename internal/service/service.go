// Package service contains the business logic.
//
// It sits between the (external) handlers and the repository layer: it
// validates input payloads, performs the operation through the
// repositories, and projects the result through the views package so
// callers only ever see the bounded, acyclic output shapes.
package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/shoplore/backend/internal/repository"
	"github.com/shoplore/backend/internal/server"
)

// validate is the shared validator instance for payload structs.
var validate = validator.New()

// Services is a container for all service instances.
type Services struct {
	Customers *CustomerService
	Items     *ItemService
	Reviews   *ReviewService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Customers: NewCustomerService(s, repos),
		Items:     NewItemService(s, repos),
		Reviews:   NewReviewService(s, repos),
	}, nil
}
