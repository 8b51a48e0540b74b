// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist, or update
// customers, items, and reviews, abstracting SQL logic away from the
// service layer. Database errors pass through sqlerr.HandleError so
// constraint violations and missing rows surface as application errors.
package repository

import (
	"github.com/shoplore/backend/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Customers *CustomerRepository
	Items     *ItemRepository
	Reviews   *ReviewRepository
}

// NewRepositories constructs the repository container from the shared
// application dependencies (the DB pool lives on s.DB).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Customers: NewCustomerRepository(s.DB.Pool),
		Items:     NewItemRepository(s.DB.Pool),
		Reviews:   NewReviewRepository(s.DB.Pool),
	}
}
