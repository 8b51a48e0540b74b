package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shoplore/backend/internal/repository"
	"github.com/shoplore/backend/internal/server"
	"github.com/shoplore/backend/internal/validation"
	"github.com/shoplore/backend/internal/views"
)

// ReviewService exposes review operations to the surrounding
// application.
type ReviewService struct {
	log   *zerolog.Logger
	repos *repository.Repositories
}

func NewReviewService(s *server.Server, repos *repository.Repositories) *ReviewService {
	return &ReviewService{
		log:   s.Logger,
		repos: repos,
	}
}

// ReviewInput is the payload for creating or updating a review. Both
// references are optional; a review may point at only a customer, only
// an item, or neither.
type ReviewInput struct {
	Comment    string `json:"comment" validate:"required"`
	CustomerID *int64 `json:"customer_id" validate:"omitempty,gt=0"`
	ItemID     *int64 `json:"item_id" validate:"omitempty,gt=0"`
}

func (i *ReviewInput) Validate() error {
	return validate.Struct(i)
}

// Create validates the payload and inserts a new review. The result is
// re-read so the view carries the shallow customer/item embeds.
func (s *ReviewService) Create(ctx context.Context, input *ReviewInput) (*views.ReviewView, error) {
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	review, err := s.repos.Reviews.Create(ctx, input.Comment, input.CustomerID, input.ItemID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("review_id", review.ID).Msg("created review")

	return s.Get(ctx, review.ID)
}

// Get returns a review with shallow customer and item embeds; a null
// foreign key serializes the corresponding field as null.
func (s *ReviewService) Get(ctx context.Context, id int64) (*views.ReviewView, error) {
	review, err := s.repos.Reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	view := views.NewReviewView(*review)
	return &view, nil
}

// List returns all reviews as shallow stubs.
func (s *ReviewService) List(ctx context.Context) ([]views.ReviewStub, error) {
	reviews, err := s.repos.Reviews.List(ctx)
	if err != nil {
		return nil, err
	}

	stubs := make([]views.ReviewStub, 0, len(reviews))
	for _, r := range reviews {
		stubs = append(stubs, views.ReviewStub{ID: r.ID, Comment: r.Comment})
	}
	return stubs, nil
}

// Update validates the payload and replaces the review's fields,
// including both references. Passing a nil reference clears it.
func (s *ReviewService) Update(ctx context.Context, id int64, input *ReviewInput) (*views.ReviewView, error) {
	if err := validation.Validate(input); err != nil {
		return nil, err
	}

	review, err := s.repos.Reviews.Update(ctx, id, input.Comment, input.CustomerID, input.ItemID)
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, review.ID)
}

// Delete removes a single review, leaving its customer and item alone.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return s.repos.Reviews.Delete(ctx, id)
}
