package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

type ReviewService interface {
	List(ctx context.Context, productID string) ([]models.Review, error)
	Submit(ctx context.Context, productID string, rating int, comment string) error
	// Delete removes the caller's own review of productID.
	Delete(ctx context.Context, productID string) error
}

type reviewService struct {
	client client.Client
}

func NewReviewService(c client.Client) ReviewService {
	return &reviewService{client: c}
}

func reviewPath(productID string) string {
	return "/reviews/" + url.PathEscape(productID)
}

func (s *reviewService) List(ctx context.Context, productID string) ([]models.Review, error) {
	raw, err := s.client.Request(ctx, reviewPath(productID), nil)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return models.ReviewsFromJSON(raw), nil
}

func (s *reviewService) Submit(ctx context.Context, productID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	in := struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}{rating, comment}
	if err := s.client.Do(ctx, http.MethodPost, reviewPath(productID), in, nil); err != nil {
		return fmt.Errorf("submit review: %w", err)
	}
	return nil
}

func (s *reviewService) Delete(ctx context.Context, productID string) error {
	if _, err := s.client.Request(ctx, reviewPath(productID), &client.RequestOptions{Method: http.MethodDelete}); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}
