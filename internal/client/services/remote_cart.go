package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// RemoteCartService is the server-side cart of the signed-in user. It is a
// separate mirror and never touches the local cart store. An empty size
// addresses the line without a size.
type RemoteCartService interface {
	Items(ctx context.Context) ([]models.RemoteCartItem, error)
	Add(ctx context.Context, productID string, quantity int, size string) error
	Update(ctx context.Context, productID string, quantity int, size string) error
	Remove(ctx context.Context, productID, size string) error
	Clear(ctx context.Context) error
}

type remoteCartService struct {
	client client.Client
}

func NewRemoteCartService(c client.Client) RemoteCartService {
	return &remoteCartService{client: c}
}

type addCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

func (s *remoteCartService) Items(ctx context.Context) ([]models.RemoteCartItem, error) {
	raw, err := s.client.Request(ctx, "/cart", nil)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return models.RemoteCartFromJSON(raw), nil
}

func (s *remoteCartService) Add(ctx context.Context, productID string, quantity int, size string) error {
	in := addCartRequest{ProductID: productID, Quantity: quantity, Size: size}
	if err := s.client.Do(ctx, http.MethodPost, "/cart", in, nil); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

func (s *remoteCartService) Update(ctx context.Context, productID string, quantity int, size string) error {
	path := withQuery("/cart/"+url.PathEscape(productID), sizeQuery(size))
	if err := s.client.Do(ctx, http.MethodPatch, path, map[string]int{"quantity": quantity}, nil); err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

func (s *remoteCartService) Remove(ctx context.Context, productID, size string) error {
	path := withQuery("/cart/"+url.PathEscape(productID), sizeQuery(size))
	if _, err := s.client.Request(ctx, path, &client.RequestOptions{Method: http.MethodDelete}); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

func (s *remoteCartService) Clear(ctx context.Context) error {
	if _, err := s.client.Request(ctx, "/cart", &client.RequestOptions{Method: http.MethodDelete}); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
