package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// ProductQuery filters a product listing. Zero fields are omitted.
type ProductQuery struct {
	Search string
	Sort   string
	Limit  int
}

func (q ProductQuery) values(withSearch bool) url.Values {
	v := url.Values{}
	if withSearch && q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		v.Set("limit", itoa(q.Limit))
	}
	return v
}

type CatalogService interface {
	Products(ctx context.Context, q ProductQuery) ([]models.Product, error)
	Product(ctx context.Context, id string) (*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	// ByCategory lists a category; Search is not supported there and ignored.
	ByCategory(ctx context.Context, categoryID string, q ProductQuery) ([]models.Product, error)
}

type catalogService struct {
	client client.Client
}

func NewCatalogService(c client.Client) CatalogService {
	return &catalogService{client: c}
}

func (s *catalogService) Products(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	raw, err := s.client.Request(ctx, withQuery("/products", q.values(true)), nil)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return models.ProductsFromJSON(raw), nil
}

func (s *catalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	raw, err := s.client.Request(ctx, "/products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	p, ok := models.ProductFromJSON(raw)
	if !ok {
		return nil, fmt.Errorf("get product %s: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]models.Category, error) {
	raw, err := s.client.Request(ctx, "/products/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return models.CategoriesFromJSON(raw), nil
}

func (s *catalogService) ByCategory(ctx context.Context, categoryID string, q ProductQuery) ([]models.Product, error) {
	path := withQuery("/products/category/"+url.PathEscape(categoryID), q.values(false))
	raw, err := s.client.Request(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list category %s: %w", categoryID, err)
	}
	return models.ProductsFromJSON(raw), nil
}
