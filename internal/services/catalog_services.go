package services

import (
	"context"
	"strings"

	"GameMarketAPI/internal/apperr"
	"GameMarketAPI/internal/model"
	"GameMarketAPI/internal/repository"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	topPlatformCount  = 3
	defaultSearchSize = 10
	maxSearchSize     = 100
)

type CatalogService struct {
	Catalog repository.CatalogStore
}

func NewCatalogService(c repository.CatalogStore) *CatalogService {
	return &CatalogService{Catalog: c}
}

// ListProducts filters, sorts and pages the live catalog. Sort defaults to
// aggregate rating descending; page and pageSize fall back to 1/10 and
// pageSize is capped at MaxPageSize. TotalItems counts the filtered set
// before pagination.
func (s *CatalogService) ListProducts(ctx context.Context, q model.ProductQuery) (*model.ProductList, error) {
	if q.SortBy == "" {
		q.SortBy = "rating"
	}
	if q.SortDirection == "" {
		q.SortDirection = "desc"
	}
	sortBy := strings.ToLower(q.SortBy)
	sortDir := strings.ToLower(q.SortDirection)
	if (sortBy != "rating" && sortBy != "price") || (sortDir != "asc" && sortDir != "desc") {
		return nil, apperr.New(apperr.InvalidData, "Invalid sort parameters.")
	}
	q.SortBy = sortBy
	q.SortDirection = sortDir

	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	products, total, err := s.Catalog.QueryProducts(ctx, q)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return &model.ProductList{
		Products:   products,
		TotalItems: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, term string, limit, offset int) ([]model.Product, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperr.New(apperr.InvalidData, "Invalid input.")
	}
	if limit < 1 {
		limit = defaultSearchSize
	}
	if limit > maxSearchSize {
		limit = maxSearchSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.Catalog.SearchProducts(ctx, term, limit, offset)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.Catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.Newf(apperr.NotFound, "Product with id %d does not exist.", id)
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, apperr.New(apperr.InvalidData, "Product name is required.")
	}
	if p.Price < 0 {
		return nil, apperr.New(apperr.InvalidData, "Price can not be negative.")
	}
	// aggregate starts empty; callers never set it
	p.TotalRating = 0
	p.IsDeleted = false
	if _, err := s.Catalog.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct overwrites the catalog fields of an existing product.
// TotalRating and IsDeleted are derived state and stay untouched.
func (s *CatalogService) UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if p.Price < 0 {
		return nil, apperr.New(apperr.InvalidData, "Price can not be negative.")
	}
	existing, err := s.Catalog.GetProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.Newf(apperr.NotFound, "Product with id %d does not exist.", p.ID)
	}

	if p.Name != "" {
		existing.Name = p.Name
	}
	existing.Genre = p.Genre
	if p.Platform != 0 {
		existing.Platform = p.Platform
	}
	if p.Rating != 0 {
		existing.Rating = p.Rating
	}
	existing.Price = p.Price

	if err := s.Catalog.SaveProduct(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteProduct soft-deletes: the row stays but drops out of every
// catalog read.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	existing, err := s.Catalog.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.Newf(apperr.NotFound, "Product with id %d was not found.", id)
	}
	existing.IsDeleted = true
	return s.Catalog.SaveProduct(ctx, existing)
}

// TopPlatforms returns the three platforms with the most live products.
func (s *CatalogService) TopPlatforms(ctx context.Context) ([]model.TopPlatform, error) {
	return s.Catalog.TopPlatforms(ctx, topPlatformCount)
}
