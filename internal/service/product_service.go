package service

import (
	"context"
	"fmt"
	"time"

	"warehouse/internal/errors"
	"warehouse/internal/model"
	"warehouse/internal/store"
)

// Pagination bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ProductService handles catalog operations. Every call loads the whole
// catalog and mutating calls save it back.
type ProductService interface {
	List(ctx context.Context, page, limit int) ([]model.Product, model.Pagination, error)
	Get(ctx context.Context, id int) (*model.Product, error)
	Create(ctx context.Context, in model.NewProduct) (*model.Product, error)
	Update(ctx context.Context, id int, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id int) (*model.Product, error)
}

type productService struct {
	catalog store.Document[model.Product]
	now     func() time.Time
}

// NewProductService creates a product service over the catalog document.
func NewProductService(catalog store.Document[model.Product]) ProductService {
	return &productService{
		catalog: catalog,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// ValidPagination reports whether page and limit are within bounds.
func ValidPagination(page, limit int) bool {
	return page >= 1 && limit >= 1 && limit <= MaxLimit
}

// List returns one page of the catalog.
func (s *productService) List(ctx context.Context, page, limit int) ([]model.Product, model.Pagination, error) {
	if !ValidPagination(page, limit) {
		return nil, model.Pagination{}, errors.InvalidPagination(page, limit)
	}

	products := s.catalog.Load(ctx)
	total := len(products)

	// Compare before multiplying so a huge page cannot overflow.
	start := total
	if page-1 <= total/limit {
		start = min((page-1)*limit, total)
	}
	end := total
	if limit <= total-start {
		end = start + limit
	}

	return products[start:end], model.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// Get returns the product with the given id.
func (s *productService) Get(ctx context.Context, id int) (*model.Product, error) {
	products := s.catalog.Load(ctx)
	i := indexByID(products, id)
	if i < 0 {
		return nil, errors.ProductNotFound(id)
	}
	return &products[i], nil
}

// Create validates and appends a new product with the next id.
func (s *productService) Create(ctx context.Context, in model.NewProduct) (*model.Product, error) {
	if !in.Price.IsPositive() {
		return nil, errors.InvalidPrice(in.Price)
	}
	if in.Stock < 0 {
		return nil, errors.InvalidStock(in.Stock)
	}

	products := s.catalog.Load(ctx)
	if i := indexBySKU(products, in.SKU, -1); i >= 0 {
		return nil, errors.SKUAlreadyExists(in.SKU, products[i].ID)
	}

	now := s.now()
	product := model.Product{
		ID:          nextID(products),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	products = append(products, product)
	if err := s.catalog.Save(ctx, products); err != nil {
		return nil, fmt.Errorf("save catalog: %w", err)
	}
	return &product, nil
}

// Update merges patch over the product with the given id.
func (s *productService) Update(ctx context.Context, id int, patch model.ProductPatch) (*model.Product, error) {
	products := s.catalog.Load(ctx)
	i := indexByID(products, id)
	if i < 0 {
		return nil, errors.ProductNotFound(id)
	}

	if patch.Price != nil && !patch.Price.IsPositive() {
		return nil, errors.InvalidPrice(*patch.Price)
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, errors.InvalidStock(*patch.Stock)
	}
	if patch.SKU != nil {
		if j := indexBySKU(products, *patch.SKU, i); j >= 0 {
			return nil, errors.SKUAlreadyExists(*patch.SKU, products[j].ID)
		}
	}

	patch.Apply(&products[i])
	products[i].UpdatedAt = s.now()

	if err := s.catalog.Save(ctx, products); err != nil {
		return nil, fmt.Errorf("save catalog: %w", err)
	}
	updated := products[i]
	return &updated, nil
}

// Delete removes the product with the given id and returns its last state.
func (s *productService) Delete(ctx context.Context, id int) (*model.Product, error) {
	products := s.catalog.Load(ctx)
	i := indexByID(products, id)
	if i < 0 {
		return nil, errors.ProductNotFound(id)
	}

	removed := products[i]
	products = append(products[:i], products[i+1:]...)
	if err := s.catalog.Save(ctx, products); err != nil {
		return nil, fmt.Errorf("save catalog: %w", err)
	}
	return &removed, nil
}

func indexByID(products []model.Product, id int) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

// indexBySKU finds sku among products, ignoring the entry at index skip.
func indexBySKU(products []model.Product, sku string, skip int) int {
	for i := range products {
		if i != skip && products[i].SKU == sku {
			return i
		}
	}
	return -1
}

func nextID(products []model.Product) int {
	maxID := 0
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}
