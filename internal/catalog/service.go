package catalog

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/electroquick/pkg/errors"
	"github.com/angelmondragon/electroquick/pkg/types"
	"github.com/go-playground/validator/v10"
)

const (
	featuredLimit    = 6
	recommendedLimit = 4
)

// Service exposes read-only catalog lookups.
type Service interface {
	Categories(ctx context.Context) ([]types.Category, error)
	Products(ctx context.Context, categoryID string) ([]types.Product, error)
	Product(ctx context.Context, id string) (types.Product, error)
	Search(ctx context.Context, filters Filters) ([]types.Product, error)
	Featured(ctx context.Context) ([]types.Product, error)
	Recommended(ctx context.Context, id string) ([]types.Product, error)
}

// Filters narrows a search. Zero values do not filter.
type Filters struct {
	Query        string   `json:"query"`
	CategoryID   string   `json:"category_id"`
	Manufacturer string   `json:"manufacturer"`
	MinPrice     *float64 `json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice     *float64 `json:"max_price" validate:"omitempty,gte=0"`
}

type service struct {
	categories []types.Category
	products   []types.Product
	byID       map[string]int
	validate   *validator.Validate
}

// NewService serves lookups over a validated dataset.
func NewService(ds Dataset) (Service, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(ds.Products))
	products := make([]types.Product, len(ds.Products))
	for i, p := range ds.Products {
		products[i] = p.Clone()
		byID[p.ID] = i
	}
	return &service{
		categories: append([]types.Category(nil), ds.Categories...),
		products:   products,
		byID:       byID,
		validate:   validator.New(),
	}, nil
}

func (s *service) Categories(ctx context.Context) ([]types.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]types.Category{}, s.categories...), nil
}

func (s *service) Products(ctx context.Context, categoryID string) ([]types.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	categoryID = strings.TrimSpace(categoryID)
	return s.filter(func(p types.Product) bool {
		return categoryID == "" || p.CategoryID == categoryID
	}, 0), nil
}

func (s *service) Product(ctx context.Context, id string) (types.Product, error) {
	if err := ctx.Err(); err != nil {
		return types.Product{}, err
	}
	i, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return types.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").WithDetails(map[string]any{"product_id": id})
	}
	return s.products[i].Clone(), nil
}

func (s *service) Search(ctx context.Context, filters Filters) ([]types.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(filters); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid search filters")
	}
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid search filters").
			WithDetails(map[string]any{"min_price": fmt.Sprintf("must not exceed max_price %v", *filters.MaxPrice)})
	}

	query := strings.ToLower(strings.TrimSpace(filters.Query))
	category := strings.TrimSpace(filters.CategoryID)
	manufacturer := strings.TrimSpace(filters.Manufacturer)

	return s.filter(func(p types.Product) bool {
		if category != "" && p.CategoryID != category {
			return false
		}
		if query != "" && !matchesQuery(p, query) {
			return false
		}
		if manufacturer != "" && !strings.EqualFold(p.Manufacturer, manufacturer) {
			return false
		}
		if filters.MinPrice != nil && p.Price < *filters.MinPrice {
			return false
		}
		if filters.MaxPrice != nil && p.Price > *filters.MaxPrice {
			return false
		}
		return true
	}, 0), nil
}

func (s *service) Featured(ctx context.Context) ([]types.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.filter(func(types.Product) bool { return true }, featuredLimit), nil
}

// Recommended returns other products from the same category. An unknown id
// yields an empty list rather than an error.
func (s *service) Recommended(ctx context.Context, id string) ([]types.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return []types.Product{}, nil
	}
	current := s.products[i]
	return s.filter(func(p types.Product) bool {
		return p.CategoryID == current.CategoryID && p.ID != current.ID
	}, recommendedLimit), nil
}

// filter returns clones of matching products in catalog order; limit 0 means
// no limit.
func (s *service) filter(keep func(types.Product) bool, limit int) []types.Product {
	out := []types.Product{}
	for _, p := range s.products {
		if !keep(p) {
			continue
		}
		out = append(out, p.Clone())
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func matchesQuery(p types.Product, query string) bool {
	for _, field := range []string{p.Name, p.Manufacturer, p.PartNumber, p.Description} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
