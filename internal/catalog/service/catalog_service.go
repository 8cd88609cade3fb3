package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davelara/shopper-cart/internal/catalog/domain"
	"github.com/davelara/shopper-cart/internal/catalog/repository"
	"github.com/davelara/shopper-cart/internal/platform/logger"
	"github.com/davelara/shopper-cart/internal/platform/stream"
)

var (
	// ErrProductInUse blocks deletion while a cart entry still references
	// the product.
	ErrProductInUse = errors.New("product is referenced by one or more carts")
)

// CartReferenceChecker reports how many cart entries point at a product.
// Implemented by the cart repository; declared here so the catalog does not
// depend on the cart package.
type CartReferenceChecker interface {
	CountEntriesByProduct(ctx context.Context, productID string) (int, error)
}

type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	SearchProducts(ctx context.Context, term string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type catalogServiceImpl struct {
	repo     repository.ProductRepository
	cartRefs CartReferenceChecker
	events   stream.Publisher
}

func NewCatalogService(repo repository.ProductRepository, cartRefs CartReferenceChecker, events stream.Publisher) CatalogService {
	return &catalogServiceImpl{
		repo:     repo,
		cartRefs: cartRefs,
		events:   events,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *catalogServiceImpl) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.ListProductsByCategory(ctx, category)
}

// ListCategories derives the category list from the stored products rather
// than a dedicated table, mirroring how the catalog is partitioned.
func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]string, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	categories := []string{}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// SearchProducts loads the full catalog and matches the term against name
// and description. The store has no text index; this matches the original
// client-side behavior.
func (s *catalogServiceImpl) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	matches := []domain.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	now := time.Now().UTC()
	p := &domain.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Image:       req.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		logger.Error("Svc.CreateProduct: repo error", err)
		return nil, err
	}
	s.publish(ctx, p.ID, stream.ActionCreated)
	return p, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		logger.Error("Svc.UpdateProduct: repo error", err)
		return nil, err
	}
	s.publish(ctx, p.ID, stream.ActionUpdated)
	return p, nil
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.repo.GetProductByID(ctx, id); err != nil {
		return err
	}

	refs, err := s.cartRefs.CountEntriesByProduct(ctx, id)
	if err != nil {
		logger.Error("Svc.DeleteProduct: cart reference check failed", err)
		return err
	}
	if refs > 0 {
		return ErrProductInUse
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		logger.Error("Svc.DeleteProduct: repo error", err)
		return err
	}
	s.publish(ctx, id, stream.ActionDeleted)
	return nil
}

func (s *catalogServiceImpl) publish(ctx context.Context, productID, action string) {
	if s.events == nil {
		return
	}
	ev := stream.Event{Entity: "product", ID: productID, Action: action, At: time.Now().UTC()}
	if err := s.events.Publish(ctx, stream.TopicCatalog, ev); err != nil {
		logger.Warn("Svc.publish: failed to publish catalog event for %s: %v", productID, err)
	}
}
