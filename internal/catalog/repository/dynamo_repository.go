package repository

import (
	"context"
	"errors"

	"github.com/pay-theory/dynamorm/pkg/core"
	dynamoerrors "github.com/pay-theory/dynamorm/pkg/errors"

	"github.com/davelara/shopper-cart/internal/catalog/domain"
	"github.com/davelara/shopper-cart/internal/platform/logger"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a conditional decrement finds
	// less stock than requested.
	ErrInsufficientStock = errors.New("insufficient stock")
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, quantity int) error
}

type dynamoProductRepository struct {
	db core.DB
}

func NewDynamoProductRepository(db core.DB) ProductRepository {
	return &dynamoProductRepository{db: db}
}

func (r *dynamoProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Scan(&products)
	if err != nil {
		logger.Error("ListProducts: scan failed", err)
		return nil, err
	}
	return products, nil
}

func (r *dynamoProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("ID", "=", id).
		First(&p)
	if err != nil {
		if errors.Is(err, dynamoerrors.ErrItemNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	return &p, nil
}

func (r *dynamoProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Index("gsi-category").
		Where("Category", "=", category).
		All(&products)
	if err != nil {
		logger.Error("ListProductsByCategory: query failed", err)
		return nil, err
	}
	return products, nil
}

func (r *dynamoProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Model(p).Create(); err != nil {
		logger.Error("CreateProduct: create failed", err)
		return err
	}
	return nil
}

func (r *dynamoProductRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	err := r.db.WithContext(ctx).Model(p).
		Where("ID", "=", p.ID).
		Update("Name", "Description", "Price", "Category", "Stock", "Image")
	if err != nil {
		logger.Error("UpdateProduct: update failed", err)
		return err
	}
	return nil
}

func (r *dynamoProductRepository) DeleteProduct(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Model(&domain.Product{ID: id}).
		Where("ID", "=", id).
		Delete()
	if err != nil {
		logger.Error("DeleteProduct: delete failed", err)
		return err
	}
	return nil
}

// DecrementStock subtracts quantity from the product's stock with a
// condition that enough stock is present, so concurrent checkouts can never
// drive stock below zero.
func (r *dynamoProductRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("ID", "=", id).
		UpdateBuilder().
		Add("Stock", -quantity).
		Condition("Stock", ">=", quantity).
		Execute()
	if err != nil {
		if errors.Is(err, dynamoerrors.ErrConditionFailed) {
			return ErrInsufficientStock
		}
		logger.Error("DecrementStock: update failed", err)
		return err
	}
	return nil
}
