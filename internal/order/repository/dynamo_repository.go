package repository

import (
	"context"
	"errors"

	"github.com/pay-theory/dynamorm/pkg/core"
	dynamoerrors "github.com/pay-theory/dynamorm/pkg/errors"

	"github.com/davelara/shopper-cart/internal/order/domain"
	"github.com/davelara/shopper-cart/internal/platform/logger"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	CreateOrder(ctx context.Context, o *domain.Order) error
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type dynamoOrderRepository struct {
	db core.DB
}

func NewDynamoOrderRepository(db core.DB) OrderRepository {
	return &dynamoOrderRepository{db: db}
}

func (r *dynamoOrderRepository) CreateOrder(ctx context.Context, o *domain.Order) error {
	if err := r.db.WithContext(ctx).Model(o).Create(); err != nil {
		logger.Error("CreateOrder: create failed", err)
		return err
	}
	return nil
}

func (r *dynamoOrderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("ID", "=", id).
		First(&o)
	if err != nil {
		if errors.Is(err, dynamoerrors.ErrItemNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("GetOrderByID: query failed", err)
		return nil, err
	}
	return &o, nil
}

func (r *dynamoOrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Index("gsi-user").
		Where("UserID", "=", userID).
		All(&orders)
	if err != nil {
		logger.Error("ListOrdersByUser: query failed", err)
		return nil, err
	}
	return orders, nil
}
