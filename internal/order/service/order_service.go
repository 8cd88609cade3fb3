package service

import (
	"context"

	"github.com/davelara/shopper-cart/internal/order/domain"
	"github.com/davelara/shopper-cart/internal/order/repository"
)

// OrderService exposes the read side of the order store; orders are only
// ever created by checkout.
type OrderService interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type orderServiceImpl struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderServiceImpl{repo: repo}
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *orderServiceImpl) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}
