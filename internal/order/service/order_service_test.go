package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davelara/shopper-cart/internal/order/domain"
	"github.com/davelara/shopper-cart/internal/order/repository"
	"github.com/davelara/shopper-cart/internal/order/repository/mocks"
)

func TestOrderService(t *testing.T) {
	ctx := context.Background()

	t.Run("GetOrder returns the stored order", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		svc := NewOrderService(mockRepo)

		stored := &domain.Order{ID: "order-1", UserID: "user-1", Status: domain.StatusCompleted}
		mockRepo.On("GetOrderByID", ctx, "order-1").Return(stored, nil).Once()

		order, err := svc.GetOrder(ctx, "order-1")

		assert.NoError(t, err)
		assert.Equal(t, stored, order)
	})

	t.Run("GetOrder propagates not-found", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		svc := NewOrderService(mockRepo)

		mockRepo.On("GetOrderByID", ctx, "ghost").Return(nil, repository.ErrOrderNotFound).Once()

		_, err := svc.GetOrder(ctx, "ghost")

		assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	})

	t.Run("ListOrdersByUser returns the user's history", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		svc := NewOrderService(mockRepo)

		history := []domain.Order{{ID: "order-1"}, {ID: "order-2"}}
		mockRepo.On("ListOrdersByUser", ctx, "user-1").Return(history, nil).Once()

		orders, err := svc.ListOrdersByUser(ctx, "user-1")

		assert.NoError(t, err)
		assert.Len(t, orders, 2)
	})
}
