package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	orderDomain "github.com/davelara/shopper-cart/internal/order/domain"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendOrderConfirmation(ctx context.Context, order *orderDomain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
