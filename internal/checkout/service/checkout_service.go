package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cartRepo "github.com/davelara/shopper-cart/internal/cart/repository"
	catalogDomain "github.com/davelara/shopper-cart/internal/catalog/domain"
	catalogRepo "github.com/davelara/shopper-cart/internal/catalog/repository"
	"github.com/davelara/shopper-cart/internal/checkout/domain"
	orderDomain "github.com/davelara/shopper-cart/internal/order/domain"
	orderRepo "github.com/davelara/shopper-cart/internal/order/repository"
	"github.com/davelara/shopper-cart/internal/platform/logger"
	"github.com/davelara/shopper-cart/internal/platform/stream"
)

var ErrCheckoutFailed = errors.New("checkout failed")

// Notifier delivers the confirmation email. Failures never roll checkout
// back.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *orderDomain.Order) error
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID, userEmail string) (*orderDomain.Order, error)
}

type checkoutServiceImpl struct {
	carts    cartRepo.CartRepository
	products catalogRepo.ProductRepository
	orders   orderRepo.OrderRepository
	notifier Notifier
	events   stream.Publisher
}

func NewCheckoutService(carts cartRepo.CartRepository, products catalogRepo.ProductRepository, orders orderRepo.OrderRepository, notifier Notifier, events stream.Publisher) CheckoutService {
	return &checkoutServiceImpl{
		carts:    carts,
		products: products,
		orders:   orders,
		notifier: notifier,
		events:   events,
	}
}

// Checkout converts the user's cart into stock decrements, cleared cart
// entries and one order record.
//
// Validation is all-or-nothing: any shortfall aborts before the first write
// and the cart is left untouched. The purchase loop itself has no
// compensating rollback; a failed write mid-loop surfaces to the caller with
// the earlier decrements already applied.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID, userEmail string) (*orderDomain.Order, error) {
	entries, err := s.carts.ListEntriesByUser(ctx, userID)
	if err != nil {
		logger.Error("Checkout: failed to load cart for user "+userID, err)
		return nil, fmt.Errorf("%w: could not load cart: %v", ErrCheckoutFailed, err)
	}
	if len(entries) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Fresh reads: cart quantities were validated against stock at write
	// time, but stock may have moved since.
	products := make([]*catalogDomain.Product, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		g.Go(func() error {
			product, err := s.products.GetProductByID(gctx, entry.ProductID)
			if err != nil {
				if errors.Is(err, catalogRepo.ErrProductNotFound) {
					// Treated as zero stock below.
					return nil
				}
				return err
			}
			products[i] = product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Checkout: stock re-validation failed", err)
		return nil, fmt.Errorf("%w: could not validate stock: %v", ErrCheckoutFailed, err)
	}

	outOfStock := []domain.OutOfStockItem{}
	validCount := 0
	for i, entry := range entries {
		product := products[i]
		if product == nil {
			outOfStock = append(outOfStock, domain.OutOfStockItem{
				ProductID: entry.ProductID,
				Requested: entry.Quantity,
				Available: 0,
			})
			continue
		}
		if entry.Quantity > product.Stock {
			outOfStock = append(outOfStock, domain.OutOfStockItem{
				ProductID: product.ID,
				Name:      product.Name,
				Requested: entry.Quantity,
				Available: product.Stock,
			})
			continue
		}
		validCount++
	}
	if len(outOfStock) > 0 {
		return nil, &domain.OutOfStockError{Items: outOfStock, RemainingItems: validCount}
	}

	items := make([]orderDomain.OrderItem, 0, len(entries))
	var total float64
	for i, entry := range entries {
		product := products[i]

		// Conditional decrement: a concurrent checkout that got here first
		// makes this fail instead of driving stock negative.
		if err := s.products.DecrementStock(ctx, product.ID, entry.Quantity); err != nil {
			logger.Error("Checkout: stock decrement failed for product "+product.ID, err)
			return nil, fmt.Errorf("%w: product %s: %v", ErrCheckoutFailed, product.ID, err)
		}

		if err := s.carts.DeleteEntry(ctx, entry.ID); err != nil {
			logger.Error("Checkout: failed to remove cart entry "+entry.ID, err)
			return nil, fmt.Errorf("%w: cart entry %s: %v", ErrCheckoutFailed, entry.ID, err)
		}
		s.publishCartEvent(ctx, userID, entry.ID)

		subtotal := product.Price * float64(entry.Quantity)
		items = append(items, orderDomain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  entry.Quantity,
			Subtotal:  subtotal,
		})
		total += subtotal
	}

	order := &orderDomain.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserEmail: userEmail,
		Items:     items,
		Total:     total,
		Status:    orderDomain.StatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		logger.Error("Checkout: failed to write order for user "+userID, err)
		return nil, fmt.Errorf("%w: could not create order: %v", ErrCheckoutFailed, err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendOrderConfirmation(ctx, order); err != nil {
			logger.Error("Checkout: confirmation email failed for order "+order.ID, err)
		}
	}

	return order, nil
}

func (s *checkoutServiceImpl) publishCartEvent(ctx context.Context, userID, entryID string) {
	if s.events == nil {
		return
	}
	ev := stream.Event{Entity: "cart_entry", ID: entryID, Action: stream.ActionDeleted, At: time.Now().UTC()}
	if err := s.events.Publish(ctx, stream.CartTopic(userID), ev); err != nil {
		logger.Warn("Checkout: failed to publish cart event for %s: %v", entryID, err)
	}
}
