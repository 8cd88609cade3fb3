package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyCart aborts a checkout before any stock is touched.
var ErrEmptyCart = errors.New("cart is empty")

// OutOfStockItem itemizes one shortfall found during re-validation.
type OutOfStockItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// OutOfStockError aborts the whole checkout: no stock is decremented and the
// cart is left untouched so the caller can retry after adjusting quantities.
type OutOfStockError struct {
	Items []OutOfStockItem `json:"outOfStockItems"`
	// RemainingItems counts the cart lines that would still be purchasable.
	RemainingItems int `json:"remainingItems"`
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%d cart item(s) exceed available stock", len(e.Items))
}
