package domain

import (
	"time"

	catalogDomain "github.com/davelara/shopper-cart/internal/catalog/domain"
)

// CartEntry is the stored record: one product reserved by one user. The
// joined product view lives in CartItem.
type CartEntry struct {
	ID        string    `dynamorm:"pk" json:"id"`
	UserID    string    `dynamorm:"index:gsi-user,pk" json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `dynamorm:"created_at" json:"created_at"`
}

// CartItem is a cart entry joined with the current product record.
type CartItem struct {
	ID       string                `json:"id"`
	Product  catalogDomain.Product `json:"product"`
	Quantity int                   `json:"quantity"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
