package domain

import (
	"time"
)

type OrderStatus string

const (
	StatusCompleted OrderStatus = "completed"
)

// Order is written once per successful checkout and never mutated
// afterwards.
type Order struct {
	ID        string      `dynamorm:"pk" json:"id"`
	UserID    string      `dynamorm:"index:gsi-user,pk" json:"user_id"`
	UserEmail string      `json:"user_email"`
	Items     []OrderItem `dynamorm:"json" json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `dynamorm:"created_at" json:"created_at"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}
