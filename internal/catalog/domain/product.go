package domain

import (
	"time"
)

// Product is one catalog record. Category doubles as the partition key of
// the gsi-category index; Stock is only mutated by checkout and by explicit
// admin updates.
type Product struct {
	ID          string    `dynamorm:"pk" json:"id"`
	Category    string    `dynamorm:"index:gsi-category,pk" json:"category"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `dynamorm:"created_at" json:"created_at"`
	UpdatedAt   time.Time `dynamorm:"updated_at" json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Image       string  `json:"image"`
}

// UpdateProductRequest carries partial updates; nil fields are left alone.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	Image       *string  `json:"image"`
}

type SearchRequest struct {
	SearchTerm string `json:"searchTerm" binding:"required"`
}
