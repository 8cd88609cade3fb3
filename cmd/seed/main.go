package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	catalogDomain "github.com/davelara/shopper-cart/internal/catalog/domain"
	catalogRepo "github.com/davelara/shopper-cart/internal/catalog/repository"
	"github.com/davelara/shopper-cart/internal/platform/config"
	"github.com/davelara/shopper-cart/internal/platform/database"
	"github.com/davelara/shopper-cart/internal/platform/logger"
)

// Demo catalog for local development.
var seedProducts = []catalogDomain.Product{
	{Name: "Smartphone X", Description: "6.1-inch display, 128GB storage", Price: 699.99, Category: "electronics", Stock: 25, Image: "https://picsum.photos/seed/phone/400"},
	{Name: "Wireless Headphones", Description: "Noise cancelling, 30h battery", Price: 149.50, Category: "electronics", Stock: 40, Image: "https://picsum.photos/seed/audio/400"},
	{Name: "Laptop Pro 14", Description: "14-inch, 16GB RAM, 512GB SSD", Price: 1299.00, Category: "electronics", Stock: 12, Image: "https://picsum.photos/seed/laptop/400"},
	{Name: "Cotton T-Shirt", Description: "100% organic cotton, unisex", Price: 19.99, Category: "clothing", Stock: 100, Image: "https://picsum.photos/seed/shirt/400"},
	{Name: "Denim Jacket", Description: "Classic fit denim jacket", Price: 59.90, Category: "clothing", Stock: 35, Image: "https://picsum.photos/seed/jacket/400"},
	{Name: "Espresso Maker", Description: "Stovetop espresso maker, 6 cups", Price: 34.99, Category: "home", Stock: 50, Image: "https://picsum.photos/seed/coffee/400"},
	{Name: "Ceramic Mug Set", Description: "Set of 4 ceramic mugs", Price: 24.00, Category: "home", Stock: 80, Image: "https://picsum.photos/seed/mugs/400"},
	{Name: "Mystery Novel", Description: "Bestselling detective story", Price: 12.50, Category: "books", Stock: 60, Image: "https://picsum.photos/seed/book/400"},
}

func main() {
	dynamoCfg := config.LoadDynamoConfig()

	db, err := database.Connect(dynamoCfg, &catalogDomain.Product{})
	if err != nil {
		logger.Fatal("Failed to connect to DynamoDB", err)
	}
	defer db.Close()

	repo := catalogRepo.NewDynamoProductRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, p := range seedProducts {
		p.ID = uuid.NewString()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := repo.CreateProduct(ctx, &p); err != nil {
			logger.Error("Failed to seed product "+p.Name, err)
			continue
		}
		logger.Info("Seeded product %s (%s)", p.Name, p.ID)
	}
}
