package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davelara/shopper-cart/internal/auth"
	cartAPI "github.com/davelara/shopper-cart/internal/cart/api"
	cartDomain "github.com/davelara/shopper-cart/internal/cart/domain"
	cartRepo "github.com/davelara/shopper-cart/internal/cart/repository"
	cartService "github.com/davelara/shopper-cart/internal/cart/service"
	catalogAPI "github.com/davelara/shopper-cart/internal/catalog/api"
	catalogDomain "github.com/davelara/shopper-cart/internal/catalog/domain"
	catalogRepo "github.com/davelara/shopper-cart/internal/catalog/repository"
	catalogService "github.com/davelara/shopper-cart/internal/catalog/service"
	checkoutAPI "github.com/davelara/shopper-cart/internal/checkout/api"
	checkoutService "github.com/davelara/shopper-cart/internal/checkout/service"
	notificationService "github.com/davelara/shopper-cart/internal/notification/service"
	orderAPI "github.com/davelara/shopper-cart/internal/order/api"
	orderDomain "github.com/davelara/shopper-cart/internal/order/domain"
	orderRepo "github.com/davelara/shopper-cart/internal/order/repository"
	orderService "github.com/davelara/shopper-cart/internal/order/service"
	"github.com/davelara/shopper-cart/internal/platform/config"
	"github.com/davelara/shopper-cart/internal/platform/database"
	"github.com/davelara/shopper-cart/internal/platform/logger"
	"github.com/davelara/shopper-cart/internal/platform/stream"
	userAPI "github.com/davelara/shopper-cart/internal/user/api"
	watchAPI "github.com/davelara/shopper-cart/internal/watch/api"
	userDomain "github.com/davelara/shopper-cart/internal/user/domain"
	userRepo "github.com/davelara/shopper-cart/internal/user/repository"
	userService "github.com/davelara/shopper-cart/internal/user/service"
)

func main() {
	serverCfg := config.LoadServerConfig("8080")
	dynamoCfg := config.LoadDynamoConfig()
	redisCfg := config.LoadRedisConfig()
	authCfg := config.LoadAuthConfig()
	emailCfg := config.LoadEmailConfig()
	cartCfg := config.LoadCartConfig()

	logger.Info("Starting Shopper Cart API...")

	db, err := database.Connect(dynamoCfg,
		&catalogDomain.Product{},
		&cartDomain.CartEntry{},
		&orderDomain.Order{},
		&userDomain.User{},
	)
	if err != nil {
		logger.Fatal("Failed to connect to DynamoDB", err)
	}
	defer db.Close()

	events := stream.NewRedisStreams(redisCfg.Addr, "shopper-cart")
	defer events.Close()

	// Repositories
	products := catalogRepo.NewDynamoProductRepository(db)
	carts := cartRepo.NewDynamoCartRepository(db)
	orders := orderRepo.NewDynamoOrderRepository(db)
	users := userRepo.NewDynamoUserRepository(db)

	// Services
	catalogSvc := catalogService.NewCatalogService(products, carts, events)
	cartSvc := cartService.NewCartService(carts, products, events, cartCfg.MaxAge)
	orderSvc := orderService.NewOrderService(orders)
	emailSvc := notificationService.NewEmailJSService(emailCfg)
	checkoutSvc := checkoutService.NewCheckoutService(carts, products, orders, emailSvc, events)
	userSvc := userService.NewUserService(users, authCfg.JWTSecret)

	if err := cartSvc.StartSweeper(cartCfg.SweepSpec); err != nil {
		logger.Error("Failed to start abandoned-cart sweeper", err)
	}
	defer cartSvc.StopSweeper()

	// Handlers
	authMiddleware := auth.NewMiddleware(authCfg)
	productHandler := catalogAPI.NewProductHandler(catalogSvc)
	cartHandler := cartAPI.NewCartHandler(cartSvc)
	checkoutHandler := checkoutAPI.NewCheckoutHandler(checkoutSvc)
	orderHandler := orderAPI.NewOrderHandler(orderSvc)
	userHandler := userAPI.NewUserHandler(userSvc)
	watchHandler := watchAPI.NewWatchHandler(events)

	router := gin.Default()
	router.RedirectTrailingSlash = false

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	open := router.Group("/api")
	userHandler.RegisterRoutes(open)

	authorized := router.Group("/api", authMiddleware.RequireAuth())
	authorized.GET("/admin/check", func(c *gin.Context) {
		identity, _ := auth.IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"isAdmin": identity.IsAdmin})
	})
	productHandler.RegisterRoutes(authorized, authMiddleware.RequireAdmin())
	cartHandler.RegisterRoutes(authorized)
	checkoutHandler.RegisterRoutes(authorized)
	orderHandler.RegisterRoutes(authorized)
	watchHandler.RegisterRoutes(authorized)

	logger.Info("Shopper Cart API running on port %s", serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run API server", err)
	}
}
