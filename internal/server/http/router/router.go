package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/server/http/handlers"
	"github.com/polkiloo/deeshop/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShopFacade, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger.Named("http")))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	userHandler := handlers.NewUserHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)

	authRequired := middleware.AuthRequired(facade)
	adminOnly := middleware.AdminOnly()

	api := engine.Group("/api")

	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/me", authRequired, userHandler.Me)

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", authRequired, adminOnly, productHandler.Create)

	orders := api.Group("/orders")
	// the gateway redirects the browser here without a session
	orders.GET("/response", paymentHandler.FlutterwaveResponse)

	ordersAuth := orders.Group("")
	ordersAuth.Use(authRequired)
	ordersAuth.POST("/create-payment-intent", paymentHandler.CreateIntent)
	ordersAuth.POST("", orderHandler.Create)
	ordersAuth.GET("", orderHandler.List)
	ordersAuth.GET("/:id", orderHandler.Get)
	ordersAuth.PATCH("/:id", adminOnly, orderHandler.UpdateStatus)

	return engine
}
