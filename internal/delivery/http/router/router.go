// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"blush/internal/delivery/http/middleware"
	"blush/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	OrderHandler   *handler.OrderHandler
	ProductHandler *handler.ProductHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	orderHandler   *handler.OrderHandler
	productHandler *handler.ProductHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		orderHandler:   params.OrderHandler,
		productHandler: params.ProductHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes. Session endpoints are public; profile endpoints require a
	// bearer token and enforce self-or-admin inside the usecase.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh-token", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)

		profileGroup := authGroup.Group("", r.authMiddleware.Authenticate)
		profileGroup.GET("/:id", r.authHandler.GetUser)
		profileGroup.PATCH("/:id", r.authHandler.UpdateUser)
		profileGroup.DELETE("/:id", r.authHandler.DeleteUser, r.authMiddleware.RequireAdmin)
	}

	// Catalogue routes. Reads are public, writes are admin-only.
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.ListProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)

		adminProductGroup := productGroup.Group("", r.authMiddleware.Authenticate, r.authMiddleware.RequireAdmin)
		adminProductGroup.POST("", r.productHandler.CreateProduct)
		adminProductGroup.PUT("/:id", r.productHandler.UpdateProduct)
		adminProductGroup.DELETE("/:id", r.productHandler.DeleteProduct)
	}

	// Order routes all require authentication; list-all and status changes are
	// additionally admin-gated.
	orderGroup := e.Group("/orders", r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.CreateOrder)
		orderGroup.GET("/myorders", r.orderHandler.ListMyOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)

		adminOrderGroup := orderGroup.Group("", r.authMiddleware.RequireAdmin)
		adminOrderGroup.GET("", r.orderHandler.ListAllOrders)
		adminOrderGroup.PATCH("/:id/status", r.orderHandler.UpdateOrderStatus)
	}
}
