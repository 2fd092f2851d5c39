package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// registerRoutes registers all HTTP routes using Echo
func registerRoutes(e *echo.Echo, handler *HandlerAdapter, gatherer prometheus.Gatherer) {
	// Health check
	e.GET("/health", handler.HealthCheck)

	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// Swagger documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	// Price feed
	v1.GET("/feed", handler.GetFeed)
	v1.POST("/feed/refresh", handler.RefreshFeed)
	v1.GET("/tokens", handler.GetTokens)

	// Swap card
	swap := v1.Group("/swap")
	swap.GET("", handler.GetSwap)
	swap.PUT("/amount", handler.SetAmount)
	swap.POST("/confirm", handler.ConfirmTrade)
	swap.PUT("/:side", handler.SelectToken)
	swap.POST("/:side/cycle", handler.CycleToken)
	swap.GET("/:side/preview", handler.GetPreview)

	// Token selector dialog
	selector := v1.Group("/selector")
	selector.GET("", handler.GetSelector)
	selector.DELETE("", handler.CloseSelector)
	selector.PUT("/query", handler.SetSelectorQuery)
	selector.PUT("/category", handler.SetSelectorCategory)
	selector.POST("/select", handler.SelectFromSelector)
	selector.POST("/:side", handler.OpenSelector)

	v1.POST("/favorites/:tokenID", handler.ToggleFavorite)

	// Wallet session
	wallet := v1.Group("/wallet")
	wallet.GET("", handler.GetWallet)
	wallet.POST("", handler.ConnectWallet)
	wallet.DELETE("", handler.DisconnectWallet)

	v1.GET("/onboarding", handler.GetOnboarding)
	v1.PUT("/onboarding", handler.SetOnboarding)
}
