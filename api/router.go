// Package api assembles the HTTP surface of the marketplace.
package api

import (
	"time"

	"go-foodmarket/api/handlers"
	"go-foodmarket/api/middleware"
	"go-foodmarket/internal/auth"
	"go-foodmarket/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type TokenCodec interface {
	middleware.TokenVerifier
	handlers.TokenIssuer
}

var _ TokenCodec = (*auth.TokenCodec)(nil)

type Dependencies struct {
	Foods        *services.FoodService
	Bookings     *services.BookingService
	Tokens       TokenCodec
	SecureCookie bool
	AllowOrigins []string
}

func NewRouter(deps Dependencies) *gin.Engine {
	foodHandler := handlers.NewFoodHandler(deps.Foods)
	bookingHandler := handlers.NewBookingHandler(deps.Bookings)
	authHandler := handlers.NewAuthHandler(deps.Tokens, deps.SecureCookie)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(deps.AllowOrigins)))

	session := middleware.RequireSession(deps.Tokens)
	owner := middleware.RequireOwner()

	router.GET("/", foodHandler.Root)
	router.GET("/health", foodHandler.HealthCheck)

	// Session routes
	router.POST("/jwt", authHandler.IssueToken)
	router.POST("/logout", authHandler.Logout)

	// Listing routes
	foods := router.Group("/allFoods")
	{
		foods.POST("", session, foodHandler.Create)
		foods.GET("", foodHandler.List)
		foods.GET("/:id", foodHandler.Get)
		foods.PUT("/:id", session, owner, foodHandler.Update)
		foods.DELETE("/:id", session, owner, foodHandler.Delete)
	}
	router.GET("/userSpecific", session, owner, foodHandler.ListMine)
	router.GET("/foodCount", foodHandler.Count)
	router.GET("/topFoods", foodHandler.Top)
	router.PUT("/quantity/:id", session, owner, foodHandler.UpdateQuantity)
	router.PUT("/updateSoldCount/:id", session, owner, foodHandler.UpdateSoldCount)

	// Booking routes
	bookings := router.Group("/bookings", session, owner)
	{
		bookings.POST("", bookingHandler.Create)
		bookings.GET("", bookingHandler.List)
		bookings.DELETE("/:id", bookingHandler.Delete)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
