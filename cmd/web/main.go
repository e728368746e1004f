package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-foodmarket/api"
	"go-foodmarket/internal/auth"
	"go-foodmarket/internal/cache"
	"go-foodmarket/internal/config"
	"go-foodmarket/internal/services"
	"go-foodmarket/internal/store"
	"go-foodmarket/internal/store/memory"
	"go-foodmarket/internal/store/mongostore"
	"go-foodmarket/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	foods, bookings, mongoClient, err := openStores(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("Failed to open store: %v", err)
	}
	readCache := openCache(ctx, cfg)
	cancel()

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	if cfg.OTelEndpoint != "" {
		log.Printf("📡 Exporting traces to %s", cfg.OTelEndpoint)
	}

	tokens, err := auth.NewTokenCodec(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to create token codec: %v", err)
	}

	// Initialize services
	foodService := services.NewFoodService(foods, readCache)
	bookingService := services.NewBookingService(bookings)

	// Setup router
	router := api.NewRouter(api.Dependencies{
		Foods:        foodService,
		Bookings:     bookingService,
		Tokens:       tokens,
		SecureCookie: cfg.CookieSecure,
		AllowOrigins: cfg.CORSOrigins,
	})

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(router, telemetry.ServiceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%s (store: %s)", cfg.Port, cfg.Store)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Printf("⚠️ MongoDB disconnect: %v", err)
		}
	}
	if rc, ok := readCache.(*cache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️ Redis close: %v", err)
		}
	}

	if err := shutdownTracing(ctx); err != nil {
		log.Printf("⚠️ Trace exporter shutdown: %v", err)
	}

	log.Println("✅ Server shutdown complete")
}

// openStores returns the configured stores. The mongo client is nil for the
// in-memory store.
func openStores(ctx context.Context, cfg *config.Config) (store.FoodStore, store.BookingStore, *mongo.Client, error) {
	if cfg.Store == config.StoreMemory {
		foods := memory.NewFoodStore()
		foods.SeedSampleData(24, "sample@foodmarket.local")
		log.Printf("📦 Using in-memory store with sample data")
		return foods, memory.NewBookingStore(), nil, nil
	}

	client, err := mongostore.Connect(ctx, cfg.DatabaseURI())
	if err != nil {
		return nil, nil, nil, err
	}
	log.Printf("✅ Connected to MongoDB database %s", cfg.DBName)

	db := client.Database(cfg.DBName)
	return mongostore.NewFoodStore(db.Collection(store.FoodCollection)),
		mongostore.NewBookingStore(db.Collection(store.BookingCollection)),
		client, nil
}

// openCache connects to Redis when configured. Any failure falls back to no
// caching.
func openCache(ctx context.Context, cfg *config.Config) cache.Cache {
	if cfg.RedisURL == "" {
		return cache.Noop{}
	}
	client, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Printf("⚠️ Redis unavailable, caching disabled: %v", err)
		return cache.Noop{}
	}
	log.Printf("✅ Connected to Redis")
	return cache.NewRedisCache(client, cache.WithTTL(cfg.CacheTTL))
}
