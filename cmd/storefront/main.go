package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/voltkart/storefront/internal/api/handlers"
	"github.com/voltkart/storefront/internal/api/middleware"
	"github.com/voltkart/storefront/internal/cart"
	"github.com/voltkart/storefront/internal/config"
	"github.com/voltkart/storefront/internal/health"
	"github.com/voltkart/storefront/internal/metrics"
	repository "github.com/voltkart/storefront/internal/repositories"
	service "github.com/voltkart/storefront/internal/services"
	"github.com/voltkart/storefront/pkg/cloudinary"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	_ = godotenv.Load()
	cfg := config.MustLoad()

	// Document store setup; the connection itself is dialed lazily, the
	// eager call here just fails fast on a bad config
	store := repository.NewStore(&cfg.Mongo)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	if _, err := store.Client(startupCtx); err != nil {
		slog.Error("Error accessing the document store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := store.Close(context.Background()); err != nil {
			slog.Error("Error closing document store connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Document store connection closed")
		}
	}()

	// Redis setup (persisted cart state)
	redisClient, err := cart.NewRedisClient(&cfg.RedisConnect)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Media upload collaborator
	uploader, err := cloudinary.New(&cfg.Cloudinary)
	if err != nil {
		slog.Error("Error creating the cloudinary client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	productRepo := repository.NewProductRepo(store)
	catalogService := service.NewCatalogService(productRepo, uploader, cfg.Upload.MaxImageBytes)
	productHandler := handlers.NewProductHandler(catalogService)

	cartStore := cart.NewRedisStore(redisClient, cart.DefaultStorageKey)
	cartEngine := cart.NewEngine(startupCtx, cartStore)
	cartHandler := handlers.NewCartHandler(cartEngine)

	healthHandler, err := health.NewHealthHandler(cfg, uploader)
	if err != nil {
		slog.Error("Error creating the health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/products", productHandler.CreateProduct())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.QueryProducts())
	routerMux.HandleFunc("GET /api/v1/products/schema", productHandler.Schema())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("POST /api/v1/cart/items/{id}/increment", cartHandler.IncrementItem())
	routerMux.HandleFunc("POST /api/v1/cart/items/{id}/decrement", cartHandler.DecrementItem())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/cart/toggle", cartHandler.ToggleCart())
	routerMux.HandleFunc("POST /api/v1/cart/open", cartHandler.OpenCart())
	routerMux.HandleFunc("POST /api/v1/cart/close", cartHandler.CloseCart())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = middleware.CORS(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

}
