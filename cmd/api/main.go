// ABOUTME: Main entry point for the News GenAI API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news-genai-api/api"
	"news-genai-api/api/handlers"
	"news-genai-api/core/analysis"
	"news-genai-api/core/extractor"
	"news-genai-api/core/ingest"
	"news-genai-api/core/interfaces"
	"news-genai-api/core/search"
	"news-genai-api/core/services"
	"news-genai-api/infrastructure/cache/memory"
	"news-genai-api/infrastructure/cache/redis"
	stdhttp "news-genai-api/infrastructure/http/standard"
	"news-genai-api/infrastructure/llm/ollama"
	lruslogger "news-genai-api/infrastructure/logger/logrus"
	"news-genai-api/infrastructure/store"
	"news-genai-api/infrastructure/store/sqlite"
	"news-genai-api/infrastructure/vectordb/qdrant"
	"news-genai-api/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := lruslogger.NewLogger(cfg.Logging.Level)
	logger.Info("Starting News GenAI API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"vector_db":  cfg.VectorDB.URL,
		"model":      cfg.LLM.Model,
	})

	// Create cache
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache()
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache()
		logger.Info("Using memory cache", nil)
	}

	// Create HTTP client
	httpClient := stdhttp.NewStandardHTTPClient(30 * time.Second)

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create model clients
	model, err := ollama.NewClient(deps, cfg.LLM.URL, cfg.LLM.Model)
	if err != nil {
		log.Fatalf("Failed to create model client: %v", err)
	}
	embedder, err := ollama.NewEmbedder(deps, cfg.LLM.URL, cfg.LLM.EmbeddingModel)
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}

	// Create storage
	index, err := sqlite.NewIndex(cfg.Store.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open article index: %v", err)
	}
	defer index.Close()
	if stats, err := index.Stats(); err == nil {
		logger.Info("Article index opened", stats)
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	articleStore, err := store.NewArticleStore(startupCtx, deps,
		qdrant.NewClient(deps, cfg.VectorDB.URL), embedder, index)
	startupCancel()
	if err != nil {
		log.Fatalf("Failed to initialize article store: %v", err)
	}

	// Create services
	extractorService := extractor.NewService(deps)
	analyzerService := analysis.NewService(deps, model)
	metadataService := services.NewMetadataService(deps)
	ingestService := ingest.NewService(deps, extractorService, analyzerService, articleStore, metadataService)
	searchService := search.NewService(deps, articleStore, model)

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger:     logger,
		RateLimit:  100, // 100 requests per minute
		RateWindow: time.Minute,
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	// Create and register handlers
	articleHandler := handlers.NewArticleHandler(extractorService, analyzerService, ingestService)
	articleHandler.RegisterRoutes(humaAPI)

	searchHandler := handlers.NewSearchHandler(searchService, articleStore)
	searchHandler.RegisterRoutes(humaAPI)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

func init() {
	// Print banner
	fmt.Println(`
    _   __                     ______           ___    ____
   / | / /__ _      _______   / ____/__  ____  /   |  /  _/
  /  |/ / _ \ | /| / / ___/  / / __/ _ \/ __ \/ /| |  / /  
 / /|  /  __/ |/ |/ (__  )  / /_/ /  __/ / / / ___ |_/ /   
/_/ |_/\___/|__/|__/____/   \____/\___/_/ /_/_/  |_/___/   
	`)
}
