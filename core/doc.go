// Package core contains the business logic for the News GenAI API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (ArticleRecord, TopicRecord, etc.)
// - extractor: Two-tier article content extraction from HTML
// - analysis: Language-model summarization and topic tagging
// - ingest: URL and feed ingestion pipeline
// - search: Semantic search with multi-strategy result fusion
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, store, model)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "news-genai-api/core/extractor"
//	    "news-genai-api/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create service
//	extractorService := extractor.NewService(deps)
//
//	// Extract articles
//	articles := extractorService.ExtractMany(ctx, []string{
//	    "https://example.com/story",
//	})
//
package core
