// Package api provides the HTTP API layer for the News GenAI application.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.0 documentation:
// - JSON spec available at /openapi.json
// - Interactive Swagger UI at /docs
//
// 2. Request/Response Validation
//
// Huma provides automatic validation based on struct tags:
//
//	type SearchRequest struct {
//	    Query   string   `json:"query" minLength:"1"`
//	    Enhance bool     `json:"enhance,omitempty"`
//	    Limit   int      `json:"limit,omitempty" minimum:"1" maximum:"50" default:"5"`
//	    Topics  []string `json:"topics,omitempty" maxItems:"10"`
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Rate limiting per IP address
// - CORS handling (when configured)
//
// # Usage Example
//
//	// Create API with middleware
//	cfg := api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	}
//	humaAPI := api.NewAPIWithMiddleware(cfg)
//
//	// Register handlers
//	searchHandler := handlers.NewSearchHandler(searchService, articleStore)
//	searchHandler.RegisterRoutes(humaAPI)
//
//	// Get HTTP handler
//	router := humaAPI.Adapter()
//
//	// Start server
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// The API uses a consistent error format based on RFC 7807:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "query cannot be empty",
//	    "instance": "/search"
//	}
//
// Domain errors are automatically mapped to appropriate HTTP status codes.
//
package api
