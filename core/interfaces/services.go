// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for extraction, analysis, and model access

package interfaces

import (
	"context"

	"news-genai-api/core/domain"
)

// ArticleExtractor turns URLs into normalized article records
type ArticleExtractor interface {
	// Extract fetches and parses a single URL
	Extract(ctx context.Context, url string) (*domain.ArticleRecord, error)

	// ExtractMany applies Extract per URL, preserving input order and
	// silently skipping failures
	ExtractMany(ctx context.Context, urls []string) []*domain.ArticleRecord
}

// ArticleAnalyzer enriches article records with summaries and topics
type ArticleAnalyzer interface {
	// AnalyzeArticle enriches the record in place
	AnalyzeArticle(ctx context.Context, article *domain.ArticleRecord) error
}

// LanguageModel is the request/response contract with the external LLM
type LanguageModel interface {
	// Complete returns the model's completion for a prompt
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a vector for similarity search
type Embedder interface {
	// EmbedText returns the embedding for a single text
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// PageMetadata contains metadata scraped from an article page
type PageMetadata struct {
	Title       string
	Description string
	Thumbnail   string
	SiteName    string
	Domain      string
}

// MetadataService extracts page metadata for article enrichment
type MetadataService interface {
	ExtractMetadata(ctx context.Context, url string) (*PageMetadata, error)
	ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*PageMetadata
}
