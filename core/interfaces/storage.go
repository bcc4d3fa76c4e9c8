// ABOUTME: Storage interfaces for persisting and querying articles and topics
// ABOUTME: The store owns persisted identity and topic-membership consistency

package interfaces

import (
	"context"

	"news-genai-api/core/domain"
)

// ArticleStore defines the persistence and retrieval contract the ingestion
// pipeline and the fusion engine depend on. Implementations are free to use
// any indexing technology provided relevance ordering is by descending
// similarity score and filterTopics is a must-match-any-of-the-set constraint.
type ArticleStore interface {
	// StoreArticle persists an analyzed article and returns its derived id.
	// Storing the same URL twice updates the existing record.
	StoreArticle(ctx context.Context, article *domain.ArticleRecord) (string, error)

	// StoreArticles persists multiple articles, returning ids in input order
	StoreArticles(ctx context.Context, articles []*domain.ArticleRecord) ([]string, error)

	// UpdateArticleTopics replaces an article's topics, re-embedding and
	// re-writing the full record
	UpdateArticleTopics(ctx context.Context, articleID string, topics []string) error

	// GetArticle retrieves a stored article by id
	GetArticle(ctx context.Context, articleID string) (*domain.ArticleRecord, error)

	// Search performs a similarity search, optionally restricted to a topic set
	Search(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error)

	// SearchTopics returns topic names similar to the query
	SearchTopics(ctx context.Context, query string, limit int) ([]string, error)

	// GetArticlesByTopics returns articles tagged with any of the given topics
	GetArticlesByTopics(ctx context.Context, topics []string, limit int) ([]domain.ArticleRecord, error)

	// GetSimilarArticles returns articles similar to the referenced one,
	// excluding the reference itself
	GetSimilarArticles(ctx context.Context, articleID string, limit int) ([]domain.ArticleRecord, error)
}
