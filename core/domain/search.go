// ABOUTME: Search domain models for semantic article search
// ABOUTME: Defines the per-query projection of an article with its rank

package domain

// SearchResult is an article projected with its relevance rank for one
// query. It is never persisted; the fusion engine produces it per search.
type SearchResult struct {
	// Article is the matching article record
	Article ArticleRecord

	// Rank is the 1-based position in the fused result list
	Rank int

	// Score is the similarity score where the backend provides one (0 otherwise)
	Score float32
}
