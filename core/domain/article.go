// ABOUTME: Article domain model for extracted and analyzed news content
// ABOUTME: Provides deterministic identity derivation for idempotent ingestion

package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArticleRecord represents a single news article through its lifecycle:
// created by the extractor, enriched by the analyzer, persisted by the store.
type ArticleRecord struct {
	// ID is the stable identifier derived from the URL (see DeriveArticleID)
	ID string `json:"id"`

	// URL is the canonical source of identity for the article
	URL string `json:"url"`

	// Title is the article headline
	Title string `json:"title"`

	// Text is the full extracted body text
	Text string `json:"text"`

	// Summary is the analyzer-generated summary (empty until analyzed)
	Summary string `json:"summary,omitempty"`

	// Topics are analyzer-assigned tags, 1-7 short strings
	Topics []string `json:"topics,omitempty"`

	// Authors in extraction order; may be empty
	Authors []string `json:"authors,omitempty"`

	// Published is the publication timestamp; nil when unknown
	Published *time.Time `json:"published,omitempty"`

	// Source is the registrable domain of the article URL
	Source string `json:"source,omitempty"`

	// Extractor records which extraction tier produced the record
	// ("readability" or "heuristic")
	Extractor string `json:"extractor,omitempty"`

	// Thumbnail is an optional lead image URL from metadata enrichment
	Thumbnail string `json:"thumbnail,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// IsValid checks if the article has the minimum required fields
func (a *ArticleRecord) IsValid() bool {
	if a.Title == "" {
		return false
	}

	if a.Text == "" {
		return false
	}

	return true
}

// IsAnalyzed reports whether the analyzer has enriched the article
func (a *ArticleRecord) IsAnalyzed() bool {
	return a.Summary != "" && len(a.Topics) > 0
}

// DeriveArticleID returns a stable identifier for an article. The same URL
// always yields the same id so repeated ingestion updates instead of
// duplicating. Falls back to the title when no URL is present, and to a
// fresh random id when neither exists.
func DeriveArticleID(a *ArticleRecord) string {
	if a.URL != "" {
		return uuid.NewMD5(uuid.NameSpaceURL, []byte(a.URL)).String()
	}

	if a.Title != "" {
		return uuid.NewMD5(uuid.NameSpaceURL, []byte(a.Title)).String()
	}

	return uuid.NewString()
}

// DeriveTopicID returns the stable identifier for a topic name.
func DeriveTopicID(topic string) string {
	return uuid.NewMD5(uuid.NameSpaceURL, []byte(topic)).String()
}
