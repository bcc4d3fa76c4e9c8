// ABOUTME: Article analyzer generating summaries and topic tags via the language model
// ABOUTME: Parses free-form model output into a bounded, deduplicated topic list

package analysis

import (
	"context"
	"fmt"
	"strings"

	"news-genai-api/core/domain"
	coreerrors "news-genai-api/core/errors"
	"news-genai-api/core/interfaces"
)

const (
	// maxPromptTextLength bounds the article body sent to the model
	maxPromptTextLength = 4000

	// maxTopics caps the analyzer-assigned topic list
	maxTopics = 7

	// fallbackTopic guarantees every analyzed article has at least one tag
	fallbackTopic = "general news"
)

const summaryPromptTemplate = `Article Title: %s

Article Content: %s

Task: Generate a concise summary of the above news article that captures all key points.
The summary should be 3-5 sentences long and highlight the most important information.

Summary:`

const topicsPromptTemplate = `Article Title: %s

Article Content: %s

Task: Extract the main topics from this news article.
Provide a list of 3-7 topics that accurately represent what the article is about.
Each topic should be 1-3 words and should be relevant for search indexing.

Topics:`

// Service enriches article records with a summary and topic tags
type Service struct {
	deps  interfaces.Dependencies
	model interfaces.LanguageModel
}

// NewService creates a new analyzer service instance
func NewService(deps interfaces.Dependencies, model interfaces.LanguageModel) *Service {
	return &Service{
		deps:  deps,
		model: model,
	}
}

// AnalyzeArticle generates a summary and topics for the article, enriching
// the record in place. A model failure yields a ModelUnavailableError so
// callers can skip the article without aborting a batch.
func (s *Service) AnalyzeArticle(ctx context.Context, article *domain.ArticleRecord) error {
	if s.model == nil {
		return &coreerrors.ModelUnavailableError{Operation: "analyze article"}
	}

	text := truncateText(article.Text, maxPromptTextLength)

	summary, err := s.model.Complete(ctx, fmt.Sprintf(summaryPromptTemplate, article.Title, text))
	if err != nil {
		return &coreerrors.ModelUnavailableError{Operation: "generate summary", Err: err}
	}

	topicsRaw, err := s.model.Complete(ctx, fmt.Sprintf(topicsPromptTemplate, article.Title, text))
	if err != nil {
		return &coreerrors.ModelUnavailableError{Operation: "extract topics", Err: err}
	}

	article.Summary = strings.TrimSpace(summary)
	article.Topics = ParseTopics(topicsRaw)

	return nil
}

// AnalyzeArticles analyzes multiple articles, skipping any whose analysis
// fails and preserving input order for the rest.
func (s *Service) AnalyzeArticles(ctx context.Context, articles []*domain.ArticleRecord) []*domain.ArticleRecord {
	analyzed := make([]*domain.ArticleRecord, 0, len(articles))
	for _, article := range articles {
		if err := s.AnalyzeArticle(ctx, article); err != nil {
			s.deps.Logger.Warn("Skipping article after analysis failure", map[string]interface{}{
				"url":   article.URL,
				"error": err.Error(),
			})
			continue
		}
		analyzed = append(analyzed, article)
	}
	return analyzed
}

// ParseTopics turns free-form model output into an ordered topic list:
// one topic per line, numbering and bullet prefixes stripped, empties
// dropped, case-insensitive dedup preserving first casing, capped at the
// topic limit. Never returns an empty list.
func ParseTopics(raw string) []string {
	seen := make(map[string]bool)
	var topics []string

	for _, line := range strings.Split(raw, "\n") {
		topic := stripListPrefix(strings.TrimSpace(line))
		topic = strings.Trim(topic, `"'`)
		if topic == "" || strings.EqualFold(topic, "topics:") {
			continue
		}

		key := strings.ToLower(topic)
		if seen[key] {
			continue
		}
		seen[key] = true

		topics = append(topics, topic)
		if len(topics) == maxTopics {
			break
		}
	}

	if len(topics) == 0 {
		return []string{fallbackTopic}
	}
	return topics
}

// stripListPrefix removes "1.", "2)", "-", "*" style list markers.
func stripListPrefix(line string) string {
	trimmed := strings.TrimLeft(line, "-*• \t")

	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(trimmed) && (trimmed[digits] == '.' || trimmed[digits] == ')') {
		trimmed = trimmed[digits+1:]
	}

	return strings.TrimSpace(trimmed)
}

// truncateText bounds the article body sent to the model.
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
