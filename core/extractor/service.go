// ABOUTME: Content extractor turning URLs into normalized article records
// ABOUTME: Tries readability extraction first, then the DOM heuristic fallback

package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"news-genai-api/core/domain"
	coreerrors "news-genai-api/core/errors"
	"news-genai-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const minBodyLength = 100

// Service extracts article content from URLs using a two-tier strategy:
// library-assisted readability parsing first, DOM heuristics as fallback.
type Service struct {
	deps interfaces.Dependencies
}

// NewService creates a new extractor service instance
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{deps: deps}
}

// Extract fetches a URL and returns a normalized article record. Network
// errors and non-2xx responses yield a FetchError; pages that parse but
// fall below the quality threshold yield an InsufficientContentError.
func (s *Service) Extract(ctx context.Context, rawURL string) (*domain.ArticleRecord, error) {
	if s.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, rawURL)
	if err != nil {
		return nil, &coreerrors.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &coreerrors.FetchError{URL: rawURL, StatusCode: resp.StatusCode()}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, &coreerrors.FetchError{URL: rawURL, Err: err}
	}

	if article := s.extractStructured(rawURL, body); article != nil {
		return article, nil
	}

	return s.extractHeuristic(rawURL, body)
}

// ExtractMany applies Extract per URL, preserving input order and silently
// skipping URLs that fail. Individual failures are logged, never raised.
func (s *Service) ExtractMany(ctx context.Context, urls []string) []*domain.ArticleRecord {
	articles := make([]*domain.ArticleRecord, 0, len(urls))
	for _, u := range urls {
		article, err := s.Extract(ctx, u)
		if err != nil {
			s.deps.Logger.Warn("Failed to extract article", map[string]interface{}{
				"url":   u,
				"error": err.Error(),
			})
			continue
		}
		articles = append(articles, article)
	}
	return articles
}

// extractStructured runs the readability parser over the fetched page.
// Returns nil when the parse fails or yields an empty title or body, so
// the caller can fall through to the heuristic tier.
func (s *Service) extractStructured(rawURL string, body []byte) *domain.ArticleRecord {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		s.deps.Logger.Debug("Readability parse failed, trying heuristics", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return nil
	}

	title := strings.TrimSpace(article.Title)
	text := strings.TrimSpace(article.TextContent)
	if title == "" || len(text) <= minBodyLength {
		return nil
	}

	return &domain.ArticleRecord{
		URL:       rawURL,
		Title:     title,
		Text:      text,
		Authors:   splitByline(article.Byline),
		Published: article.PublishedTime,
		Source:    sourceFromURL(rawURL),
		Extractor: "readability",
	}
}

// extractHeuristic recovers each field independently through its heuristic
// chain. The result is only accepted when both title and text are present
// and the text exceeds the minimum body length.
func (s *Service) extractHeuristic(rawURL string, body []byte) (*domain.ArticleRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &coreerrors.InsufficientContentError{URL: rawURL, Reason: "unparseable document"}
	}

	title := findTitle(doc)
	text := extractBodyText(doc, findBodyContainer(doc))

	if title == "" || len(text) <= minBodyLength {
		return nil, &coreerrors.InsufficientContentError{
			URL:    rawURL,
			Reason: fmt.Sprintf("title or body below quality threshold (%d chars of text)", len(text)),
		}
	}

	return &domain.ArticleRecord{
		URL:       rawURL,
		Title:     title,
		Text:      text,
		Authors:   findAuthors(doc),
		Published: findDate(doc),
		Source:    sourceFromURL(rawURL),
		Extractor: "heuristic",
	}, nil
}

// splitByline turns a comma-joined byline into discrete author names.
func splitByline(byline string) []string {
	byline = strings.TrimSpace(byline)
	if byline == "" {
		return nil
	}
	return cleanAuthors(strings.Split(byline, ","))
}
