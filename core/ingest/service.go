// ABOUTME: Ingestion pipeline chaining extraction, analysis, enrichment, and storage
// ABOUTME: Also resolves RSS/Atom feeds into article URLs for bulk ingestion

package ingest

import (
	"context"
	"net/url"
	"strings"

	"news-genai-api/core/domain"
	coreerrors "news-genai-api/core/errors"
	"news-genai-api/core/interfaces"

	"github.com/mmcdole/gofeed"
)

// Service runs the full URL-to-storage pipeline
type Service struct {
	deps      interfaces.Dependencies
	extractor interfaces.ArticleExtractor
	analyzer  interfaces.ArticleAnalyzer
	store     interfaces.ArticleStore
	metadata  interfaces.MetadataService
}

// NewService creates a new ingestion service. The metadata service is
// optional; when nil, thumbnail enrichment is skipped.
func NewService(deps interfaces.Dependencies, extractor interfaces.ArticleExtractor, analyzer interfaces.ArticleAnalyzer, store interfaces.ArticleStore, metadata interfaces.MetadataService) *Service {
	return &Service{
		deps:      deps,
		extractor: extractor,
		analyzer:  analyzer,
		store:     store,
		metadata:  metadata,
	}
}

// IngestURLs extracts, analyzes, enriches, and persists the given URLs,
// returning the persisted article ids in input order. URLs that fail
// validation, extraction, or analysis are skipped with a log entry; a
// storage failure surfaces because it loses already-analyzed work.
func (s *Service) IngestURLs(ctx context.Context, urls []string) ([]string, error) {
	valid := validateURLs(urls)
	if len(valid) == 0 {
		return nil, &coreerrors.ValidationError{Field: "urls", Message: "no valid http or https URLs provided"}
	}
	if len(valid) < len(urls) {
		s.deps.Logger.Warn("Dropping invalid URLs from ingestion batch", map[string]interface{}{
			"provided": len(urls),
			"valid":    len(valid),
		})
	}

	extracted := s.extractor.ExtractMany(ctx, valid)
	if len(extracted) == 0 {
		return []string{}, nil
	}

	analyzed := make([]*domain.ArticleRecord, 0, len(extracted))
	for _, article := range extracted {
		if err := s.analyzer.AnalyzeArticle(ctx, article); err != nil {
			s.deps.Logger.Warn("Skipping article after analysis failure", map[string]interface{}{
				"url":   article.URL,
				"error": err.Error(),
			})
			continue
		}
		analyzed = append(analyzed, article)
	}
	if len(analyzed) == 0 {
		return []string{}, nil
	}

	s.enrichMetadata(ctx, analyzed)

	ids, err := s.store.StoreArticles(ctx, analyzed)
	if err != nil {
		return nil, coreerrors.WrapError(err, "persist ingested articles")
	}

	s.deps.Logger.Info("Ingestion batch complete", map[string]interface{}{
		"requested": len(urls),
		"stored":    len(ids),
	})
	return ids, nil
}

// IngestFeed resolves an RSS or Atom feed into its item URLs and ingests
// up to max of them. A max of zero or less ingests every item.
func (s *Service) IngestFeed(ctx context.Context, feedURL string, max int) ([]string, error) {
	if !isValidURL(feedURL) {
		return nil, &coreerrors.ValidationError{Field: "feed_url", Message: "feed URL must be absolute http or https"}
	}

	resp, err := s.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return nil, &coreerrors.FetchError{URL: feedURL, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &coreerrors.FetchError{URL: feedURL, StatusCode: resp.StatusCode()}
	}

	feed, err := gofeed.NewParser().Parse(resp.Body())
	if err != nil {
		return nil, &coreerrors.InsufficientContentError{URL: feedURL, Reason: "unparseable feed"}
	}

	var urls []string
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		urls = append(urls, link)
		if max > 0 && len(urls) == max {
			break
		}
	}
	if len(urls) == 0 {
		return nil, &coreerrors.InsufficientContentError{URL: feedURL, Reason: "feed has no item links"}
	}

	s.deps.Logger.Info("Resolved feed for ingestion", map[string]interface{}{
		"feed":  feedURL,
		"items": len(urls),
	})
	return s.IngestURLs(ctx, urls)
}

// enrichMetadata fills missing thumbnails from scraped page metadata.
// Enrichment is best effort and never fails the batch.
func (s *Service) enrichMetadata(ctx context.Context, articles []*domain.ArticleRecord) {
	if s.metadata == nil {
		return
	}

	var pending []string
	for _, article := range articles {
		if article.Thumbnail == "" {
			pending = append(pending, article.URL)
		}
	}
	if len(pending) == 0 {
		return
	}

	scraped := s.metadata.ExtractMetadataBatch(ctx, pending)
	for _, article := range articles {
		if meta, ok := scraped[article.URL]; ok && meta != nil && article.Thumbnail == "" {
			article.Thumbnail = meta.Thumbnail
		}
	}
}

// validateURLs filters the input down to absolute http(s) URLs, order kept.
func validateURLs(urls []string) []string {
	var valid []string
	for _, raw := range urls {
		if isValidURL(raw) {
			valid = append(valid, raw)
		}
	}
	return valid
}

func isValidURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
