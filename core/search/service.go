// ABOUTME: Result fusion engine combining vector, keyword, and topic search strategies
// ABOUTME: Merges, deduplicates, and truncates results; search never raises to its caller

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"news-genai-api/core/domain"
	coreerrors "news-genai-api/core/errors"
	"news-genai-api/core/interfaces"
)

const (
	// defaultLimit applies when the caller requests no explicit limit
	defaultLimit = 5

	// maxDiscoveryTopics bounds topic-assisted discovery per query
	maxDiscoveryTopics = 3

	// resultCacheTTL is how long fused result lists stay cached
	resultCacheTTL = 5 * time.Minute
)

const enhancePromptTemplate = `Original search query: %s

Task: Enhance this search query for finding news articles.
Identify the key concepts, add relevant synonyms or related terms,
and rewrite it to maximize semantic search effectiveness.
Respond with the enhanced query only.

Enhanced query:`

const topicVariantsPromptTemplate = `Search term: %s

Task: List up to %d alternative phrasings, synonyms, or closely related
terms for this search term, one per line. Respond with the terms only.

Alternatives:`

// Service fuses results from multiple search strategies against the store
type Service struct {
	deps  interfaces.Dependencies
	store interfaces.ArticleStore
	model interfaces.LanguageModel
}

// NewService creates a new fusion search service instance
func NewService(deps interfaces.Dependencies, store interfaces.ArticleStore, model interfaces.LanguageModel) *Service {
	return &Service{
		deps:  deps,
		store: store,
		model: model,
	}
}

// accumulator merges results from successive strategies, deduplicating by
// article id (URL when the id is absent) in insertion order.
type accumulator struct {
	seen    map[string]bool
	results []domain.ArticleRecord
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[string]bool)}
}

func (a *accumulator) add(articles []domain.ArticleRecord) {
	for _, article := range articles {
		key := article.ID
		if key == "" {
			key = article.URL
		}
		if key != "" && a.seen[key] {
			continue
		}
		if key != "" {
			a.seen[key] = true
		}
		a.results = append(a.results, article)
	}
}

func (a *accumulator) truncated(limit int) []domain.ArticleRecord {
	if len(a.results) > limit {
		return a.results[:limit]
	}
	return a.results
}

// Search runs the fusion pipeline: a direct similarity lookup, then
// topic-assisted discovery when enhancement is requested and the direct
// results fall short of the limit. An empty query is a validation error;
// any other failure degrades to a single lowercase retry and finally to an
// empty result list.
func (s *Service) Search(ctx context.Context, query string, enhance bool, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &coreerrors.ValidationError{Field: "query", Message: "search query cannot be empty"}
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	if cached := s.getCachedResults(ctx, query, enhance, limit, filterTopics); cached != nil {
		return cached, nil
	}

	results, err := s.runStrategies(ctx, query, enhance, limit, filterTopics)
	if err != nil {
		s.deps.Logger.Warn("Search strategies failed, falling back to plain lookup", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		fallback, ferr := s.store.Search(ctx, strings.ToLower(query), limit, filterTopics)
		if ferr != nil {
			s.deps.Logger.Error("Fallback search failed", map[string]interface{}{
				"query": query,
				"error": ferr.Error(),
			})
			return []domain.ArticleRecord{}, nil
		}
		if len(fallback) > limit {
			fallback = fallback[:limit]
		}
		return fallback, nil
	}

	s.cacheResults(ctx, query, enhance, limit, filterTopics, results)
	return results, nil
}

// runStrategies executes the ordered search strategies against the store.
func (s *Service) runStrategies(ctx context.Context, query string, enhance bool, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
	acc := newAccumulator()

	direct, err := s.store.Search(ctx, query, limit, filterTopics)
	if err != nil {
		return nil, coreerrors.WrapError(err, "direct search")
	}
	acc.add(direct)

	if len(acc.results) >= limit && !enhance {
		return acc.truncated(limit), nil
	}

	if enhance && len(acc.results) < limit {
		topics, err := s.store.SearchTopics(ctx, query, maxDiscoveryTopics)
		if err != nil {
			return nil, coreerrors.WrapError(err, "topic discovery")
		}

		// An explicit caller filter already constrains topics; don't fight it
		if len(topics) > 0 && len(filterTopics) == 0 {
			related, err := s.store.GetArticlesByTopics(ctx, topics, limit)
			if err != nil {
				return nil, coreerrors.WrapError(err, "topic-assisted lookup")
			}
			acc.add(related)
		}
	}

	return acc.truncated(limit), nil
}

// EnhanceQuery rewrites the query through the language model to add
// synonyms and related terms. Enhancement failure is never fatal: the
// original query is returned unchanged.
func (s *Service) EnhanceQuery(ctx context.Context, query string) string {
	if s.model == nil {
		return query
	}

	enhanced, err := s.model.Complete(ctx, fmt.Sprintf(enhancePromptTemplate, query))
	if err != nil {
		s.deps.Logger.Warn("Query enhancement failed, using original query", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return query
	}

	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		return query
	}
	return enhanced
}

// SearchTopics looks the query up in the topic index, expanding it into
// synonym variants when the direct lookup falls short of the limit.
func (s *Service) SearchTopics(ctx context.Context, query string, limit int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &coreerrors.ValidationError{Field: "query", Message: "topic query cannot be empty"}
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	topics, err := s.store.SearchTopics(ctx, query, limit)
	if err != nil {
		return nil, coreerrors.WrapError(err, "topic search")
	}
	if len(topics) >= limit {
		return topics[:limit], nil
	}

	seen := make(map[string]bool, len(topics))
	for _, topic := range topics {
		seen[strings.ToLower(topic)] = true
	}

	for _, variant := range s.queryVariants(ctx, query, limit) {
		if len(topics) >= limit {
			break
		}
		more, err := s.store.SearchTopics(ctx, variant, limit)
		if err != nil {
			s.deps.Logger.Debug("Variant topic lookup failed", map[string]interface{}{
				"variant": variant,
				"error":   err.Error(),
			})
			continue
		}
		for _, topic := range more {
			key := strings.ToLower(topic)
			if seen[key] {
				continue
			}
			seen[key] = true
			topics = append(topics, topic)
			if len(topics) >= limit {
				break
			}
		}
	}

	return topics, nil
}

// queryVariants asks the model for synonym variants, degrading to trivial
// case variants and naive pluralization when the model is unavailable.
func (s *Service) queryVariants(ctx context.Context, query string, limit int) []string {
	if s.model != nil {
		raw, err := s.model.Complete(ctx, fmt.Sprintf(topicVariantsPromptTemplate, query, limit))
		if err == nil {
			var variants []string
			for _, line := range strings.Split(raw, "\n") {
				if line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789.) ")); line != "" {
					variants = append(variants, line)
				}
			}
			if len(variants) > 0 {
				return variants
			}
		} else {
			s.deps.Logger.Debug("Variant generation failed, using trivial variants", map[string]interface{}{
				"query": query,
				"error": err.Error(),
			})
		}
	}

	variants := []string{strings.ToLower(query), strings.ToUpper(query[:1]) + query[1:]}
	if !strings.HasSuffix(query, "s") {
		variants = append(variants, query+"s")
	}
	return variants
}

// getCachedResults returns a previously fused result list, or nil on miss
func (s *Service) getCachedResults(ctx context.Context, query string, enhance bool, limit int, filterTopics []string) []domain.ArticleRecord {
	if s.deps.Cache == nil {
		return nil
	}
	data, err := s.deps.Cache.Get(ctx, searchCacheKey(query, enhance, limit, filterTopics))
	if err != nil || data == nil {
		return nil
	}
	var results []domain.ArticleRecord
	if err := json.Unmarshal(data, &results); err != nil {
		return nil
	}
	return results
}

// cacheResults stores a fused result list (cache errors are ignored)
func (s *Service) cacheResults(ctx context.Context, query string, enhance bool, limit int, filterTopics []string, results []domain.ArticleRecord) {
	if s.deps.Cache == nil || len(results) == 0 {
		return
	}
	if data, err := json.Marshal(results); err == nil {
		_ = s.deps.Cache.Set(ctx, searchCacheKey(query, enhance, limit, filterTopics), data, resultCacheTTL)
	}
}

func searchCacheKey(query string, enhance bool, limit int, filterTopics []string) string {
	return fmt.Sprintf("search:articles:%s:%t:%d:%s", query, enhance, limit, strings.Join(filterTopics, ","))
}
