package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"news-genai-api/core/domain"
	coreerrors "news-genai-api/core/errors"
	"news-genai-api/core/interfaces"
)

func newTestService(store interfaces.ArticleStore, model interfaces.LanguageModel) *Service {
	return NewService(interfaces.Dependencies{Logger: &mockLogger{}}, store, model)
}

func article(id, title string) domain.ArticleRecord {
	return domain.ArticleRecord{ID: id, URL: "https://example.com/" + id, Title: title}
}

func TestSearch_EmptyQueryIsValidationError(t *testing.T) {
	service := newTestService(&mockArticleStore{}, nil)

	_, err := service.Search(context.Background(), "   ", false, 5, nil)

	if !coreerrors.IsValidation(err) {
		t.Errorf("Search should return ValidationError for an empty query, got %v", err)
	}
}

func TestSearch_DirectResultsOnly(t *testing.T) {
	store := &mockArticleStore{
		searchFunc: func(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
			return []domain.ArticleRecord{article("a", "A"), article("b", "B")}, nil
		},
	}
	service := newTestService(store, nil)

	results, err := service.Search(context.Background(), "economy", false, 5, nil)

	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search returned %d results, want 2", len(results))
	}
	if results[0].ID != "a" || results[1].ID != "b" {
		t.Errorf("Search should preserve store ordering, got %q then %q", results[0].ID, results[1].ID)
	}
}

func TestSearch_EnhanceFalseSkipsTopicDiscovery(t *testing.T) {
	topicCalls := 0
	store := &mockArticleStore{
		searchFunc: func(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
			return []domain.ArticleRecord{article("a", "A"), article("b", "B"), article("c", "C")}, nil
		},
		searchTopicsFunc: func(ctx context.Context, query string, limit int) ([]string, error) {
			topicCalls++
			return []string{"economy"}, nil
		},
	}
	service := newTestService(store, nil)

	results, err := service.Search(context.Background(), "economy", false, 2, nil)

	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Search returned %d results, want truncation to the limit", len(results))
	}
	if topicCalls != 0 {
		t.Error("topic discovery should not run when enhancement is off and the limit is met")
	}
}

func TestSearch_TopicDiscoveryFillsShortfall(t *testing.T) {
	store := &mockArticleStore{
		searchFunc: func(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
			return []domain.ArticleRecord{article("a", "A")}, nil
		},
		searchTopicsFunc: func(ctx context.Context, query string, limit int) ([]string, error) {
			if limit != 3 {
				t.Errorf("topic discovery limit = %d, want 3", limit)
			}
			return []string{"economy", "markets"}, nil
		},
		getArticlesByTopicsFunc: func(ctx context.Context, topics []string, limit int) ([]domain.ArticleRecord, error) {
			return []domain.ArticleRecord{article("a", "A"), article("b", "B"), article("c", "C")}, nil
		},
	}
	service := newTestService(store, nil)

	results, err := service.Search(context.Background(), "economy", true, 5, nil)

	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Search returned %d results, want 3 after cross-strategy dedup", len(results))
	}
	if results[0].ID != "a" || results[1].ID != "b" || results[2].ID != "c" {
		t.Errorf("direct hits should come first, got %q %q %q", results[0].ID, results[1].ID, results[2].ID)
	}
}

func TestSearch_DedupFallsBackToURL(t *testing.T) {
	unidentified := domain.ArticleRecord{URL: "https://example.com/same", Title: "Same"}
	store := &mockArticleStore{
		searchFunc: func(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
			return []domain.ArticleRecord{unidentified}, nil
		},
		searchTopicsFunc: func(ctx context.Context, query string, limit int) ([]string, error) {
			return []string{"economy"}, nil
		},
		getArticlesByTopicsFunc: func(ctx context.Context, topics []string, limit int) ([]domain.ArticleRecord, error) {
			return []domain.ArticleRecord{unidentified}, nil
		},
	}
	service := newTestService(store, nil)

	results, err := service.Search(context.Background(), "economy", true, 5, nil)

	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Search returned %d results, want URL-keyed dedup to 1", len(results))
	}
}

func TestSearch_CallerTopicFilterSkipsDiscovery(t *testing.T) {
	discoveryCalls := 0
	store := &mockArticleStore{
		searchFunc: func(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
			return []domain.ArticleRecord{article("a", "A")}, nil
		},
		searchTopicsFunc: func(ctx context.Context, query string, limit int) ([]string, error) {
			return []string{"economy"}, nil
		},
		getArticlesByTopicsFunc: func(ctx context.Context, topics []string, limit int) ([]domain.ArticleRecord, error) {
			discoveryCalls++
			return nil, nil
		},
	}
	service := newTestService(store, nil)

	_, err := service.Search(context.Background(), "economy", true, 5, []string{"markets"})

	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if discoveryCalls != 0 {
		t.Error("an explicit caller topic filter should suppress topic-assisted lookup")
	}
}

func TestSearch_FailureFallsBackToLowercaseQuery(t *testing.T) {
	var queries []string
	store := &mockArticleStore{
		searchFunc: func(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
			queries = append(queries, query)
			if len(queries) == 1 {
				return nil, errors.New("index unavailable")
			}
			return []domain.ArticleRecord{article("a", "A")}, nil
		},
	}
	service := newTestService(store, nil)

	results, err := service.Search(context.Background(), "Economy News", false, 5, nil)

	if err != nil {
		t.Fatalf("Search should never raise, got %v", err)
	}
	if len(queries) != 2 || queries[1] != "economy news" {
		t.Errorf("fallback should retry once with the lowercased query, got %v", queries)
	}
	if len(results) != 1 {
		t.Errorf("fallback results should be returned, got %d", len(results))
	}
}

func TestSearch_TotalFailureYieldsEmptyResults(t *testing.T) {
	store := &mockArticleStore{
		searchFunc: func(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
			return nil, errors.New("index unavailable")
		},
	}
	service := newTestService(store, nil)

	results, err := service.Search(context.Background(), "economy", false, 5, nil)

	if err != nil {
		t.Fatalf("Search should degrade to empty results, got error %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("Search should return an empty slice after total failure, got %v", results)
	}
}

func TestSearch_ServesCachedResults(t *testing.T) {
	searchCalls := 0
	store := &mockArticleStore{
		searchFunc: func(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
			searchCalls++
			return []domain.ArticleRecord{article("a", "A")}, nil
		},
	}
	cache := newMockCache()
	service := NewService(interfaces.Dependencies{Cache: cache, Logger: &mockLogger{}}, store, nil)

	if _, err := service.Search(context.Background(), "economy", false, 5, nil); err != nil {
		t.Fatalf("first Search returned error: %v", err)
	}
	results, err := service.Search(context.Background(), "economy", false, 5, nil)

	if err != nil {
		t.Fatalf("second Search returned error: %v", err)
	}
	if searchCalls != 1 {
		t.Errorf("store was queried %d times, want the second call served from cache", searchCalls)
	}
	if len(results) != 1 || results[0].ID != "a" {
		t.Errorf("cached results differ from original, got %v", results)
	}
}

func TestEnhanceQuery_RewritesThroughModel(t *testing.T) {
	model := &mockModel{
		completeFunc: func(ctx context.Context, prompt string) (string, error) {
			if !strings.Contains(prompt, "rates") {
				t.Errorf("prompt should contain the original query, got %q", prompt)
			}
			return "  interest rates central bank monetary policy  ", nil
		},
	}
	service := newTestService(&mockArticleStore{}, model)

	enhanced := service.EnhanceQuery(context.Background(), "rates")

	if enhanced != "interest rates central bank monetary policy" {
		t.Errorf("EnhanceQuery = %q, want the trimmed model output", enhanced)
	}
}

func TestEnhanceQuery_ModelFailureReturnsOriginal(t *testing.T) {
	model := &mockModel{
		completeFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("model down")
		},
	}
	service := newTestService(&mockArticleStore{}, model)

	if enhanced := service.EnhanceQuery(context.Background(), "rates"); enhanced != "rates" {
		t.Errorf("EnhanceQuery = %q, want the original query on failure", enhanced)
	}
}

func TestEnhanceQuery_NoModelReturnsOriginal(t *testing.T) {
	service := newTestService(&mockArticleStore{}, nil)

	if enhanced := service.EnhanceQuery(context.Background(), "rates"); enhanced != "rates" {
		t.Errorf("EnhanceQuery = %q, want the original query without a model", enhanced)
	}
}

func TestSearchTopics_DirectHitsSuffice(t *testing.T) {
	calls := 0
	store := &mockArticleStore{
		searchTopicsFunc: func(ctx context.Context, query string, limit int) ([]string, error) {
			calls++
			return []string{"economy", "markets"}, nil
		},
	}
	service := newTestService(store, nil)

	topics, err := service.SearchTopics(context.Background(), "economy", 2)

	if err != nil {
		t.Fatalf("SearchTopics returned error: %v", err)
	}
	if len(topics) != 2 {
		t.Errorf("SearchTopics = %v, want 2 topics", topics)
	}
	if calls != 1 {
		t.Errorf("store queried %d times, variants should not run when the limit is met", calls)
	}
}

func TestSearchTopics_VariantsFillShortfall(t *testing.T) {
	store := &mockArticleStore{
		searchTopicsFunc: func(ctx context.Context, query string, limit int) ([]string, error) {
			switch query {
			case "market":
				return []string{"markets"}, nil
			case "stock exchange":
				return []string{"stock market", "markets"}, nil
			default:
				return nil, nil
			}
		},
	}
	model := &mockModel{
		completeFunc: func(ctx context.Context, prompt string) (string, error) {
			return "stock exchange\ntrading", nil
		},
	}
	service := newTestService(store, model)

	topics, err := service.SearchTopics(context.Background(), "market", 3)

	if err != nil {
		t.Fatalf("SearchTopics returned error: %v", err)
	}
	if len(topics) != 2 || topics[0] != "markets" || topics[1] != "stock market" {
		t.Errorf("SearchTopics = %v, want direct hit plus deduplicated variant hit", topics)
	}
}

func TestSearchTopics_TrivialVariantsWithoutModel(t *testing.T) {
	var queried []string
	store := &mockArticleStore{
		searchTopicsFunc: func(ctx context.Context, query string, limit int) ([]string, error) {
			queried = append(queried, query)
			return nil, nil
		},
	}
	service := newTestService(store, nil)

	if _, err := service.SearchTopics(context.Background(), "rate", 3); err != nil {
		t.Fatalf("SearchTopics returned error: %v", err)
	}

	joined := strings.Join(queried, "|")
	if !strings.Contains(joined, "rates") {
		t.Errorf("without a model a pluralized variant should be tried, queried %v", queried)
	}
}

func TestSearchTopics_EmptyQueryIsValidationError(t *testing.T) {
	service := newTestService(&mockArticleStore{}, nil)

	_, err := service.SearchTopics(context.Background(), "", 3)

	if !coreerrors.IsValidation(err) {
		t.Errorf("SearchTopics should return ValidationError for an empty query, got %v", err)
	}
}
