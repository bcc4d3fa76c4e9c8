package search

import (
	"context"
	"sync"
	"time"

	"news-genai-api/core/domain"
)

// mockArticleStore is a mock implementation of the ArticleStore interface
type mockArticleStore struct {
	storeArticleFunc        func(ctx context.Context, article *domain.ArticleRecord) (string, error)
	storeArticlesFunc       func(ctx context.Context, articles []*domain.ArticleRecord) ([]string, error)
	updateArticleTopicsFunc func(ctx context.Context, articleID string, topics []string) error
	getArticleFunc          func(ctx context.Context, articleID string) (*domain.ArticleRecord, error)
	searchFunc              func(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error)
	searchTopicsFunc        func(ctx context.Context, query string, limit int) ([]string, error)
	getArticlesByTopicsFunc func(ctx context.Context, topics []string, limit int) ([]domain.ArticleRecord, error)
	getSimilarArticlesFunc  func(ctx context.Context, articleID string, limit int) ([]domain.ArticleRecord, error)
}

func (m *mockArticleStore) StoreArticle(ctx context.Context, article *domain.ArticleRecord) (string, error) {
	if m.storeArticleFunc != nil {
		return m.storeArticleFunc(ctx, article)
	}
	return "", nil
}

func (m *mockArticleStore) StoreArticles(ctx context.Context, articles []*domain.ArticleRecord) ([]string, error) {
	if m.storeArticlesFunc != nil {
		return m.storeArticlesFunc(ctx, articles)
	}
	return nil, nil
}

func (m *mockArticleStore) UpdateArticleTopics(ctx context.Context, articleID string, topics []string) error {
	if m.updateArticleTopicsFunc != nil {
		return m.updateArticleTopicsFunc(ctx, articleID, topics)
	}
	return nil
}

func (m *mockArticleStore) GetArticle(ctx context.Context, articleID string) (*domain.ArticleRecord, error) {
	if m.getArticleFunc != nil {
		return m.getArticleFunc(ctx, articleID)
	}
	return nil, nil
}

func (m *mockArticleStore) Search(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, limit, filterTopics)
	}
	return nil, nil
}

func (m *mockArticleStore) SearchTopics(ctx context.Context, query string, limit int) ([]string, error) {
	if m.searchTopicsFunc != nil {
		return m.searchTopicsFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockArticleStore) GetArticlesByTopics(ctx context.Context, topics []string, limit int) ([]domain.ArticleRecord, error) {
	if m.getArticlesByTopicsFunc != nil {
		return m.getArticlesByTopicsFunc(ctx, topics, limit)
	}
	return nil, nil
}

func (m *mockArticleStore) GetSimilarArticles(ctx context.Context, articleID string, limit int) ([]domain.ArticleRecord, error) {
	if m.getSimilarArticlesFunc != nil {
		return m.getSimilarArticlesFunc(ctx, articleID, limit)
	}
	return nil, nil
}

// mockModel is a mock implementation of the LanguageModel interface
type mockModel struct {
	completeFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockModel) Complete(ctx context.Context, prompt string) (string, error) {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, prompt)
	}
	return "", nil
}

// mockCache is an in-memory cache for testing
type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockLogger is a no-op logger
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
