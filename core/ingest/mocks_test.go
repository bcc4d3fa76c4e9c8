package ingest

import (
	"context"
	"io"
	"strings"

	"news-genai-api/core/domain"
	"news-genai-api/core/interfaces"
)

// mockExtractor is a mock implementation of the ArticleExtractor interface
type mockExtractor struct {
	extractFunc     func(ctx context.Context, url string) (*domain.ArticleRecord, error)
	extractManyFunc func(ctx context.Context, urls []string) []*domain.ArticleRecord
}

func (m *mockExtractor) Extract(ctx context.Context, url string) (*domain.ArticleRecord, error) {
	if m.extractFunc != nil {
		return m.extractFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockExtractor) ExtractMany(ctx context.Context, urls []string) []*domain.ArticleRecord {
	if m.extractManyFunc != nil {
		return m.extractManyFunc(ctx, urls)
	}
	return nil
}

// mockAnalyzer is a mock implementation of the ArticleAnalyzer interface
type mockAnalyzer struct {
	analyzeFunc func(ctx context.Context, article *domain.ArticleRecord) error
}

func (m *mockAnalyzer) AnalyzeArticle(ctx context.Context, article *domain.ArticleRecord) error {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, article)
	}
	return nil
}

// mockStore covers only the pipeline-facing half of the ArticleStore interface
type mockStore struct {
	storeArticlesFunc func(ctx context.Context, articles []*domain.ArticleRecord) ([]string, error)
}

func (m *mockStore) StoreArticle(ctx context.Context, article *domain.ArticleRecord) (string, error) {
	return "", nil
}

func (m *mockStore) StoreArticles(ctx context.Context, articles []*domain.ArticleRecord) ([]string, error) {
	if m.storeArticlesFunc != nil {
		return m.storeArticlesFunc(ctx, articles)
	}
	ids := make([]string, len(articles))
	for i, article := range articles {
		ids[i] = domain.DeriveArticleID(article)
	}
	return ids, nil
}

func (m *mockStore) UpdateArticleTopics(ctx context.Context, articleID string, topics []string) error {
	return nil
}

func (m *mockStore) GetArticle(ctx context.Context, articleID string) (*domain.ArticleRecord, error) {
	return nil, nil
}

func (m *mockStore) Search(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
	return nil, nil
}

func (m *mockStore) SearchTopics(ctx context.Context, query string, limit int) ([]string, error) {
	return nil, nil
}

func (m *mockStore) GetArticlesByTopics(ctx context.Context, topics []string, limit int) ([]domain.ArticleRecord, error) {
	return nil, nil
}

func (m *mockStore) GetSimilarArticles(ctx context.Context, articleID string, limit int) ([]domain.ArticleRecord, error) {
	return nil, nil
}

// mockMetadata is a mock implementation of the MetadataService interface
type mockMetadata struct {
	batchFunc func(ctx context.Context, urls []string) map[string]*interfaces.PageMetadata
}

func (m *mockMetadata) ExtractMetadata(ctx context.Context, url string) (*interfaces.PageMetadata, error) {
	return nil, nil
}

func (m *mockMetadata) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.PageMetadata {
	if m.batchFunc != nil {
		return m.batchFunc(ctx, urls)
	}
	return nil
}

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, nil
}

func (m *mockHTTPClient) Put(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	return ""
}

// mockLogger is a no-op logger
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
