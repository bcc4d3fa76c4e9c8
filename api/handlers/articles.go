// ABOUTME: Article handlers for extraction, analysis, and ingestion endpoints
// ABOUTME: Chains the extractor, analyzer, and ingestion pipeline behind Huma operations

package handlers

import (
	"context"
	"net/http"

	"news-genai-api/api/dto/mappers"
	"news-genai-api/api/dto/requests"
	"news-genai-api/api/dto/responses"
	"news-genai-api/core/domain"
	coreerrors "news-genai-api/core/errors"
	"news-genai-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
)

// IngestService defines the pipeline methods the article handler needs
type IngestService interface {
	IngestURLs(ctx context.Context, urls []string) ([]string, error)
	IngestFeed(ctx context.Context, feedURL string, max int) ([]string, error)
}

// ArticleAnalyzer enriches extracted articles with summaries and topics
type ArticleAnalyzer interface {
	AnalyzeArticles(ctx context.Context, articles []*domain.ArticleRecord) []*domain.ArticleRecord
}

// ArticleHandler handles extraction and ingestion HTTP requests
type ArticleHandler struct {
	extractor interfaces.ArticleExtractor
	analyzer  ArticleAnalyzer
	ingest    IngestService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(extractor interfaces.ArticleExtractor, analyzer ArticleAnalyzer, ingest IngestService) *ArticleHandler {
	return &ArticleHandler{
		extractor: extractor,
		analyzer:  analyzer,
		ingest:    ingest,
	}
}

// RegisterRoutes registers all article-related routes
func (h *ArticleHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extractArticles",
		Method:      http.MethodPost,
		Path:        "/extract",
		Summary:     "Extract article content from URLs",
		Description: "Fetches each URL and extracts title, body text, authors, and publication date",
		Tags:        []string{"Articles"},
	}, h.Extract)

	huma.Register(api, huma.Operation{
		OperationID: "analyzeArticles",
		Method:      http.MethodPost,
		Path:        "/analyze",
		Summary:     "Extract and analyze articles",
		Description: "Extracts article content and enriches it with a generated summary and topics",
		Tags:        []string{"Articles"},
	}, h.Analyze)

	huma.Register(api, huma.Operation{
		OperationID: "storeArticles",
		Method:      http.MethodPost,
		Path:        "/store",
		Summary:     "Extract, analyze, and store articles",
		Description: "Runs the full pipeline and persists the results for semantic search",
		Tags:        []string{"Articles"},
	}, h.Store)

	huma.Register(api, huma.Operation{
		OperationID: "storeFeed",
		Method:      http.MethodPost,
		Path:        "/store/feed",
		Summary:     "Ingest articles from an RSS/Atom feed",
		Description: "Resolves the feed into item URLs and runs the full pipeline on them",
		Tags:        []string{"Articles"},
	}, h.StoreFeed)
}

// ExtractInput defines the input for the Extract operation
type ExtractInput struct {
	Body requests.ExtractRequest
}

// ExtractOutput defines the output for the Extract operation
type ExtractOutput struct {
	Body responses.ExtractResponse
}

// Extract handles the POST /extract endpoint
func (h *ArticleHandler) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	articles := h.extractor.ExtractMany(ctx, input.Body.URLs)
	if len(articles) == 0 {
		return nil, toHumaError(&coreerrors.InsufficientContentError{
			URL:    "batch",
			Reason: "no article content could be extracted from the given URLs",
		})
	}

	return &ExtractOutput{
		Body: responses.ExtractResponse{Articles: mappers.ToArticleResponses(articles)},
	}, nil
}

// AnalyzeInput defines the input for the Analyze operation
type AnalyzeInput struct {
	Body requests.ExtractRequest
}

// AnalyzeOutput defines the output for the Analyze operation
type AnalyzeOutput struct {
	Body responses.ExtractResponse
}

// Analyze handles the POST /analyze endpoint
func (h *ArticleHandler) Analyze(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error) {
	articles := h.extractor.ExtractMany(ctx, input.Body.URLs)
	if len(articles) == 0 {
		return nil, toHumaError(&coreerrors.InsufficientContentError{
			URL:    "batch",
			Reason: "no article content could be extracted from the given URLs",
		})
	}

	analyzed := h.analyzer.AnalyzeArticles(ctx, articles)
	if len(analyzed) == 0 {
		return nil, toHumaError(&coreerrors.ModelUnavailableError{Operation: "analyze batch"})
	}

	return &AnalyzeOutput{
		Body: responses.ExtractResponse{Articles: mappers.ToArticleResponses(analyzed)},
	}, nil
}

// IngestInput defines the input for the Store operation
type IngestInput struct {
	Body requests.IngestRequest
}

// IngestOutput defines the output for the Store operation
type IngestOutput struct {
	Body responses.IngestResponse
}

// Store handles the POST /store endpoint
func (h *ArticleHandler) Store(ctx context.Context, input *IngestInput) (*IngestOutput, error) {
	ids, err := h.ingest.IngestURLs(ctx, input.Body.URLs)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &IngestOutput{
		Body: responses.IngestResponse{IDs: ids},
	}, nil
}

// IngestFeedInput defines the input for the StoreFeed operation
type IngestFeedInput struct {
	Body requests.IngestFeedRequest
}

// StoreFeed handles the POST /store/feed endpoint
func (h *ArticleHandler) StoreFeed(ctx context.Context, input *IngestFeedInput) (*IngestOutput, error) {
	ids, err := h.ingest.IngestFeed(ctx, input.Body.FeedURL, input.Body.Max)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &IngestOutput{
		Body: responses.IngestResponse{IDs: ids},
	}, nil
}
