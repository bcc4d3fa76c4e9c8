// ABOUTME: Search handlers for fused article search, topic lookup, and similarity
// ABOUTME: Applies query enhancement at the edge before delegating to the fusion engine

package handlers

import (
	"context"
	"net/http"

	"news-genai-api/api/dto/mappers"
	"news-genai-api/api/dto/requests"
	"news-genai-api/api/dto/responses"
	"news-genai-api/core/domain"

	"github.com/danielgtaylor/huma/v2"
)

// SearchService defines the fusion engine methods the search handler needs
type SearchService interface {
	Search(ctx context.Context, query string, enhance bool, limit int, filterTopics []string) ([]domain.ArticleRecord, error)
	EnhanceQuery(ctx context.Context, query string) string
	SearchTopics(ctx context.Context, query string, limit int) ([]string, error)
}

// SimilarityService resolves similar-article lookups
type SimilarityService interface {
	GetSimilarArticles(ctx context.Context, articleID string, limit int) ([]domain.ArticleRecord, error)
}

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	search     SearchService
	similarity SimilarityService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search SearchService, similarity SimilarityService) *SearchHandler {
	return &SearchHandler{
		search:     search,
		similarity: similarity,
	}
}

// RegisterRoutes registers all search-related routes
func (h *SearchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "searchArticles",
		Method:      http.MethodPost,
		Path:        "/search",
		Summary:     "Search stored articles",
		Description: "Semantic search with optional query enhancement and topic-assisted discovery",
		Tags:        []string{"Search"},
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID: "searchTopics",
		Method:      http.MethodGet,
		Path:        "/topics",
		Summary:     "Search known topics",
		Description: "Returns topic names similar to the query",
		Tags:        []string{"Search"},
	}, h.Topics)

	huma.Register(api, huma.Operation{
		OperationID: "similarArticles",
		Method:      http.MethodGet,
		Path:        "/articles/{id}/similar",
		Summary:     "Find articles similar to a stored one",
		Description: "Returns the nearest stored articles, excluding the reference itself",
		Tags:        []string{"Search"},
	}, h.Similar)
}

// SearchInput defines the input for the Search operation
type SearchInput struct {
	Body requests.SearchRequest
}

// SearchOutput defines the output for the Search operation
type SearchOutput struct {
	Body responses.SearchResponse
}

// Search handles the POST /search endpoint. Enhancement rewrites the query
// before the fusion engine sees it, so strategy ordering stays uniform.
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	input.Body.ApplyDefaults()

	query := input.Body.Query
	if input.Body.Enhance {
		query = h.search.EnhanceQuery(ctx, query)
	}

	results, err := h.search.Search(ctx, query, input.Body.Enhance, input.Body.Limit, input.Body.Topics)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &SearchOutput{
		Body: responses.SearchResponse{
			Results: mappers.ToArticleResponsesFromValues(results),
			Query:   query,
		},
	}, nil
}

// TopicsInput defines the input for the Topics operation
type TopicsInput struct {
	Query string `query:"query" required:"true" minLength:"1" doc:"Topic search query"`
	Limit int    `query:"limit" minimum:"1" maximum:"50" default:"5" doc:"Maximum number of topics"`
}

// TopicsOutput defines the output for the Topics operation
type TopicsOutput struct {
	Body responses.TopicsResponse
}

// Topics handles the GET /topics endpoint
func (h *SearchHandler) Topics(ctx context.Context, input *TopicsInput) (*TopicsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 5
	}

	topics, err := h.search.SearchTopics(ctx, input.Query, limit)
	if err != nil {
		return nil, toHumaError(err)
	}
	if topics == nil {
		topics = []string{}
	}

	return &TopicsOutput{
		Body: responses.TopicsResponse{Topics: topics},
	}, nil
}

// SimilarInput defines the input for the Similar operation
type SimilarInput struct {
	ID    string `path:"id" doc:"Stored article identifier"`
	Limit int    `query:"limit" minimum:"1" maximum:"50" default:"5" doc:"Maximum number of similar articles"`
}

// SimilarOutput defines the output for the Similar operation
type SimilarOutput struct {
	Body responses.SearchResponse
}

// Similar handles the GET /articles/{id}/similar endpoint
func (h *SearchHandler) Similar(ctx context.Context, input *SimilarInput) (*SimilarOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 5
	}

	results, err := h.similarity.GetSimilarArticles(ctx, input.ID, limit)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &SimilarOutput{
		Body: responses.SearchResponse{
			Results: mappers.ToArticleResponsesFromValues(results),
		},
	}, nil
}
