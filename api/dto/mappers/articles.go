// ABOUTME: Mappers converting domain article records to response DTOs
// ABOUTME: Keeps the wire format decoupled from the domain model

package mappers

import (
	"news-genai-api/api/dto/responses"
	"news-genai-api/core/domain"
)

// ToArticleResponse converts a domain article to its wire representation
func ToArticleResponse(article *domain.ArticleRecord) responses.ArticleResponse {
	return responses.ArticleResponse{
		ID:        article.ID,
		URL:       article.URL,
		Title:     article.Title,
		Text:      article.Text,
		Summary:   article.Summary,
		Topics:    article.Topics,
		Authors:   article.Authors,
		Published: article.Published,
		Source:    article.Source,
		Extractor: article.Extractor,
		Thumbnail: article.Thumbnail,
	}
}

// ToArticleResponses converts a slice of domain articles, order kept
func ToArticleResponses(articles []*domain.ArticleRecord) []responses.ArticleResponse {
	out := make([]responses.ArticleResponse, 0, len(articles))
	for _, article := range articles {
		out = append(out, ToArticleResponse(article))
	}
	return out
}

// ToArticleResponsesFromValues converts value-typed search results
func ToArticleResponsesFromValues(articles []domain.ArticleRecord) []responses.ArticleResponse {
	out := make([]responses.ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, ToArticleResponse(&articles[i]))
	}
	return out
}
