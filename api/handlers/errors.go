// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"news-genai-api/core/errors"

	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsInsufficientContent(err) {
		return huma.Error422UnprocessableEntity(err.Error())
	}

	if errors.IsFetch(err) {
		return huma.Error502BadGateway("Upstream fetch failed", err)
	}

	if errors.IsStoreUnavailable(err) {
		return huma.Error503ServiceUnavailable("Storage unavailable", err)
	}

	if errors.IsModelUnavailable(err) {
		return huma.Error503ServiceUnavailable("Model unavailable", err)
	}

	// Default to internal server error for unknown errors
	return huma.Error500InternalServerError("Internal server error", err)
}
