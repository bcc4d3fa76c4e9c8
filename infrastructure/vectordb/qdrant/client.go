// ABOUTME: Qdrant REST client for collection management and point operations
// ABOUTME: Speaks the upsert/search/scroll/retrieve endpoints with typed filters

package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"news-genai-api/core/interfaces"
)

// Client is a minimal Qdrant REST API client
type Client struct {
	deps    interfaces.Dependencies
	baseURL string
}

// NewClient creates a new Qdrant client against the given base URL
func NewClient(deps interfaces.Dependencies, baseURL string) *Client {
	return &Client{
		deps:    deps,
		baseURL: baseURL,
	}
}

// Point is a stored vector with its payload
type Point struct {
	ID      string                 `json:"id"`
	Vector  []float32              `json:"vector,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ScoredPoint is a search hit with its similarity score
type ScoredPoint struct {
	ID      string                 `json:"id"`
	Score   float32                `json:"score"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Filter restricts a search or scroll to matching payloads
type Filter struct {
	Must   []Condition `json:"must,omitempty"`
	Should []Condition `json:"should,omitempty"`
}

// Condition matches a single payload field, or nests a filter group when
// Must/Should are set instead of Key.
type Condition struct {
	Key    string      `json:"key,omitempty"`
	Match  *Match      `json:"match,omitempty"`
	Must   []Condition `json:"must,omitempty"`
	Should []Condition `json:"should,omitempty"`
}

// Match is the value side of a condition. Exactly one field is set:
// Value for exact match, Any for match-any-of, Text for full-text match.
type Match struct {
	Value interface{} `json:"value,omitempty"`
	Any   []string    `json:"any,omitempty"`
	Text  string      `json:"text,omitempty"`
}

// MatchValue builds an exact-match condition
func MatchValue(key string, value interface{}) Condition {
	return Condition{Key: key, Match: &Match{Value: value}}
}

// MatchAny builds a match-any-of-the-set condition
func MatchAny(key string, values []string) Condition {
	return Condition{Key: key, Match: &Match{Any: values}}
}

// MatchText builds a full-text match condition
func MatchText(key, text string) Condition {
	return Condition{Key: key, Match: &Match{Text: text}}
}

// AnyOf groups conditions so that at least one must hold. Nest it inside a
// Must list to combine a hard constraint with an or-group.
func AnyOf(conditions ...Condition) Condition {
	return Condition{Should: conditions}
}

// EnsureCollection creates the collection with a cosine-distance vector
// schema when it does not already exist.
func (c *Client) EnsureCollection(ctx context.Context, name string, vectorSize int) error {
	resp, err := c.deps.HTTPClient.Get(ctx, c.baseURL+"/collections/"+name)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", name, err)
	}
	resp.Body().Close()
	if resp.StatusCode() == 200 {
		return nil
	}

	body := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}
	var out json.RawMessage
	if err := c.do(ctx, "PUT", "/collections/"+name, body, &out); err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}

	c.deps.Logger.Info("Created vector collection", map[string]interface{}{
		"collection": name,
		"dimensions": vectorSize,
	})
	return nil
}

// UpsertPoints inserts or replaces points in the collection
func (c *Client) UpsertPoints(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	body := map[string]interface{}{"points": points}
	var out json.RawMessage
	if err := c.do(ctx, "PUT", "/collections/"+collection+"/points?wait=true", body, &out); err != nil {
		return fmt.Errorf("upsert %d points into %s: %w", len(points), collection, err)
	}
	return nil
}

// SearchPoints runs a vector similarity search. A zero scoreThreshold
// disables threshold filtering; a nil filter searches the whole collection.
func (c *Client) SearchPoints(ctx context.Context, collection string, vector []float32, limit int, scoreThreshold float32, filter *Filter) ([]ScoredPoint, error) {
	body := map[string]interface{}{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	if scoreThreshold > 0 {
		body["score_threshold"] = scoreThreshold
	}
	if filter != nil {
		body["filter"] = filter
	}

	var result []ScoredPoint
	if err := c.do(ctx, "POST", "/collections/"+collection+"/points/search", body, &result); err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}
	return result, nil
}

// ScrollPoints pages through points matching the filter, without scoring
func (c *Client) ScrollPoints(ctx context.Context, collection string, filter *Filter, limit int) ([]Point, error) {
	body := map[string]interface{}{
		"limit":        limit,
		"with_payload": true,
	}
	if filter != nil {
		body["filter"] = filter
	}

	var result struct {
		Points []Point `json:"points"`
	}
	if err := c.do(ctx, "POST", "/collections/"+collection+"/points/scroll", body, &result); err != nil {
		return nil, fmt.Errorf("scroll %s: %w", collection, err)
	}
	return result.Points, nil
}

// RetrievePoints fetches points by id, payloads included
func (c *Client) RetrievePoints(ctx context.Context, collection string, ids []string) ([]Point, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	body := map[string]interface{}{
		"ids":          ids,
		"with_payload": true,
	}

	var result []Point
	if err := c.do(ctx, "POST", "/collections/"+collection+"/points", body, &result); err != nil {
		return nil, fmt.Errorf("retrieve from %s: %w", collection, err)
	}
	return result, nil
}

// do sends a JSON request and decodes the response "result" envelope
func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	var resp interfaces.Response
	switch method {
	case "PUT":
		resp, err = c.deps.HTTPClient.Put(ctx, c.baseURL+path, bytes.NewReader(payload))
	default:
		resp, err = c.deps.HTTPClient.Post(ctx, c.baseURL+path, bytes.NewReader(payload))
	}
	if err != nil {
		return err
	}
	defer resp.Body().Close()

	raw, err := io.ReadAll(resp.Body())
	if err != nil {
		return err
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("qdrant returned %d: %s", resp.StatusCode(), truncateBody(raw))
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode qdrant response: %w", err)
	}
	if result != nil && envelope.Result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("decode qdrant result: %w", err)
		}
	}
	return nil
}

func truncateBody(raw []byte) string {
	const max = 200
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
