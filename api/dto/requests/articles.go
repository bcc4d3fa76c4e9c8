// ABOUTME: Request DTOs for article extraction, ingestion, and search endpoints
// ABOUTME: Provides validation constraints and default values for incoming requests

package requests

// ExtractRequest represents the request body for extraction-only operations
type ExtractRequest struct {
	// URLs is the list of article URLs to extract
	URLs []string `json:"urls" minItems:"1" maxItems:"50" doc:"List of article URLs to extract"`
}

// IngestRequest represents the request body for the full store pipeline
type IngestRequest struct {
	// URLs is the list of article URLs to ingest
	URLs []string `json:"urls" minItems:"1" maxItems:"50" doc:"List of article URLs to extract, analyze, and store"`
}

// IngestFeedRequest represents the request body for feed ingestion
type IngestFeedRequest struct {
	// FeedURL is the RSS/Atom feed to resolve into articles
	FeedURL string `json:"feed_url" required:"true" format:"uri" doc:"RSS/Atom feed URL"`

	// Max caps how many feed items are ingested (0 means all)
	Max int `json:"max,omitempty" minimum:"0" maximum:"100" doc:"Maximum number of feed items to ingest"`
}

// SearchRequest represents the request body for article search
type SearchRequest struct {
	// Query is the free-text search query
	Query string `json:"query" required:"true" minLength:"1" doc:"Search query"`

	// Enhance enables LLM query enhancement and topic-assisted discovery
	Enhance bool `json:"enhance,omitempty" doc:"Enhance the query and widen discovery through topics"`

	// Limit caps the number of results
	Limit int `json:"limit,omitempty" minimum:"1" maximum:"50" default:"5" doc:"Maximum number of results"`

	// Topics restricts results to articles tagged with any of these topics
	Topics []string `json:"topics,omitempty" maxItems:"10" doc:"Optional topic filter"`
}

// ApplyDefaults sets default values for optional fields
func (r *SearchRequest) ApplyDefaults() {
	if r.Limit == 0 {
		r.Limit = 5
	}
}
