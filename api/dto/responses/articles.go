// ABOUTME: Response DTOs for article extraction, ingestion, and search endpoints
// ABOUTME: Defines the wire representation of articles and operation results

package responses

import "time"

// ArticleResponse is the wire representation of an article
type ArticleResponse struct {
	// ID is the stored article identifier (empty for unstored extractions)
	ID string `json:"id,omitempty" doc:"Stored article identifier"`

	// URL is the article's source URL
	URL string `json:"url" doc:"Article URL"`

	// Title is the extracted headline
	Title string `json:"title" doc:"Article title"`

	// Text is the extracted body text
	Text string `json:"text,omitempty" doc:"Extracted body text"`

	// Summary is the model-generated summary
	Summary string `json:"summary,omitempty" doc:"Generated summary"`

	// Topics are the model-assigned topic tags
	Topics []string `json:"topics,omitempty" doc:"Assigned topics"`

	// Authors are the extracted author names
	Authors []string `json:"authors,omitempty" doc:"Author names"`

	// Published is the publication timestamp, when one was found
	Published *time.Time `json:"published,omitempty" doc:"Publication time"`

	// Source is the registrable domain of the article URL
	Source string `json:"source,omitempty" doc:"Source domain"`

	// Extractor names the extraction tier that produced the record
	Extractor string `json:"extractor,omitempty" doc:"Extraction method"`

	// Thumbnail is the lead image URL
	Thumbnail string `json:"thumbnail,omitempty" doc:"Thumbnail URL"`
}

// ExtractResponse is the response for extraction and analysis operations
type ExtractResponse struct {
	// Articles are the successfully processed records, input order kept
	Articles []ArticleResponse `json:"articles" doc:"Processed articles"`
}

// IngestResponse is the response for store operations
type IngestResponse struct {
	// IDs are the persisted article ids in input order
	IDs []string `json:"ids" doc:"Stored article identifiers"`
}

// SearchResponse is the response for article search
type SearchResponse struct {
	// Results are the fused search results in relevance order
	Results []ArticleResponse `json:"results" doc:"Search results"`

	// Query is the query that was actually searched, after any enhancement
	Query string `json:"query" doc:"Effective search query"`
}

// TopicsResponse is the response for topic search
type TopicsResponse struct {
	// Topics are the matching topic names
	Topics []string `json:"topics" doc:"Matching topics"`
}
