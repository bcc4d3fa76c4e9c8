// ABOUTME: Topic domain model linking tag names to the articles carrying them
// ABOUTME: Topic membership only grows; updates merge instead of overwriting

package domain

// TopicRecord represents a topic tag and the set of articles referencing it.
type TopicRecord struct {
	// Topic is the tag name as first written (lookups are case-insensitive
	// at the store level, raw casing is preserved)
	Topic string `json:"topic"`

	// Articles holds the ids of articles tagged with this topic
	Articles []string `json:"articles"`
}

// MergeArticle returns the topic's article set with id unioned in.
// The existing order is preserved and duplicates are not added.
func (t *TopicRecord) MergeArticle(id string) []string {
	for _, existing := range t.Articles {
		if existing == id {
			return t.Articles
		}
	}
	return append(t.Articles, id)
}
