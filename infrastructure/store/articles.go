// ABOUTME: Article store facade combining vector search, topic membership, and a relational mirror
// ABOUTME: Owns derived point identity, embedding text, and the keyword fallback search tiers

package store

import (
	"context"
	"strings"
	"time"

	"news-genai-api/core/domain"
	coreerrors "news-genai-api/core/errors"
	"news-genai-api/core/interfaces"
	"news-genai-api/infrastructure/store/sqlite"
	"news-genai-api/infrastructure/vectordb/qdrant"
)

const (
	articlesCollection = "news_articles"
	topicsCollection   = "news_topics"

	vectorDimensions = 384
	scoreThreshold   = 0.5

	// minKeywordLength filters stopword-sized tokens out of keyword fallback
	minKeywordLength = 3
)

// ArticleStore implements interfaces.ArticleStore over Qdrant with a
// relational sqlite mirror for id and topic-membership lookups.
type ArticleStore struct {
	deps     interfaces.Dependencies
	vectors  *qdrant.Client
	embedder interfaces.Embedder
	index    *sqlite.Index
}

// NewArticleStore creates the store and ensures both collections exist.
// Collection setup failure is fatal: a store that cannot write is useless.
func NewArticleStore(ctx context.Context, deps interfaces.Dependencies, vectors *qdrant.Client, embedder interfaces.Embedder, index *sqlite.Index) (*ArticleStore, error) {
	for _, collection := range []string{articlesCollection, topicsCollection} {
		if err := vectors.EnsureCollection(ctx, collection, vectorDimensions); err != nil {
			return nil, &coreerrors.StoreUnavailableError{Operation: "ensure collection " + collection, Err: err}
		}
	}

	return &ArticleStore{
		deps:     deps,
		vectors:  vectors,
		embedder: embedder,
		index:    index,
	}, nil
}

// StoreArticle persists an analyzed article and returns its derived id.
// The same URL always derives the same id, so re-storing updates in place.
func (s *ArticleStore) StoreArticle(ctx context.Context, article *domain.ArticleRecord) (string, error) {
	if !article.IsValid() {
		return "", &coreerrors.ValidationError{Field: "article", Message: "article must have url, title, and text"}
	}

	article.ID = domain.DeriveArticleID(article)
	now := time.Now().UTC()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = now

	vector, err := s.embedder.EmbedText(ctx, embeddingText(article))
	if err != nil {
		return "", &coreerrors.ModelUnavailableError{Operation: "embed article", Err: err}
	}

	point := qdrant.Point{
		ID:      article.ID,
		Vector:  vector,
		Payload: articlePayload(article),
	}
	if err := s.vectors.UpsertPoints(ctx, articlesCollection, []qdrant.Point{point}); err != nil {
		return "", &coreerrors.StoreUnavailableError{Operation: "upsert article", Err: err}
	}

	for _, topic := range article.Topics {
		if err := s.mergeTopic(ctx, topic, article.ID); err != nil {
			return "", err
		}
	}

	if s.index != nil {
		if err := s.index.UpsertArticle(ctx, article); err != nil {
			s.deps.Logger.Warn("Relational mirror write failed", map[string]interface{}{
				"article_id": article.ID,
				"error":      err.Error(),
			})
		}
	}

	return article.ID, nil
}

// StoreArticles persists multiple articles, returning ids in input order
func (s *ArticleStore) StoreArticles(ctx context.Context, articles []*domain.ArticleRecord) ([]string, error) {
	ids := make([]string, 0, len(articles))
	for _, article := range articles {
		id, err := s.StoreArticle(ctx, article)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// UpdateArticleTopics replaces an article's topics and re-stores it,
// re-embedding the combined text since topics contribute to it.
func (s *ArticleStore) UpdateArticleTopics(ctx context.Context, articleID string, topics []string) error {
	article, err := s.GetArticle(ctx, articleID)
	if err != nil {
		return err
	}

	article.Topics = topics
	if _, err := s.StoreArticle(ctx, article); err != nil {
		return err
	}
	return nil
}

// GetArticle retrieves a stored article by id, falling back to the
// relational mirror when the vector store has no payload for it.
func (s *ArticleStore) GetArticle(ctx context.Context, articleID string) (*domain.ArticleRecord, error) {
	points, err := s.vectors.RetrievePoints(ctx, articlesCollection, []string{articleID})
	if err != nil {
		return nil, &coreerrors.StoreUnavailableError{Operation: "retrieve article", Err: err}
	}
	if len(points) > 0 {
		return payloadToArticle(points[0].ID, points[0].Payload), nil
	}

	if s.index != nil {
		article, err := s.index.GetArticle(ctx, articleID)
		if err == nil && article != nil {
			return article, nil
		}
	}

	return nil, &coreerrors.NotFoundError{Resource: "article", ID: articleID}
}

// Search performs a similarity search with a keyword fallback. A topic
// filter that empties the results is retried once without the filter,
// trading precision for usefulness.
func (s *ArticleStore) Search(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, &coreerrors.ModelUnavailableError{Operation: "embed query", Err: err}
	}

	filter := topicsFilter(filterTopics)
	hits, err := s.vectors.SearchPoints(ctx, articlesCollection, vector, limit, scoreThreshold, filter)
	if err != nil {
		return nil, &coreerrors.StoreUnavailableError{Operation: "vector search", Err: err}
	}

	if len(hits) == 0 && filter != nil {
		hits, err = s.vectors.SearchPoints(ctx, articlesCollection, vector, limit, scoreThreshold, nil)
		if err != nil {
			return nil, &coreerrors.StoreUnavailableError{Operation: "unfiltered vector search", Err: err}
		}
	}

	results := make([]domain.ArticleRecord, 0, limit)
	seen := make(map[string]bool)
	for _, hit := range hits {
		if seen[hit.ID] {
			continue
		}
		seen[hit.ID] = true
		results = append(results, *payloadToArticle(hit.ID, hit.Payload))
	}

	if len(results) < limit {
		keyword, err := s.keywordSearch(ctx, query, limit, filterTopics)
		if err != nil {
			s.deps.Logger.Debug("Keyword fallback failed", map[string]interface{}{
				"query": query,
				"error": err.Error(),
			})
		}
		for _, article := range keyword {
			if len(results) >= limit {
				break
			}
			if seen[article.ID] {
				continue
			}
			seen[article.ID] = true
			results = append(results, article)
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SearchTopics returns topic names similar to the query
func (s *ArticleStore) SearchTopics(ctx context.Context, query string, limit int) ([]string, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, &coreerrors.ModelUnavailableError{Operation: "embed topic query", Err: err}
	}

	hits, err := s.vectors.SearchPoints(ctx, topicsCollection, vector, limit, scoreThreshold, nil)
	if err != nil {
		return nil, &coreerrors.StoreUnavailableError{Operation: "topic search", Err: err}
	}

	var topics []string
	for _, hit := range hits {
		if name, ok := hit.Payload["topic"].(string); ok && name != "" {
			topics = append(topics, name)
		}
	}
	return topics, nil
}

// GetArticlesByTopics resolves topics to articles through four tiers:
// payload filter scroll, per-topic text-match scroll, the topic points' own
// membership lists, and finally the relational mirror.
func (s *ArticleStore) GetArticlesByTopics(ctx context.Context, topics []string, limit int) ([]domain.ArticleRecord, error) {
	if len(topics) == 0 {
		return nil, nil
	}

	points, err := s.vectors.ScrollPoints(ctx, articlesCollection, topicsFilter(topics), limit)
	if err != nil {
		return nil, &coreerrors.StoreUnavailableError{Operation: "topic filter scroll", Err: err}
	}

	if len(points) == 0 {
		points, err = s.scrollByTopicText(ctx, topics, limit)
		if err != nil {
			return nil, err
		}
	}

	if len(points) == 0 {
		points, err = s.retrieveByMembership(ctx, topics, limit)
		if err != nil {
			return nil, err
		}
	}

	if len(points) == 0 {
		return s.articlesFromIndex(ctx, topics, limit), nil
	}

	results := make([]domain.ArticleRecord, 0, len(points))
	seen := make(map[string]bool)
	for _, point := range points {
		if seen[point.ID] {
			continue
		}
		seen[point.ID] = true
		results = append(results, *payloadToArticle(point.ID, point.Payload))
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// GetSimilarArticles returns articles similar to the referenced one,
// excluding the reference itself.
func (s *ArticleStore) GetSimilarArticles(ctx context.Context, articleID string, limit int) ([]domain.ArticleRecord, error) {
	reference, err := s.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	vector, err := s.embedder.EmbedText(ctx, embeddingText(reference))
	if err != nil {
		return nil, &coreerrors.ModelUnavailableError{Operation: "embed reference article", Err: err}
	}

	// Fetch one extra because the reference scores highest against itself
	hits, err := s.vectors.SearchPoints(ctx, articlesCollection, vector, limit+1, 0, nil)
	if err != nil {
		return nil, &coreerrors.StoreUnavailableError{Operation: "similarity search", Err: err}
	}

	results := make([]domain.ArticleRecord, 0, limit)
	for _, hit := range hits {
		if hit.ID == articleID {
			continue
		}
		results = append(results, *payloadToArticle(hit.ID, hit.Payload))
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// keywordSearch scrolls for full-text matches of the query and its longer
// keywords across title, summary, and topics. A caller topic filter stays a
// hard constraint here: the text conditions nest as an or-group under it.
func (s *ArticleStore) keywordSearch(ctx context.Context, query string, limit int, filterTopics []string) ([]domain.ArticleRecord, error) {
	conditions := []qdrant.Condition{
		qdrant.MatchText("title", query),
		qdrant.MatchText("summary", query),
	}
	for _, keyword := range strings.Fields(query) {
		if len(keyword) <= minKeywordLength {
			continue
		}
		conditions = append(conditions,
			qdrant.MatchText("title", keyword),
			qdrant.MatchText("summary", keyword),
			qdrant.MatchText("topics", keyword),
		)
	}

	filter := &qdrant.Filter{Should: conditions}
	if len(filterTopics) > 0 {
		filter = &qdrant.Filter{Must: []qdrant.Condition{
			qdrant.MatchAny("topics", filterTopics),
			qdrant.AnyOf(conditions...),
		}}
	}

	points, err := s.vectors.ScrollPoints(ctx, articlesCollection, filter, limit)
	if err != nil {
		return nil, &coreerrors.StoreUnavailableError{Operation: "keyword scroll", Err: err}
	}

	results := make([]domain.ArticleRecord, 0, len(points))
	for _, point := range points {
		results = append(results, *payloadToArticle(point.ID, point.Payload))
	}
	return results, nil
}

// scrollByTopicText matches topic names as full text, one scroll per topic
func (s *ArticleStore) scrollByTopicText(ctx context.Context, topics []string, limit int) ([]qdrant.Point, error) {
	var conditions []qdrant.Condition
	for _, topic := range topics {
		conditions = append(conditions, qdrant.MatchText("topics", topic))
	}

	points, err := s.vectors.ScrollPoints(ctx, articlesCollection, &qdrant.Filter{Should: conditions}, limit)
	if err != nil {
		return nil, &coreerrors.StoreUnavailableError{Operation: "topic text scroll", Err: err}
	}
	return points, nil
}

// retrieveByMembership reads article ids off the topic points themselves
func (s *ArticleStore) retrieveByMembership(ctx context.Context, topics []string, limit int) ([]qdrant.Point, error) {
	ids := make([]string, 0, len(topics))
	for _, topic := range topics {
		ids = append(ids, domain.DeriveTopicID(topic))
	}

	topicPoints, err := s.vectors.RetrievePoints(ctx, topicsCollection, ids)
	if err != nil {
		return nil, &coreerrors.StoreUnavailableError{Operation: "retrieve topic points", Err: err}
	}

	var articleIDs []string
	seen := make(map[string]bool)
	for _, point := range topicPoints {
		for _, id := range payloadStrings(point.Payload, "articles") {
			if !seen[id] {
				seen[id] = true
				articleIDs = append(articleIDs, id)
			}
		}
	}
	if len(articleIDs) > limit {
		articleIDs = articleIDs[:limit]
	}
	if len(articleIDs) == 0 {
		return nil, nil
	}

	points, err := s.vectors.RetrievePoints(ctx, articlesCollection, articleIDs)
	if err != nil {
		return nil, &coreerrors.StoreUnavailableError{Operation: "retrieve member articles", Err: err}
	}
	return points, nil
}

// articlesFromIndex serves topic membership from the relational mirror when
// the vector store has nothing for the topics. Mirror reads are best effort,
// matching how mirror writes are treated: failures log, never surface.
func (s *ArticleStore) articlesFromIndex(ctx context.Context, topics []string, limit int) []domain.ArticleRecord {
	if s.index == nil {
		return nil
	}

	ids, err := s.index.ArticleIDsByTopics(ctx, topics, limit)
	if err != nil {
		s.deps.Logger.Warn("Relational mirror topic lookup failed", map[string]interface{}{
			"topics": topics,
			"error":  err.Error(),
		})
		return nil
	}

	results := make([]domain.ArticleRecord, 0, len(ids))
	for _, id := range ids {
		article, err := s.index.GetArticle(ctx, id)
		if err != nil || article == nil {
			continue
		}
		results = append(results, *article)
	}
	return results
}

// mergeTopic unions the article id into the topic point's membership set.
// Read-merge-write: last writer wins on concurrent merges of one topic.
func (s *ArticleStore) mergeTopic(ctx context.Context, topic, articleID string) error {
	topicID := domain.DeriveTopicID(topic)

	record := domain.TopicRecord{Topic: topic}
	existing, err := s.vectors.RetrievePoints(ctx, topicsCollection, []string{topicID})
	if err != nil {
		return &coreerrors.StoreUnavailableError{Operation: "read topic", Err: err}
	}
	if len(existing) > 0 {
		record.Articles = payloadStrings(existing[0].Payload, "articles")
	}
	record.MergeArticle(articleID)

	vector, err := s.embedder.EmbedText(ctx, topic)
	if err != nil {
		return &coreerrors.ModelUnavailableError{Operation: "embed topic", Err: err}
	}

	point := qdrant.Point{
		ID:     topicID,
		Vector: vector,
		Payload: map[string]interface{}{
			"topic":    record.Topic,
			"articles": record.Articles,
		},
	}
	if err := s.vectors.UpsertPoints(ctx, topicsCollection, []qdrant.Point{point}); err != nil {
		return &coreerrors.StoreUnavailableError{Operation: "upsert topic", Err: err}
	}
	return nil
}

// embeddingText combines the fields that define an article's semantic
// identity: title, summary, and topics. Body text stays out to keep the
// vector focused on what the article is about.
func embeddingText(article *domain.ArticleRecord) string {
	parts := []string{article.Title}
	if article.Summary != "" {
		parts = append(parts, article.Summary)
	}
	if len(article.Topics) > 0 {
		parts = append(parts, strings.Join(article.Topics, " "))
	}
	return strings.Join(parts, " ")
}

func topicsFilter(topics []string) *qdrant.Filter {
	if len(topics) == 0 {
		return nil
	}
	return &qdrant.Filter{Must: []qdrant.Condition{qdrant.MatchAny("topics", topics)}}
}

func articlePayload(article *domain.ArticleRecord) map[string]interface{} {
	payload := map[string]interface{}{
		"url":       article.URL,
		"title":     article.Title,
		"text":      article.Text,
		"summary":   article.Summary,
		"topics":    article.Topics,
		"authors":   article.Authors,
		"source":    article.Source,
		"extractor": article.Extractor,
		"thumbnail": article.Thumbnail,
		"stored_at": article.UpdatedAt.Format(time.RFC3339),
	}
	if article.Published != nil {
		payload["published"] = article.Published.Format(time.RFC3339)
	}
	return payload
}

func payloadToArticle(id string, payload map[string]interface{}) *domain.ArticleRecord {
	article := &domain.ArticleRecord{
		ID:        id,
		URL:       payloadString(payload, "url"),
		Title:     payloadString(payload, "title"),
		Text:      payloadString(payload, "text"),
		Summary:   payloadString(payload, "summary"),
		Topics:    payloadStrings(payload, "topics"),
		Authors:   payloadStrings(payload, "authors"),
		Source:    payloadString(payload, "source"),
		Extractor: payloadString(payload, "extractor"),
		Thumbnail: payloadString(payload, "thumbnail"),
	}
	if raw := payloadString(payload, "published"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			article.Published = &t
		}
	}
	return article
}

func payloadString(payload map[string]interface{}, key string) string {
	value, _ := payload[key].(string)
	return value
}

func payloadStrings(payload map[string]interface{}, key string) []string {
	raw, ok := payload[key].([]interface{})
	if !ok {
		if direct, ok := payload[key].([]string); ok {
			return direct
		}
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

var _ interfaces.ArticleStore = (*ArticleStore)(nil)
