// ABOUTME: SQLite-backed relational index mirroring stored article metadata
// ABOUTME: Serves id lookups and topic-membership queries alongside the vector store

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"news-genai-api/core/domain"

	_ "github.com/mattn/go-sqlite3"
)

// Index mirrors article metadata into a relational store
type Index struct {
	db       *sql.DB
	filePath string
}

// NewIndex opens (or creates) the article index at the given path
func NewIndex(filePath string) (*Index, error) {
	if filePath == "" {
		filePath = "articles.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	index := &Index{
		db:       db,
		filePath: filePath,
	}

	if err := index.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return index, nil
}

// initSchema creates the article tables if they don't exist
func (i *Index) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			text TEXT,
			summary TEXT,
			authors TEXT,
			source TEXT,
			extractor TEXT,
			thumbnail TEXT,
			published INTEGER,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_articles_url ON articles(url);
		CREATE TABLE IF NOT EXISTS article_topics (
			article_id TEXT NOT NULL,
			topic TEXT NOT NULL,
			PRIMARY KEY (article_id, topic)
		);
		CREATE INDEX IF NOT EXISTS idx_article_topics_topic ON article_topics(topic);
	`

	_, err := i.db.Exec(query)
	return err
}

// UpsertArticle inserts or replaces an article row and its topic rows
func (i *Index) UpsertArticle(ctx context.Context, article *domain.ArticleRecord) error {
	if article.ID == "" {
		return errors.New("article id cannot be empty")
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	authors, err := json.Marshal(article.Authors)
	if err != nil {
		return fmt.Errorf("failed to encode authors: %w", err)
	}

	var published interface{}
	if article.Published != nil {
		published = article.Published.Unix()
	}

	now := time.Now().Unix()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO articles (id, url, title, text, summary, authors, source, extractor, thumbnail, published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			text = excluded.text,
			summary = excluded.summary,
			authors = excluded.authors,
			source = excluded.source,
			extractor = excluded.extractor,
			thumbnail = excluded.thumbnail,
			published = excluded.published,
			updated_at = excluded.updated_at
	`, article.ID, article.URL, article.Title, article.Text, article.Summary,
		string(authors), article.Source, article.Extractor, article.Thumbnail, published, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert article: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM article_topics WHERE article_id = ?", article.ID); err != nil {
		return fmt.Errorf("failed to clear topics: %w", err)
	}
	for _, topic := range article.Topics {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO article_topics (article_id, topic) VALUES (?, ?)",
			article.ID, strings.ToLower(topic)); err != nil {
			return fmt.Errorf("failed to insert topic: %w", err)
		}
	}

	return tx.Commit()
}

// GetArticle retrieves an article row by id, topics included
func (i *Index) GetArticle(ctx context.Context, id string) (*domain.ArticleRecord, error) {
	if id == "" {
		return nil, errors.New("article id cannot be empty")
	}

	var article domain.ArticleRecord
	var authors string
	var published sql.NullInt64
	var createdAt, updatedAt int64

	err := i.db.QueryRowContext(ctx, `
		SELECT id, url, title, text, summary, authors, source, extractor, thumbnail, published, created_at, updated_at
		FROM articles WHERE id = ?
	`, id).Scan(&article.ID, &article.URL, &article.Title, &article.Text, &article.Summary,
		&authors, &article.Source, &article.Extractor, &article.Thumbnail, &published, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	if authors != "" {
		_ = json.Unmarshal([]byte(authors), &article.Authors)
	}
	if published.Valid {
		t := time.Unix(published.Int64, 0).UTC()
		article.Published = &t
	}
	article.CreatedAt = time.Unix(createdAt, 0).UTC()
	article.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	topics, err := i.articleTopics(ctx, id)
	if err != nil {
		return nil, err
	}
	article.Topics = topics

	return &article, nil
}

// ArticleIDsByTopics returns ids of articles tagged with any of the topics
func (i *Index) ArticleIDsByTopics(ctx context.Context, topics []string, limit int) ([]string, error) {
	if len(topics) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(topics))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, 0, len(topics)+1)
	for _, topic := range topics {
		args = append(args, strings.ToLower(topic))
	}
	args = append(args, limit)

	rows, err := i.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT DISTINCT article_id FROM article_topics
		WHERE topic IN (%s)
		LIMIT ?
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// articleTopics returns an article's topics in insertion order
func (i *Index) articleTopics(ctx context.Context, articleID string) ([]string, error) {
	rows, err := i.db.QueryContext(ctx,
		"SELECT topic FROM article_topics WHERE article_id = ? ORDER BY rowid", articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query article topics: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

// Stats returns index statistics
func (i *Index) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var articles int
	if err := i.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&articles); err != nil {
		return nil, err
	}
	stats["articles"] = articles

	var topics int
	if err := i.db.QueryRow("SELECT COUNT(DISTINCT topic) FROM article_topics").Scan(&topics); err != nil {
		return nil, err
	}
	stats["topics"] = topics

	stats["file_path"] = i.filePath
	return stats, nil
}

// Close closes the database connection
func (i *Index) Close() error {
	return i.db.Close()
}
