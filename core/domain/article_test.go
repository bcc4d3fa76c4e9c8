package domain

import (
	"testing"
	"time"
)

func TestDeriveArticleID_SameURLSameID(t *testing.T) {
	a := &ArticleRecord{URL: "https://example.com/story", Title: "First title"}
	b := &ArticleRecord{URL: "https://example.com/story", Title: "Different title"}

	if DeriveArticleID(a) != DeriveArticleID(b) {
		t.Error("same URL should always derive the same id")
	}
}

func TestDeriveArticleID_DifferentURLsDifferentIDs(t *testing.T) {
	a := &ArticleRecord{URL: "https://example.com/story-1"}
	b := &ArticleRecord{URL: "https://example.com/story-2"}

	if DeriveArticleID(a) == DeriveArticleID(b) {
		t.Error("different URLs should derive different ids")
	}
}

func TestDeriveArticleID_FallsBackToTitle(t *testing.T) {
	a := &ArticleRecord{Title: "Breaking news"}
	b := &ArticleRecord{Title: "Breaking news"}

	if DeriveArticleID(a) != DeriveArticleID(b) {
		t.Error("same title should derive the same id when URL is absent")
	}
}

func TestDeriveArticleID_RandomWhenEmpty(t *testing.T) {
	a := &ArticleRecord{}

	first := DeriveArticleID(a)
	second := DeriveArticleID(a)

	if first == "" {
		t.Error("id should never be empty")
	}
	if first == second {
		t.Error("articles with no URL and no title should get fresh random ids")
	}
}

func TestArticleRecord_IsValid(t *testing.T) {
	article := &ArticleRecord{Title: "Title", Text: "Body text"}
	if !article.IsValid() {
		t.Error("article with title and text should be valid")
	}

	article = &ArticleRecord{Title: "Title"}
	if article.IsValid() {
		t.Error("article without text should be invalid")
	}

	article = &ArticleRecord{Text: "Body text"}
	if article.IsValid() {
		t.Error("article without title should be invalid")
	}
}

func TestArticleRecord_IsAnalyzed(t *testing.T) {
	article := &ArticleRecord{
		Title:   "Title",
		Text:    "Text",
		Summary: "A summary.",
		Topics:  []string{"economy"},
	}

	if !article.IsAnalyzed() {
		t.Error("article with summary and topics should report analyzed")
	}

	article.Topics = nil
	if article.IsAnalyzed() {
		t.Error("article without topics should not report analyzed")
	}
}

func TestTopicRecord_MergeArticle(t *testing.T) {
	topic := &TopicRecord{Topic: "climate", Articles: []string{"id-1", "id-2"}}

	merged := topic.MergeArticle("id-3")
	if len(merged) != 3 {
		t.Errorf("merge should retain existing ids plus new one, got %d", len(merged))
	}
	if merged[0] != "id-1" || merged[1] != "id-2" || merged[2] != "id-3" {
		t.Errorf("merge should preserve order, got %v", merged)
	}
}

func TestTopicRecord_MergeArticle_Duplicate(t *testing.T) {
	topic := &TopicRecord{Topic: "climate", Articles: []string{"id-1"}}

	merged := topic.MergeArticle("id-1")
	if len(merged) != 1 {
		t.Errorf("merging an existing id should not duplicate it, got %v", merged)
	}
}

func TestDeriveTopicID_Stable(t *testing.T) {
	if DeriveTopicID("economy") != DeriveTopicID("economy") {
		t.Error("same topic should derive the same id")
	}
	if DeriveTopicID("economy") == DeriveTopicID("politics") {
		t.Error("different topics should derive different ids")
	}
}

func TestArticleRecord_PublishedOptional(t *testing.T) {
	article := &ArticleRecord{Title: "t", Text: "x"}
	if article.Published != nil {
		t.Error("published should default to nil")
	}

	now := time.Now()
	article.Published = &now
	if article.Published == nil {
		t.Error("published should be settable")
	}
}
