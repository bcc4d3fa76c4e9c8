// ABOUTME: Page metadata scraper recovering thumbnails and descriptions for articles
// ABOUTME: Uses colly over Open Graph and Twitter card tags, with a pooled batch mode

package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"news-genai-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"github.com/panjf2000/ants/v2"
)

const (
	collyUserAgent = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"

	metadataCacheTTL   = 24 * time.Hour
	metadataBatchPool  = 10
	metadataMaxBody    = 5 * 1024 * 1024
	metadataFetchLimit = 10 * time.Second
)

// MetadataService scrapes page metadata for article enrichment
type MetadataService struct {
	deps interfaces.Dependencies
}

// NewMetadataService creates a new metadata service
func NewMetadataService(deps interfaces.Dependencies) *MetadataService {
	return &MetadataService{
		deps: deps,
	}
}

// ExtractMetadata scrapes metadata from a single URL, cache first
func (s *MetadataService) ExtractMetadata(ctx context.Context, targetURL string) (*interfaces.PageMetadata, error) {
	cacheKey := "metadata:" + targetURL
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var meta interfaces.PageMetadata
			if err := json.Unmarshal(data, &meta); err == nil {
				return &meta, nil
			}
		}
	}

	meta := s.scrape(targetURL)

	if s.deps.Cache != nil && meta != nil {
		if data, err := json.Marshal(meta); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, metadataCacheTTL)
		}
	}

	return meta, nil
}

// ExtractMetadataBatch scrapes multiple URLs through a bounded worker pool.
// URLs that fail are simply absent from the result map.
func (s *MetadataService) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.PageMetadata {
	results := make(map[string]*interfaces.PageMetadata)
	var mu sync.Mutex
	var wg sync.WaitGroup

	pool, err := ants.NewPool(metadataBatchPool)
	if err != nil {
		// Pool construction only fails on bad size; degrade to sequential
		for _, targetURL := range urls {
			if meta, err := s.ExtractMetadata(ctx, targetURL); err == nil && meta != nil {
				results[targetURL] = meta
			}
		}
		return results
	}
	defer pool.Release()

	for _, targetURL := range urls {
		targetURL := targetURL
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if meta, err := s.ExtractMetadata(ctx, targetURL); err == nil && meta != nil {
				mu.Lock()
				results[targetURL] = meta
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
		}
	}

	wg.Wait()
	return results
}

// scrape visits the page with colly and collects Open Graph, Twitter card,
// and plain meta-tag metadata. Always returns a result, possibly empty.
func (s *MetadataService) scrape(targetURL string) *interfaces.PageMetadata {
	if targetURL == "" || targetURL == "about:blank" {
		return nil
	}

	c := colly.NewCollector(
		colly.UserAgent(collyUserAgent),
		colly.MaxBodySize(metadataMaxBody),
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(metadataFetchLimit)

	meta := &interfaces.PageMetadata{}

	c.OnHTML("meta", func(e *colly.HTMLElement) {
		content := e.Attr("content")
		if content == "" {
			return
		}

		if e.Attr("name") == "twitter:image" && meta.Thumbnail == "" {
			meta.Thumbnail = e.Request.AbsoluteURL(content)
		}

		switch e.Attr("property") {
		case "og:title":
			if meta.Title == "" {
				meta.Title = content
			}
		case "og:description":
			if meta.Description == "" {
				meta.Description = content
			}
		case "og:site_name":
			if meta.SiteName == "" {
				meta.SiteName = content
			}
		case "og:image":
			if meta.Thumbnail == "" {
				meta.Thumbnail = e.Request.AbsoluteURL(content)
			}
		}
	})

	c.OnHTML("head", func(e *colly.HTMLElement) {
		if meta.Title == "" {
			meta.Title = strings.TrimSpace(e.DOM.Find("title").First().Text())
		}
		if meta.Description == "" {
			e.DOM.Find("meta[name='description']").Each(func(_ int, sel *goquery.Selection) {
				if content, exists := sel.Attr("content"); exists && meta.Description == "" {
					meta.Description = content
				}
			})
		}
	})

	// JSON-LD often carries the lead image when Open Graph tags are absent
	c.OnHTML("script[type='application/ld+json']", func(e *colly.HTMLElement) {
		if meta.Thumbnail != "" {
			return
		}
		var ld map[string]interface{}
		if err := json.Unmarshal([]byte(e.Text), &ld); err != nil {
			return
		}
		if img, ok := ld["image"].(string); ok {
			meta.Thumbnail = img
		} else if imgObj, ok := ld["image"].(map[string]interface{}); ok {
			if u, ok := imgObj["url"].(string); ok {
				meta.Thumbnail = u
			}
		}
	})

	c.OnRequest(func(r *colly.Request) {
		if parsed, err := url.Parse(r.URL.String()); err == nil {
			meta.Domain = parsed.Host
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		s.deps.Logger.Debug("Metadata scrape failed", map[string]interface{}{
			"url":    targetURL,
			"status": r.StatusCode,
			"error":  err.Error(),
		})
	})

	if err := c.Visit(targetURL); err != nil {
		s.deps.Logger.Debug("Could not visit URL for metadata", map[string]interface{}{
			"url":   targetURL,
			"error": err.Error(),
		})
	}

	return meta
}
