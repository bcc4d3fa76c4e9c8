// ABOUTME: DOM heuristics recovering title, body, authors, and date from news markup
// ABOUTME: Each field has its own ordered strategy chain over a parsed document

package extractor

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"
)

const (
	minTitleLength        = 5
	maxTitleLength        = 200
	minContainerLength    = 200
	minContainerParagraphs = 3
	minParagraphLength    = 20
	minPageFragmentLength = 40
	minAuthorLength       = 2
	maxAuthorLength       = 50
	maxAuthorCandidate    = 100
)

var (
	titlePattern     = regexp.MustCompile(`(?i)(headline|title)`)
	containerPattern = regexp.MustCompile(`(?i)(article|content|story|body)`)
	boilerplatePattern = regexp.MustCompile(`(?i)(nav|menu|footer|ad|copyright)`)
	authorPattern    = regexp.MustCompile(`(?i)(author|byline|writer|contributor)`)
	authorLabelPattern = regexp.MustCompile(`(?i)^(?:by\s+|authors?:\s*)`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
	blankLinePattern   = regexp.MustCompile(`\n\s*\n`)
	longFormDatePattern = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+\d{1,2},?\s+\d{4}`)
)

// titleSeparators are tried as "title - site name" style suffixes; the
// earliest occurrence wins.
var titleSeparators = []string{" - ", " | ", " :: ", " // "}

// metaDateSelectors is the fixed preference order for published-time metadata.
var metaDateSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[property="og:article:published_time"]`,
	`meta[name="date"]`,
	`meta[name="publish-date"]`,
	`meta[name="publication_date"]`,
	`meta[itemprop="datePublished"]`,
}

// machineDateLayouts accepts ISO-8601 (trailing Z as UTC) and bare dates.
var machineDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// longFormDateLayouts are the month-name formats tried against regex matches.
var longFormDateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Jan. 2, 2006",
}

// classAndID returns the element's class and id attributes joined for
// pattern matching.
func classAndID(s *goquery.Selection) string {
	return s.AttrOr("class", "") + " " + s.AttrOr("id", "")
}

// findTitle recovers the article headline. Chain: first h1 with visible
// text, then headline/title-named elements, then the page <title> with a
// trailing site-name suffix stripped.
func findTitle(doc *goquery.Document) string {
	var title string

	doc.Find("h1").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if len(text) > minTitleLength {
			title = text
			return false
		}
		return true
	})
	if title != "" {
		return title
	}

	doc.Find("[class],[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !titlePattern.MatchString(classAndID(s)) {
			return true
		}
		text := strings.TrimSpace(s.Text())
		if len(text) > minTitleLength && len(text) <= maxTitleLength {
			title = text
			return false
		}
		return true
	})
	if title != "" {
		return title
	}

	return stripTitleSuffix(strings.TrimSpace(doc.Find("title").First().Text()))
}

// stripTitleSuffix cuts a "Headline - Site" style page title at the first
// separator found.
func stripTitleSuffix(title string) string {
	cut := -1
	for _, sep := range titleSeparators {
		if idx := strings.Index(title, sep); idx >= 0 && (cut < 0 || idx < cut) {
			cut = idx
		}
	}
	if cut >= 0 {
		return strings.TrimSpace(title[:cut])
	}
	return title
}

// findBodyContainer locates the element most likely to hold the article
// body. Chain: article/main, then article/content-named div or section with
// enough text, then the div/section with the greatest cumulative paragraph
// text among those with more than three paragraphs. Returns nil when no
// candidate exists.
func findBodyContainer(doc *goquery.Document) *goquery.Selection {
	if s := doc.Find("article").First(); s.Length() > 0 {
		return s
	}
	if s := doc.Find("main").First(); s.Length() > 0 {
		return s
	}

	var named *goquery.Selection
	doc.Find("div,section").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !containerPattern.MatchString(classAndID(s)) {
			return true
		}
		if len(strings.TrimSpace(s.Text())) > minContainerLength {
			named = s
			return false
		}
		return true
	})
	if named != nil {
		return named
	}

	var best *goquery.Selection
	bestLen := 0
	doc.Find("div,section").Each(func(_ int, s *goquery.Selection) {
		paragraphs := s.Find("p")
		if paragraphs.Length() <= minContainerParagraphs {
			return
		}
		total := 0
		paragraphs.Each(func(_ int, p *goquery.Selection) {
			total += len(strings.TrimSpace(p.Text()))
		})
		if total > bestLen {
			bestLen = total
			best = s
		}
	})
	return best
}

// extractBodyText collects qualifying paragraph texts from the container,
// falling back to blank-line splitting of raw text. With no container at
// all, the whole page's text is split with a higher fragment threshold.
func extractBodyText(doc *goquery.Document, container *goquery.Selection) string {
	if container == nil {
		return joinFragments(splitBlocks(doc.Find("body").Text()), minPageFragmentLength)
	}

	var paragraphs []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if boilerplatePattern.MatchString(p.AttrOr("class", "")) {
			return
		}
		text := strings.TrimSpace(p.Text())
		if len(text) > minParagraphLength {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n\n")
	}

	return joinFragments(splitBlocks(container.Text()), minParagraphLength)
}

// splitBlocks splits raw text on blank-line boundaries.
func splitBlocks(raw string) []string {
	return blankLinePattern.Split(raw, -1)
}

// joinFragments keeps trimmed fragments longer than minLen and joins them
// with blank lines.
func joinFragments(fragments []string, minLen int) string {
	var kept []string
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) > minLen {
			kept = append(kept, fragment)
		}
	}
	return strings.Join(kept, "\n\n")
}

// findAuthors unions byline candidates in discovery order: author-named
// elements, itemprop=author elements, and rel=author links.
func findAuthors(doc *goquery.Document) []string {
	var candidates []string

	doc.Find("[class],[id]").Each(func(_ int, s *goquery.Selection) {
		if !authorPattern.MatchString(classAndID(s)) {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text == "" || len(text) >= maxAuthorCandidate {
			return
		}
		candidates = append(candidates, authorLabelPattern.ReplaceAllString(text, ""))
	})

	doc.Find(`[itemprop="author"]`).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			candidates = append(candidates, text)
		}
	})

	doc.Find(`a[rel="author"]`).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			candidates = append(candidates, text)
		}
	})

	return cleanAuthors(candidates)
}

// cleanAuthors collapses whitespace, strips leading labels, enforces the
// length bounds, and deduplicates while preserving discovery order.
func cleanAuthors(candidates []string) []string {
	seen := make(map[string]bool)
	var authors []string
	for _, candidate := range candidates {
		name := whitespacePattern.ReplaceAllString(candidate, " ")
		name = strings.TrimSpace(authorLabelPattern.ReplaceAllString(strings.TrimSpace(name), ""))
		if len(name) < minAuthorLength || len(name) > maxAuthorLength {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		authors = append(authors, name)
	}
	return authors
}

// findDate recovers the publication date. Chain: machine-readable <time>
// attributes, known published-time metadata tags, then a regex scan of the
// page text for a long-form month/day/year date. Absence is valid.
func findDate(doc *goquery.Document) *time.Time {
	var found *time.Time

	doc.Find("time[datetime]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw, _ := s.Attr("datetime")
		if parsed := parseMachineDate(strings.TrimSpace(raw)); parsed != nil {
			found = parsed
			return false
		}
		return true
	})
	if found != nil {
		return found
	}

	for _, selector := range metaDateSelectors {
		content := strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
		if content == "" {
			continue
		}
		if parsed := parseMachineDate(content); parsed != nil {
			return parsed
		}
	}

	if match := longFormDatePattern.FindString(doc.Text()); match != "" {
		for _, layout := range longFormDateLayouts {
			if t, err := time.Parse(layout, match); err == nil {
				return &t
			}
		}
	}

	return nil
}

// parseMachineDate parses an ISO-8601 timestamp or a bare YYYY-MM-DD date.
func parseMachineDate(raw string) *time.Time {
	for _, layout := range machineDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// sourceFromURL returns the registrable domain of the article URL with a
// leading "www." stripped.
func sourceFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return domain
	}
	return host
}
