// Package gazette collects Indian legal and regulatory update listings
// from public sources and categorizes them by constitutional and privacy
// relevance.
package gazette

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxPerSource   = 10
	summaryMaxLen  = 200
	requestTimeout = 30 * time.Second

	// Pause between sources so we do not hammer government servers.
	sourceDelay = 2 * time.Second
)

type SourceKind string

const (
	KindJudgments     SourceKind = "judgment"
	KindLegislation   SourceKind = "legislation"
	KindParliamentary SourceKind = "parliamentary"
)

type Source struct {
	ID   string
	Name string
	URL  string
	Kind SourceKind
}

func DefaultSources() []Source {
	return []Source{
		{ID: "supreme_court", Name: "Supreme Court of India", URL: "https://main.sci.gov.in/judgments", Kind: KindJudgments},
		{ID: "india_code", Name: "India Code Legislative Updates", URL: "https://www.indiacode.nic.in/", Kind: KindLegislation},
		{ID: "parliament", Name: "Parliament of India", URL: "https://loksabha.nic.in/", Kind: KindParliamentary},
	}
}

type Update struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Source    string     `json:"source"`
	Kind      SourceKind `json:"type"`
	Summary   string     `json:"summary"`
	ScrapedAt time.Time  `json:"scraped_date"`
}

type Result struct {
	ScrapedAt             time.Time `json:"scraping_timestamp"`
	SourcesScraped        []string  `json:"sources_scraped"`
	TotalUpdates          int       `json:"total_updates"`
	ConstitutionalUpdates []Update  `json:"constitutional_updates"`
	PrivacyUpdates        []Update  `json:"privacy_updates"`
	GeneralUpdates        []Update  `json:"general_updates"`
	Errors                []string  `json:"errors"`
}

var constitutionalKeywords = []string{
	"constitutional", "fundamental rights", "article 21", "privacy",
	"data protection", "dpdpa", "supreme court", "constitutional amendment",
}

var privacyKeywords = []string{
	"privacy", "personal data", "data protection", "dpdpa 2023",
	"article 21", "puttaswamy", "information privacy",
}

var (
	reJudgmentClass   = regexp.MustCompile(`(?i)judgment|case|order`)
	reLegislationText = regexp.MustCompile(`(?i)act|amendment|bill|legislation`)
	reParliamentText  = regexp.MustCompile(`(?i)bill|question|proceeding|debate`)
)

type Scraper struct {
	client  *http.Client
	sources []Source
	logger  *slog.Logger
	delay   time.Duration
}

func New(logger *slog.Logger) *Scraper {
	return NewWithSources(DefaultSources(), logger)
}

func NewWithSources(sources []Source, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{
		client:  &http.Client{Timeout: requestTimeout},
		sources: sources,
		logger:  logger,
		delay:   sourceDelay,
	}
}

// ScrapeAll fetches every configured source and categorizes the updates.
// Per-source failures are collected rather than aborting the sweep.
func (s *Scraper) ScrapeAll(ctx context.Context) (*Result, error) {
	result := &Result{
		ScrapedAt:             time.Now().UTC(),
		SourcesScraped:        []string{},
		ConstitutionalUpdates: []Update{},
		PrivacyUpdates:        []Update{},
		GeneralUpdates:        []Update{},
		Errors:                []string{},
	}

	for i, source := range s.sources {
		if i > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(s.delay):
			}
		}

		s.logger.Info("scraping source", "source", source.Name)
		updates, err := s.ScrapeSource(ctx, source)
		if err != nil {
			s.logger.Error("scrape failed", "source", source.Name, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("scrape %s: %v", source.Name, err))
			continue
		}

		result.SourcesScraped = append(result.SourcesScraped, source.Name)
		result.TotalUpdates += len(updates)
		for _, update := range updates {
			switch {
			case matchesAnyKeyword(update, constitutionalKeywords):
				result.ConstitutionalUpdates = append(result.ConstitutionalUpdates, update)
			case matchesAnyKeyword(update, privacyKeywords):
				result.PrivacyUpdates = append(result.PrivacyUpdates, update)
			default:
				result.GeneralUpdates = append(result.GeneralUpdates, update)
			}
		}
	}

	return result, nil
}

func (s *Scraper) ScrapeSource(ctx context.Context, source Source) ([]Update, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch listing: unexpected status %d", resp.StatusCode)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing html: %w", err)
	}
	return ParseListing(root, source), nil
}

// ParseListing extracts update entries from a parsed source page.
// Judgment pages match elements by class, legislative and parliamentary
// pages by the element's text.
func ParseListing(root *html.Node, source Source) []Update {
	var textFilter *regexp.Regexp
	minTitleLen := 15
	switch source.Kind {
	case KindJudgments:
		minTitleLen = 20
	case KindLegislation:
		textFilter = reLegislationText
	case KindParliamentary:
		textFilter = reParliamentText
	}

	base, _ := url.Parse(source.URL)
	now := time.Now().UTC()
	var updates []Update

	walkNodes(root, func(n *html.Node) bool {
		if len(updates) >= maxPerSource {
			return false
		}
		if n.Type != html.ElementNode || (n.Data != "a" && n.Data != "div") {
			return true
		}

		if source.Kind == KindJudgments {
			if !reJudgmentClass.MatchString(attr(n, "class")) {
				return true
			}
		}

		title := strings.TrimSpace(collapseSpace(nodeText(n)))
		if len(title) <= minTitleLen {
			return true
		}
		if textFilter != nil && !textFilter.MatchString(title) {
			return true
		}

		link := ""
		if n.Data == "a" || source.Kind == KindJudgments {
			link = resolveLink(base, attr(n, "href"))
		}

		updates = append(updates, Update{
			Title:     title,
			Link:      link,
			Source:    source.Name,
			Kind:      source.Kind,
			Summary:   summarize(title),
			ScrapedAt: now,
		})
		// Skip this element's children: their text is already in the title.
		return false
	})

	return updates
}

func walkNodes(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walkNodes(child, visit)
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(nodeText(child))
	}
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func resolveLink(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func summarize(title string) string {
	if len(title) > summaryMaxLen {
		return title[:summaryMaxLen] + "..."
	}
	return title
}

func matchesAnyKeyword(update Update, keywords []string) bool {
	text := strings.ToLower(update.Title + " " + update.Summary)
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
