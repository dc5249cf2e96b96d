package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/umputun/quotetok/pkg/config"
	"github.com/umputun/quotetok/pkg/domain"
)

const titleLength = 60

// Generator creates RSS and OPML documents for saved quotes and corpus sources
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed from saved quotes, optionally limited to one category
func (g *Generator) GenerateRSS(quotes []domain.Quote, category string) (string, error) {
	title := "Quotetok - Saved Quotes"
	selfLink := g.baseURL + "/rss/saved"
	if category != "" && category != domain.CategoryAll {
		title = fmt.Sprintf("Quotetok - Saved Quotes - %s", category)
		selfLink = fmt.Sprintf("%s/rss/saved?category=%s", g.baseURL, url.QueryEscape(category))
	}

	rssItems := make([]*RSSItem, 0, len(quotes))
	for _, q := range quotes {
		if category != "" && category != domain.CategoryAll && q.Category != category {
			continue
		}
		rssItems = append(rssItems, g.convertToRSSItem(q))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("%d saved quotes", len(rssItems)),
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// convertToRSSItem makes an item titled with the beginning of the quote, the description is the copy text
func (g *Generator) convertToRSSItem(q domain.Quote) *RSSItem {
	return &RSSItem{
		Title:       shortTitle(q.Content),
		Link:        fmt.Sprintf("%s/api/v1/saved#quote-%d", g.baseURL, q.ID),
		GUID:        &GUID{Value: fmt.Sprintf("quote-%d", q.ID), IsPermaLink: "false"},
		Description: q.CopyText(),
		Categories:  []string{q.Category},
	}
}

// GenerateOPML creates an OPML list of the feed-based corpus sources
func (g *Generator) GenerateOPML(sources []config.SourceConfig) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(sources))
	for _, src := range sources {
		if src.Type != config.SourceRSS {
			continue
		}
		text := src.URL
		if src.Category != "" {
			text = src.Category
		}
		outlines = append(outlines, outline{Text: text, Title: text, Type: "rss", XMLUrl: src.URL})
	}

	doc := opml{
		Version: "2.0",
		Head:    head{Title: "Quotetok Quote Sources", DateCreated: g.now().Format(time.RFC1123Z)},
		Body:    body{Outlines: outlines},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}

func shortTitle(s string) string {
	if utf8.RuneCountInString(s) <= titleLength {
		return s
	}
	runes := []rune(s)
	cut := strings.TrimRight(string(runes[:titleLength]), " ,.;:-")
	return cut + "..."
}
