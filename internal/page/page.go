// Package page provides the page-content capability used by identifier and
// player extraction: CSS-selector queries over links, visible text, and
// table rows, backed by a parsed HTML document.
package page

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Link is a hyperlink found on a page, with its resolved absolute target.
type Link struct {
	Href string
	Text string
}

// Source is the capability the extraction layer depends on instead of
// ambient document access.
type Source interface {
	// Links returns every hyperlink on the page with a non-empty href,
	// resolved against the page's base URL where possible.
	Links() []Link
	// Text returns the page's visible text.
	Text() string
	// TableRows returns the cell texts of every row inside the container
	// matched by the given selector.
	TableRows(containerSelector string) [][]string
}

// Document is a goquery-backed Source.
type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// NewDocument parses HTML into a Document. baseURL may be empty; when set it
// is used to resolve relative link targets.
func NewDocument(html string, baseURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	var base *url.URL
	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err == nil && parsed.Scheme != "" && parsed.Host != "" {
			base = parsed
		}
	}

	return &Document{doc: doc, base: base}, nil
}

// Links implements Source.
func (d *Document) Links() []Link {
	var links []Link
	d.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		if d.base != nil {
			if linkURL, err := url.Parse(href); err == nil {
				href = d.base.ResolveReference(linkURL).String()
			}
		}

		links = append(links, Link{
			Href: href,
			Text: strings.TrimSpace(s.Text()),
		})
	})
	return links
}

// Text implements Source.
func (d *Document) Text() string {
	return d.doc.Find("body").Text()
}

// TableRows implements Source.
func (d *Document) TableRows(containerSelector string) [][]string {
	var rows [][]string
	d.doc.Find(containerSelector).Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return rows
}
