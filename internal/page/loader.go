// Package page - loader.go loads a URL into a Document, falling back to
// headless-browser rendering once when the plain fetch comes back empty.
package page

import (
	"context"
	"fmt"

	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/fetch"
)

// RetryOnce runs action. If it fails with an error accepted by retryable,
// setup is run exactly once and action is retried exactly once. Any other
// failure, and any failure of the retry itself, is returned as-is.
func RetryOnce(action func() (string, error), retryable func(error) bool, setup func() error) (string, error) {
	out, err := action()
	if err == nil || !retryable(err) {
		return out, err
	}
	if setupErr := setup(); setupErr != nil {
		return "", setupErr
	}
	return action()
}

// Loader fetches a URL and parses it into a Document. When AllowBrowser is
// set, a page whose plain fetch yields too little visible text is re-fetched
// through a headless browser.
type Loader struct {
	Options      *fetch.Options
	AllowBrowser bool
	Verbose      bool

	useBrowser bool
}

// NewLoader returns a Loader with default fetch options.
func NewLoader(allowBrowser, verbose bool) *Loader {
	return &Loader{
		Options:      fetch.DefaultOptions(),
		AllowBrowser: allowBrowser,
		Verbose:      verbose,
	}
}

// Load fetches urlStr and returns the parsed Document.
func (l *Loader) Load(ctx context.Context, urlStr string) (*Document, error) {
	html, err := RetryOnce(
		func() (string, error) { return l.fetchHTML(ctx, urlStr) },
		IsRenderRequired,
		func() error {
			if !l.AllowBrowser {
				return fmt.Errorf("page at %s requires browser rendering; re-run with --use-browser", urlStr)
			}
			l.useBrowser = true
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return NewDocument(html, urlStr)
}

func (l *Loader) fetchHTML(ctx context.Context, urlStr string) (string, error) {
	if l.useBrowser {
		return fetch.BrowserSimple(ctx, urlStr, l.Verbose)
	}

	result, err := fetch.URL(ctx, urlStr, l.Options)
	if err != nil {
		return "", err
	}

	doc, err := NewDocument(result.Body, urlStr)
	if err != nil {
		return "", err
	}
	if fetch.ShouldUseBrowser(doc.Text()) {
		return "", &RenderRequiredError{URL: urlStr}
	}

	return result.Body, nil
}
