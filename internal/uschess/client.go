// Package uschess provides a client for the US Chess ratings API and the
// public player-profile and event pages.
package uschess

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/fetch"
)

// DefaultAPIBase is the production ratings API host.
const DefaultAPIBase = "https://ratings-api.uschess.org"

// DefaultProfileBase is the production player-profile host.
const DefaultProfileBase = "https://www.uschess.org"

// Client talks to the ratings API and the profile/event pages.
type Client struct {
	APIBase     string
	ProfileBase string
	Options     *fetch.Options
}

// NewClient returns a Client for the given hosts. Empty hosts fall back to
// the production defaults.
func NewClient(apiBase, profileBase string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if profileBase == "" {
		profileBase = DefaultProfileBase
	}
	return &Client{
		APIBase:     strings.TrimSuffix(apiBase, "/"),
		ProfileBase: strings.TrimSuffix(profileBase, "/"),
		Options:     fetch.DefaultOptions(),
	}
}

// MemberRating is one entry of a member's published ratings.
type MemberRating struct {
	RatingSystem string `json:"ratingSystem"`
	Rating       any    `json:"rating"`
}

// Value returns the rating as a string, or "" when the rating is absent,
// zero, or empty.
func (r MemberRating) Value() string {
	return stringifyValue(r.Rating)
}

// Member is the response body of the member-lookup endpoint. The API is not
// strict about field types, so ID and ratings are decoded loosely.
type Member struct {
	ID      any            `json:"id"`
	Ratings []MemberRating `json:"ratings"`
}

// IdentifierString returns the member's identifier as a string, or "" when
// the record has no usable id field.
func (m *Member) IdentifierString() string {
	return stringifyValue(m.ID)
}

// LookupMember fetches a member record by identifier. A non-200 response or
// an undecodable body is an error; the caller decides whether that is fatal.
func (c *Client) LookupMember(ctx context.Context, id string) (*Member, error) {
	memberURL := fmt.Sprintf("%s/api/v1/members/%s", c.APIBase, url.PathEscape(id))

	result, err := fetch.URL(ctx, memberURL, c.Options)
	if err != nil {
		return nil, err
	}

	var member Member
	if err := json.Unmarshal([]byte(result.Body), &member); err != nil {
		return nil, fmt.Errorf("failed to decode member %s: %w", id, err)
	}
	return &member, nil
}

// ProfilePage fetches the raw HTML of a member's public profile page.
func (c *Client) ProfilePage(ctx context.Context, id string) (string, error) {
	profileURL := fmt.Sprintf("%s/player/%s", c.ProfileBase, url.PathEscape(id))

	result, err := fetch.URL(ctx, profileURL, c.Options)
	if err != nil {
		return "", err
	}
	return result.Body, nil
}

// EventPage fetches the raw HTML of an event page.
func (c *Client) EventPage(ctx context.Context, eventURL string) (string, error) {
	result, err := fetch.URL(ctx, eventURL, c.Options)
	if err != nil {
		return "", err
	}
	return result.Body, nil
}

// ResolveEventURL turns an event href from a profile page into an absolute
// URL, resolving host-relative paths against the profile base.
func (c *Client) ResolveEventURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return c.ProfileBase + href
}

// stringifyValue renders a loosely typed JSON value as a string. Zero
// numbers, empty strings, and nil all produce "".
func stringifyValue(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == 0 {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case int:
		if val == 0 {
			return ""
		}
		return strconv.Itoa(val)
	}
	return ""
}
