package uschess

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupMember_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/members/12345678", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 12345678, "ratings": [{"ratingSystem": "R", "rating": 1523}, {"ratingSystem": "Q", "rating": "1480"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	member, err := client.LookupMember(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, "12345678", member.IdentifierString())
	require.Len(t, member.Ratings, 2)
	assert.Equal(t, "1523", member.Ratings[0].Value())
	assert.Equal(t, "1480", member.Ratings[1].Value())
}

func TestLookupMember_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.LookupMember(context.Background(), "99999999")
	assert.Error(t, err)
}

func TestLookupMember_BadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.LookupMember(context.Background(), "12345678")
	assert.Error(t, err)
}

func TestMemberRating_Value_Truthiness(t *testing.T) {
	assert.Equal(t, "", MemberRating{Rating: nil}.Value())
	assert.Equal(t, "", MemberRating{Rating: float64(0)}.Value())
	assert.Equal(t, "", MemberRating{Rating: ""}.Value())
	assert.Equal(t, "1200", MemberRating{Rating: float64(1200)}.Value())
	assert.Equal(t, "1200", MemberRating{Rating: "1200"}.Value())
}

func TestProfilePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/player/12345678", r.URL.Path)
		_, _ = w.Write([]byte(`<html><a href="/event/20240301-open">Open</a></html>`))
	}))
	defer server.Close()

	client := NewClient("", server.URL)
	html, err := client.ProfilePage(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Contains(t, html, "/event/20240301-open")
}

func TestResolveEventURL(t *testing.T) {
	client := NewClient("", "https://www.uschess.org")

	assert.Equal(t, "https://www.uschess.org/event/20240301-open",
		client.ResolveEventURL("/event/20240301-open"))
	assert.Equal(t, "https://www.uschess.org/event/20240301-open",
		client.ResolveEventURL("event/20240301-open"))
	assert.Equal(t, "https://other.example.com/event/20240301-open",
		client.ResolveEventURL("https://other.example.com/event/20240301-open"))
}
