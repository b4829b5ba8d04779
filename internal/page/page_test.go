package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Links(t *testing.T) {
	html := `
		<html>
			<body>
				<a href="https://www.uschess.org/player/12345678">Alice</a>
				<a href="/player/87654321">Bob</a>
				<a>No href</a>
			</body>
		</html>
	`

	doc, err := NewDocument(html, "https://tournament.example.com/open")
	require.NoError(t, err)

	links := doc.Links()
	require.Len(t, links, 2)
	assert.Equal(t, "https://www.uschess.org/player/12345678", links[0].Href)
	assert.Equal(t, "Alice", links[0].Text)
	// Relative links resolve against the page URL
	assert.Equal(t, "https://tournament.example.com/player/87654321", links[1].Href)
}

func TestDocument_Links_NoBaseURL(t *testing.T) {
	html := `<html><body><a href="/player/12345678">Alice</a></body></html>`

	doc, err := NewDocument(html, "")
	require.NoError(t, err)

	links := doc.Links()
	require.Len(t, links, 1)
	assert.Equal(t, "/player/12345678", links[0].Href)
}

func TestDocument_Text(t *testing.T) {
	html := `<html><body><div>Entry list</div><p>ID 30123456</p></body></html>`

	doc, err := NewDocument(html, "")
	require.NoError(t, err)

	text := doc.Text()
	assert.Contains(t, text, "Entry list")
	assert.Contains(t, text, "30123456")
}

func TestDocument_TableRows(t *testing.T) {
	html := `
		<html>
			<body>
				<table id="player-list">
					<tr><th>#</th><th>ID</th><th>Name</th></tr>
					<tr><td>1</td><td>12345678</td><td>Doe, Jane</td></tr>
					<tr><td>2</td><td>87654321</td><td>Roe, Rick</td></tr>
				</table>
				<table id="other"><tr><td>ignored</td></tr></table>
			</body>
		</html>
	`

	doc, err := NewDocument(html, "")
	require.NoError(t, err)

	rows := doc.TableRows("#player-list")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"#", "ID", "Name"}, rows[0])
	assert.Equal(t, []string{"1", "12345678", "Doe, Jane"}, rows[1])
	assert.Equal(t, []string{"2", "87654321", "Roe, Rick"}, rows[2])
}

func TestDocument_TableRows_NoContainer(t *testing.T) {
	doc, err := NewDocument("<html><body></body></html>", "")
	require.NoError(t, err)
	assert.Empty(t, doc.TableRows("#player-list"))
}

func TestRetryOnce_SuccessFirstTry(t *testing.T) {
	setupCalls := 0
	out, err := RetryOnce(
		func() (string, error) { return "ok", nil },
		IsRenderRequired,
		func() error { setupCalls++; return nil },
	)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Zero(t, setupCalls)
}

func TestRetryOnce_RetriesAfterSetup(t *testing.T) {
	setupCalls := 0
	attempts := 0
	out, err := RetryOnce(
		func() (string, error) {
			attempts++
			if attempts == 1 {
				return "", &RenderRequiredError{URL: "https://example.com"}
			}
			return "rendered", nil
		},
		IsRenderRequired,
		func() error { setupCalls++; return nil },
	)
	require.NoError(t, err)
	assert.Equal(t, "rendered", out)
	assert.Equal(t, 1, setupCalls)
	assert.Equal(t, 2, attempts)
}

func TestRetryOnce_NonRetryableError(t *testing.T) {
	setupCalls := 0
	_, err := RetryOnce(
		func() (string, error) { return "", assert.AnError },
		IsRenderRequired,
		func() error { setupCalls++; return nil },
	)
	require.Error(t, err)
	assert.Zero(t, setupCalls)
}

func TestRetryOnce_SetupFailurePropagates(t *testing.T) {
	_, err := RetryOnce(
		func() (string, error) { return "", &RenderRequiredError{URL: "https://example.com"} },
		IsRenderRequired,
		func() error { return assert.AnError },
	)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRetryOnce_SecondFailurePropagates(t *testing.T) {
	attempts := 0
	_, err := RetryOnce(
		func() (string, error) {
			attempts++
			return "", &RenderRequiredError{URL: "https://example.com"}
		},
		IsRenderRequired,
		func() error { return nil },
	)
	require.Error(t, err)
	assert.True(t, IsRenderRequired(err))
	assert.Equal(t, 2, attempts)
}
