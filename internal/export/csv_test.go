package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/types"
)

func enriched(id, name string, overrides map[types.Category]string) types.EnrichedPlayer {
	snap := types.NewRatingSnapshot()
	for category, value := range overrides {
		snap[category] = value
	}
	return types.EnrichedPlayer{
		PlayerEntry: types.PlayerEntry{ID: id, Name: name},
		Ratings:     snap,
	}
}

func TestFormat_HeaderOnly(t *testing.T) {
	out := Format(nil)
	assert.Equal(t, "USCF ID,Name,Regular,Quick,Blitz,Online Reg,Online Quick,Online Blitz\n", out)
}

func TestFormat_SinglePlayer(t *testing.T) {
	player := enriched("12345678", "A, B", map[types.Category]string{
		types.CategoryRegular: "1200",
	})

	out := Format([]types.EnrichedPlayer{player})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `12345678,"A, B",1200,Unrated,Unrated,Unrated,Unrated,Unrated`, lines[1])
}

func TestFormat_QuotesInName(t *testing.T) {
	player := enriched("12345678", `Jane "Rook" Doe`, nil)

	out := Format([]types.EnrichedPlayer{player})
	assert.Contains(t, out, `12345678,"Jane ""Rook"" Doe",Unrated`)
}

func TestFormat_PreservesPlayerOrder(t *testing.T) {
	players := []types.EnrichedPlayer{
		enriched("22222222", "Second, Player", nil),
		enriched("11111111", "First, Player", nil),
	}

	out := Format(players)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "22222222,"))
	assert.True(t, strings.HasPrefix(lines[2], "11111111,"))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ratings.csv")

	player := enriched("12345678", "Doe, Jane", map[types.Category]string{
		types.CategoryQuick: "1480",
	})
	require.NoError(t, WriteFile(path, []types.EnrichedPlayer{player}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "USCF ID,Name,")
	assert.Contains(t, string(data), `12345678,"Doe, Jane",Unrated,1480,`)

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFile_BadDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "ratings.csv"), nil)
	assert.Error(t, err)
}
