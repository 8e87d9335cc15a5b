package works

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name, venue, dates string) ExhibitionEntry {
	return ExhibitionEntry{Name: name, Venue: venue, Dates: dates}
}

func TestKeyIgnoresNonKeyFields(t *testing.T) {
	a := entry("Solo Show", "Gallery X", "Jan 2024")
	b := a
	b.About = "different text"
	b.Curator = "someone else"

	assert.Equal(t, a.Key(), b.Key())
}

func TestKeyDoesNotCollideOnDelimiters(t *testing.T) {
	a := entry("A|B", "C", "D")
	b := entry("A", "B|C", "D")

	assert.NotEqual(t, a.Key(), b.Key())
}

func TestNormalize(t *testing.T) {
	e := ExhibitionEntry{Name: "  Solo ", Venue: " X", Dates: "2024 ", ExhibitionImages: []string{" a.jpg ", "", "  "}}
	n := e.Normalize()

	assert.Equal(t, ExhibitionKey{Name: "Solo", Venue: "X", Dates: "2024"}, n.Key())
	assert.Equal(t, []string{"a.jpg"}, n.ExhibitionImages)
}

func TestWithoutExhibition(t *testing.T) {
	history := []ExhibitionEntry{entry("A", "v", "d"), entry("B", "v", "d")}

	out, changed := WithoutExhibition(history, entry("A", "v", "d").Key())
	assert.True(t, changed)
	assert.Equal(t, []ExhibitionEntry{entry("B", "v", "d")}, out)

	out, changed = WithoutExhibition(history, entry("C", "v", "d").Key())
	assert.False(t, changed)
	assert.Len(t, out, 2)
}

func TestReplaceExhibitionRenames(t *testing.T) {
	history := []ExhibitionEntry{entry("A", "v", "d"), entry("B", "v", "d")}
	repl := entry("A2", "v", "2025")
	repl.About = "new"

	out, changed := ReplaceExhibition(history, entry("A", "v", "d").Key(), repl)
	require.True(t, changed)
	assert.Equal(t, []ExhibitionEntry{repl, entry("B", "v", "d")}, out)
}

func TestReplaceExhibitionMergesIntoExistingKey(t *testing.T) {
	history := []ExhibitionEntry{entry("B", "v", "d"), entry("A", "v", "d")}
	repl := entry("B", "v", "d")
	repl.About = "merged"

	out, changed := ReplaceExhibition(history, entry("A", "v", "d").Key(), repl)
	require.True(t, changed)
	require.Len(t, out, 1)
	assert.Equal(t, "merged", out[0].About)
}

func TestReplaceExhibitionWithoutMatchIsNoop(t *testing.T) {
	history := []ExhibitionEntry{entry("B", "v", "d")}

	out, changed := ReplaceExhibition(history, entry("A", "v", "d").Key(), entry("C", "v", "d"))
	assert.False(t, changed)
	assert.Equal(t, history, out)
}

func TestNewExhibitionHistory(t *testing.T) {
	assert.Nil(t, NewExhibitionHistory(nil))

	h := NewExhibitionHistory([]ExhibitionEntry{entry("A", "v", "d")})
	require.NotNil(t, h)
	a := Artwork{ExhibitionHistory: h}
	assert.Len(t, a.Exhibitions(), 1)
}
