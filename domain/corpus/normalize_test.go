package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("Park   hours\t\tchange   today")
	assert.Equal(t, "Park hours change today", got)
}

func TestNormalizePreservesParagraphBreaks(t *testing.T) {
	got := Normalize("First paragraph.\n\n\nSecond paragraph.\nSame paragraph line.")
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.\nSame paragraph line.", got)
}

func TestNormalizeReplacesTypographicPunctuation(t *testing.T) {
	got := Normalize("“Closed” — it’s holiday hours…")
	assert.Equal(t, `"Closed" - it's holiday hours...`, got)
}

func TestNormalizeStripsControlAndZeroWidth(t *testing.T) {
	got := Normalize("a\u200bb\ufeffc\x00d")
	assert.Equal(t, "abcd", got)
}

func TestNormalizeTrimsEdges(t *testing.T) {
	assert.Equal(t, "centered", Normalize("  \n centered \n  "))
	assert.Equal(t, "", Normalize(" \n\t "))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	in := "  It’s   closed — again.\n\n\nSee notices. "
	once := Normalize(in)
	assert.Equal(t, once, Normalize(once))
}

func TestNormalizeWithLimitCutsAtRuneBoundary(t *testing.T) {
	// Each rune is 3 bytes; a 7-byte limit must not split the third rune.
	got := NormalizeWithLimit("あいう", 7)
	assert.Equal(t, "あい", got)
}

func TestNormalizeWithLimitDefaultsCap(t *testing.T) {
	long := strings.Repeat("word ", 200)
	got := NormalizeWithLimit(long, 0)
	assert.LessOrEqual(t, len(got), DefaultMaxArtifactBytes)
	assert.NotEmpty(t, got)
}
