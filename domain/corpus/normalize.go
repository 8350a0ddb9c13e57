package corpus

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxArtifactBytes caps the artifact size. Vector store uploads have
// generous limits; the cap guards against runaway scrape output.
const DefaultMaxArtifactBytes = 512 * 1024

// typographic replacements applied before whitespace collapsing.
var typographic = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	"…", "...", // ellipsis
	"\u00a0", " ", // no-break space
)

// Normalize collapses whitespace runs, replaces typographic punctuation with
// ASCII, and strips control and zero-width characters. Paragraph breaks
// (blank lines) survive as a single blank line. Pure function, no I/O.
func Normalize(text string) string {
	text = typographic.Replace(text)

	var b strings.Builder
	b.Grow(len(text))

	blanks := 0   // consecutive newlines seen
	pending := "" // whitespace waiting to be emitted before the next rune
	for _, r := range text {
		switch {
		case r == '\n':
			blanks++
			continue
		case unicode.IsSpace(r):
			if pending == "" && blanks == 0 {
				pending = " "
			}
			continue
		case r == '\u200b' || r == '\ufeff' || unicode.IsControl(r):
			continue
		}

		if blanks > 0 {
			if b.Len() > 0 {
				if blanks > 1 {
					b.WriteString("\n\n")
				} else {
					b.WriteByte('\n')
				}
			}
			blanks = 0
			pending = ""
		}
		if pending != "" {
			if b.Len() > 0 {
				b.WriteString(pending)
			}
			pending = ""
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}

// NormalizeWithLimit normalizes text and truncates it to at most maxBytes at
// a rune boundary. A non-positive limit applies DefaultMaxArtifactBytes.
func NormalizeWithLimit(text string, maxBytes int) string {
	return TruncateBytes(Normalize(text), maxBytes)
}

// TruncateBytes cuts s to at most maxBytes at a rune boundary, without
// touching its internal layout. A non-positive limit applies
// DefaultMaxArtifactBytes.
func TruncateBytes(s string, maxBytes int) string {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxArtifactBytes
	}
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimRight(s[:cut], " \n")
}
