package chat

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// stripPolicy drops every tag and keeps text content. Bodies come straight
// from other users, so nothing they typed is trusted as markup.
var stripPolicy = bluemonday.StrictPolicy()

// cleanText turns a raw message body into plain text that renders safely in
// a terminal cell grid.
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	if hasMarkup(s) {
		// The strict policy escapes what it keeps; undo that for display.
		s = html.UnescapeString(stripPolicy.Sanitize(s))
	}
	return sanitizeForTerminal(s)
}

// voidElements are tags that count as markup without a closing tag.
var voidElements = map[atom.Atom]bool{
	atom.Br:  true,
	atom.Hr:  true,
	atom.Img: true,
	atom.Wbr: true,
}

// hasMarkup reports whether s holds at least one known HTML element that is
// closed or void. Plain text with angle brackets, like "a<b" or "<Enter>",
// is left alone.
func hasMarkup(s string) bool {
	if !strings.Contains(s, "<") {
		return false
	}
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) != 0 {
				return true
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if voidElements[atom.Lookup(name)] {
				return true
			}
		}
	}
}

// sanitizeForTerminal removes codepoints that break tcell's width accounting
// and control characters other than newline and tab:
//   - skin tone modifiers (U+1F3FB..U+1F3FF)
//   - zero width joiner (U+200D)
//   - variation selectors (U+FE00..U+FE0F, U+E0100..U+E01EF)
//
// This turns e.g. a thumbs-up with a skin tone into a plain 2-cell thumbs-up.
func sanitizeForTerminal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isProblematicRune(r) {
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}

func isProblematicRune(r rune) bool {
	switch {
	case r == '\n' || r == '\t':
		return false
	case r == utf8.RuneError:
		return true
	case unicode.IsControl(r):
		return true
	// Skin tone modifiers.
	case r >= 0x1F3FB && r <= 0x1F3FF:
		return true
	// Zero Width Joiner.
	case r == 0x200D:
		return true
	// Variation Selectors.
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	// Variation Selectors Supplement.
	case r >= 0xE0100 && r <= 0xE01EF:
		return true
	default:
		return false
	}
}
