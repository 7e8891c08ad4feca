package model

import "strings"

// StripTags replaces every HTML tag in a note body with repl. Note
// bodies come from a rich-text editor and carry simple inline markup;
// a dangling "<" with no closing ">" is kept literally, matching how
// a non-greedy tag pattern would leave it.
func StripTags(s, repl string) string {
	var b strings.Builder
	b.Grow(len(s))
	for {
		open := strings.IndexByte(s, '<')
		if open < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.IndexByte(s[open:], '>')
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:open])
		b.WriteString(repl)
		s = s[open+end+1:]
	}
}

// PlainText is the tag-free content of a note body, trimmed. Used to
// decide whether a note is empty regardless of markup.
func PlainText(html string) string {
	return strings.TrimSpace(StripTags(html, ""))
}
