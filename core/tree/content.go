package tree

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces every run of whitespace (including newlines)
// in s with a single space. It does not trim the ends of s; trimming is a
// property of the whole inline sequence, handled by TrimInline.
func CollapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// PromoteText wraps item in poetry formatting ahead of coalescing, per the
// rule that promotion happens before coalescing so consecutive promoted
// runs merge into one TextRun. A poem of 0 leaves item untouched.
func PromoteText(item InlineItem, poem int) InlineItem {
	if poem == 0 {
		return item
	}
	switch t := item.(type) {
	case PlainText:
		return TextRun{Text: string(t), Poem: poem}
	case TextRun:
		t.Poem = poem
		return t
	default:
		return item
	}
}

// AppendInline appends item to items, coalescing with the tail entry when
// both are plain strings, or both are TextRuns with identical formatting.
// Empty strings/TextRuns are dropped rather than appended.
func AppendInline(items []InlineItem, item InlineItem) []InlineItem {
	switch t := item.(type) {
	case PlainText:
		if string(t) == "" {
			return items
		}
		if len(items) > 0 {
			if tail, ok := items[len(items)-1].(PlainText); ok {
				items[len(items)-1] = tail + t
				return items
			}
		}
	case TextRun:
		if t.Text == "" {
			return items
		}
		if len(items) > 0 {
			if tail, ok := items[len(items)-1].(TextRun); ok && tail.sameFormatting(t) {
				tail.Text = tail.Text + " " + t.Text
				items[len(items)-1] = tail
				return items
			}
		}
	}
	return append(items, item)
}

// TrimInline drops empty string/TextRun entries, then trims leading
// whitespace from the first surviving entry and trailing whitespace from
// the last, matching the per-sequence whitespace rule in the spec.
func TrimInline(items []InlineItem) []InlineItem {
	cleaned := items[:0:0]
	for _, it := range items {
		switch t := it.(type) {
		case PlainText:
			if string(t) == "" {
				continue
			}
			cleaned = append(cleaned, t)
		case TextRun:
			if t.Text == "" {
				continue
			}
			cleaned = append(cleaned, t)
		default:
			cleaned = append(cleaned, it)
		}
	}
trimLeft:
	for len(cleaned) > 0 {
		switch t := cleaned[0].(type) {
		case PlainText:
			trimmed := strings.TrimLeft(string(t), " ")
			if trimmed == "" {
				cleaned = cleaned[1:]
				continue trimLeft
			}
			cleaned[0] = PlainText(trimmed)
		case TextRun:
			trimmed := strings.TrimLeft(t.Text, " ")
			if trimmed == "" {
				cleaned = cleaned[1:]
				continue trimLeft
			}
			t.Text = trimmed
			cleaned[0] = t
		}
		break trimLeft
	}

trimRight:
	for len(cleaned) > 0 {
		last := len(cleaned) - 1
		switch t := cleaned[last].(type) {
		case PlainText:
			trimmed := strings.TrimRight(string(t), " ")
			if trimmed == "" {
				cleaned = cleaned[:last]
				continue trimRight
			}
			cleaned[last] = PlainText(trimmed)
		case TextRun:
			trimmed := strings.TrimRight(t.Text, " ")
			if trimmed == "" {
				cleaned = cleaned[:last]
				continue trimRight
			}
			t.Text = trimmed
			cleaned[last] = t
		}
		break trimRight
	}
	return cleaned
}

// JoinHeadingText joins section-heading strings with a single space, after
// collapsing internal whitespace and trimming each piece.
func JoinHeadingText(parts []string) string {
	var cleaned []string
	for _, p := range parts {
		p = strings.TrimSpace(CollapseWhitespace(p))
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, " ")
}
