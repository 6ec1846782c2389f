package tree

import "fmt"

// ValidationError describes a single violated invariant, with a path
// pointing at the offending node for debugging.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidateBook checks every invariant from the spec's testable-properties
// section against a single parsed book and returns all violations found.
func ValidateBook(b *Book) []error {
	var errs []error
	for _, item := range b.Content {
		ch, ok := item.(*ChapterItem)
		if !ok {
			continue
		}
		errs = append(errs, validateChapter(b.ID, ch)...)
	}
	return errs
}

func validateChapter(bookID string, ch *ChapterItem) []error {
	var errs []error
	path := fmt.Sprintf("%s.chapter[%d]", bookID, ch.Number)

	noteIDs := make(map[int]bool, len(ch.Footnotes))
	for _, f := range ch.Footnotes {
		noteIDs[f.NoteID] = true
	}

	lastVerse := 0
	for _, c := range ch.Content {
		switch v := c.(type) {
		case *VerseContent:
			if v.Number < 1 {
				errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf("verse number %d is less than 1", v.Number)})
			} else if v.Number <= lastVerse {
				errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf("verse %d does not strictly increase after %d", v.Number, lastVerse)})
			}
			lastVerse = v.Number
			errs = append(errs, validateInline(fmt.Sprintf("%s.verse[%d]", path, v.Number), v.Content, noteIDs)...)
		case *HebrewSubtitleContent:
			errs = append(errs, validateInline(path+".subtitle", v.Content, noteIDs)...)
		}
	}
	return errs
}

func validateInline(path string, items []InlineItem, noteIDs map[int]bool) []error {
	var errs []error
	var prevIsString, havePrevText bool
	var prevFormatting TextRun

	for i, it := range items {
		switch t := it.(type) {
		case PlainText:
			if string(t) == "" {
				errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf("empty string entry at index %d", i)})
			}
			if prevIsString {
				errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf("adjacent plain string entries at index %d", i)})
			}
			prevIsString = true
			havePrevText = false
		case TextRun:
			if t.Text == "" {
				errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf("empty text entry at index %d", i)})
			}
			if havePrevText && prevFormatting.sameFormatting(t) {
				errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf("adjacent text entries with identical formatting at index %d", i)})
			}
			prevFormatting = t
			havePrevText = true
			prevIsString = false
		case FootnoteReference:
			if !noteIDs[t.NoteID] {
				errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf("footnote_reference noteId %d has no matching footnote", t.NoteID)})
			}
			prevIsString = false
			havePrevText = false
		}
	}
	return errs
}
