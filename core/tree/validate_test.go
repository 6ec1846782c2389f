package tree

import "testing"

func cleanBook() *Book {
	return &Book{
		ID: "GEN",
		Content: []RootItem{
			&ChapterItem{
				Number: 1,
				Content: []ChapterContent{
					&VerseContent{Number: 1, Content: []InlineItem{PlainText("In the beginning.")}},
					&VerseContent{Number: 2, Content: []InlineItem{
						PlainText("And the earth "),
						FootnoteReference{NoteID: 0},
					}},
				},
				Footnotes: []Footnote{
					{NoteID: 0, Text: "a note", Reference: FootnoteRef{Chapter: 1, Verse: 2}},
				},
			},
		},
	}
}

func TestValidateBookAcceptsCleanBook(t *testing.T) {
	if errs := ValidateBook(cleanBook()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateBookCatchesVerseRegression(t *testing.T) {
	b := cleanBook()
	ch := b.Content[0].(*ChapterItem)
	ch.Content = []ChapterContent{
		&VerseContent{Number: 2, Content: []InlineItem{PlainText("Second.")}},
		&VerseContent{Number: 1, Content: []InlineItem{PlainText("First again.")}},
	}
	ch.Footnotes = nil

	errs := ValidateBook(b)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
}

func TestValidateBookCatchesEmptyEntry(t *testing.T) {
	b := cleanBook()
	ch := b.Content[0].(*ChapterItem)
	ch.Content = []ChapterContent{
		&VerseContent{Number: 1, Content: []InlineItem{PlainText("")}},
	}
	ch.Footnotes = nil

	errs := ValidateBook(b)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
}

func TestValidateBookCatchesAdjacentSameFormattingRuns(t *testing.T) {
	b := cleanBook()
	ch := b.Content[0].(*ChapterItem)
	ch.Content = []ChapterContent{
		&VerseContent{Number: 1, Content: []InlineItem{
			TextRun{Text: "Blessed", WordsOfJesus: true},
			TextRun{Text: " is", WordsOfJesus: true},
		}},
	}
	ch.Footnotes = nil

	errs := ValidateBook(b)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
}

func TestValidateBookCatchesDanglingFootnoteReference(t *testing.T) {
	b := cleanBook()
	ch := b.Content[0].(*ChapterItem)
	ch.Footnotes = nil

	errs := ValidateBook(b)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
}
