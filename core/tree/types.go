// Package tree defines the uniform parse tree produced by the USX and USFM
// markup parsers: books, chapters, verses, inline content, and footnotes.
// Both parsers build and normalize the same types so everything downstream
// of C2/C3 is markup-agnostic.
package tree

// InlineItem is the sealed tagged union of inline content: a plain string
// run, a formatted text run, or a footnote reference. Plain strings marshal
// as bare JSON strings; the others marshal as small objects.
type InlineItem interface {
	isInlineItem()
}

// PlainText is an unformatted inline string run.
type PlainText string

func (PlainText) isInlineItem() {}

// MarshalJSON marshals PlainText as a bare JSON string, matching the
// spec's "plain string" InlineItem variant.
func (p PlainText) MarshalJSON() ([]byte, error) {
	return marshalJSONString(string(p))
}

// TextRun is a formatted inline run: poetry indentation and/or
// words-of-Jesus emphasis.
type TextRun struct {
	Text         string `json:"text"`
	Poem         int    `json:"poem,omitempty"`
	WordsOfJesus bool   `json:"wordsOfJesus,omitempty"`
}

func (TextRun) isInlineItem() {}

// sameFormatting reports whether two TextRuns have identical poem/wordsOfJesus
// formatting, used by the coalescing rules in content.go.
func (t TextRun) sameFormatting(other TextRun) bool {
	return t.Poem == other.Poem && t.WordsOfJesus == other.WordsOfJesus
}

// FootnoteReference is an inline marker pointing at a Footnote by NoteID.
type FootnoteReference struct {
	NoteID int `json:"noteId"`
}

func (FootnoteReference) isInlineItem() {}

// FootnoteRef locates the chapter/verse a footnote was attached to. Verse is
// 0 for footnotes attached to a Hebrew subtitle.
type FootnoteRef struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// Footnote is a single translator's note, uniquely identified within its
// enclosing chapter by NoteID.
type Footnote struct {
	NoteID    int         `json:"noteId"`
	Caller    *string     `json:"caller"`
	Text      string      `json:"text"`
	Reference FootnoteRef `json:"reference"`
}

// ChapterContent is the sealed tagged union of content that can appear
// directly inside a chapter: section headings, line breaks, Hebrew
// subtitles, and verses.
type ChapterContent interface {
	isChapterContent()
}

// HeadingContent is a section heading (USX s1..s4 / USFM \s1..\s4).
type HeadingContent struct {
	Content []string
}

func (*HeadingContent) isChapterContent() {}

// MarshalJSON gives HeadingContent an explicit "type" discriminator since
// its "content" field shape (a string array) would otherwise be ambiguous
// against other content kinds at the JSON level.
func (h *HeadingContent) MarshalJSON() ([]byte, error) {
	return marshalTagged("heading", map[string]any{"content": h.Content})
}

// LineBreakContent is a poetic/structural line break (USX "b" / USFM \b).
type LineBreakContent struct{}

func (*LineBreakContent) isChapterContent() {}

// MarshalJSON marshals LineBreakContent as {"type":"line_break"}.
func (*LineBreakContent) MarshalJSON() ([]byte, error) {
	return marshalTagged("line_break", nil)
}

// HebrewSubtitleContent is an ancient Psalm superscription (USX "d" / USFM \d).
type HebrewSubtitleContent struct {
	Content []InlineItem
}

func (*HebrewSubtitleContent) isChapterContent() {}

// MarshalJSON marshals HebrewSubtitleContent with its inline content.
func (h *HebrewSubtitleContent) MarshalJSON() ([]byte, error) {
	return marshalTagged("hebrew_subtitle", map[string]any{"content": h.Content})
}

// VerseContent is a single verse's number and inline content.
type VerseContent struct {
	Number  int
	Content []InlineItem
}

func (*VerseContent) isChapterContent() {}

// MarshalJSON marshals VerseContent with its number and inline content.
func (v *VerseContent) MarshalJSON() ([]byte, error) {
	return marshalTagged("verse", map[string]any{"number": v.Number, "content": v.Content})
}

// RootItem is the sealed tagged union of items that can appear directly in
// a Book's Content: chapters, and section headings that precede chapter 1.
type RootItem interface {
	isRootItem()
}

// ChapterItem is a single chapter: its content stream and the footnotes
// attached anywhere within it.
type ChapterItem struct {
	Number    int
	Content   []ChapterContent
	Footnotes []Footnote
}

func (*ChapterItem) isRootItem() {}

// MarshalJSON marshals ChapterItem with its number, content, and footnotes.
func (c *ChapterItem) MarshalJSON() ([]byte, error) {
	footnotes := c.Footnotes
	if footnotes == nil {
		footnotes = []Footnote{}
	}
	return marshalTagged("chapter", map[string]any{
		"number":    c.Number,
		"content":   c.Content,
		"footnotes": footnotes,
	})
}

// RootHeadingItem is a section heading that appears before chapter 1.
type RootHeadingItem struct {
	Content []string
}

func (*RootHeadingItem) isRootItem() {}

// MarshalJSON marshals RootHeadingItem with its content.
func (h *RootHeadingItem) MarshalJSON() ([]byte, error) {
	return marshalTagged("heading", map[string]any{"content": h.Content})
}

// Book is the parse tree produced for a single book by the USX or USFM
// parser: a running header, an optional display title, and an ordered
// sequence of root items (chapters and any pre-chapter-1 headings).
type Book struct {
	ID      string     `json:"id"`
	Header  *string    `json:"header,omitempty"`
	Title   *string    `json:"title,omitempty"`
	Content []RootItem `json:"content"`
}

// Chapters returns the book's ChapterItem entries in document order,
// skipping any RootHeadingItem entries.
func (b *Book) Chapters() []*ChapterItem {
	var chapters []*ChapterItem
	for _, item := range b.Content {
		if ch, ok := item.(*ChapterItem); ok {
			chapters = append(chapters, ch)
		}
	}
	return chapters
}
