package usfm

import (
	"regexp"
	"strings"

	scripturegenerrors "github.com/scripture-api/scripturegen/core/errors"
	"github.com/scripture-api/scripturegen/core/diag"
	"github.com/scripture-api/scripturegen/core/tree"
)

// ignoreMarkers is the USFM equivalent of the USX ignore-list paragraph
// styles: markers whose body text contributes nothing to chapter content.
var ignoreMarkers = map[string]bool{
	"ide": true, "rem": true, "h": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"toc1": true, "toc2": true, "toc3": true, "toca1": true, "toca2": true, "toca3": true,
	"imt": true, "imt1": true, "imt2": true, "imt3": true, "imt4": true,
	"is": true, "is1": true, "is2": true, "is3": true, "is4": true,
	"ip": true, "ipi": true, "im": true, "imi": true, "ipq": true, "imq": true, "ipr": true,
	"iq": true, "iq1": true, "iq2": true, "iq3": true, "iq4": true,
	"ib": true, "ili": true, "ili1": true, "ili2": true, "ili3": true, "ili4": true,
	"iot": true, "io": true, "io1": true, "io2": true, "io3": true, "io4": true,
	"iex": true, "imte": true, "ie": true,
	"mt": true, "mt1": true, "mt2": true, "mt3": true, "mt4": true,
	"mte": true, "mte1": true, "mte2": true, "mte3": true, "mte4": true,
	"cl": true, "cd": true, "r": true,
}

var refPrefix = regexp.MustCompile(`^\d{1,3}:\d{1,3}\s*`)

func poemLevel(marker string) int {
	switch marker {
	case "q1":
		return 1
	case "q2":
		return 2
	case "q3":
		return 3
	case "q4":
		return 4
	}
	return 0
}

func isHeadingMarker(marker string) bool {
	switch marker {
	case "s1", "s2", "s3", "s4":
		return true
	}
	return false
}

// isPlainParagraphMarker reports whether marker starts an ordinary
// non-poetic paragraph, resetting the poem/subtitle context a previous
// paragraph marker established — USFM has no closing tag for \q1/\d/\s1,
// so that context ends only when another paragraph marker begins.
func isPlainParagraphMarker(marker string) bool {
	switch marker {
	case "p", "m", "pi", "pi1", "pi2", "pi3", "pi4", "nb", "pc":
		return true
	}
	return false
}

type walker struct {
	book            *tree.Book
	chapter         *tree.ChapterItem
	verse           *tree.VerseContent
	footnoteCounter int
	previousVerse   int
	sink            diag.Sink

	poem       int
	inSubtitle bool
	subtitle   *tree.HebrewSubtitleContent
	wj         bool

	inNote      bool
	noteCaller  *string
	noteBuilder strings.Builder
}

// Parse parses a USFM text stream and returns its uniform parse tree.
func Parse(raw []byte, sink diag.Sink) (*tree.Book, error) {
	if sink == nil {
		sink = diag.Nop{}
	}
	tokens := tokenize(string(raw))

	code := ""
	for i, t := range tokens {
		if t.isMarker && t.name == "id" && i+1 < len(tokens) && !tokens[i+1].isMarker {
			arg, _ := splitArg(tokens[i+1].text)
			code = strings.ToUpper(arg)
			break
		}
	}
	if code == "" {
		return nil, &scripturegenerrors.MissingBookError{}
	}

	w := &walker{book: &tree.Book{ID: code}, sink: sink}

	if header := extractSingle(tokens, "h"); header != "" {
		w.book.Header = &header
	}
	if title := extractJoined(tokens, "mt1", "mt2", "mt3"); title != "" {
		w.book.Title = &title
	}

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if !t.isMarker {
			w.handleText(t.text)
			continue
		}
		i = w.handleMarker(tokens, i)
	}
	w.closeSubtitle()
	w.closeChapter()

	return w.book, nil
}

func extractSingle(tokens []token, marker string) string {
	for i, t := range tokens {
		if t.isMarker && t.name == marker && i+1 < len(tokens) && !tokens[i+1].isMarker {
			return strings.TrimSpace(tree.CollapseWhitespace(tokens[i+1].text))
		}
	}
	return ""
}

func extractJoined(tokens []token, markers ...string) string {
	want := map[string]bool{}
	for _, m := range markers {
		want[m] = true
	}
	var parts []string
	for i, t := range tokens {
		if t.isMarker && want[t.name] && i+1 < len(tokens) && !tokens[i+1].isMarker {
			parts = append(parts, tokens[i+1].text)
		}
	}
	return tree.JoinHeadingText(parts)
}

// handleMarker processes the marker at tokens[i] and returns the index of
// the last token it consumed (so the caller's loop can skip any argument
// token that was consumed here).
func (w *walker) handleMarker(tokens []token, i int) int {
	t := tokens[i]
	marker := t.name

	if w.inNote {
		switch marker {
		case "f*":
			w.closeNote()
			return i
		default:
			return i
		}
	}

	switch marker {
	case "id":
		return consumeArg(tokens, i)
	case "c":
		if i+1 < len(tokens) && !tokens[i+1].isMarker {
			arg, rest := splitArg(tokens[i+1].text)
			if v, err := parseVerseArg(arg); err == nil {
				w.openChapter(v.Number)
			}
			tokens[i+1].text = rest
		}
		return i
	case "v":
		if i+1 < len(tokens) && !tokens[i+1].isMarker {
			arg, rest := splitArg(tokens[i+1].text)
			if v, err := parseVerseArg(arg); err == nil {
				w.openVerse(v.Number)
			}
			tokens[i+1].text = rest
		}
		return i
	case "wj":
		w.wj = true
		if i+1 < len(tokens) && !tokens[i+1].isMarker {
			tokens[i+1].text = strings.TrimPrefix(tokens[i+1].text, " ")
		}
		return i
	case "wj*":
		w.wj = false
		return i
	case "f":
		w.inNote = true
		w.noteBuilder.Reset()
		w.noteCaller = nil
		if i+1 < len(tokens) && !tokens[i+1].isMarker {
			arg, rest := splitArg(tokens[i+1].text)
			if arg != "" {
				callerCopy := arg
				w.noteCaller = &callerCopy
			}
			tokens[i+1].text = rest
		}
		return i
	case "b":
		w.closeSubtitle()
		w.poem = 0
		if w.chapter != nil {
			w.closeVerse()
			w.chapter.Content = append(w.chapter.Content, &tree.LineBreakContent{})
		}
		return i
	case "d":
		w.closeSubtitle()
		w.poem = 0
		w.closeVerse()
		w.inSubtitle = true
		w.subtitle = &tree.HebrewSubtitleContent{}
		return i
	default:
		if isHeadingMarker(marker) {
			w.closeSubtitle()
			w.poem = 0
			if i+1 < len(tokens) && !tokens[i+1].isMarker {
				text := strings.TrimSpace(tree.CollapseWhitespace(tokens[i+1].text))
				w.appendHeading(text)
				tokens[i+1].text = ""
			}
			return i
		}
		if p := poemLevel(marker); p != 0 {
			w.closeSubtitle()
			w.poem = p
			return i
		}
		if ignoreMarkers[marker] {
			w.closeSubtitle()
			w.poem = 0
			if i+1 < len(tokens) && !tokens[i+1].isMarker {
				tokens[i+1].text = ""
			}
			return i
		}
		if isPlainParagraphMarker(marker) {
			w.closeSubtitle()
			w.poem = 0
			return i
		}
		w.sink.Warn(diag.KindUnknownStyle, "unhandled marker \\%s in book %s", marker, w.book.ID)
		return i
	}
}

func consumeArg(tokens []token, i int) int {
	if i+1 < len(tokens) && !tokens[i+1].isMarker {
		_, rest := splitArg(tokens[i+1].text)
		tokens[i+1].text = rest
	}
	return i
}

func (w *walker) handleText(text string) {
	if text == "" {
		return
	}
	if w.inNote {
		w.noteBuilder.WriteString(text)
		return
	}
	collapsed := tree.CollapseWhitespace(text)
	item := tree.PromoteText(plainOrRun(collapsed, w.wj), w.poem)
	if w.inSubtitle {
		w.subtitle.Content = tree.AppendInline(w.subtitle.Content, item)
		return
	}
	w.appendVerseItem(item)
}

func plainOrRun(text string, wj bool) tree.InlineItem {
	if wj {
		return tree.TextRun{Text: text, WordsOfJesus: true}
	}
	return tree.PlainText(text)
}

func (w *walker) closeNote() {
	w.inNote = false
	noteID := w.footnoteCounter
	w.footnoteCounter++

	text := strings.TrimSpace(tree.CollapseWhitespace(w.noteBuilder.String()))
	text = refPrefix.ReplaceAllString(text, "")

	chapterNumber := 0
	if w.chapter != nil {
		chapterNumber = w.chapter.Number
	}
	verseNumber := 0
	if w.verse != nil {
		verseNumber = w.verse.Number
	}

	footnote := tree.Footnote{
		NoteID: noteID,
		Caller: w.noteCaller,
		Text:   text,
		Reference: tree.FootnoteRef{
			Chapter: chapterNumber,
			Verse:   verseNumber,
		},
	}
	if w.chapter != nil {
		w.chapter.Footnotes = append(w.chapter.Footnotes, footnote)
	}

	ref := tree.PromoteText(tree.FootnoteReference{NoteID: noteID}, w.poem)
	if w.inSubtitle {
		w.subtitle.Content = tree.AppendInline(w.subtitle.Content, ref)
		return
	}
	w.appendVerseItem(ref)
}

func (w *walker) appendHeading(text string) {
	if w.chapter != nil {
		w.chapter.Content = append(w.chapter.Content, &tree.HeadingContent{Content: []string{text}})
		return
	}
	w.book.Content = append(w.book.Content, &tree.RootHeadingItem{Content: []string{text}})
}

func (w *walker) appendVerseItem(item tree.InlineItem) {
	if w.verse == nil {
		return
	}
	w.verse.Content = tree.AppendInline(w.verse.Content, item)
}

func (w *walker) openChapter(number int) {
	w.closeSubtitle()
	w.closeChapter()
	w.chapter = &tree.ChapterItem{Number: number}
	w.footnoteCounter = 0
	w.previousVerse = 0
}

func (w *walker) closeChapter() {
	w.closeVerse()
	if w.chapter != nil {
		w.book.Content = append(w.book.Content, w.chapter)
	}
	w.chapter = nil
}

func (w *walker) openVerse(number int) {
	w.closeVerse()
	if w.previousVerse != 0 && number <= w.previousVerse {
		w.sink.Warn(diag.KindVerseRegression, "verse %d does not increase on previous verse %d in book %s", number, w.previousVerse, w.book.ID)
	}
	w.previousVerse = number
	w.verse = &tree.VerseContent{Number: number}
}

func (w *walker) closeVerse() {
	if w.verse == nil {
		return
	}
	w.verse.Content = tree.TrimInline(w.verse.Content)
	if w.chapter != nil {
		w.chapter.Content = append(w.chapter.Content, w.verse)
	}
	w.verse = nil
}

func (w *walker) closeSubtitle() {
	if !w.inSubtitle {
		return
	}
	w.inSubtitle = false
	w.subtitle.Content = tree.TrimInline(w.subtitle.Content)
	if w.chapter != nil {
		w.chapter.Content = append(w.chapter.Content, w.subtitle)
	}
	w.subtitle = nil
}
