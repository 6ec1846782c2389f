// Package usx implements the USX XML parser (C2): a DOM walk over
// xmlquery nodes that assembles the uniform parse tree. Verses in USX can
// open in one <para> and close in a later sibling paragraph, so the walker
// keeps its "currently open verse" as parser state rather than as a
// recursion-local variable, letting it survive the move from one <para>
// sibling to the next.
package usx

import (
	"regexp"
	"strings"

	scripturegenerrors "github.com/scripture-api/scripturegen/core/errors"
	"github.com/scripture-api/scripturegen/core/diag"
	"github.com/scripture-api/scripturegen/core/tree"

	"github.com/antchfx/xmlquery"
)

// ignoreStyles is the set of USX para styles that contribute no chapter
// content: introductory material, running heads/feet, parallel refs, and
// the styles consumed separately for header/title.
var ignoreStyles = map[string]bool{
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

func poemLevel(style string) int {
	switch style {
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

func headingLevel(style string) bool {
	switch style {
	case "s1", "s2", "s3", "s4":
		return true
	}
	return false
}

// walker holds the parser state that must persist across <para> siblings:
// the currently open chapter and verse, and the chapter-local footnote
// counter.
type walker struct {
	book            *tree.Book
	chapter         *tree.ChapterItem
	verse           *tree.VerseContent
	footnoteCounter int
	previousVerse   int
	sink            diag.Sink
}

func newWalker(bookID string, sink diag.Sink) *walker {
	if sink == nil {
		sink = diag.Nop{}
	}
	return &walker{
		book: &tree.Book{ID: bookID},
		sink: sink,
	}
}

// Parse parses a USX document and returns its uniform parse tree.
func Parse(raw []byte, sink diag.Sink) (*tree.Book, error) {
	doc, err := xmlquery.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return nil, scripturegenerrors.Wrap(err, "parsing USX")
	}

	root := xmlquery.FindOne(doc, "//usx")
	if root == nil {
		return nil, scripturegenerrors.NewParseError("no <usx> root element", "")
	}

	bookNode := xmlquery.FindOne(root, "book")
	if bookNode == nil {
		return nil, &scripturegenerrors.MissingBookError{}
	}
	code := bookNode.SelectAttr("code")
	if code == "" {
		return nil, &scripturegenerrors.MissingBookError{}
	}

	w := newWalker(code, sink)

	if h := xmlquery.FindOne(root, "para[@style='h']"); h != nil {
		header := strings.TrimSpace(tree.CollapseWhitespace(h.InnerText()))
		if header != "" {
			w.book.Header = &header
		}
	}

	var titleParts []string
	for _, style := range []string{"mt1", "mt2", "mt3"} {
		for _, n := range xmlquery.Find(root, "para[@style='"+style+"']") {
			titleParts = append(titleParts, n.InnerText())
		}
	}
	if title := tree.JoinHeadingText(titleParts); title != "" {
		w.book.Title = &title
	}

	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		switch child.Data {
		case "book":
			continue
		case "chapter":
			w.handleChapterMilestone(child)
		case "para":
			w.handlePara(child)
		default:
			w.sink.Warn(diag.KindUnknownStyle, "unhandled top-level element <%s> in book %s", child.Data, code)
		}
	}
	w.closeChapter()

	return w.book, nil
}

func (w *walker) handleChapterMilestone(node *xmlquery.Node) {
	if node.SelectAttr("eid") != "" {
		return
	}
	number := node.SelectAttr("number")
	if number == "" {
		return
	}
	w.openChapter(parseIntOrZero(number))
}

func (w *walker) handlePara(node *xmlquery.Node) {
	style := node.SelectAttr("style")

	switch {
	case style == "h" || style == "mt1" || style == "mt2" || style == "mt3":
		return
	case ignoreStyles[style]:
		return
	case headingLevel(style):
		text := strings.TrimSpace(tree.CollapseWhitespace(node.InnerText()))
		w.appendHeading(text)
		return
	case style == "b":
		if w.chapter != nil {
			w.closeVerse()
			w.chapter.Content = append(w.chapter.Content, &tree.LineBreakContent{})
		}
		return
	case style == "d":
		w.handleSubtitlePara(node)
		return
	}

	poem := poemLevel(style)
	if poem == 0 {
		switch style {
		case "p", "m", "pi", "pi1", "pi2", "pi3", "pi4", "nb", "pc":
		default:
			w.sink.Warn(diag.KindUnknownStyle, "unhandled para style %q in book %s", style, w.book.ID)
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		w.walkBodyInline(child, poem, false)
	}
}

func (w *walker) appendHeading(text string) {
	if w.chapter != nil {
		w.chapter.Content = append(w.chapter.Content, &tree.HeadingContent{Content: []string{text}})
		return
	}
	w.book.Content = append(w.book.Content, &tree.RootHeadingItem{Content: []string{text}})
}

func (w *walker) handleSubtitlePara(node *xmlquery.Node) {
	subtitle := &tree.HebrewSubtitleContent{}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		w.walkSubtitleInline(child, &subtitle.Content, 0, false)
	}
	subtitle.Content = tree.TrimInline(subtitle.Content)
	if w.chapter != nil {
		w.chapter.Content = append(w.chapter.Content, subtitle)
	}
}

// walkBodyInline streams inline content into the currently open verse,
// following verse milestones across <para> siblings.
func (w *walker) walkBodyInline(node *xmlquery.Node, poem int, wj bool) {
	switch node.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		text := tree.CollapseWhitespace(node.Data)
		w.appendVerseItem(tree.PromoteText(plainOrRun(text, wj), poem))
	case xmlquery.ElementNode:
		switch node.Data {
		case "verse":
			w.handleVerseMilestone(node)
		case "char":
			childWJ := wj || node.SelectAttr("style") == "wj"
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				w.walkBodyInline(c, poem, childWJ)
			}
		case "note":
			w.handleNote(node, poem, wj, w.currentVerseNumber())
		default:
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				w.walkBodyInline(c, poem, wj)
			}
		}
	}
}

// walkSubtitleInline streams inline content directly into dst; Hebrew
// subtitles have no verse milestones of their own.
func (w *walker) walkSubtitleInline(node *xmlquery.Node, dst *[]tree.InlineItem, poem int, wj bool) {
	switch node.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		text := tree.CollapseWhitespace(node.Data)
		*dst = tree.AppendInline(*dst, tree.PromoteText(plainOrRun(text, wj), poem))
	case xmlquery.ElementNode:
		switch node.Data {
		case "char":
			childWJ := wj || node.SelectAttr("style") == "wj"
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				w.walkSubtitleInline(c, dst, poem, childWJ)
			}
		case "note":
			if noteID := w.handleNote(node, poem, wj, 0); noteID >= 0 {
				*dst = tree.AppendInline(*dst, tree.FootnoteReference{NoteID: noteID})
			}
		default:
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				w.walkSubtitleInline(c, dst, poem, wj)
			}
		}
	}
}

func plainOrRun(text string, wj bool) tree.InlineItem {
	if wj {
		return tree.TextRun{Text: text, WordsOfJesus: true}
	}
	return tree.PlainText(text)
}

func (w *walker) handleVerseMilestone(node *xmlquery.Node) {
	if eid := node.SelectAttr("eid"); eid != "" {
		w.closeVerse()
		return
	}
	number := node.SelectAttr("number")
	if number == "" {
		return
	}
	w.openVerse(parseIntOrZero(number))
}

func (w *walker) handleNote(node *xmlquery.Node, poem int, wj bool, verseNumber int) int {
	style := node.SelectAttr("style")
	if style != "f" {
		w.sink.Warn(diag.KindDroppedNote, "dropped note style %q in book %s", style, w.book.ID)
		return -1
	}
	noteID := w.footnoteCounter
	w.footnoteCounter++

	text := strings.TrimSpace(tree.CollapseWhitespace(node.InnerText()))
	text = refPrefix.ReplaceAllString(text, "")

	var caller *string
	if c := node.SelectAttr("caller"); c != "" {
		caller = &c
	}

	chapterNumber := 0
	if w.chapter != nil {
		chapterNumber = w.chapter.Number
	}

	footnote := tree.Footnote{
		NoteID: noteID,
		Caller: caller,
		Text:   text,
		Reference: tree.FootnoteRef{
			Chapter: chapterNumber,
			Verse:   verseNumber,
		},
	}
	if w.chapter != nil {
		w.chapter.Footnotes = append(w.chapter.Footnotes, footnote)
	}

	w.appendVerseItem(tree.PromoteText(tree.FootnoteReference{NoteID: noteID}, poem))
	return noteID
}

func (w *walker) currentVerseNumber() int {
	if w.verse != nil {
		return w.verse.Number
	}
	return 0
}

func (w *walker) appendVerseItem(item tree.InlineItem) {
	if w.verse == nil {
		return
	}
	w.verse.Content = tree.AppendInline(w.verse.Content, item)
}

func (w *walker) openChapter(number int) {
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

func parseIntOrZero(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
