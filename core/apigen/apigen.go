// Package apigen implements the API generator (C6) and file materializer
// (C7): turning a built dataset into a logical object graph of
// translation/book-list/chapter-page objects, then into a deterministically
// ordered sequence of (path, JSON value) pairs.
package apigen

import (
	"fmt"
	"strings"

	"github.com/scripture-api/scripturegen/core/dataset"
	"github.com/scripture-api/scripturegen/core/envelope"
	"github.com/scripture-api/scripturegen/core/tree"
)

// Options parameterizes the generator.
type Options struct {
	// UseCommonName selects commonName (spaces replaced with underscores)
	// over the book id for URL path segments.
	UseCommonName bool
}

// replaceSpacesWithUnderscores replaces every ASCII space with "_". No
// other characters are escaped; callers are expected to supply
// already-URL-safe names.
func replaceSpacesWithUnderscores(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

func (o Options) bookSegment(b *dataset.Book) string {
	if o.UseCommonName {
		return replaceSpacesWithUnderscores(b.CommonName)
	}
	return b.ID
}

// TranslationLinks is the metadata plus navigational links shared by
// every object that embeds a translation reference.
type TranslationLinks struct {
	envelope.TranslationMetadata
	TextDirection      envelope.Direction `json:"textDirection"`
	AvailableFormats   []string           `json:"availableFormats"`
	ListOfBooksAPILink string             `json:"listOfBooksApiLink"`
}

// BookSummary is one entry in a translation's book list.
type BookSummary struct {
	ID                  string `json:"id"`
	Order               int    `json:"order"`
	Name                string `json:"name"`
	CommonName          string `json:"commonName"`
	Title               string `json:"title"`
	NumberOfChapters    int    `json:"numberOfChapters"`
	FirstChapterAPILink string `json:"firstChapterApiLink"`
	LastChapterAPILink  string `json:"lastChapterApiLink"`
}

// BooksIndex is the /api/{translation}/books.json document.
type BooksIndex struct {
	Translation TranslationLinks `json:"translation"`
	Books       []BookSummary    `json:"books"`
}

// ChapterPage is a /api/{translation}/{book}/{chapter}.json document.
type ChapterPage struct {
	Translation               TranslationLinks    `json:"translation"`
	Book                       BookSummary         `json:"book"`
	Chapter                    *tree.ChapterItem   `json:"chapter"`
	ThisChapterLink            string              `json:"thisChapterLink"`
	ThisChapterAudioLinks      map[string]any      `json:"thisChapterAudioLinks"`
	NextChapterAPILink         *string             `json:"nextChapterApiLink"`
	NextChapterAudioLinks      map[string]any      `json:"nextChapterAudioLinks"`
	PreviousChapterAPILink     *string             `json:"previousChapterApiLink"`
	PreviousChapterAudioLinks  map[string]any      `json:"previousChapterAudioLinks"`
}

// AvailableTranslationsIndex is the /api/available_translations.json document.
type AvailableTranslationsIndex struct {
	Translations []TranslationLinks `json:"translations"`
}

// File is one emitted (path, content) pair.
type File struct {
	Path    string
	Content any
}

// Generate produces the logical object graph and materializes it into a
// deterministically ordered file list: the translations index, then per
// translation the books index, then its chapters in canonical order.
func Generate(ds *dataset.Dataset, opts Options) ([]File, error) {
	var files []File

	var translationsIndex AvailableTranslationsIndex
	for _, t := range ds.Translations {
		translationsIndex.Translations = append(translationsIndex.Translations, translationLinks(t))
	}
	files = append(files, File{Path: "/api/available_translations.json", Content: translationsIndex})

	for _, t := range ds.Translations {
		tLinks := translationLinks(t)

		var summaries []BookSummary
		for _, b := range t.Books {
			summaries = append(summaries, bookSummary(t, b, opts))
		}
		files = append(files, File{
			Path:    fmt.Sprintf("/api/%s/books.json", t.Metadata.ID),
			Content: BooksIndex{Translation: tLinks, Books: summaries},
		})

		linear := linearizeChapters(t, opts)
		for idx, entry := range linear {
			files = append(files, chapterPage(t, tLinks, summaries, entry, linear, idx))
		}
	}

	return files, nil
}

func translationLinks(t *dataset.Translation) TranslationLinks {
	return TranslationLinks{
		TranslationMetadata: t.Metadata,
		TextDirection:       t.Metadata.EffectiveDirection(),
		AvailableFormats:    []string{"json"},
		ListOfBooksAPILink:  fmt.Sprintf("/api/%s/books.json", t.Metadata.ID),
	}
}

func bookSummary(t *dataset.Translation, b *dataset.Book, opts Options) BookSummary {
	segment := opts.bookSegment(b)
	return BookSummary{
		ID:                  b.ID,
		Order:               b.Order,
		Name:                b.Name,
		CommonName:          b.CommonName,
		Title:               b.Title,
		NumberOfChapters:    b.NumberOfChapters,
		FirstChapterAPILink: fmt.Sprintf("/api/%s/%s/1.json", t.Metadata.ID, segment),
		LastChapterAPILink:  fmt.Sprintf("/api/%s/%s/%d.json", t.Metadata.ID, segment, b.NumberOfChapters),
	}
}

type chapterEntry struct {
	bookID  string
	segment string
	chapter *tree.ChapterItem
}

func (e chapterEntry) path(translationID string) string {
	return fmt.Sprintf("/api/%s/%s/%d.json", translationID, e.segment, e.chapter.Number)
}

// linearizeChapters flattens a translation's books (already canon-ordered)
// into a single chapter sequence for next/previous navigation.
func linearizeChapters(t *dataset.Translation, opts Options) []chapterEntry {
	var entries []chapterEntry
	for _, b := range t.Books {
		segment := opts.bookSegment(b)
		for _, ch := range b.Tree.Chapters() {
			entries = append(entries, chapterEntry{bookID: b.ID, segment: segment, chapter: ch})
		}
	}
	return entries
}

func chapterPage(
	t *dataset.Translation,
	tLinks TranslationLinks,
	summaries []BookSummary,
	entry chapterEntry,
	linear []chapterEntry,
	idx int,
) File {
	path := entry.path(t.Metadata.ID)

	page := ChapterPage{
		Translation:               tLinks,
		Book:                      summaryFor(summaries, entry.bookID),
		Chapter:                   entry.chapter,
		ThisChapterLink:           path,
		ThisChapterAudioLinks:     map[string]any{},
		NextChapterAudioLinks:     map[string]any{},
		PreviousChapterAudioLinks: map[string]any{},
	}

	if idx == 0 {
		page.PreviousChapterAPILink = nil
		page.PreviousChapterAudioLinks = nil
	} else {
		prevPath := linear[idx-1].path(t.Metadata.ID)
		page.PreviousChapterAPILink = &prevPath
	}

	if idx == len(linear)-1 {
		page.NextChapterAPILink = nil
		page.NextChapterAudioLinks = nil
	} else {
		nextPath := linear[idx+1].path(t.Metadata.ID)
		page.NextChapterAPILink = &nextPath
	}

	return File{Path: path, Content: page}
}

func summaryFor(summaries []BookSummary, id string) BookSummary {
	for _, s := range summaries {
		if s.ID == id {
			return s
		}
	}
	return BookSummary{}
}

// WriteFiles marshals each file's content to indented JSON and writes it
// under root, creating parent directories as needed. Paths are taken
// relative to "/api/..." as produced by Generate.
func WriteFiles(root string, files []File) error {
	for _, f := range files {
		data, err := marshalIndent(f.Content)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", f.Path, err)
		}
		if err := writeFile(root, f.Path, data); err != nil {
			return err
		}
	}
	return nil
}
