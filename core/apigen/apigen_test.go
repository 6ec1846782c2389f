package apigen

import (
	"encoding/json"
	"testing"

	"github.com/scripture-api/scripturegen/core/dataset"
	"github.com/scripture-api/scripturegen/core/envelope"
	"github.com/scripture-api/scripturegen/core/tree"
)

func buildTestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	gen := &tree.Book{ID: "GEN", Content: []tree.RootItem{
		&tree.ChapterItem{Number: 1},
		&tree.ChapterItem{Number: 2},
	}}
	exo := &tree.Book{ID: "EXO", Content: []tree.RootItem{
		&tree.ChapterItem{Number: 1},
	}}
	meta := envelope.TranslationMetadata{ID: "web", Name: "World English Bible", EnglishName: "World English Bible", ShortName: "WEB", Language: "en"}
	ds, err := dataset.Build([]dataset.ParsedBook{
		{TranslationID: "web", Metadata: meta, Tree: gen},
		{TranslationID: "web", Metadata: meta, Tree: exo},
	})
	if err != nil {
		t.Fatalf("unexpected dataset error: %v", err)
	}
	return ds
}

func findFile(files []File, path string) (File, bool) {
	for _, f := range files {
		if f.Path == path {
			return f, true
		}
	}
	return File{}, false
}

func TestGenerateTranslationsIndex(t *testing.T) {
	ds := buildTestDataset(t)
	files, err := Generate(ds, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := findFile(files, "/api/available_translations.json")
	if !ok {
		t.Fatalf("missing translations index")
	}
	idx := f.Content.(AvailableTranslationsIndex)
	if len(idx.Translations) != 1 || idx.Translations[0].ID != "web" {
		t.Fatalf("unexpected translations index: %#v", idx)
	}
}

func TestGenerateBooksIndexOrderedAndLinked(t *testing.T) {
	ds := buildTestDataset(t)
	files, err := Generate(ds, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := findFile(files, "/api/web/books.json")
	if !ok {
		t.Fatalf("missing books index")
	}
	idx := f.Content.(BooksIndex)
	if len(idx.Books) != 2 || idx.Books[0].ID != "GEN" || idx.Books[1].ID != "EXO" {
		t.Fatalf("unexpected book order: %#v", idx.Books)
	}
	if idx.Books[0].FirstChapterAPILink != "/api/web/GEN/1.json" {
		t.Fatalf("unexpected first chapter link: %s", idx.Books[0].FirstChapterAPILink)
	}
	if idx.Books[0].LastChapterAPILink != "/api/web/GEN/2.json" {
		t.Fatalf("unexpected last chapter link: %s", idx.Books[0].LastChapterAPILink)
	}
}

func TestGenerateChapterLinearization(t *testing.T) {
	ds := buildTestDataset(t)
	files, err := Generate(ds, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gen1, ok := findFile(files, "/api/web/GEN/1.json")
	if !ok {
		t.Fatalf("missing GEN 1")
	}
	page := gen1.Content.(ChapterPage)
	if page.PreviousChapterAPILink != nil {
		t.Fatalf("expected nil previous link at corpus start, got %v", *page.PreviousChapterAPILink)
	}
	if page.NextChapterAPILink == nil || *page.NextChapterAPILink != "/api/web/GEN/2.json" {
		t.Fatalf("unexpected next link: %v", page.NextChapterAPILink)
	}

	gen2, ok := findFile(files, "/api/web/GEN/2.json")
	if !ok {
		t.Fatalf("missing GEN 2")
	}
	page2 := gen2.Content.(ChapterPage)
	if page2.NextChapterAPILink == nil || *page2.NextChapterAPILink != "/api/web/EXO/1.json" {
		t.Fatalf("expected next chapter to cross into EXO, got %v", page2.NextChapterAPILink)
	}

	exo1, ok := findFile(files, "/api/web/EXO/1.json")
	if !ok {
		t.Fatalf("missing EXO 1")
	}
	pageExo := exo1.Content.(ChapterPage)
	if pageExo.NextChapterAPILink != nil {
		t.Fatalf("expected nil next link at corpus end, got %v", *pageExo.NextChapterAPILink)
	}
	if pageExo.NextChapterAudioLinks != nil {
		t.Fatalf("expected nil next audio links at corpus end")
	}
	if pageExo.PreviousChapterAPILink == nil || *pageExo.PreviousChapterAPILink != "/api/web/GEN/2.json" {
		t.Fatalf("unexpected previous link: %v", pageExo.PreviousChapterAPILink)
	}
	if pageExo.ThisChapterAudioLinks == nil {
		t.Fatalf("expected empty object (not nil) for thisChapterAudioLinks")
	}
}

func TestGenerateUseCommonNameSegment(t *testing.T) {
	book := &tree.Book{ID: "SNG", Content: []tree.RootItem{&tree.ChapterItem{Number: 1}}}
	meta := envelope.TranslationMetadata{ID: "web", Name: "WEB", EnglishName: "WEB", ShortName: "WEB", Language: "en"}
	ds, err := dataset.Build([]dataset.ParsedBook{{TranslationID: "web", Metadata: meta, Tree: book}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	files, err := Generate(ds, Options{UseCommonName: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := findFile(files, "/api/web/Song_of_Solomon/1.json"); !ok {
		t.Fatalf("expected commonName-based segment with underscores, got paths: %v", pathsOf(files))
	}
}

func pathsOf(files []File) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestChapterPageMarshalsDeterministically(t *testing.T) {
	ds := buildTestDataset(t)
	files, err := Generate(ds, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, _ := findFile(files, "/api/web/GEN/1.json")
	b1, err := json.Marshal(f.Content)
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	b2, _ := json.Marshal(f.Content)
	if string(b1) != string(b2) {
		t.Fatalf("expected byte-identical marshal output")
	}
}
