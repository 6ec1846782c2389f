package dataset

import (
	"errors"
	"testing"

	scripturegenerrors "github.com/scripture-api/scripturegen/core/errors"
	"github.com/scripture-api/scripturegen/core/envelope"
	"github.com/scripture-api/scripturegen/core/tree"
)

func meta(id string) envelope.TranslationMetadata {
	return envelope.TranslationMetadata{ID: id, Name: id, EnglishName: id, ShortName: id, Language: "en"}
}

func TestBuildOrdersBooksByCanon(t *testing.T) {
	books := []ParsedBook{
		{TranslationID: "web", Metadata: meta("web"), Tree: &tree.Book{ID: "EXO"}},
		{TranslationID: "web", Metadata: meta("web"), Tree: &tree.Book{ID: "GEN"}},
	}
	ds, err := Build(books)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Translations) != 1 {
		t.Fatalf("expected 1 translation, got %d", len(ds.Translations))
	}
	tr := ds.Translations[0]
	if len(tr.Books) != 2 || tr.Books[0].ID != "GEN" || tr.Books[1].ID != "EXO" {
		t.Fatalf("unexpected book order: %#v", tr.Books)
	}
}

func TestBuildDerivesTitleDefault(t *testing.T) {
	books := []ParsedBook{
		{TranslationID: "web", Metadata: meta("web"), Tree: &tree.Book{ID: "GEN"}},
	}
	ds, err := Build(books)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := ds.Translations[0].Books[0]
	if b.Title != b.CommonName {
		t.Fatalf("expected default title to be commonName, got %q vs %q", b.Title, b.CommonName)
	}
}

func TestBuildUnknownBookAborts(t *testing.T) {
	books := []ParsedBook{
		{TranslationID: "web", Metadata: meta("web"), Tree: &tree.Book{ID: "XYZ"}},
	}
	_, err := Build(books)
	var unknown *scripturegenerrors.UnknownBookError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownBookError, got %v", err)
	}
}

func TestBuildDuplicateBookAborts(t *testing.T) {
	books := []ParsedBook{
		{TranslationID: "web", Metadata: meta("web"), Tree: &tree.Book{ID: "GEN"}},
		{TranslationID: "web", Metadata: meta("web"), Tree: &tree.Book{ID: "GEN"}},
	}
	_, err := Build(books)
	var dup *scripturegenerrors.DuplicateBookError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateBookError, got %v", err)
	}
}

func TestBuildPartialAccumulatesErrors(t *testing.T) {
	books := []ParsedBook{
		{TranslationID: "web", Metadata: meta("web"), Tree: &tree.Book{ID: "GEN"}},
		{TranslationID: "web", Metadata: meta("web"), Tree: &tree.Book{ID: "XYZ"}},
		{TranslationID: "web", Metadata: meta("web"), Tree: &tree.Book{ID: "GEN"}},
	}
	ds, errs := BuildPartial(books)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if len(ds.Translations[0].Books) != 1 {
		t.Fatalf("expected 1 surviving book, got %d", len(ds.Translations[0].Books))
	}
}

func TestBuildMultipleTranslationsPreserveSupplyOrder(t *testing.T) {
	books := []ParsedBook{
		{TranslationID: "web", Metadata: meta("web"), Tree: &tree.Book{ID: "GEN"}},
		{TranslationID: "kjv", Metadata: meta("kjv"), Tree: &tree.Book{ID: "GEN"}},
	}
	ds, err := Build(books)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Translations[0].Metadata.ID != "web" || ds.Translations[1].Metadata.ID != "kjv" {
		t.Fatalf("unexpected translation order: %#v", ds.Translations)
	}
}
