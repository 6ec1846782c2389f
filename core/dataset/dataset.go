// Package dataset implements the dataset builder (C5): grouping parsed
// books per translation, assigning canonical order, and deriving the
// per-book display fields the API generator needs.
package dataset

import (
	"sort"

	"github.com/scripture-api/scripturegen/core/canon"
	scripturegenerrors "github.com/scripture-api/scripturegen/core/errors"
	"github.com/scripture-api/scripturegen/core/envelope"
	"github.com/scripture-api/scripturegen/core/tree"
)

// Book is a dataset-level book: the canon-derived display fields plus the
// parse tree produced by C2/C3.
type Book struct {
	ID               string
	Order            int
	Name             string
	CommonName       string
	Title            string
	NumberOfChapters int
	Tree             *tree.Book
}

// Translation is a dataset-level translation: its metadata plus the books
// that belong to it, sorted by canonical order.
type Translation struct {
	Metadata envelope.TranslationMetadata
	Books    []*Book
}

// Dataset is the full set of translations built from parsed books, in the
// order they were supplied to Build/BuildPartial.
type Dataset struct {
	Translations []*Translation
}

// ParsedBook is one input to the builder: a translation ID, its metadata,
// and a parsed book tree.
type ParsedBook struct {
	TranslationID string
	Metadata      envelope.TranslationMetadata
	Tree          *tree.Book
}

// Build groups parsedBooks into a Dataset, aborting on the first error.
func Build(parsedBooks []ParsedBook) (*Dataset, error) {
	ds, errs := build(parsedBooks, true)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return ds, nil
}

// BuildPartial groups parsedBooks into a Dataset, accumulating every
// error encountered (an unknown or duplicate book never aborts the rest
// of the build) and returning them alongside the dataset, whose offending
// books have simply been omitted.
func BuildPartial(parsedBooks []ParsedBook) (*Dataset, []error) {
	return build(parsedBooks, false)
}

func build(parsedBooks []ParsedBook, abortOnError bool) (*Dataset, []error) {
	order := []string{}
	byID := map[string]*Translation{}
	seenCodes := map[string]map[string]bool{}
	var errs []error

	for _, pb := range parsedBooks {
		t, ok := byID[pb.TranslationID]
		if !ok {
			t = &Translation{Metadata: pb.Metadata}
			byID[pb.TranslationID] = t
			seenCodes[pb.TranslationID] = map[string]bool{}
			order = append(order, pb.TranslationID)
		}

		code := pb.Tree.ID
		canonBook, ok := canon.Lookup(code)
		if !ok {
			err := &scripturegenerrors.UnknownBookError{Code: code}
			if abortOnError {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}

		if seenCodes[pb.TranslationID][code] {
			err := &scripturegenerrors.DuplicateBookError{Translation: pb.TranslationID, Code: code}
			if abortOnError {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		seenCodes[pb.TranslationID][code] = true

		title := canonBook.CommonName
		if pb.Tree.Title != nil && *pb.Tree.Title != "" {
			title = *pb.Tree.Title
		}

		t.Books = append(t.Books, &Book{
			ID:               code,
			Order:            canonBook.Order,
			Name:             canonBook.Name,
			CommonName:       canonBook.CommonName,
			Title:            title,
			NumberOfChapters: len(pb.Tree.Chapters()),
			Tree:             pb.Tree,
		})
	}

	ds := &Dataset{}
	for _, id := range order {
		t := byID[id]
		sort.Slice(t.Books, func(i, j int) bool { return t.Books[i].Order < t.Books[j].Order })
		ds.Translations = append(ds.Translations, t)
	}
	return ds, errs
}
