// Package pipeline wires the classifier, markup parsers, dataset builder,
// and API generator into the single end-to-end entry point the CLI driver
// calls: raw envelopes in, a materialized file list out.
package pipeline

import (
	"encoding/json"
	"fmt"
	"runtime"
	"sync"

	"github.com/scripture-api/scripturegen/core/apigen"
	"github.com/scripture-api/scripturegen/core/dataset"
	"github.com/scripture-api/scripturegen/core/diag"
	"github.com/scripture-api/scripturegen/core/envelope"
	"github.com/scripture-api/scripturegen/core/markup"
	"github.com/scripture-api/scripturegen/core/markup/usfm"
	"github.com/scripture-api/scripturegen/core/markup/usx"
	"github.com/scripture-api/scripturegen/core/tree"
	"github.com/scripture-api/scripturegen/internal/logging"
)

// Input is one source file: the translation it belongs to, and the
// envelope read from disk.
type Input struct {
	TranslationID string
	Envelope      envelope.Envelope
}

// ParseEnvelope runs C1 (classify) then C2/C3 (parse) on a single
// envelope, returning the uniform parse tree it produces.
func ParseEnvelope(env envelope.Envelope, sink diag.Sink) (*tree.Book, error) {
	kind, err := markup.Classify(string(env.FileType), []byte(env.Content))
	if err != nil {
		return nil, fmt.Errorf("classifying content: %w", err)
	}

	switch kind {
	case markup.KindUSX:
		return usx.Parse([]byte(env.Content), sink)
	case markup.KindUSFM:
		return usfm.Parse([]byte(env.Content), sink)
	case markup.KindJSONParsed:
		var book tree.Book
		if err := json.Unmarshal([]byte(env.Content), &book); err != nil {
			return nil, fmt.Errorf("unmarshaling pre-parsed JSON: %w", err)
		}
		return &book, nil
	default:
		return nil, fmt.Errorf("unhandled markup kind %q", kind)
	}
}

// Result is the outcome of a full run: the generated files plus any
// non-fatal diagnostics collected along the way.
type Result struct {
	Files       []apigen.File
	Diagnostics []diag.Warning
}

// parseOutcome is one input's parse result, collected back into
// translation-supplied order once every worker has finished.
type parseOutcome struct {
	book     *tree.Book
	warnings []diag.Warning
	err      error
}

// parseAll classifies and parses every input's envelope, fanning the work
// out across a worker pool bounded by runtime.GOMAXPROCS(0) since each
// book's parse state is strictly book-local. Results are returned in the
// same order as inputs, independent of which worker finished first.
func parseAll(inputs []Input) []parseOutcome {
	outcomes := make([]parseOutcome, len(inputs))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(inputs) {
		workers = len(inputs)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, len(inputs))
	for i := range inputs {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sink := &diag.Collector{}
				book, err := ParseEnvelope(inputs[i].Envelope, sink)
				outcomes[i] = parseOutcome{book: book, warnings: sink.Warnings, err: err}
			}
		}()
	}
	wg.Wait()

	return outcomes
}

// Run executes C1 through C7 over inputs: classifying and parsing every
// envelope, building the dataset, and generating the materialized file
// list. partial selects dataset.BuildPartial (accumulate every
// unknown/duplicate-book error and drop the offending book) over
// dataset.Build (abort on the first one). runID scopes the per-book
// diagnostic log lines emitted along the way; pass "" to suppress them.
func Run(inputs []Input, opts apigen.Options, partial bool, runID string) (*Result, error) {
	for _, in := range inputs {
		if errs := in.Envelope.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("invalid envelope for translation %s: %w", in.TranslationID, errs[0])
		}
	}

	collector := &diag.Collector{}
	outcomes := parseAll(inputs)

	var parsedBooks []dataset.ParsedBook
	for i, in := range inputs {
		outcome := outcomes[i]
		collector.Warnings = append(collector.Warnings, outcome.warnings...)
		if outcome.err != nil {
			return nil, fmt.Errorf("parsing book for translation %s: %w", in.TranslationID, outcome.err)
		}
		for _, verr := range tree.ValidateBook(outcome.book) {
			collector.Warn(diag.KindValidation, "%s", verr.Error())
		}
		if runID != "" {
			logging.BookParsed(runID, in.TranslationID, outcome.book.ID, len(outcome.book.Chapters()))
		}
		parsedBooks = append(parsedBooks, dataset.ParsedBook{
			TranslationID: in.TranslationID,
			Metadata:      in.Envelope.Metadata.Translation,
			Tree:          outcome.book,
		})
	}

	var ds *dataset.Dataset
	if partial {
		var buildErrs []error
		ds, buildErrs = dataset.BuildPartial(parsedBooks)
		for _, e := range buildErrs {
			collector.Warn(diag.KindDatasetBuild, "%s", e.Error())
		}
	} else {
		var err error
		ds, err = dataset.Build(parsedBooks)
		if err != nil {
			return nil, fmt.Errorf("building dataset: %w", err)
		}
	}

	files, err := apigen.Generate(ds, opts)
	if err != nil {
		return nil, fmt.Errorf("generating API objects: %w", err)
	}

	return &Result{Files: files, Diagnostics: collector.Warnings}, nil
}
