// Command scripturegen turns a directory of translation envelope files
// into a static JSON API tree, optionally packaged as a reproducible
// .tar.xz bundle.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/scripture-api/scripturegen/core/apigen"
	"github.com/scripture-api/scripturegen/core/bundle"
	"github.com/scripture-api/scripturegen/core/envelope"
	"github.com/scripture-api/scripturegen/core/pipeline"
	"github.com/scripture-api/scripturegen/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for scripturegen.
var CLI struct {
	Generate GenerateCmd `cmd:"" help:"Parse translation envelopes and materialize the JSON API tree"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// GenerateCmd reads envelope files from In, drives the pipeline, and
// writes the materialized output tree (and optionally a bundle) to Out.
type GenerateCmd struct {
	In            string `required:"" help:"Input directory, laid out as <translationId>/<BOOKCODE>.json envelope files" type:"existingdir"`
	Out           string `required:"" help:"Output directory for the materialized JSON API tree" type:"path"`
	UseCommonName bool   `help:"Use each book's common name (with spaces replaced by underscores) for URL path segments instead of its id"`
	Partial       bool   `help:"Accumulate unknown/duplicate-book errors and drop the offending books instead of aborting the run"`
	Bundle        string `help:"Also write a reproducible .tar.xz bundle to this path" type:"path"`
	LogFormat     string `help:"Log output format: json or text" default:"json" enum:"json,text"`
}

func (c *GenerateCmd) Run() error {
	format := logging.FormatJSON
	if c.LogFormat == "text" {
		format = logging.FormatText
	}
	logging.InitLogger(logging.LevelInfo, format)

	runID := uuid.NewString()
	started := time.Now()
	logging.RunStarted(runID, c.In)

	inputs, err := loadInputs(c.In)
	if err != nil {
		return fmt.Errorf("loading envelopes: %w", err)
	}

	result, err := pipeline.Run(inputs, apigen.Options{UseCommonName: c.UseCommonName}, c.Partial, runID)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}
	for _, w := range result.Diagnostics {
		logging.Diagnostic(runID, string(w.Kind), w.Message)
	}

	if err := apigen.WriteFiles(c.Out, result.Files); err != nil {
		return fmt.Errorf("writing output tree: %w", err)
	}

	if c.Bundle != "" {
		manifest, err := bundle.Write(c.Bundle, result.Files)
		if err != nil {
			return fmt.Errorf("writing bundle: %w", err)
		}
		if err := bundle.WriteManifest(c.Bundle+".manifest.json", manifest); err != nil {
			return fmt.Errorf("writing bundle manifest: %w", err)
		}
		logging.BundleWritten(runID, c.Bundle, manifest.Digest, manifest.FileCount)
	}

	logging.RunCompleted(runID, len(result.Files), time.Since(started))
	fmt.Printf("wrote %d files to %s\n", len(result.Files), c.Out)
	return nil
}

// loadInputs walks dir for <translationId>/<BOOKCODE>.json envelope files,
// reading translationId from the immediate parent directory name.
func loadInputs(dir string) ([]pipeline.Input, error) {
	translationDirs, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(translationDirs, func(i, j int) bool {
		return translationDirs[i].Name() < translationDirs[j].Name()
	})

	var inputs []pipeline.Input
	for _, td := range translationDirs {
		if !td.IsDir() {
			continue
		}
		translationID := td.Name()
		translationPath := filepath.Join(dir, translationID)

		bookFiles, err := os.ReadDir(translationPath)
		if err != nil {
			return nil, err
		}
		sort.Slice(bookFiles, func(i, j int) bool { return bookFiles[i].Name() < bookFiles[j].Name() })

		for _, bf := range bookFiles {
			if bf.IsDir() || !strings.HasSuffix(bf.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(translationPath, bf.Name()))
			if err != nil {
				return nil, err
			}
			var env envelope.Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				return nil, fmt.Errorf("%s: %w", bf.Name(), err)
			}
			inputs = append(inputs, pipeline.Input{TranslationID: translationID, Envelope: env})
		}
	}
	return inputs, nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("scripturegen version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("scripturegen"),
		kong.Description("USX/USFM scripture markup to deterministic JSON API generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
