// Package usfm implements the USFM marker-stream parser (C3). The scanner
// is a hand-rolled backslash-marker tokenizer in the spirit of the USX
// walker's DOM traversal; only the structured numeric argument that
// follows \c and \v (plain chapter numbers, or verse numbers/ranges) is
// parsed with a small participle grammar, mirroring how core/ir parses
// OSIS references.
package usfm

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

//nolint:govet // participle grammar tags are not standard struct tags
type verseArgGrammar struct {
	Start int  `@Int`
	End   *int `( "-" @Int )?`
}

var verseArgLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var verseArgParser = participle.MustBuild[verseArgGrammar](
	participle.Lexer(verseArgLexer),
	participle.Elide("Whitespace"),
)

// verseArg is a parsed \v or \c marker argument: a single number, or a
// verse range's starting number (the range's end is discarded — the
// parse tree only carries per-verse content keyed by its starting number,
// matching the USX walker's single-number verse milestones).
type verseArg struct {
	Number int
	IsEnd  bool
}

func parseVerseArg(s string) (verseArg, error) {
	parsed, err := verseArgParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return verseArg{}, fmt.Errorf("invalid marker argument %q: %w", s, err)
	}
	return verseArg{Number: parsed.Start}, nil
}
