// Package markup classifies raw input as USX, USFM, or pre-parsed JSON (C1),
// honoring an explicit file type hint when one is recognized and otherwise
// sniffing the content.
package markup

import (
	"bytes"

	scripturegenerrors "github.com/scripture-api/scripturegen/core/errors"
)

// Kind is a recognized markup kind.
type Kind string

const (
	KindUSX        Kind = "usx"
	KindUSFM       Kind = "usfm"
	KindJSONParsed Kind = "json_parsed"
)

// Classify honors hint when it names a recognized kind, otherwise sniffs
// raw: a leading '<' implies USX, a leading "\id " token implies USFM, and
// a leading '{' implies pre-parsed JSON.
func Classify(hint string, raw []byte) (Kind, error) {
	switch hint {
	case "usx":
		return KindUSX, nil
	case "usfm":
		return KindUSFM, nil
	case "json":
		return KindJSONParsed, nil
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	switch {
	case len(trimmed) == 0:
		return "", scripturegenerrors.Wrap(scripturegenerrors.ErrUnrecognizedMarkup, "empty content")
	case trimmed[0] == '<':
		return KindUSX, nil
	case bytes.HasPrefix(trimmed, []byte(`\id `)) || bytes.HasPrefix(trimmed, []byte(`\id`+"\t")):
		return KindUSFM, nil
	case trimmed[0] == '{':
		return KindJSONParsed, nil
	default:
		return "", scripturegenerrors.Wrap(scripturegenerrors.ErrUnrecognizedMarkup, "could not sniff markup kind")
	}
}
