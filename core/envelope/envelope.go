// Package envelope defines the on-disk input shape the CLI driver reads:
// a file type hint, translation metadata, and raw markup content.
package envelope

import (
	"strings"

	scripturegenerrors "github.com/scripture-api/scripturegen/core/errors"
)

// Direction is a translation's text direction.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// TranslationMetadata describes the translation a book belongs to.
type TranslationMetadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	EnglishName string    `json:"englishName"`
	ShortName   string    `json:"shortName"`
	Language    string    `json:"language"`
	Direction   Direction `json:"direction,omitempty"`
	LicenseURL  string    `json:"licenseUrl,omitempty"`
	Website     string    `json:"website,omitempty"`
}

// Validate checks the required fields per the metadata contract, returning
// every violation rather than stopping at the first so a caller can report
// them all at once.
func (m TranslationMetadata) Validate() []error {
	var errs []error
	required := []struct {
		field string
		value string
	}{
		{"id", m.ID},
		{"name", m.Name},
		{"englishName", m.EnglishName},
		{"shortName", m.ShortName},
		{"language", m.Language},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, &scripturegenerrors.MissingMetadataError{Field: r.field})
		}
	}
	if m.ID != "" && !isURLSafeASCII(m.ID) {
		errs = append(errs, scripturegenerrors.NewParseError("id must be ASCII and URL-safe", "metadata.id"))
	}
	if m.Direction != "" && m.Direction != LTR && m.Direction != RTL {
		errs = append(errs, scripturegenerrors.NewParseError(`direction must be "ltr" or "rtl"`, "metadata.direction"))
	}
	return errs
}

// EffectiveDirection returns m.Direction, defaulting to LTR when unset.
func (m TranslationMetadata) EffectiveDirection() Direction {
	if m.Direction == "" {
		return LTR
	}
	return m.Direction
}

func isURLSafeASCII(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == '~':
		default:
			return false
		}
	}
	return true
}

// FileType is the markup kind hint an envelope carries.
type FileType string

const (
	FileTypeUSFM       FileType = "usfm"
	FileTypeUSX        FileType = "usx"
	FileTypeJSONParsed FileType = "json"
)

// Envelope is the input file shape the CLI driver reads from disk: a
// file type hint, the owning translation's metadata, and raw content.
type Envelope struct {
	FileType FileType `json:"fileType"`
	Metadata struct {
		Translation TranslationMetadata `json:"translation"`
	} `json:"metadata"`
	Content string `json:"content"`
}

// Validate checks the envelope's metadata and reports an unrecognized
// FileType as a parse error.
func (e Envelope) Validate() []error {
	errs := e.Metadata.Translation.Validate()
	switch e.FileType {
	case FileTypeUSFM, FileTypeUSX, FileTypeJSONParsed:
	default:
		errs = append(errs, scripturegenerrors.NewParseError(
			"unrecognized fileType: "+string(e.FileType), "envelope.fileType"))
	}
	return errs
}
