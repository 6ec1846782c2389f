package errors

import (
	"errors"
	"testing"
)

func TestParseError(t *testing.T) {
	err := NewParseError("unexpected end of verse", "GEN 1:3")
	if err.Error() != "parse error at GEN 1:3: unexpected end of verse" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("expected ParseError to unwrap to ErrInvalidInput")
	}

	bare := &ParseError{Detail: "bad token"}
	if bare.Error() != "parse error: bad token" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestUnknownBookError(t *testing.T) {
	err := &UnknownBookError{Code: "ZZZ"}
	if err.Error() != "unknown book: ZZZ" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrUnknownBook) {
		t.Error("expected UnknownBookError to unwrap to ErrUnknownBook")
	}
}

func TestDuplicateBookError(t *testing.T) {
	err := &DuplicateBookError{Translation: "bsb", Code: "GEN"}
	want := "translation bsb: duplicate book GEN"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrDuplicateBook) {
		t.Error("expected DuplicateBookError to unwrap to ErrDuplicateBook")
	}
}

func TestMissingMetadataError(t *testing.T) {
	err := &MissingMetadataError{Field: "language"}
	if err.Error() != "missing required metadata field: language" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrMissingMetadata) {
		t.Error("expected MissingMetadataError to unwrap to ErrMissingMetadata")
	}
}

func TestMissingBookError(t *testing.T) {
	err := &MissingBookError{}
	if err.Error() != "missing book code" {
		t.Errorf("Error() = %q", err.Error())
	}
	withLoc := &MissingBookError{Location: "usx root"}
	if withLoc.Error() != "missing book code at usx root" {
		t.Errorf("Error() = %q", withLoc.Error())
	}
	if !errors.Is(err, ErrMissingBook) {
		t.Error("expected MissingBookError to unwrap to ErrMissingBook")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil, ...) should return nil")
	}
	wrapped := Wrap(ErrUnknownBook, "building dataset")
	if wrapped.Error() != "building dataset: unknown book" {
		t.Errorf("Wrap() = %q", wrapped.Error())
	}
	if !Is(wrapped, ErrUnknownBook) {
		t.Error("Is() should see through Wrap()")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil, ...) should return nil")
	}
	wrapped := Wrapf(ErrDuplicateBook, "translation %s", "bsb")
	if wrapped.Error() != "translation bsb: duplicate book" {
		t.Errorf("Wrapf() = %q", wrapped.Error())
	}
}

func TestAs(t *testing.T) {
	var target *UnknownBookError
	err := Wrap(&UnknownBookError{Code: "XYZ"}, "wrapped")
	if !As(err, &target) {
		t.Fatal("As() should unwrap to *UnknownBookError")
	}
	if target.Code != "XYZ" {
		t.Errorf("target.Code = %q, want XYZ", target.Code)
	}
}
