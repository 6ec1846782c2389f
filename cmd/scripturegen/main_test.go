package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeEnvelope(t *testing.T, dir, translationID, bookFile, content string) {
	t.Helper()
	translationDir := filepath.Join(dir, translationID)
	if err := os.MkdirAll(translationDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(translationDir, bookFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write envelope: %v", err)
	}
}

const genesisEnvelope = `{
  "fileType": "usx",
  "metadata": {
    "translation": {
      "id": "web",
      "name": "World English Bible",
      "englishName": "World English Bible",
      "shortName": "WEB",
      "language": "en"
    }
  },
  "content": "<usx version=\"3.0\"><book code=\"GEN\"/><chapter number=\"1\"/><para style=\"p\"><verse number=\"1\"/>In the beginning.<verse eid=\"1\"/></para><chapter eid=\"1\"/></usx>"
}`

func TestLoadInputs(t *testing.T) {
	dir := t.TempDir()
	writeEnvelope(t, dir, "web", "GEN.json", genesisEnvelope)

	inputs, err := loadInputs(dir)
	if err != nil {
		t.Fatalf("loadInputs: %v", err)
	}
	if len(inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(inputs))
	}
	if inputs[0].TranslationID != "web" {
		t.Fatalf("unexpected translation ID: %q", inputs[0].TranslationID)
	}
	if inputs[0].Envelope.Metadata.Translation.ID != "web" {
		t.Fatalf("unexpected metadata: %#v", inputs[0].Envelope.Metadata.Translation)
	}
}

func TestLoadInputsSkipsNonJSON(t *testing.T) {
	dir := t.TempDir()
	writeEnvelope(t, dir, "web", "GEN.json", genesisEnvelope)
	writeEnvelope(t, dir, "web", "README.txt", "not an envelope")

	inputs, err := loadInputs(dir)
	if err != nil {
		t.Fatalf("loadInputs: %v", err)
	}
	if len(inputs) != 1 {
		t.Fatalf("expected non-JSON files to be skipped, got %d inputs", len(inputs))
	}
}

func TestGenerateCmdEndToEnd(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeEnvelope(t, inDir, "web", "GEN.json", genesisEnvelope)

	cmd := &GenerateCmd{In: inDir, Out: outDir}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	booksIndex := filepath.Join(outDir, "api", "web", "books.json")
	if _, err := os.Stat(booksIndex); err != nil {
		t.Fatalf("expected books index at %s: %v", booksIndex, err)
	}
	chapterPage := filepath.Join(outDir, "api", "web", "GEN", "1.json")
	if _, err := os.Stat(chapterPage); err != nil {
		t.Fatalf("expected chapter page at %s: %v", chapterPage, err)
	}
}

func TestGenerateCmdWritesBundle(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeEnvelope(t, inDir, "web", "GEN.json", genesisEnvelope)

	bundlePath := filepath.Join(outDir, "web.tar.xz")
	cmd := &GenerateCmd{In: inDir, Out: outDir, Bundle: bundlePath}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(bundlePath); err != nil {
		t.Fatalf("expected bundle at %s: %v", bundlePath, err)
	}
	manifestPath := bundlePath + ".manifest.json"
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("expected bundle manifest at %s: %v", manifestPath, err)
	}

	var manifest struct {
		FileCount int    `json:"fileCount"`
		Digest    string `json:"blake3"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("unmarshaling manifest: %v", err)
	}
	if manifest.FileCount == 0 {
		t.Fatalf("expected a non-zero file count in manifest, got %+v", manifest)
	}
	if manifest.Digest == "" {
		t.Fatalf("expected a non-empty digest in manifest, got %+v", manifest)
	}
}

func TestGenerateCmdLogFormatText(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeEnvelope(t, inDir, "web", "GEN.json", genesisEnvelope)

	cmd := &GenerateCmd{In: inDir, Out: outDir, LogFormat: "text"}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
