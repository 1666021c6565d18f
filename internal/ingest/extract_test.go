package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestExtractTextFromBytesPlainText(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("python developer"), "text/plain", "resume.txt")
	if err != nil {
		t.Fatalf("extract text: %v", err)
	}
	if text != "python developer" {
		t.Fatalf("expected passthrough text, got %q", text)
	}
}

func TestExtractTextFromBytesUnsupportedType(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("GIF89a"), "image/gif", "photo.gif")
	if err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
}

func TestNormalizeMimeTypeExtensionFallback(t *testing.T) {
	cases := []struct {
		fileName string
		want     string
	}{
		{"resume.pdf", "application/pdf"},
		{"resume.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"resume.txt", "text/plain"},
		{"batch.zip", "application/zip"},
	}
	for _, tc := range cases {
		if got := NormalizeMimeType("application/octet-stream", tc.fileName, nil); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.fileName, tc.want, got)
		}
	}
}

func TestNormalizeMimeTypeSniffsDocxInsideZip(t *testing.T) {
	data := buildZip(t, map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   "<w:document/>",
	})
	got := NormalizeMimeType("application/zip", "upload.bin", data)
	if got != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Fatalf("expected docx for OOXML container, got %s", got)
	}
}

func TestExpandArchive(t *testing.T) {
	data := buildZip(t, map[string]string{
		"resumes/alice.txt": "alice python",
		"resumes/bob.txt":   "bob java",
		"notes/readme.md":   "skip me",
		".DS_Store":         "junk",
	})

	files, err := ExpandArchive(data)
	if err != nil {
		t.Fatalf("expand archive: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 member documents, got %d", len(files))
	}
	names := map[string]bool{}
	for _, f := range files {
		names[f.Name] = true
	}
	if !names["alice.txt"] || !names["bob.txt"] {
		t.Fatalf("unexpected members: %v", names)
	}
}

func TestIngestAllExpandsArchives(t *testing.T) {
	archive := buildZip(t, map[string]string{
		"alice.txt": "Alice Jones\nalice@example.com\npython docker",
		"bob.txt":   "Bob Stone\nbob@example.com\njava sql",
	})

	ing := &Ingestor{PhoneRegion: "US"}
	parsed, failures := ing.IngestAll(context.Background(), []File{
		{Name: "batch.zip", Data: archive, Mime: "application/zip"},
		{Name: "broken.pdf", Data: []byte("not a pdf"), Mime: "application/pdf"},
	})

	if len(parsed) != 2 {
		t.Fatalf("expected 2 parsed resumes, got %d", len(parsed))
	}
	if len(failures) != 1 || failures[0].FileName != "broken.pdf" {
		t.Fatalf("expected one failure for broken.pdf, got %+v", failures)
	}
	emails := map[string]bool{}
	for _, p := range parsed {
		emails[p.Contact.Email] = true
	}
	if !emails["alice@example.com"] || !emails["bob@example.com"] {
		t.Fatalf("expected contact extraction on members, got %v", emails)
	}
}

func TestSupportedUpload(t *testing.T) {
	if !SupportedUpload("text/plain", "resume.txt", nil) {
		t.Fatalf("txt must be supported")
	}
	if SupportedUpload("image/png", "photo.png", nil) {
		t.Fatalf("png must be rejected")
	}
}

func buildZip(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip member: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip member: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
