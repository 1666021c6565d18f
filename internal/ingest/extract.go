package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
	mimeZIP  = "application/zip"
)

// File is a raw uploaded document before text extraction.
type File struct {
	Name string
	Data []byte
	Mime string
}

// ExtractTextFromBytes extracts plain text from an in-memory document.
// Libraries used: github.com/ledongthuc/pdf (PDF) and github.com/nguyenthenguyen/docx (DOCX).
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := NormalizeMimeType(mimeType, fileName, data)
	switch normalized {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		return extractDOCX(data)
	case mimeText:
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported mime type: %s", normalized)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

// stripDocxXML reduces word/document.xml markup to paragraph-separated text.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// NormalizeMimeType maps sniffed or client-provided mime types to the supported
// set, resolving the zip container ambiguity for OOXML documents.
func NormalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case "", "application/octet-stream":
		clean = mimeFromExt(fileName)
	}
	if clean != mimeZIP {
		return clean
	}

	if containsDocumentXML(data) {
		return mimeDOCX
	}
	if ext := strings.ToLower(filepath.Ext(fileName)); ext == ".docx" {
		return mimeDOCX
	}
	return mimeZIP
}

func mimeFromExt(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	case ".txt":
		return mimeText
	case ".zip":
		return mimeZIP
	default:
		return ""
	}
}

func containsDocumentXML(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}

// ExpandArchive unpacks a zip upload into its member documents, skipping
// directories and unsupported member types.
func ExpandArchive(data []byte) ([]File, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	var out []File
	for _, member := range zr.File {
		if member.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(strings.ReplaceAll(member.Name, "\\", "/"))
		if strings.HasPrefix(name, ".") {
			continue
		}
		mime := mimeFromExt(name)
		if mime == "" || mime == mimeZIP {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("open archive member %s: %w", name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read archive member %s: %w", name, err)
		}
		out = append(out, File{Name: name, Data: data, Mime: mime})
	}
	return out, nil
}

// IsArchive reports whether the payload should be treated as a resume bundle
// rather than a single document.
func IsArchive(mimeType string, fileName string, data []byte) bool {
	return NormalizeMimeType(mimeType, fileName, data) == mimeZIP
}

// SupportedUpload reports whether the document type can be ingested.
func SupportedUpload(mimeType string, fileName string, data []byte) bool {
	switch NormalizeMimeType(mimeType, fileName, data) {
	case mimePDF, mimeDOCX, mimeText, mimeZIP:
		return true
	}
	return false
}
