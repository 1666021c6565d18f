package ingest

import (
	"context"
	"strings"

	"resume-screener/internal/shared/telemetry"
)

// Parsed is one successfully ingested resume document.
type Parsed struct {
	FileName string
	Text     string
	Contact  Contact
}

// Failure records a document that could not be ingested. The batch continues
// without it.
type Failure struct {
	FileName string
	Reason   string
}

// Ingestor turns uploaded files into parsed resumes.
type Ingestor struct {
	PhoneRegion string
}

// IngestAll extracts text and contact fields from each file, expanding zip
// bundles into their members first. Unreadable documents become Failures
// rather than aborting the batch.
func (ing *Ingestor) IngestAll(ctx context.Context, files []File) ([]Parsed, []Failure) {
	var parsed []Parsed
	var failures []Failure

	for _, f := range files {
		if IsArchive(f.Mime, f.Name, f.Data) {
			members, err := ExpandArchive(f.Data)
			if err != nil {
				failures = append(failures, Failure{FileName: f.Name, Reason: err.Error()})
				continue
			}
			if len(members) == 0 {
				failures = append(failures, Failure{FileName: f.Name, Reason: "archive contains no resume documents"})
				continue
			}
			p, fs := ing.IngestAll(ctx, members)
			parsed = append(parsed, p...)
			failures = append(failures, fs...)
			continue
		}

		doc, err := ing.ingestOne(ctx, f)
		if err != nil {
			telemetry.Warn("ingest.failed", map[string]any{
				"file":  f.Name,
				"error": err.Error(),
			})
			failures = append(failures, Failure{FileName: f.Name, Reason: err.Error()})
			continue
		}
		parsed = append(parsed, doc)
	}
	return parsed, failures
}

func (ing *Ingestor) ingestOne(ctx context.Context, f File) (Parsed, error) {
	text, err := ExtractTextFromBytes(ctx, f.Data, f.Mime, f.Name)
	if err != nil {
		return Parsed{}, err
	}

	// A decodable document with no text is still a valid candidate; it scores
	// zero downstream instead of failing the batch.
	contact := Contact{}
	if strings.TrimSpace(text) != "" {
		contact = ExtractContact(text, ing.PhoneRegion)
	}

	return Parsed{
		FileName: f.Name,
		Text:     text,
		Contact:  contact,
	}, nil
}
