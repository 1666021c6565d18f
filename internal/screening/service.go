package screening

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"resume-screener/internal/ingest"
	"resume-screener/internal/llm"
	"resume-screener/internal/report"
	"resume-screener/internal/scoring"
	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/telemetry"
	"resume-screener/internal/shared/util"
	"resume-screener/internal/skills"
)

const (
	previewLength = 1500

	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Service runs the screening pipeline: ingest, skill matching, scoring,
// ranking, gap explanation, report artifacts.
type Service struct {
	Store    object.ObjectStore
	Resumes  ResumeRepo
	Analyses AnalysisRepo

	Taxonomy  *skills.Taxonomy
	Embedder  scoring.Embedder
	Explainer llm.Explainer

	Weights     scoring.Weights
	ExplainTopN int
	PhoneRegion string
}

// Upload validates and stores one resume document for the session.
func (s *Service) Upload(ctx context.Context, sessionID, fileName, mimeType string, r io.Reader) (Resume, error) {
	if strings.TrimSpace(fileName) == "" {
		return Resume{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Resume{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Resume{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if !ingest.SupportedUpload(mimeType, fileName, data) {
		return Resume{}, fmt.Errorf("%w: unsupported file type, expected pdf, docx, txt or zip", ErrInvalidInput)
	}

	storageKey, size, sniffedMime, err := s.Store.Save(ctx, sessionID, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, fmt.Errorf("store upload: %w", err)
	}

	resume := Resume{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		FileName:   fileName,
		MimeType:   sniffedMime,
		SizeBytes:  size,
		StorageKey: storageKey,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.Resumes.Add(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// List returns the session's uploads in upload order.
func (s *Service) List(ctx context.Context, sessionID string) ([]Resume, error) {
	return s.Resumes.ListBySession(ctx, sessionID)
}

// Clear drops all uploads for the session and returns how many were removed.
func (s *Service) Clear(ctx context.Context, sessionID string) (int, error) {
	return s.Resumes.ClearSession(ctx, sessionID)
}

// AnalyzeInput is the request for one screening run.
type AnalyzeInput struct {
	JobDescription string
	Weights        *scoring.Weights
	TopN           int
}

// Analyze runs the full pipeline over the session's uploads. Per-document
// ingest failures and explainer failures degrade the run; they never abort it.
func (s *Service) Analyze(ctx context.Context, sessionID string, input AnalyzeInput) (Analysis, error) {
	jobDescription := strings.TrimSpace(input.JobDescription)
	if jobDescription == "" {
		return Analysis{}, fmt.Errorf("%w: jobDescription is required", ErrInvalidInput)
	}

	resumes, err := s.Resumes.ListBySession(ctx, sessionID)
	if err != nil {
		return Analysis{}, err
	}
	if len(resumes) == 0 {
		return Analysis{}, fmt.Errorf("%w: no resumes uploaded for this session", ErrInvalidInput)
	}

	files, failures := s.loadFiles(ctx, resumes)

	ingestor := &ingest.Ingestor{PhoneRegion: s.PhoneRegion}
	parsed, ingestFailures := ingestor.IngestAll(ctx, files)
	for _, f := range ingestFailures {
		failures = append(failures, Failure{FileName: f.FileName, Reason: f.Reason})
	}

	required := s.Taxonomy.Extract(jobDescription)

	weights := s.Weights
	if input.Weights != nil {
		weights = *input.Weights
	}
	scorer := &scoring.Scorer{Embedder: s.Embedder, Weights: weights}
	run := scorer.NewRun(ctx, jobDescription)

	results := make([]MatchResult, 0, len(parsed))
	for _, doc := range parsed {
		candidate := Candidate{
			ID:       uuid.NewString(),
			FileName: doc.FileName,
			Name:     doc.Contact.Name,
			Email:    doc.Contact.Email,
			Phone:    doc.Contact.Phone,
			Text:     doc.Text,
			Skills:   s.Taxonomy.Extract(doc.Text),
		}
		matched, missing := partitionSkills(required, candidate.Skills)
		results = append(results, MatchResult{
			Candidate:     candidate,
			MatchedSkills: matched,
			MissingSkills: missing,
			Scores:        run.Score(ctx, doc.Text),
			Explanation:   llm.Unavailable(),
		})
	}

	rankResults(results)
	s.explainTop(ctx, jobDescription, results, input.TopN)

	analysis := Analysis{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		JobDescription: jobDescription,
		RequiredSkills: required,
		Weights:        weights.Normalize(),
		SemanticUsed:   run.SemanticEnabled(),
		Results:        results,
		Failures:       failures,
		CreatedAt:      time.Now().UTC(),
	}
	s.persistArtifacts(ctx, &analysis)

	if err := s.Analyses.Create(ctx, analysis); err != nil {
		return Analysis{}, err
	}

	telemetry.Info("screening.analysis_complete", map[string]any{
		"analysis_id": analysis.ID,
		"candidates":  len(results),
		"failures":    len(failures),
		"semantic":    analysis.SemanticUsed,
	})
	return analysis, nil
}

// Get returns a stored analysis for the session.
func (s *Service) Get(ctx context.Context, sessionID, analysisID string) (Analysis, error) {
	return s.Analyses.GetByID(ctx, sessionID, analysisID)
}

// Preview returns the top-ranked candidate's extracted text, cut to a short
// excerpt.
func (s *Service) Preview(ctx context.Context, sessionID, analysisID string) (string, error) {
	analysis, err := s.Analyses.GetByID(ctx, sessionID, analysisID)
	if err != nil {
		return "", err
	}
	if len(analysis.Results) == 0 {
		return "", fmt.Errorf("%w: analysis has no candidates", ErrNotFound)
	}
	text := analysis.Results[0].Candidate.Text
	if len(text) > previewLength {
		cut := previewLength
		// Back off to a rune boundary so a multibyte character is never split.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text, nil
}

// WriteCandidateReport renders one candidate's PDF report.
func (s *Service) WriteCandidateReport(ctx context.Context, sessionID, analysisID, candidateID string, w io.Writer) error {
	analysis, err := s.Analyses.GetByID(ctx, sessionID, analysisID)
	if err != nil {
		return err
	}
	result, _, ok := analysis.ResultByCandidate(candidateID)
	if !ok {
		return fmt.Errorf("%w: candidate not in analysis", ErrNotFound)
	}
	return report.WritePDF(w, toReportCandidate(result))
}

// WriteMergedReport streams the merged PDF, preferring the artifact persisted
// at analysis time and rendering fresh when it is gone.
func (s *Service) WriteMergedReport(ctx context.Context, sessionID, analysisID string, w io.Writer) error {
	analysis, err := s.Analyses.GetByID(ctx, sessionID, analysisID)
	if err != nil {
		return err
	}
	if s.copyArtifact(ctx, analysis.MergedReportKey, w) {
		return nil
	}
	return report.WriteMergedPDF(w, toReportCandidates(analysis))
}

// WriteExport streams the ranked-table XLSX export.
func (s *Service) WriteExport(ctx context.Context, sessionID, analysisID string, w io.Writer) error {
	analysis, err := s.Analyses.GetByID(ctx, sessionID, analysisID)
	if err != nil {
		return err
	}
	if s.copyArtifact(ctx, analysis.ExportKey, w) {
		return nil
	}
	return report.WriteExcel(w, analysis.JobDescription, toReportCandidates(analysis))
}

// loadFiles pulls each stored upload back out of the object store.
func (s *Service) loadFiles(ctx context.Context, resumes []Resume) ([]ingest.File, []Failure) {
	var files []ingest.File
	var failures []Failure
	for _, resume := range resumes {
		rc, err := s.Store.Open(ctx, resume.StorageKey)
		if err != nil {
			failures = append(failures, Failure{FileName: resume.FileName, Reason: "stored file unavailable"})
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			failures = append(failures, Failure{FileName: resume.FileName, Reason: "stored file unreadable"})
			continue
		}
		files = append(files, ingest.File{Name: resume.FileName, Data: data, Mime: resume.MimeType})
	}
	return files, failures
}

// explainTop asks the explainer about the top-ranked candidates that have
// skill gaps. Explainer failures leave the fallback Explanation in place.
func (s *Service) explainTop(ctx context.Context, jobDescription string, results []MatchResult, topN int) {
	if topN <= 0 {
		topN = s.ExplainTopN
	}
	for i := range results {
		if i >= topN {
			break
		}
		if len(results[i].MissingSkills) == 0 {
			continue
		}
		explanation, err := s.Explainer.ExplainGaps(ctx, llm.ExplainInput{
			ResumeText:     results[i].Candidate.Text,
			JobDescription: jobDescription,
			MatchedSkills:  results[i].MatchedSkills,
			MissingSkills:  results[i].MissingSkills,
		})
		if err != nil {
			if !errors.Is(err, llm.ErrNotConfigured) {
				telemetry.Warn("screening.explain_failed", map[string]any{
					"candidate": results[i].Candidate.FileName,
					"error":     err.Error(),
				})
			}
			continue
		}
		results[i].Explanation = explanation
	}
}

// persistArtifacts renders and stores the merged report and the XLSX export.
// Storage failures only cost the cached copy; downloads re-render on demand.
func (s *Service) persistArtifacts(ctx context.Context, analysis *Analysis) {
	prefix := fmt.Sprintf("outputs/%s/%s", util.HashSessionKey(analysis.SessionID), analysis.ID)
	candidates := toReportCandidates(*analysis)

	var pdfBuf bytes.Buffer
	if err := report.WriteMergedPDF(&pdfBuf, candidates); err != nil {
		telemetry.Warn("screening.artifact_failed", map[string]any{"artifact": "report.pdf", "error": err.Error()})
	} else {
		key := prefix + "/report.pdf"
		if _, err := s.Store.SaveWithKey(ctx, key, contentTypePDF, &pdfBuf); err != nil {
			telemetry.Warn("screening.artifact_failed", map[string]any{"artifact": "report.pdf", "error": err.Error()})
		} else {
			analysis.MergedReportKey = key
		}
	}

	var xlsxBuf bytes.Buffer
	if err := report.WriteExcel(&xlsxBuf, analysis.JobDescription, candidates); err != nil {
		telemetry.Warn("screening.artifact_failed", map[string]any{"artifact": "export.xlsx", "error": err.Error()})
	} else {
		key := prefix + "/export.xlsx"
		if _, err := s.Store.SaveWithKey(ctx, key, contentTypeXLSX, &xlsxBuf); err != nil {
			telemetry.Warn("screening.artifact_failed", map[string]any{"artifact": "export.xlsx", "error": err.Error()})
		} else {
			analysis.ExportKey = key
		}
	}
}

func (s *Service) copyArtifact(ctx context.Context, key string, w io.Writer) bool {
	if key == "" {
		return false
	}
	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return false
	}
	defer rc.Close()
	if _, err := io.Copy(w, rc); err != nil {
		telemetry.Warn("screening.artifact_stream_failed", map[string]any{"key": key, "error": err.Error()})
		return false
	}
	return true
}

// partitionSkills splits the required skills into matched and missing against
// the candidate's extracted set, preserving the required order in both halves.
func partitionSkills(required, have []string) (matched, missing []string) {
	haveSet := make(map[string]bool, len(have))
	for _, skill := range have {
		haveSet[skill] = true
	}
	matched = make([]string, 0, len(required))
	missing = make([]string, 0, len(required))
	for _, skill := range required {
		if haveSet[skill] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}

func toReportCandidate(r MatchResult) report.Candidate {
	return report.Candidate{
		Name:          r.Candidate.Name,
		Email:         r.Candidate.Email,
		Phone:         r.Candidate.Phone,
		FileName:      r.Candidate.FileName,
		LexicalScore:  r.Scores.Lexical,
		SemanticScore: r.Scores.Semantic,
		CombinedScore: r.Scores.Combined,
		MatchedSkills: r.MatchedSkills,
		MissingSkills: r.MissingSkills,
		Explanation:   r.Explanation,
	}
}

func toReportCandidates(a Analysis) []report.Candidate {
	out := make([]report.Candidate, 0, len(a.Results))
	for _, r := range a.Results {
		out = append(out, toReportCandidate(r))
	}
	return out
}
