package screening

import (
	"time"

	"resume-screener/internal/llm"
	"resume-screener/internal/scoring"
)

// Resume is one uploaded document tracked for a session. The raw bytes live
// in the object store under StorageKey.
type Resume struct {
	ID         string
	SessionID  string
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	UploadedAt time.Time
}

// Candidate is one parsed resume entering the scoring pipeline.
type Candidate struct {
	ID       string
	FileName string
	Name     string
	Email    string
	Phone    string
	Text     string
	Skills   []string
}

// MatchResult is the scored outcome for one candidate. MatchedSkills and
// MissingSkills partition the job's required skills; their union is always
// the full required set.
type MatchResult struct {
	Candidate     Candidate
	MatchedSkills []string
	MissingSkills []string
	Scores        scoring.Scores
	Explanation   llm.Explanation
}

// Failure records a document dropped during ingestion.
type Failure struct {
	FileName string
	Reason   string
}

// Analysis is one completed screening run. Results are stored in ranked
// order (combined score descending, ingestion order on ties).
type Analysis struct {
	ID             string
	SessionID      string
	JobDescription string
	RequiredSkills []string
	Weights        scoring.Weights
	SemanticUsed   bool
	Results        []MatchResult
	Failures       []Failure
	CreatedAt      time.Time

	// Object store keys for artifacts rendered at analysis time. Empty when
	// artifact persistence failed; downloads fall back to rendering fresh.
	MergedReportKey string
	ExportKey       string
}

// ResultByCandidate finds a ranked result by candidate ID. The second return
// is the zero-based rank.
func (a Analysis) ResultByCandidate(candidateID string) (MatchResult, int, bool) {
	for i, r := range a.Results {
		if r.Candidate.ID == candidateID {
			return r, i, true
		}
	}
	return MatchResult{}, 0, false
}
