package screening

import (
	"time"

	"resume-screener/internal/llm"
)

type resumeResponse struct {
	ResumeID   string    `json:"resumeId"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type rejectedFile struct {
	FileName string `json:"fileName"`
	Reason   string `json:"reason"`
}

type uploadResponse struct {
	Accepted []resumeResponse `json:"accepted"`
	Rejected []rejectedFile   `json:"rejected"`
}

type scoresResponse struct {
	Lexical  float64 `json:"lexical"`
	Semantic float64 `json:"semantic"`
	Combined float64 `json:"combined"`
}

type resultResponse struct {
	CandidateID   string          `json:"candidateId"`
	Rank          int             `json:"rank"`
	FileName      string          `json:"fileName"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Scores        scoresResponse  `json:"scores"`
	MatchedSkills []string        `json:"matchedSkills"`
	MissingSkills []string        `json:"missingSkills"`
	Explanation   llm.Explanation `json:"explanation"`
}

type weightsResponse struct {
	Lexical  float64 `json:"lexical"`
	Semantic float64 `json:"semantic"`
}

type analysisResponse struct {
	AnalysisID     string           `json:"analysisId"`
	CreatedAt      time.Time        `json:"createdAt"`
	RequiredSkills []string         `json:"requiredSkills"`
	Weights        weightsResponse  `json:"weights"`
	SemanticUsed   bool             `json:"semanticUsed"`
	Results        []resultResponse `json:"results"`
	Failures       []rejectedFile   `json:"failures"`
}

func toResumeResponse(r Resume) resumeResponse {
	return resumeResponse{
		ResumeID:   r.ID,
		FileName:   r.FileName,
		MimeType:   r.MimeType,
		SizeBytes:  r.SizeBytes,
		UploadedAt: r.UploadedAt,
	}
}

func toAnalysisResponse(a Analysis) analysisResponse {
	results := make([]resultResponse, 0, len(a.Results))
	for i, r := range a.Results {
		results = append(results, resultResponse{
			CandidateID: r.Candidate.ID,
			Rank:        i + 1,
			FileName:    r.Candidate.FileName,
			Name:        r.Candidate.Name,
			Email:       r.Candidate.Email,
			Phone:       r.Candidate.Phone,
			Scores: scoresResponse{
				Lexical:  r.Scores.Lexical,
				Semantic: r.Scores.Semantic,
				Combined: r.Scores.Combined,
			},
			MatchedSkills: r.MatchedSkills,
			MissingSkills: r.MissingSkills,
			Explanation:   r.Explanation,
		})
	}

	failures := make([]rejectedFile, 0, len(a.Failures))
	for _, f := range a.Failures {
		failures = append(failures, rejectedFile{FileName: f.FileName, Reason: f.Reason})
	}

	return analysisResponse{
		AnalysisID:     a.ID,
		CreatedAt:      a.CreatedAt,
		RequiredSkills: a.RequiredSkills,
		Weights:        weightsResponse{Lexical: a.Weights.Lexical, Semantic: a.Weights.Semantic},
		SemanticUsed:   a.SemanticUsed,
		Results:        results,
		Failures:       failures,
	}
}
