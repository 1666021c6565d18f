package llm

import (
	"context"
	"errors"
)

// ExplainInput captures the inputs needed for gap reasoning.
type ExplainInput struct {
	ResumeText     string
	JobDescription string
	MatchedSkills  []string
	MissingSkills  []string
}

// Course is one recommended learning resource.
type Course struct {
	Title    string `json:"title"`
	Provider string `json:"provider"`
}

// SkillGap explains one missing skill and how it relates to what the
// candidate already has.
type SkillGap struct {
	Skill       string   `json:"skill"`
	RelatedTo   string   `json:"related_to"`
	Explanation string   `json:"explanation"`
	Courses     []Course `json:"courses"`
}

// Explanation is the reasoned output for one candidate. Available is false
// on the fallback path (no credential, call failure, bad JSON); the rest of
// the pipeline carries on with an empty explanation.
type Explanation struct {
	Available bool       `json:"available"`
	Gaps      []SkillGap `json:"gaps"`
}

// Unavailable is the well-defined fallback Explanation.
func Unavailable() Explanation {
	return Explanation{Available: false}
}

// Explainer abstracts the hosted reasoning model.
type Explainer interface {
	ExplainGaps(ctx context.Context, input ExplainInput) (Explanation, error)
}

// ErrNotConfigured is returned when no API credential is present.
var ErrNotConfigured = errors.New("llm not configured")

// Disabled is the Explainer used when no credential is configured.
type Disabled struct{}

// ExplainGaps returns ErrNotConfigured.
func (Disabled) ExplainGaps(ctx context.Context, input ExplainInput) (Explanation, error) {
	_ = ctx
	_ = input
	return Unavailable(), ErrNotConfigured
}
