package scoring

import (
	"context"
	"strings"

	"resume-screener/internal/shared/telemetry"
)

// Weights is the convex combination applied to the two similarity terms.
type Weights struct {
	Lexical  float64
	Semantic float64
}

// DefaultWeights mirrors the tuned default split.
func DefaultWeights() Weights {
	return Weights{Lexical: 0.4, Semantic: 0.6}
}

// Normalize clamps both weights to [0,1] and rescales them to sum to 1.
// A degenerate pair falls back to the defaults.
func (w Weights) Normalize() Weights {
	l := Clamp01(w.Lexical)
	s := Clamp01(w.Semantic)
	sum := l + s
	if sum <= 0 {
		return DefaultWeights()
	}
	return Weights{Lexical: l / sum, Semantic: s / sum}
}

// Scores is the per-candidate similarity breakdown.
type Scores struct {
	Lexical  float64
	Semantic float64
	Combined float64
}

// Scorer computes similarity between resumes and a job description.
// Embedder may be nil, in which case runs score lexical-only with the
// lexical weight renormalized to 1.
type Scorer struct {
	Embedder Embedder
	Weights  Weights
}

// Run scores candidates against one job description, embedding the job text
// once up front.
type Run struct {
	scorer  *Scorer
	weights Weights
	jobText string
	jobVec  []float32
}

// NewRun prepares a scoring run for the given job description. Failure to
// embed the job text degrades the whole run to lexical-only scoring; it is
// never fatal.
func (s *Scorer) NewRun(ctx context.Context, jobText string) *Run {
	run := &Run{
		scorer:  s,
		weights: s.Weights.Normalize(),
		jobText: jobText,
	}

	if s.Embedder == nil || strings.TrimSpace(jobText) == "" {
		run.weights = lexicalOnly()
		return run
	}

	vec, err := s.Embedder.Embed(ctx, jobText)
	if err != nil {
		telemetry.Warn("scoring.job_embed_failed", map[string]any{"error": err.Error()})
		run.weights = lexicalOnly()
		return run
	}
	run.jobVec = vec
	return run
}

// Score computes the similarity breakdown for one resume. A per-candidate
// embedding failure zeroes that candidate's semantic term without aborting
// the run.
func (r *Run) Score(ctx context.Context, resumeText string) Scores {
	lexical := LexicalSimilarity(resumeText, r.jobText)

	semantic := 0.0
	if len(r.jobVec) > 0 && strings.TrimSpace(resumeText) != "" {
		vec, err := r.scorer.Embedder.Embed(ctx, resumeText)
		if err != nil {
			telemetry.Warn("scoring.resume_embed_failed", map[string]any{"error": err.Error()})
		} else {
			semantic = Cosine(vec, r.jobVec)
		}
	}

	return Scores{
		Lexical:  lexical,
		Semantic: semantic,
		Combined: Clamp01(r.weights.Lexical*lexical + r.weights.Semantic*semantic),
	}
}

// SemanticEnabled reports whether this run scores the semantic term.
func (r *Run) SemanticEnabled() bool {
	return len(r.jobVec) > 0
}

func lexicalOnly() Weights {
	return Weights{Lexical: 1, Semantic: 0}
}
