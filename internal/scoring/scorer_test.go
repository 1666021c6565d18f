package scoring

import (
	"context"
	"errors"
	"math"
	"testing"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0}, nil
}

func TestWeightsNormalize(t *testing.T) {
	w := Weights{Lexical: 2, Semantic: 2}.Normalize()
	if w.Lexical != 0.5 || w.Semantic != 0.5 {
		t.Fatalf("expected 0.5/0.5, got %+v", w)
	}

	w = Weights{Lexical: 0, Semantic: 0}.Normalize()
	if w != DefaultWeights() {
		t.Fatalf("expected defaults for degenerate weights, got %+v", w)
	}

	w = Weights{Lexical: 0.3, Semantic: 0.7}.Normalize()
	if math.Abs(w.Lexical+w.Semantic-1.0) > 1e-9 {
		t.Fatalf("weights must sum to 1, got %+v", w)
	}
}

func TestScoreCombinesBothTerms(t *testing.T) {
	job := "python developer"
	resume := "python developer"
	embedder := &stubEmbedder{vectors: map[string][]float32{
		job:    {1, 0},
		resume: {1, 0},
	}}
	scorer := &Scorer{Embedder: embedder, Weights: Weights{Lexical: 0.4, Semantic: 0.6}}

	run := scorer.NewRun(context.Background(), job)
	if !run.SemanticEnabled() {
		t.Fatalf("expected semantic scoring to be enabled")
	}

	got := run.Score(context.Background(), resume)
	if math.Abs(got.Lexical-1.0) > 1e-9 {
		t.Fatalf("expected lexical 1.0, got %v", got.Lexical)
	}
	if math.Abs(got.Semantic-1.0) > 1e-9 {
		t.Fatalf("expected semantic 1.0, got %v", got.Semantic)
	}
	if math.Abs(got.Combined-1.0) > 1e-9 {
		t.Fatalf("expected combined 1.0, got %v", got.Combined)
	}
}

func TestScoreCombinedIsConvex(t *testing.T) {
	job := "python docker kubernetes"
	resume := "python engineer shipping containers"
	embedder := &stubEmbedder{vectors: map[string][]float32{
		job:    {1, 0},
		resume: {0.6, 0.8},
	}}
	scorer := &Scorer{Embedder: embedder, Weights: DefaultWeights()}

	run := scorer.NewRun(context.Background(), job)
	got := run.Score(context.Background(), resume)

	lo := math.Min(got.Lexical, got.Semantic)
	hi := math.Max(got.Lexical, got.Semantic)
	if got.Combined < lo-1e-9 || got.Combined > hi+1e-9 {
		t.Fatalf("combined %v outside [%v, %v]", got.Combined, lo, hi)
	}
}

func TestNilEmbedderFallsBackToLexicalOnly(t *testing.T) {
	scorer := &Scorer{Embedder: nil, Weights: DefaultWeights()}
	job := "python developer"

	run := scorer.NewRun(context.Background(), job)
	if run.SemanticEnabled() {
		t.Fatalf("expected semantic scoring to be disabled")
	}

	got := run.Score(context.Background(), "python developer")
	if got.Semantic != 0 {
		t.Fatalf("expected semantic 0, got %v", got.Semantic)
	}
	// Lexical weight is renormalized to 1, so combined equals lexical.
	if math.Abs(got.Combined-got.Lexical) > 1e-9 {
		t.Fatalf("expected combined == lexical, got %v vs %v", got.Combined, got.Lexical)
	}
}

func TestJobEmbedFailureFallsBackToLexicalOnly(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("quota exceeded")}
	scorer := &Scorer{Embedder: embedder, Weights: DefaultWeights()}

	run := scorer.NewRun(context.Background(), "python developer")
	if run.SemanticEnabled() {
		t.Fatalf("expected lexical-only run after job embed failure")
	}

	calls := embedder.calls
	got := run.Score(context.Background(), "python developer")
	if embedder.calls != calls {
		t.Fatalf("resume must not be embedded on a lexical-only run")
	}
	if math.Abs(got.Combined-got.Lexical) > 1e-9 {
		t.Fatalf("expected combined == lexical, got %+v", got)
	}
}

func TestResumeEmbedFailureIsNonFatal(t *testing.T) {
	job := "python developer"
	embedder := &stubEmbedder{vectors: map[string][]float32{job: {1, 0}}}
	scorer := &Scorer{Embedder: embedder, Weights: DefaultWeights()}
	run := scorer.NewRun(context.Background(), job)

	embedder.err = errors.New("transient")
	got := run.Score(context.Background(), "python developer")
	if got.Semantic != 0 {
		t.Fatalf("expected semantic 0 after embed failure, got %v", got.Semantic)
	}
	if got.Lexical <= 0 {
		t.Fatalf("lexical term must survive embed failure, got %v", got.Lexical)
	}
}

func TestCosine(t *testing.T) {
	if got := Cosine([]float32{1, 0}, []float32{1, 0}); math.Abs(got-1.0) > 1e-6 {
		t.Fatalf("expected 1.0, got %v", got)
	}
	if got := Cosine([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Fatalf("expected 0 for orthogonal vectors, got %v", got)
	}
	// Opposed vectors clamp to 0 rather than going negative.
	if got := Cosine([]float32{1, 0}, []float32{-1, 0}); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
	if got := Cosine(nil, []float32{1}); got != 0 {
		t.Fatalf("expected 0 for mismatched vectors, got %v", got)
	}
}
