package scoring

import (
	"math"
	"sort"
	"strings"

	"resume-screener/internal/skills"
)

// LexicalSimilarity computes TF-IDF cosine similarity over the two-document
// corpus {a, b}: smoothed idf, l2-normalized vectors, English stopwords
// removed. The result is clamped to [0,1]; empty or whitespace-only input on
// either side yields 0.
func LexicalSimilarity(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}

	tfA := termFrequencies(a)
	tfB := termFrequencies(b)
	if len(tfA) == 0 || len(tfB) == 0 {
		return 0
	}

	// Smoothed idf over n=2 documents: ln((1+n)/(1+df)) + 1.
	idf := func(term string) float64 {
		df := 0
		if tfA[term] > 0 {
			df++
		}
		if tfB[term] > 0 {
			df++
		}
		return math.Log(3.0/(1.0+float64(df))) + 1.0
	}

	seen := make(map[string]struct{}, len(tfA)+len(tfB))
	vocab := make([]string, 0, len(tfA)+len(tfB))
	for term := range tfA {
		seen[term] = struct{}{}
		vocab = append(vocab, term)
	}
	for term := range tfB {
		if _, ok := seen[term]; !ok {
			vocab = append(vocab, term)
		}
	}
	// Float addition is not associative, so accumulate in a fixed term order
	// to keep identical inputs producing identical scores.
	sort.Strings(vocab)

	var dot, normA, normB float64
	for _, term := range vocab {
		w := idf(term)
		wa := float64(tfA[term]) * w
		wb := float64(tfB[term]) * w
		dot += wa * wb
		normA += wa * wa
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return Clamp01(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

func termFrequencies(text string) map[string]int {
	tf := make(map[string]int)
	for _, tok := range skills.Tokenize(text) {
		if stopwords[tok] || len(tok) < 2 {
			continue
		}
		tf[tok]++
	}
	return tf
}

// Clamp01 clips v to the [0,1] interval.
func Clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var stopwords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "such": true,
	"had": true, "his": true, "her": true, "she": true, "him": true,
	"out": true, "off": true, "over": true, "under": true, "then": true,
	"them": true, "these": true, "those": true, "there": true, "here": true,
	"when": true, "where": true, "why": true, "any": true, "both": true,
	"some": true, "other": true, "only": true, "own": true, "same": true,
	"very": true, "just": true, "too": true, "should": true, "would": true,
	"could": true, "may": true, "might": true, "must": true, "shall": true,
}
