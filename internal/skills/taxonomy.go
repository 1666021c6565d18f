package skills

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Taxonomy maps canonical skill names to their surface-form synonyms.
// The canonical name is always matched as a synonym of itself.
type Taxonomy struct {
	synonyms map[string][]string // canonical -> surface forms
}

// NewTaxonomy builds a taxonomy from a canonical->synonyms map. Canonical
// names and synonyms are normalized to lower case.
func NewTaxonomy(entries map[string][]string) *Taxonomy {
	t := &Taxonomy{synonyms: make(map[string][]string, len(entries))}
	for canonical, forms := range entries {
		canonical = strings.ToLower(strings.TrimSpace(canonical))
		if canonical == "" {
			continue
		}
		seen := map[string]bool{canonical: true}
		normalized := []string{canonical}
		for _, form := range forms {
			form = strings.ToLower(strings.TrimSpace(form))
			if form == "" || seen[form] {
				continue
			}
			seen[form] = true
			normalized = append(normalized, form)
		}
		t.synonyms[canonical] = normalized
	}
	return t
}

// Load reads a taxonomy from a JSON file of the form
// {"canonical": ["synonym", ...], ...}.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skills file: %w", err)
	}
	var entries map[string][]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse skills file: %w", err)
	}
	return NewTaxonomy(entries), nil
}

// Canonical returns the sorted canonical skill names.
func (t *Taxonomy) Canonical() []string {
	out := make([]string, 0, len(t.synonyms))
	for canonical := range t.synonyms {
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

// Default returns the built-in skills vocabulary.
func Default() *Taxonomy {
	return NewTaxonomy(map[string][]string{
		"python":           nil,
		"java":             nil,
		"javascript":       {"js"},
		"typescript":       {"ts"},
		"c++":              {"cpp"},
		"c":                nil,
		"c#":               {"csharp"},
		"go":               {"golang"},
		"html":             nil,
		"css":              nil,
		"react":            {"react.js", "reactjs"},
		"node":             {"node.js", "nodejs"},
		"express":          {"express.js"},
		"angular":          {"angularjs"},
		"flask":            nil,
		"django":           nil,
		"fastapi":          nil,
		"machine learning": {"ml"},
		"deep learning":    nil,
		"nlp":              {"natural language processing"},
		"data science":     nil,
		"computer vision":  nil,
		"data analysis":    nil,
		"statistics":       nil,
		"sql":              {"postgresql", "mysql"},
		"tensorflow":       nil,
		"pytorch":          nil,
		"keras":            nil,
		"scikit-learn":     {"sklearn"},
		"docker":           nil,
		"kubernetes":       {"k8s"},
		"aws":              {"amazon web services"},
		"azure":            nil,
		"gcp":              {"google cloud"},
		"git":              nil,
		"github":           nil,
		"devops":           nil,
		"communication":    nil,
		"leadership":       nil,
	})
}
