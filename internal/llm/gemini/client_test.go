package gemini

import (
	"context"
	"testing"
)

func TestCleanJSONStripsFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"gaps\":[]}\n```", `{"gaps":[]}`},
		{"```\n{\"gaps\":[]}\n```", `{"gaps":[]}`},
		{`{"gaps":[]}`, `{"gaps":[]}`},
		{"  \n{\"gaps\":[]}\n  ", `{"gaps":[]}`},
	}
	for _, tc := range cases {
		if got := cleanJSON(tc.in); got != tc.want {
			t.Fatalf("cleanJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseExplanation(t *testing.T) {
	raw := "```json\n" + `{
		"gaps": [
			{
				"skill": "kubernetes",
				"related_to": "docker",
				"explanation": "Orchestration layer for the containers already in use.",
				"courses": [
					{"title": "Kubernetes Basics", "provider": "Coursera"},
					{"title": "K8s for Developers", "provider": "Udemy"}
				]
			},
			{"skill": "  ", "related_to": "not related", "explanation": "dropped"}
		]
	}` + "\n```"

	explanation, err := parseExplanation(raw)
	if err != nil {
		t.Fatalf("parse explanation: %v", err)
	}
	if !explanation.Available {
		t.Fatalf("expected available explanation")
	}
	if len(explanation.Gaps) != 1 {
		t.Fatalf("expected blank-skill gap to be dropped, got %d gaps", len(explanation.Gaps))
	}
	gap := explanation.Gaps[0]
	if gap.Skill != "kubernetes" || gap.RelatedTo != "docker" {
		t.Fatalf("unexpected gap: %+v", gap)
	}
	if len(gap.Courses) != 2 || gap.Courses[0].Provider != "Coursera" {
		t.Fatalf("unexpected courses: %+v", gap.Courses)
	}
}

func TestParseExplanationRejectsMalformedJSON(t *testing.T) {
	if _, err := parseExplanation(`{"gaps": [`); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestNewClientRequiresCredential(t *testing.T) {
	if _, err := NewClient(context.Background(), "", "gemini-2.5-flash-lite", "text-embedding-004"); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	if _, err := NewClient(context.Background(), "key", "", "text-embedding-004"); err == nil {
		t.Fatalf("expected error for missing model")
	}
}
