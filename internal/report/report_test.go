package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"resume-screener/internal/llm"
)

func sampleCandidates() []Candidate {
	return []Candidate{
		{
			Name:          "Alice Jones",
			Email:         "alice@example.com",
			Phone:         "+14155550100",
			FileName:      "alice.pdf",
			LexicalScore:  0.72,
			SemanticScore: 0.81,
			CombinedScore: 0.774,
			MatchedSkills: []string{"python", "docker"},
			MissingSkills: []string{"kubernetes"},
			Explanation: llm.Explanation{
				Available: true,
				Gaps: []llm.SkillGap{{
					Skill:       "kubernetes",
					RelatedTo:   "docker",
					Explanation: "Orchestrates the containers the candidate already builds.",
					Courses: []llm.Course{
						{Title: "Kubernetes Basics", Provider: "Coursera"},
						{Title: "K8s for Developers", Provider: "Udemy"},
					},
				}},
			},
		},
		{
			FileName:      "bob.docx",
			LexicalScore:  0.31,
			SemanticScore: 0,
			CombinedScore: 0.124,
			MissingSkills: []string{"python", "docker", "kubernetes"},
		},
	}
}

func TestWritePDFProducesValidDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleCandidates()[0]); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", buf.Bytes()[:8])
	}
}

func TestWritePDFFallsBackToFileName(t *testing.T) {
	var buf bytes.Buffer
	// No name, no explanation; must still render.
	if err := WritePDF(&buf, sampleCandidates()[1]); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected non-empty pdf")
	}
}

func TestWriteMergedPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMergedPDF(&buf, sampleCandidates()); err != nil {
		t.Fatalf("write merged pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF header")
	}
}

func TestWriteExcelRankedTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExcel(&buf, "Python developer with Kubernetes", sampleCandidates()); err != nil {
		t.Fatalf("write excel: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Ranked Candidates")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 candidates, got %d rows", len(rows))
	}
	if rows[0][0] != "Rank" || rows[0][1] != "Candidate" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][1] != "Alice Jones" {
		t.Fatalf("expected ranked order preserved, got %v", rows[1])
	}
	// Nameless candidates fall back to the file name.
	if rows[2][1] != "bob.docx" {
		t.Fatalf("expected file name fallback, got %v", rows[2])
	}
	if !strings.Contains(rows[1][7], "python") {
		t.Fatalf("expected matched skills column, got %q", rows[1][7])
	}

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("get summary rows: %v", err)
	}
	if len(summary) == 0 {
		t.Fatalf("expected summary sheet content")
	}
}
