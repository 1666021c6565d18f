package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"resume-screener/internal/llm"
)

// Candidate is the rendered view of one screened resume.
type Candidate struct {
	Name          string
	Email         string
	Phone         string
	FileName      string
	LexicalScore  float64
	SemanticScore float64
	CombinedScore float64
	MatchedSkills []string
	MissingSkills []string
	Explanation   llm.Explanation
}

// WritePDF renders a single-candidate report.
func WritePDF(w io.Writer, c Candidate) error {
	pdf := newDoc()
	writeCandidate(pdf, c)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write report pdf: %w", err)
	}
	return nil
}

// WriteMergedPDF renders one combined document with a section per candidate,
// preserving the given (ranked) order.
func WriteMergedPDF(w io.Writer, candidates []Candidate) error {
	pdf := newDoc()
	for _, c := range candidates {
		writeCandidate(pdf, c)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write merged pdf: %w", err)
	}
	return nil
}

func newDoc() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Candidate Screening Report", true)
	pdf.SetAutoPageBreak(true, 15)
	return pdf
}

func writeCandidate(pdf *fpdf.Fpdf, c Candidate) {
	pdf.AddPage()

	name := c.Name
	if name == "" {
		name = c.FileName
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	contact := joinNonEmpty(" | ", c.Email, c.Phone, c.FileName)
	if contact != "" {
		pdf.CellFormat(0, 6, contact, "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	sectionTitle(pdf, "Match Score")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("%.1f%%", c.CombinedScore*100), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Lexical %.1f%%  /  Semantic %.1f%%", c.LexicalScore*100, c.SemanticScore*100), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	sectionTitle(pdf, "Matched Skills")
	skillLine(pdf, c.MatchedSkills)
	pdf.Ln(3)

	sectionTitle(pdf, "Missing Skills")
	skillLine(pdf, c.MissingSkills)
	pdf.Ln(3)

	sectionTitle(pdf, "Gap Analysis")
	if !c.Explanation.Available || len(c.Explanation.Gaps) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, "Explanation unavailable.", "", "L", false)
		return
	}
	for _, gap := range c.Explanation.Gaps {
		pdf.SetFont("Helvetica", "B", 11)
		heading := gap.Skill
		if gap.RelatedTo != "" && !strings.EqualFold(gap.RelatedTo, "not related") {
			heading = fmt.Sprintf("%s (related to %s)", gap.Skill, gap.RelatedTo)
		}
		pdf.CellFormat(0, 6, heading, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		if gap.Explanation != "" {
			pdf.MultiCell(0, 5, gap.Explanation, "", "L", false)
		}
		for _, course := range gap.Courses {
			pdf.CellFormat(0, 5, fmt.Sprintf("  - %s (%s)", course.Title, course.Provider), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(40, 70, 140)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func skillLine(pdf *fpdf.Fpdf, items []string) {
	pdf.SetFont("Helvetica", "", 10)
	if len(items) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 5, "None", "", 1, "L", false, 0, "")
		return
	}
	pdf.MultiCell(0, 5, strings.Join(items, ", "), "", "L", false)
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
