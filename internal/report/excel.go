package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// WriteExcel renders the ranked candidate table as an XLSX workbook. Rows
// follow the given (ranked) order.
func WriteExcel(w io.Writer, jobDescription string, candidates []Candidate) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Ranked Candidates"
	f.SetSheetName("Sheet1", sheet)

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 25)
	f.SetColWidth(sheet, "C", "C", 30)
	f.SetColWidth(sheet, "D", "D", 18)
	f.SetColWidth(sheet, "E", "G", 12)
	f.SetColWidth(sheet, "H", "I", 45)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("create wrap style: %w", err)
	}

	headers := []string{"Rank", "Candidate", "Email", "Phone", "Combined", "Lexical", "Semantic", "Matched Skills", "Missing Skills"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, c := range candidates {
		row := i + 2
		name := c.Name
		if name == "" {
			name = c.FileName
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), c.Email)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), c.Phone)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("%.1f%%", c.CombinedScore*100))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("%.1f%%", c.LexicalScore*100))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), fmt.Sprintf("%.1f%%", c.SemanticScore*100))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), strings.Join(c.MatchedSkills, ", "))
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), strings.Join(c.MissingSkills, ", "))
		f.SetCellStyle(sheet, fmt.Sprintf("H%d", row), fmt.Sprintf("I%d", row), wrapStyle)
	}

	if len(candidates) > 0 {
		f.AutoFilter(sheet, fmt.Sprintf("A1:I%d", len(candidates)+1), nil)
	}
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	writeSummarySheet(f, jobDescription, candidates)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, jobDescription string, candidates []Candidate) {
	sheet := "Summary"
	f.NewSheet(sheet)
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 70)

	labelStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})

	set := func(row int, label string, value any) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), value)
	}

	set(1, "Generated", time.Now().Format("2006-01-02 15:04:05"))
	set(2, "Candidates", len(candidates))
	if len(candidates) > 0 {
		var total float64
		for _, c := range candidates {
			total += c.CombinedScore
		}
		set(3, "Top Score", fmt.Sprintf("%.1f%%", candidates[0].CombinedScore*100))
		set(4, "Average Score", fmt.Sprintf("%.1f%%", total/float64(len(candidates))*100))
	}
	set(6, "Job Description", jobDescription)
	f.SetCellStyle(sheet, "B6", "B6", wrapStyle)
	f.SetRowHeight(sheet, 6, 120)
}
