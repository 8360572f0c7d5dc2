// Package report renders interview sessions as XLSX workbooks.
package report

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/dtroode/interview-coach/internal/model"
)

const (
	// ContentType is the MIME type of the rendered workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet = "Summary"
	turnsSheet   = "Turns"
)

// Key returns the object storage key of a session report.
func Key(sessionID uuid.UUID) string {
	return fmt.Sprintf("reports/%s.xlsx", sessionID)
}

// FileName is the attachment name offered to clients.
func FileName(sessionID uuid.UUID) string {
	return fmt.Sprintf("interview-%s.xlsx", sessionID)
}

// Build renders a workbook with a summary sheet and a turns sheet.
func Build(details model.SessionDetails) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(turnsSheet); err != nil {
		return nil, fmt.Errorf("failed to create turns sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create styles: %w", err)
	}

	if err := writeSummary(f, styles, details); err != nil {
		return nil, fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := writeTurns(f, styles, details.Turns); err != nil {
		return nil, fmt.Errorf("failed to write turns sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type styles struct {
	header int
	label  int
	wrap   int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return styles{}, err
	}

	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return styles{}, err
	}

	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return styles{}, err
	}

	return styles{header: header, label: label, wrap: wrap}, nil
}

func writeSummary(f *excelize.File, st styles, d model.SessionDetails) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 90); err != nil {
		return err
	}

	if err := f.SetCellValue(summarySheet, "A1", "Interview Report"); err != nil {
		return err
	}
	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", st.header); err != nil {
		return err
	}

	feedback := ""
	if d.Session.Feedback != nil {
		feedback = *d.Session.Feedback
	}

	rows := [][2]any{
		{"Session", d.Session.ID.String()},
		{"Type", string(d.Session.Type)},
		{"State", string(d.State.Phase)},
		{"Started", d.Session.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Applicant", d.User.Name},
		{"Job category", d.User.JobCategory},
		{"Experience", d.User.Experience},
		{"Age", d.User.Age},
		{"Gender", d.User.Gender},
		{"Questions asked", len(d.Turns)},
		{"Overall feedback", feedback},
	}

	for i, r := range rows {
		row := i + 3
		labelCell := fmt.Sprintf("A%d", row)
		valueCell := fmt.Sprintf("B%d", row)
		if err := f.SetCellValue(summarySheet, labelCell, r[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, labelCell, labelCell, st.label); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, valueCell, r[1]); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, valueCell, valueCell, st.wrap); err != nil {
			return err
		}
	}

	return nil
}

func writeTurns(f *excelize.File, st styles, turns []model.Turn) error {
	widths := map[string]float64{"A": 8, "B": 50, "C": 60, "D": 70, "E": 14}
	for col, w := range widths {
		if err := f.SetColWidth(turnsSheet, col, col, w); err != nil {
			return err
		}
	}

	headers := []any{"#", "Question", "Answer", "Feedback", "Time limit (s)"}
	if err := f.SetSheetRow(turnsSheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(turnsSheet, "A1", "E1", st.header); err != nil {
		return err
	}

	for i, t := range turns {
		row := i + 2
		values := []any{t.TurnNumber, t.Question, deref(t.Answer), deref(t.Feedback), t.TimeLimit}
		if err := f.SetSheetRow(turnsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(turnsSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), st.wrap); err != nil {
			return err
		}
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
