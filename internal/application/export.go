package application

import (
	"fmt"
	"strings"

	"mapban/internal/models"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Matches"

// ExportMatches renders the full match archive as an XLSX workbook.
func (s *MatchServiceImpl) ExportMatches() ([]byte, error) {
	matches, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	f := excelize.NewFile()
	f.NewSheet(exportSheetName)
	f.DeleteSheet("Sheet1")

	headers := []string{"Slug", "Team A", "Team B", "State", "Turn", "Bans", "Final Map", "Created", "Finished"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheetName, cell, h)
	}

	row := 2
	for i := range matches {
		m := &matches[i]
		finished := ""
		if m.FinishedAt != nil {
			finished = m.FinishedAt.Format("2006-01-02 15:04")
		}

		f.SetCellValue(exportSheetName, fmt.Sprintf("A%d", row), m.Slug)
		f.SetCellValue(exportSheetName, fmt.Sprintf("B%d", row), m.TeamAName)
		f.SetCellValue(exportSheetName, fmt.Sprintf("C%d", row), m.TeamBName)
		f.SetCellValue(exportSheetName, fmt.Sprintf("D%d", row), string(m.State))
		f.SetCellValue(exportSheetName, fmt.Sprintf("E%d", row), m.CurrentTurn)
		f.SetCellValue(exportSheetName, fmt.Sprintf("F%d", row), formatBans(m.Bans))
		f.SetCellValue(exportSheetName, fmt.Sprintf("G%d", row), m.FinalMap())
		f.SetCellValue(exportSheetName, fmt.Sprintf("H%d", row), m.CreatedAt.Format("2006-01-02 15:04"))
		f.SetCellValue(exportSheetName, fmt.Sprintf("I%d", row), finished)
		row++
	}

	f.SetColWidth(exportSheetName, "A", "A", 30)
	f.SetColWidth(exportSheetName, "B", "C", 20)
	f.SetColWidth(exportSheetName, "D", "E", 12)
	f.SetColWidth(exportSheetName, "F", "F", 50)
	f.SetColWidth(exportSheetName, "G", "I", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatBans(bans []models.Ban) string {
	parts := make([]string, 0, len(bans))
	for _, b := range bans {
		parts = append(parts, fmt.Sprintf("%s (%s)", b.Map, b.By))
	}
	return strings.Join(parts, ", ")
}
