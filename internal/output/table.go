package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/joacominatel/trident/internal/warehouse"
)

var (
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	tableHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// FrameTable renders a warehouse frame as a bordered table.
func FrameTable(f *warehouse.Frame) string {
	if len(f.Columns) == 0 {
		return "(no rows)"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers(f.Columns...)

	for _, row := range f.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = Cell(v)
		}
		t.Row(cells...)
	}
	return t.String()
}

// Cell formats one result value for display.
func Cell(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
