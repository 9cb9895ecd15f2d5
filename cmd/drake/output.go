package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// printTable writes rows under headers as a bordered table. Columns listed
// in right are right-aligned.
func printTable(w io.Writer, headers []string, rows [][]string, right ...int) {
	aligned := make(map[int]bool, len(right))
	for _, c := range right {
		aligned[c] = true
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cellStyle
			if row == table.HeaderRow {
				s = headerStyle
			}
			if aligned[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	fmt.Fprintln(w, t.Render())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
