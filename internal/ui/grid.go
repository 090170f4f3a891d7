package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookgrid/internal/page"
)

// gridLayout is the rendered grid plus where each row starts, so the
// viewport can scroll a selected card into view.
type gridLayout struct {
	content   string
	columns   int
	rowStarts []int
	rowEnds   []int
}

// rowOf returns the row a card index sits in.
func (g gridLayout) rowOf(index int) int {
	if g.columns < 1 {
		return 0
	}
	return index / g.columns
}

// renderGrid lays cards out row-major, preserving their order.
func renderGrid(cards []page.Card, width, selected int, styles Styles) gridLayout {
	columns := columnsFor(width)
	layout := gridLayout{columns: columns}
	if len(cards) == 0 {
		return layout
	}
	cardWidth := cardWidthFor(width, columns)
	gap := strings.Repeat(" ", CardGap)

	var rows []string
	line := 0
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		row := cards[start:end]

		height := 0
		for _, c := range row {
			height = max(height, cardBodyHeight(c, cardWidth, styles))
		}

		parts := make([]string, 0, len(row)*2)
		for i, c := range row {
			if i > 0 {
				parts = append(parts, gap)
			}
			parts = append(parts, renderCard(c, cardWidth, height, start+i == selected, styles))
		}
		rendered := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

		layout.rowStarts = append(layout.rowStarts, line)
		rowHeight := lipgloss.Height(rendered)
		layout.rowEnds = append(layout.rowEnds, line+rowHeight)
		line += rowHeight + 1
		rows = append(rows, rendered)
	}

	layout.content = strings.Join(rows, "\n\n")
	return layout
}
