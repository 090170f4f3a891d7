package ui

// Terminal width thresholds for the responsive grid.
const (
	// LayoutTwoColumnWidth is the width at which the grid shows two cards per row.
	LayoutTwoColumnWidth = 80

	// LayoutThreeColumnWidth is the width at which the grid shows three cards per row.
	LayoutThreeColumnWidth = 120
)

const (
	// CardGap is the number of blank cells between cards in a row.
	CardGap = 2

	// MinCardWidth keeps cards readable on very narrow terminals.
	MinCardWidth = 24

	// chromeHeight is the heading plus footer line.
	chromeHeight = 3
)

// columnsFor returns how many cards fit per row at the given width.
func columnsFor(width int) int {
	switch {
	case width >= LayoutThreeColumnWidth:
		return 3
	case width >= LayoutTwoColumnWidth:
		return 2
	default:
		return 1
	}
}

// cardWidthFor returns the outer width of a card for the given layout.
func cardWidthFor(width, columns int) int {
	if columns < 1 {
		columns = 1
	}
	w := (width - CardGap*(columns-1)) / columns
	if w < MinCardWidth {
		return MinCardWidth
	}
	return w
}
