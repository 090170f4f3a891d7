package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/bookgrid/internal/page"
)

// hyperlink wraps text in an OSC 8 sequence. Terminals that support it open
// the target in the browser; others show the plain text.
func hyperlink(url, text string) string {
	if strings.TrimSpace(url) == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}

// renderCard draws one book as a bordered box of the given outer width.
// height pads the body so cards in a row line up; zero means natural height.
func renderCard(c page.Card, width, height int, selected bool, styles Styles) string {
	box := styles.Card
	if selected {
		box = styles.CardSelected
	}
	inner := width - box.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	lines := []string{
		styles.Title.Width(inner).Render(c.Title),
		styles.MutedText.Width(inner).Render("by " + c.Author),
		styles.Ranking.Render(c.RankingLabel()),
	}
	if c.Image != "" {
		lines = append(lines, styles.FaintText.Render(ansi.Truncate("img "+c.Image, inner, "…")))
	}
	if c.Link != "" {
		lines = append(lines, "", hyperlink(c.Link, styles.Link.Render(page.BuyLabel)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	style := box.Width(inner + box.GetHorizontalPadding())
	if height > 0 {
		style = style.Height(height)
	}
	return style.Render(body)
}

// cardBodyHeight is the height of a card's content before borders.
func cardBodyHeight(c page.Card, width int, styles Styles) int {
	rendered := renderCard(c, width, 0, false, styles)
	return lipgloss.Height(rendered) - styles.Card.GetVerticalBorderSize()
}
