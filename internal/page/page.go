// Package page renders a ViewState as a standalone HTML document or as
// Markdown. Both renderers are pure: the same state always produces the
// same output, with exactly one of the loading, error or grid branches.
package page

import (
	"strings"

	"github.com/five82/bookgrid/internal/books"
	"github.com/five82/bookgrid/internal/state"
)

// Copy shared by every surface.
const (
	Heading      = "Top Books on Amazon"
	LoadingText  = "Loading books"
	ErrorMessage = "Error fetching data. Please try again later."
	BuyLabel     = "Buy on Amazon"
	RankingGlyph = "⭐"
)

// Options tune the HTML output.
type Options struct {
	// RefreshSeconds adds a meta refresh to the loading page so a browser
	// polls until the fetch settles. Zero disables it.
	RefreshSeconds int
}

// Card is the display projection of one item.
type Card struct {
	Key     string
	Title   string
	Author  string
	Ranking string
	Image   string
	Link    string
}

// RankingLabel returns the ranking with its glyph, e.g. "⭐ 4.5".
func (c Card) RankingLabel() string {
	return RankingGlyph + " " + c.Ranking
}

// Cards projects items to cards in order.
func Cards(items []books.Item) []Card {
	cards := make([]Card, 0, len(items))
	for _, it := range items {
		cards = append(cards, Card{
			Key:     it.Key(),
			Title:   strings.TrimSpace(it.Title),
			Author:  strings.TrimSpace(it.Author),
			Ranking: it.Ranking.String(),
			Image:   strings.TrimSpace(it.ImageURL),
			Link:    strings.TrimSpace(it.AmazonLink),
		})
	}
	return cards
}

type model struct {
	Phase   state.Phase
	Heading string
	Refresh int
	Cards   []Card
}

func (m model) Loading() bool { return m.Phase == state.PhaseLoading }
func (m model) Failed() bool  { return m.Phase == state.PhaseError }

func newModel(v state.ViewState, opts Options) model {
	m := model{Phase: v.Phase(), Heading: Heading}
	switch m.Phase {
	case state.PhaseLoading:
		m.Refresh = max(opts.RefreshSeconds, 0)
	case state.PhaseReady:
		m.Cards = Cards(v.Items)
	}
	return m
}
