package page

import (
	"errors"
	"strings"
	"testing"

	"github.com/five82/bookgrid/internal/books"
	"github.com/five82/bookgrid/internal/state"
)

func renderMarkdown(t *testing.T, v state.ViewState) string {
	t.Helper()
	var b strings.Builder
	if err := Markdown(&b, v); err != nil {
		t.Fatalf("Markdown returned error: %v", err)
	}
	return b.String()
}

func TestMarkdown_Branches(t *testing.T) {
	if got := renderMarkdown(t, state.Initial()); !strings.Contains(got, LoadingText) || strings.Contains(got, "##") {
		t.Fatalf("loading markdown = %q", got)
	}

	got := renderMarkdown(t, state.ViewState{Err: errors.New("boom")})
	if !strings.Contains(got, ErrorMessage) || strings.Contains(got, "boom") {
		t.Fatalf("error markdown = %q", got)
	}

	got = renderMarkdown(t, state.ViewState{})
	if !strings.Contains(got, Heading) || strings.Contains(got, "##") {
		t.Fatalf("empty markdown = %q, want heading and no cards", got)
	}
}

func TestMarkdown_Cards(t *testing.T) {
	got := renderMarkdown(t, state.ViewState{Items: []books.Item{
		{ID: "1", Title: "A_b", Author: "X", Ranking: "4.5", ImageURL: "u1", AmazonLink: "https://a.example/x (y)"},
		{ID: "2", Title: "B", Author: "Y", Ranking: "3"},
	}})

	for _, want := range []string{
		`## 1. A\_b`,
		`![A\_b](u1)`,
		"by X · ⭐ 4.5",
		"[Buy on Amazon](https://a.example/x%20%28y%29)",
		"## 2. B",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("markdown missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "## 1.") > strings.Index(got, "## 2.") {
		t.Fatal("cards out of order")
	}
	if strings.Count(got, "Buy on Amazon") != 1 {
		t.Fatal("item without link should not get a buy link")
	}
}
