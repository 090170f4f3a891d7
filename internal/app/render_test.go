package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/five82/bookgrid/internal/books"
	"github.com/five82/bookgrid/internal/page"
)

var twoBooks = []books.Item{
	{ID: "1", Title: "A", Author: "X", Ranking: "4.5", ImageURL: "u1", AmazonLink: "l1"},
	{ID: "2", Title: "B", Author: "Y", Ranking: "3", ImageURL: "u2", AmazonLink: "l2"},
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":         FormatHTML,
		"HTML":     FormatHTML,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
		"terminal": FormatTerminal,
		" term ":   FormatTerminal,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Fatal("ParseFormat(pdf) should fail")
	}
}

func TestRender_HTMLReady(t *testing.T) {
	f := &fakeFetcher{items: twoBooks}
	var buf bytes.Buffer
	if err := render(context.Background(), f, zap.NewNop(), &buf, FormatHTML); err != nil {
		t.Fatalf("render returned error: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	var titles []string
	doc.Find("article.card h2").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	if diff := cmp.Diff([]string{"A", "B"}, titles); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
	if doc.Find(".spinner").Length() != 0 {
		t.Fatal("settled render should not include the spinner")
	}
	if got := f.calls.Load(); got != 1 {
		t.Fatalf("fetch calls = %d, want 1", got)
	}
}

func TestRender_ErrorPage(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	var buf bytes.Buffer
	if err := render(context.Background(), f, zap.NewNop(), &buf, FormatMarkdown); err != nil {
		t.Fatalf("render returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, page.ErrorMessage) || strings.Contains(out, "connection refused") {
		t.Fatalf("markdown error page = %q", out)
	}
}

func TestRender_Terminal(t *testing.T) {
	f := &fakeFetcher{items: twoBooks[:1]}
	var buf bytes.Buffer
	if err := render(context.Background(), f, zap.NewNop(), &buf, FormatTerminal); err != nil {
		t.Fatalf("render returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Amazon", "4.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("terminal output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_CancelledBeforeSettle(t *testing.T) {
	f := &fakeFetcher{block: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	err := render(ctx, f, zap.NewNop(), &buf, FormatHTML)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("render error = %v, want deadline exceeded", err)
	}
	if buf.Len() != 0 {
		t.Fatal("nothing should be written when the fetch never settles")
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := render(context.Background(), &fakeFetcher{}, zap.NewNop(), &buf, Format("pdf")); err == nil {
		t.Fatal("render should reject an unknown format")
	}
}
