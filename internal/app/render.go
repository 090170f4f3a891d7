package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/five82/bookgrid/internal/books"
	"github.com/five82/bookgrid/internal/page"
	"github.com/five82/bookgrid/internal/state"
)

// Format selects the output of Render.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatTerminal Format = "terminal"
)

// terminalWrap is the word wrap width of terminal output.
const terminalWrap = 80

// ParseFormat accepts a format name, case-insensitively. "md" is an alias
// for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "terminal", "term":
		return FormatTerminal, nil
	default:
		return "", fmt.Errorf("unknown format %q (want html, markdown or terminal)", s)
	}
}

// Render mounts once, waits for the fetch to settle and writes the page
// in the requested format. A failed fetch still renders the error page.
func Render(ctx context.Context, opts Options, w io.Writer, format Format) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()
	return render(ctx, e.client, e.log, w, format)
}

func render(ctx context.Context, fetcher books.Fetcher, logger *zap.Logger, w io.Writer, format Format) error {
	snap, err := settle(ctx, fetcher, logger)
	if err != nil {
		return err
	}

	switch format {
	case FormatHTML:
		return page.HTML(w, snap, page.Options{})
	case FormatMarkdown:
		return page.Markdown(w, snap)
	case FormatTerminal:
		return renderTerminal(w, snap)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderTerminal(w io.Writer, snap state.ViewState) error {
	var md bytes.Buffer
	if err := page.Markdown(&md, snap); err != nil {
		return err
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWrap),
	)
	if err != nil {
		return fmt.Errorf("init terminal renderer: %w", err)
	}
	out, err := renderer.Render(md.String())
	if err != nil {
		return fmt.Errorf("render terminal output: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// settle runs one mount to completion and returns its final state. The
// error is only set when ctx ends before the fetch settles.
func settle(ctx context.Context, fetcher books.Fetcher, logger *zap.Logger) (state.ViewState, error) {
	mount := NewMount(fetcher, logger)
	defer mount.Unmount()

	mount.Start(ctx)
	snap, err := mount.Store().Wait(ctx)
	if err != nil {
		return state.ViewState{}, fmt.Errorf("wait for books: %w", err)
	}
	return snap, nil
}
