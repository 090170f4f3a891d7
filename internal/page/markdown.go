package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/five82/bookgrid/internal/state"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
)

var markdownURLEscaper = strings.NewReplacer(
	" ", "%20",
	"(", "%28",
	")", "%29",
	"<", "%3C",
	">", "%3E",
)

// Markdown writes v as a Markdown document.
func Markdown(w io.Writer, v state.ViewState) error {
	var b strings.Builder
	m := newModel(v, Options{})

	switch m.Phase {
	case state.PhaseLoading:
		fmt.Fprintf(&b, "_%s…_\n", LoadingText)
	case state.PhaseError:
		fmt.Fprintf(&b, "**%s**\n", ErrorMessage)
	default:
		fmt.Fprintf(&b, "# 📚 %s\n", Heading)
		for i, c := range m.Cards {
			b.WriteString("\n")
			fmt.Fprintf(&b, "## %d. %s\n\n", i+1, escapeMarkdown(c.Title))
			if c.Image != "" {
				fmt.Fprintf(&b, "![%s](%s)\n\n", escapeMarkdown(c.Title), markdownURLEscaper.Replace(c.Image))
			}
			fmt.Fprintf(&b, "by %s · %s\n\n", escapeMarkdown(c.Author), escapeMarkdown(c.RankingLabel()))
			if c.Link != "" {
				fmt.Fprintf(&b, "[%s](%s)\n", BuyLabel, markdownURLEscaper.Replace(c.Link))
			}
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return nil
}

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
