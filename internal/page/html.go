package page

import (
	"fmt"
	"html/template"
	"io"

	"github.com/five82/bookgrid/internal/state"
)

var htmlTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{- if .Refresh}}
<meta http-equiv="refresh" content="{{.Refresh}}">
{{- end}}
<title>{{.Heading}}</title>
<style>
body{margin:0;font-family:system-ui,sans-serif;background:#f9fafb;color:#1f2937}
.center{display:flex;justify-content:center;align-items:center;min-height:100vh;background:#f3f4f6}
.spinner{width:4rem;height:4rem;border-radius:50%;border-top:4px solid #3b82f6;animation:spin 1s linear infinite}
@keyframes spin{to{transform:rotate(360deg)}}
.error{font-size:1.25rem;font-weight:600;color:#ef4444}
.page{min-height:100vh;padding:1.5rem}
h1{font-size:2.25rem;text-align:center;margin:0 0 2rem}
.grid{display:grid;grid-template-columns:1fr;gap:2rem;max-width:72rem;margin:0 auto}
@media (min-width:768px){.grid{grid-template-columns:repeat(2,1fr)}}
@media (min-width:1024px){.grid{grid-template-columns:repeat(3,1fr)}}
.card{background:#fff;border-radius:.5rem;box-shadow:0 10px 15px rgba(0,0,0,.1);padding:1.25rem;transition:transform .2s}
.card:hover{transform:scale(1.05)}
.card img{width:100%;height:16rem;object-fit:cover;border-radius:.5rem}
.card h2{font-size:1.25rem;margin:1rem 0 0}
.author{color:#4b5563;font-size:.875rem;margin:.25rem 0 0}
.ranking{font-weight:500;margin:.5rem 0 0}
.buy{display:inline-block;margin-top:.75rem;padding:.5rem 1rem;background:#2563eb;color:#fff;font-weight:600;border-radius:.5rem;text-decoration:none}
.buy:hover{background:#1d4ed8}
</style>
</head>
<body>
{{- if .Loading}}
<main class="center"><div class="spinner" role="status" aria-label="{{.LoadingText}}"></div></main>
{{- else if .Failed}}
<main class="center"><p class="error">{{.ErrorMessage}}</p></main>
{{- else}}
<main class="page">
<h1>📚 {{.Heading}}</h1>
<div class="grid">
{{- range .Cards}}
<article class="card" data-key="{{.Key}}">
<img src="{{.Image}}" alt="{{.Title}}">
<h2>{{.Title}}</h2>
<p class="author">by {{.Author}}</p>
<p class="ranking">{{.RankingLabel}}</p>
{{- if .Link}}
<a class="buy" href="{{.Link}}" target="_blank" rel="noopener noreferrer">{{$.BuyLabel}}</a>
{{- end}}
</article>
{{- end}}
</div>
</main>
{{- end}}
</body>
</html>
`))

type htmlModel struct {
	model
	LoadingText  string
	ErrorMessage string
	BuyLabel     string
}

// HTML writes the page for v to w.
func HTML(w io.Writer, v state.ViewState, opts Options) error {
	data := htmlModel{
		model:        newModel(v, opts),
		LoadingText:  LoadingText,
		ErrorMessage: ErrorMessage,
		BuyLabel:     BuyLabel,
	}
	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
