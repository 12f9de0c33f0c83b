// Package render produces the site's HTML from embedded templates.
// Block content is rendered as escaped plain-text fragments; rich
// markdown rendering is out of scope for now.
package render

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/starford/jera/internal/document"
	"github.com/starford/jera/internal/site"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options tune the renderer.
type Options struct {
	// LiveReload injects the reload client script into every page so
	// the preview server can refresh open tabs after a rebuild.
	LiveReload bool
}

// Renderer renders pages from the embedded templates.
type Renderer struct {
	tmpl *template.Template
	opts Options
}

var _ site.Renderer = (*Renderer)(nil)

// New parses the embedded templates. A parse failure is a programmer
// error and panics.
func New(opts Options) *Renderer {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	return &Renderer{tmpl: tmpl, opts: opts}
}

type documentPage struct {
	Title      string
	Date       string
	Tags       []string
	Blocks     []template.HTML
	LiveReload bool
}

type homePage struct {
	site.HomePage
	LiveReload bool
}

type sectionPage struct {
	site.SectionPage
	LiveReload bool
}

type tagPage struct {
	site.TagPage
	LiveReload bool
}

// RenderDocument renders one document page.
func (r *Renderer) RenderDocument(doc *document.Document) (string, error) {
	title := doc.Metadata.String("title")
	if title == "" {
		title = "Untitled"
	}
	page := documentPage{
		Title:      title,
		Date:       doc.Metadata.String("date"),
		Tags:       doc.Metadata.StringList("tags"),
		LiveReload: r.opts.LiveReload,
	}
	for _, b := range doc.Blocks {
		page.Blocks = append(page.Blocks, renderBlock(b))
	}
	return r.execute("document.html", page)
}

// RenderHome renders the site root page.
func (r *Renderer) RenderHome(page site.HomePage) (string, error) {
	return r.execute("home.html", homePage{HomePage: page, LiveReload: r.opts.LiveReload})
}

// RenderSection renders a notes or experiments listing page.
func (r *Renderer) RenderSection(page site.SectionPage) (string, error) {
	return r.execute("section.html", sectionPage{SectionPage: page, LiveReload: r.opts.LiveReload})
}

// RenderTag renders one tag listing page.
func (r *Renderer) RenderTag(page site.TagPage) (string, error) {
	return r.execute("tag.html", tagPage{TagPage: page, LiveReload: r.opts.LiveReload})
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf strings.Builder
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render: %s: %w", name, err)
	}
	return buf.String(), nil
}

// renderBlock emits the HTML fragment for one block. All user text is
// escaped. The fallback fragment keeps rendering total even if the
// block set ever grows past what this switch knows.
func renderBlock(b document.Block) template.HTML {
	switch blk := b.(type) {
	case document.Markdown:
		return template.HTML(`<div class="jr-markdown">` + html.EscapeString(blk.Content) + `</div>`)

	case document.Summary:
		return template.HTML(`<section class="jr-summary"><div class="jr-summary-title">Summary</div><div>` +
			html.EscapeString(blk.Content) + `</div></section>`)

	case document.Figure:
		var sb strings.Builder
		sb.WriteString(`<figure class="jr-figure"><img src="` + html.EscapeString(blk.Path) +
			`" alt="` + html.EscapeString(blk.Alt) + `">`)
		if blk.Caption != "" {
			sb.WriteString(`<figcaption>` + html.EscapeString(blk.Caption) + `</figcaption>`)
		}
		sb.WriteString(`</figure>`)
		return template.HTML(sb.String())

	case document.Log:
		return template.HTML(`<pre class="jr-log">` + html.EscapeString(blk.Content) + `</pre>`)

	case document.Code:
		var sb strings.Builder
		sb.WriteString(`<section class="jr-code"><pre><code`)
		if blk.Language != "" {
			sb.WriteString(` class="language-` + html.EscapeString(blk.Language) + `"`)
		}
		sb.WriteString(`>` + html.EscapeString(blk.Content) + `</code></pre>`)
		if blk.Caption != "" {
			sb.WriteString(`<div class="jr-code-caption">` + html.EscapeString(blk.Caption) + `</div>`)
		}
		sb.WriteString(`</section>`)
		return template.HTML(sb.String())

	default:
		return template.HTML(`<div class="jr-unknown">` + html.EscapeString(fmt.Sprintf("%#v", b)) + `</div>`)
	}
}
