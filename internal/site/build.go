package site

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/jera/internal/document"
	"github.com/starford/jera/internal/workspace"
)

// Renderer produces the markup for each page kind. The builder owns
// the data and the output layout; the renderer owns the HTML.
type Renderer interface {
	RenderDocument(doc *document.Document) (string, error)
	RenderHome(page HomePage) (string, error)
	RenderSection(page SectionPage) (string, error)
	RenderTag(page TagPage) (string, error)
}

// HomePage carries the aggregate values shown on the site root.
type HomePage struct {
	NoteCount         int
	ExperimentCount   int
	RecentNotes       []IndexItem
	RecentExperiments []IndexItem
	TagNames          []string
}

// SectionPage lists every document of one kind.
type SectionPage struct {
	Title string
	Kind  string
	Items []IndexItem
}

// TagPage lists every document carrying one tag.
type TagPage struct {
	Tag   string
	Items []*IndexItem
}

// Builder performs full rebuilds of the static site.
type Builder struct {
	ws       *workspace.Workspace
	renderer Renderer
	logger   *slog.Logger
}

// NewBuilder wires a builder over a workspace and a renderer.
func NewBuilder(ws *workspace.Workspace, renderer Renderer, logger *slog.Logger) *Builder {
	return &Builder{ws: ws, renderer: renderer, logger: logger}
}

// Build performs one full rebuild into outputRoot: reset the
// directory, render every document, mirror assets, then render the
// index pages. Identical inputs produce a byte-identical output tree.
// A failure mid-reset leaves a partial tree; the next build starts
// from the reset again.
func (b *Builder) Build(outputRoot string) error {
	if err := os.RemoveAll(outputRoot); err != nil {
		return fmt.Errorf("site: reset output: %w", err)
	}
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return fmt.Errorf("site: create output: %w", err)
	}

	docs, err := Discover(b.ws)
	if err != nil {
		return err
	}

	for _, sd := range docs {
		html, err := b.renderer.RenderDocument(sd.Document)
		if err != nil {
			return fmt.Errorf("site: render %s: %w", sd.SourcePath, err)
		}
		dir := filepath.Join(outputRoot, sectionFor(sd.Kind), sd.Slug)
		if err := writePage(dir, html); err != nil {
			return err
		}
		b.logger.Debug("rendered document",
			slog.String("source", sd.SourcePath),
			slog.String("slug", sd.Slug))
	}

	assetsSrc := filepath.Join(b.ws.Root(), workspace.AssetsDir)
	if info, err := os.Stat(assetsSrc); err == nil && info.IsDir() {
		if err := copyDir(assetsSrc, filepath.Join(outputRoot, workspace.AssetsDir)); err != nil {
			return fmt.Errorf("site: copy assets: %w", err)
		}
	}

	idx := BuildIndexes(docs)
	if err := b.renderIndexPages(outputRoot, idx); err != nil {
		return err
	}

	b.logger.Info("site built",
		slog.Int("documents", len(docs)),
		slog.Int("tags", len(idx.TagNames)),
		slog.String("output", outputRoot))
	return nil
}

func (b *Builder) renderIndexPages(outputRoot string, idx *Indexes) error {
	home := HomePage{
		NoteCount:         len(idx.Notes),
		ExperimentCount:   len(idx.Experiments),
		RecentNotes:       firstN(idx.Notes, 5),
		RecentExperiments: firstN(idx.Experiments, 5),
		TagNames:          idx.TagNames,
	}
	html, err := b.renderer.RenderHome(home)
	if err != nil {
		return fmt.Errorf("site: render home: %w", err)
	}
	if err := writePage(outputRoot, html); err != nil {
		return err
	}

	for _, page := range []SectionPage{
		{Title: "Notes", Kind: document.KindNote, Items: idx.Notes},
		{Title: "Experiments", Kind: document.KindExperiment, Items: idx.Experiments},
	} {
		html, err := b.renderer.RenderSection(page)
		if err != nil {
			return fmt.Errorf("site: render %s index: %w", page.Kind, err)
		}
		if err := writePage(filepath.Join(outputRoot, sectionFor(page.Kind)), html); err != nil {
			return err
		}
	}

	for _, tag := range idx.TagNames {
		html, err := b.renderer.RenderTag(TagPage{Tag: tag, Items: idx.Tags[tag]})
		if err != nil {
			return fmt.Errorf("site: render tag %s: %w", tag, err)
		}
		if err := writePage(filepath.Join(outputRoot, "tags", tag), html); err != nil {
			return err
		}
	}
	return nil
}

func writePage(dir, html string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("site: mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("site: write %s: %w", path, err)
	}
	return nil
}

func firstN(items []IndexItem, n int) []IndexItem {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// copyDir mirrors src into dst, overwriting files that already exist
// at the same relative path.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
