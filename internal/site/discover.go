// Package site turns a workspace of .jera documents into the built
// static site: discovery, index projection, the build orchestrator,
// and the rebuild watcher that drives the preview server.
package site

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/starford/jera/internal/document"
	"github.com/starford/jera/internal/parser"
	"github.com/starford/jera/internal/workspace"
)

// sections pairs document kinds with their workspace directories, in
// discovery order: notes first, then experiments. Tag aggregation
// relies on this order.
var sections = []struct {
	Kind string
	Dir  string
}{
	{document.KindNote, workspace.NotesDir},
	{document.KindExperiment, workspace.ExperimentsDir},
}

// SiteDocument is a parsed document placed in the site. Kind and Slug
// decide its output path.
type SiteDocument struct {
	Kind       string
	Slug       string
	SourcePath string
	Document   *document.Document
}

// Discover loads every document in the workspace and resolves each
// one's kind and slug. Metadata may override both; otherwise the
// directory implies the kind and the file name stem becomes the slug.
// One malformed file fails the whole pass.
func Discover(ws *workspace.Workspace) ([]SiteDocument, error) {
	var docs []SiteDocument
	for _, s := range sections {
		names, err := ws.ListSection(s.Dir)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			rel := filepath.Join(s.Dir, name)
			data, err := ws.Read(rel)
			if err != nil {
				return nil, err
			}
			doc, err := parser.ParseDocument(string(data), rel)
			if err != nil {
				return nil, fmt.Errorf("site: parse %s: %w", rel, err)
			}
			stem := strings.TrimSuffix(name, workspace.DocExt)
			docs = append(docs, SiteDocument{
				Kind:       doc.Metadata.Kind(s.Kind),
				Slug:       doc.Metadata.Slug(stem),
				SourcePath: rel,
				Document:   doc,
			})
		}
	}
	return docs, nil
}

// sectionFor returns the output directory for a document kind.
func sectionFor(kind string) string {
	if kind == document.KindNote {
		return workspace.NotesDir
	}
	return workspace.ExperimentsDir
}
