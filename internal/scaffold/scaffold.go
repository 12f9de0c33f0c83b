// Package scaffold creates new documents from kind-specific
// templates.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/jera/internal/document"
	"github.com/starford/jera/internal/slug"
	"github.com/starford/jera/internal/workspace"
)

// frontMatter is the scaffolded metadata envelope. Marshaling a struct
// keeps key order stable and quotes titles that would otherwise break
// the YAML mapping.
type frontMatter struct {
	Title   string   `yaml:"title"`
	Type    string   `yaml:"type"`
	Tags    []string `yaml:"tags"`
	Date    string   `yaml:"date"`
	Summary string   `yaml:"summary"`
	Slug    string   `yaml:"slug"`
}

// CreateDocument scaffolds a new document of the given kind, picking a
// collision-free file name from the slugified title, and returns the
// created path relative to the workspace root. Notes get a minimal
// body; experiments get the richer lab-notebook template.
func CreateDocument(ws *workspace.Workspace, title, kind string) (string, error) {
	if kind != document.KindNote && kind != document.KindExperiment {
		return "", fmt.Errorf("scaffold: unknown kind %q", kind)
	}

	section := workspace.NotesDir
	if kind == document.KindExperiment {
		section = workspace.ExperimentsDir
	}
	dir := filepath.Join(ws.Root(), section)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("scaffold: create %s: %w", section, err)
	}

	base := slug.Slugify(title)
	path := slug.UniquePath(dir, base, workspace.DocExt)
	name := filepath.Base(path)
	// The file stem is the slug, so a probed name like base-2 keeps
	// its output URL distinct from the first document's.
	stem := strings.TrimSuffix(name, workspace.DocExt)

	meta, err := yaml.Marshal(frontMatter{
		Title:   title,
		Type:    kind,
		Tags:    []string{},
		Date:    time.Now().Format("2006-01-02"),
		Summary: "",
		Slug:    stem,
	})
	if err != nil {
		return "", fmt.Errorf("scaffold: marshal front matter: %w", err)
	}

	content := "---\n" + string(meta) + "---\n\n" + body(kind, title)
	rel := filepath.Join(section, name)
	if err := ws.Write(rel, []byte(content)); err != nil {
		return "", err
	}
	return rel, nil
}

func body(kind, title string) string {
	if kind == document.KindNote {
		return "# " + title + "\n\nWrite your note here.\n"
	}
	return "# " + title + `

:::summary
Short summary of this experiment.
:::

## Objective

Describe the main question or hypothesis here.

## Setup

- Data:
- Model:
- Metrics:

## Results

Summarise key findings here.

## Notes

Additional observations, caveats, or follow-up ideas.
`
}
