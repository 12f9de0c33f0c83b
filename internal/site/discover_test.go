package site

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/starford/jera/internal/parser"
	"github.com/starford/jera/internal/testutil"
)

func TestDiscover_KindAndSlugFromLocation(t *testing.T) {
	_, ws := testutil.TestWorkspace(t)
	testutil.WriteDocument(t, ws, "notes/a.jera", "---\ntitle: A\n---\nbody\n")

	docs, err := Discover(ws)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
	if docs[0].Kind != "note" || docs[0].Slug != "a" {
		t.Errorf("doc = kind %q slug %q, want note/a", docs[0].Kind, docs[0].Slug)
	}
	if docs[0].SourcePath != filepath.Join("notes", "a.jera") {
		t.Errorf("source path = %q", docs[0].SourcePath)
	}
}

func TestDiscover_MetadataOverrides(t *testing.T) {
	_, ws := testutil.TestWorkspace(t)
	testutil.WriteDocument(t, ws, "notes/run.jera",
		"---\ntitle: Run\ntype: experiment\nslug: run-42\n---\nbody\n")

	docs, err := Discover(ws)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if docs[0].Kind != "experiment" {
		t.Errorf("kind = %q, want experiment", docs[0].Kind)
	}
	if docs[0].Slug != "run-42" {
		t.Errorf("slug = %q, want run-42", docs[0].Slug)
	}
}

func TestDiscover_UnknownTypeFallsBackToDirectory(t *testing.T) {
	_, ws := testutil.TestWorkspace(t)
	testutil.WriteDocument(t, ws, "experiments/x.jera", "---\ntype: journal\n---\n")
	testutil.WriteDocument(t, ws, "experiments/y.jera", "---\ntype: Note\n---\n")

	docs, err := Discover(ws)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	for _, d := range docs {
		if d.Kind != "experiment" {
			t.Errorf("%s: kind = %q, want experiment", d.SourcePath, d.Kind)
		}
	}
}

func TestDiscover_OrderNotesThenExperiments(t *testing.T) {
	_, ws := testutil.TestWorkspace(t)
	testutil.WriteDocument(t, ws, "experiments/z.jera", "---\n---\n")
	testutil.WriteDocument(t, ws, "experiments/a.jera", "---\n---\n")
	testutil.WriteDocument(t, ws, "notes/m.jera", "---\n---\n")
	testutil.WriteDocument(t, ws, "notes/b.jera", "---\n---\n")

	docs, err := Discover(ws)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	var got []string
	for _, d := range docs {
		got = append(got, d.Slug)
	}
	want := []string{"b", "m", "a", "z"}
	if len(got) != len(want) {
		t.Fatalf("slugs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slugs = %v, want %v", got, want)
			break
		}
	}
}

func TestDiscover_MalformedDocumentFailsWholePass(t *testing.T) {
	_, ws := testutil.TestWorkspace(t)
	testutil.WriteDocument(t, ws, "notes/good.jera", "---\ntitle: Good\n---\n")
	testutil.WriteDocument(t, ws, "notes/bad.jera", "no front matter\n")

	_, err := Discover(ws)
	if !errors.Is(err, parser.ErrMissingOpenDelimiter) {
		t.Fatalf("error = %v, want ErrMissingOpenDelimiter", err)
	}
}

func TestDiscover_EmptyWorkspace(t *testing.T) {
	_, ws := testutil.TestWorkspace(t)
	docs, err := Discover(ws)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("len(docs) = %d, want 0", len(docs))
	}
}
