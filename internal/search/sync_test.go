package search

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/jera/internal/workspace"
)

func testWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.New(t.TempDir())
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	return ws
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSync_IndexesNewDocuments(t *testing.T) {
	db := testDB(t)
	ws := testWorkspace(t)

	note := "---\ntitle: Alpha\ntags: [ml]\ndate: 2026-01-10\n---\n\nAlpha body.\n"
	exp := "---\ntitle: Beta Run\nslug: beta\n---\n\nBeta body.\n"
	if err := ws.Write(filepath.Join("notes", "alpha.jera"), []byte(note)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ws.Write(filepath.Join("experiments", "beta-run.jera"), []byte(exp)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Sync(db, ws, testLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	docs, total, err := db.ListDocuments("", "", 10, 0)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2: %+v", total, docs)
	}

	byPath := make(map[string]DocumentRow, len(docs))
	for _, d := range docs {
		byPath[d.Path] = d
	}
	alpha := byPath[filepath.Join("notes", "alpha.jera")]
	if alpha.Kind != "note" || alpha.Slug != "alpha" || alpha.Title != "Alpha" {
		t.Errorf("alpha row = %+v", alpha)
	}
	if len(alpha.Tags) != 1 || alpha.Tags[0] != "ml" {
		t.Errorf("alpha tags = %v, want [ml]", alpha.Tags)
	}
	if alpha.Checksum == "" {
		t.Error("alpha checksum empty")
	}
	beta := byPath[filepath.Join("experiments", "beta-run.jera")]
	if beta.Kind != "experiment" || beta.Slug != "beta" || beta.Title != "Beta Run" {
		t.Errorf("beta row = %+v", beta)
	}
}

func TestSync_ReindexesChangedDocument(t *testing.T) {
	db := testDB(t)
	ws := testWorkspace(t)
	rel := filepath.Join("notes", "evolving.jera")

	if err := ws.Write(rel, []byte("---\ntitle: First\n---\n\nv1\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Sync(db, ws, testLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	before, _ := db.GetChecksum(rel)

	if err := ws.Write(rel, []byte("---\ntitle: Second\n---\n\nv2\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Sync(db, ws, testLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	after, _ := db.GetChecksum(rel)
	if after == before {
		t.Error("checksum unchanged after rewrite")
	}
	docs, _, err := db.ListDocuments("", "", 10, 0)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 1 || docs[0].Title != "Second" {
		t.Errorf("docs = %+v, want single row titled Second", docs)
	}
}

func TestSync_RemovesDeletedDocuments(t *testing.T) {
	db := testDB(t)
	ws := testWorkspace(t)
	keep := filepath.Join("notes", "keep.jera")
	gone := filepath.Join("notes", "gone.jera")

	for _, rel := range []string{keep, gone} {
		if err := ws.Write(rel, []byte("---\ntitle: T\n---\n\nbody\n")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := Sync(db, ws, testLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if err := os.Remove(filepath.Join(ws.Root(), gone)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Sync(db, ws, testLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	docs, total, err := db.ListDocuments("", "", 10, 0)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if total != 1 || len(docs) != 1 || docs[0].Path != keep {
		t.Errorf("after delete: total=%d docs=%+v", total, docs)
	}
}

func TestSync_SkipsMalformedDocument(t *testing.T) {
	db := testDB(t)
	ws := testWorkspace(t)

	if err := ws.Write(filepath.Join("notes", "bad.jera"), []byte("no front matter here\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ws.Write(filepath.Join("notes", "good.jera"), []byte("---\ntitle: Good\n---\n\nok\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Sync(db, ws, testLogger()); err != nil {
		t.Fatalf("Sync should not fail on a malformed document: %v", err)
	}

	docs, total, err := db.ListDocuments("", "", 10, 0)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if total != 1 || len(docs) != 1 || docs[0].Title != "Good" {
		t.Errorf("docs = %+v, want only the good document", docs)
	}
}

func TestSync_PathFallbacks(t *testing.T) {
	db := testDB(t)
	ws := testWorkspace(t)
	rel := filepath.Join("experiments", "run-1.jera")

	if err := ws.Write(rel, []byte("---\ntags: []\n---\n\nbody\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Sync(db, ws, testLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	docs, _, err := db.ListDocuments("", "", 10, 0)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}
	d := docs[0]
	if d.Kind != "experiment" {
		t.Errorf("kind = %q, want experiment", d.Kind)
	}
	if d.Slug != "run-1" {
		t.Errorf("slug = %q, want run-1", d.Slug)
	}
	if d.Title != "run-1" {
		t.Errorf("title = %q, want slug fallback run-1", d.Title)
	}
}
