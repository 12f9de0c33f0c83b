// Package testutil provides shared test helpers for setting up
// workspaces and search databases.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/jera/internal/search"
	"github.com/starford/jera/internal/workspace"
)

// TestDB creates a temporary SQLite database that is automatically
// cleaned up.
func TestDB(t *testing.T) *search.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "jera-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := search.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestWorkspace creates a temporary workspace directory.
func TestWorkspace(t *testing.T) (string, *workspace.Workspace) {
	t.Helper()
	dir := t.TempDir()
	ws, err := workspace.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, ws
}

// WriteDocument drops a document file into the workspace, creating the
// section directory as needed.
func WriteDocument(t *testing.T, ws *workspace.Workspace, rel, content string) {
	t.Helper()
	if err := ws.Write(rel, []byte(content)); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}
