// Package workspace is the file-system layer for a Jera workspace: a
// root directory holding notes/, experiments/, and assets/. All paths
// in its API are relative to the root and are rejected if they escape
// it.
package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Workspace layout constants. Documents live directly inside the two
// section directories; assets are copied into the build output as-is.
const (
	DocExt         = ".jera"
	NotesDir       = "notes"
	ExperimentsDir = "experiments"
	AssetsDir      = "assets"
)

// DocumentInfo is a lightweight listing entry used by sync operations.
type DocumentInfo struct {
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// Workspace provides rooted file operations.
type Workspace struct {
	root string // absolute path to the workspace directory
}

// New creates a Workspace rooted at the given directory. The directory
// must already exist.
func New(root string) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("workspace: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace: root is not a directory: %s", abs)
	}
	return &Workspace{root: abs}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string {
	return w.root
}

// safePath resolves a relative path against the workspace root and
// rejects any result that escapes it (directory traversal).
func (w *Workspace) safePath(rel string) (string, error) {
	if rel == "" {
		return w.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("workspace: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(w.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("workspace: resolve path: %w", err)
	}
	// Ensure the resolved path is still under root.
	if !strings.HasPrefix(abs, w.root+string(os.PathSeparator)) && abs != w.root {
		return "", fmt.Errorf("workspace: path escapes workspace root: %s", rel)
	}
	return abs, nil
}

// Read returns the raw bytes of a workspace file.
func (w *Workspace) Read(path string) ([]byte, error) {
	abs, err := w.safePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace: read %s: %w", path, err)
	}
	return data, nil
}

// Write atomically writes content: tmp file, fsync, rename.
func (w *Workspace) Write(path string, content []byte) error {
	abs, err := w.safePath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("workspace: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".jera-tmp-*")
	if err != nil {
		return fmt.Errorf("workspace: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("workspace: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("workspace: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("workspace: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("workspace: rename: %w", err)
	}
	success = true
	return nil
}

// ListSection returns the names of document files directly inside a
// section directory, sorted lexicographically. An absent directory is
// an empty section, not an error; any other failure propagates.
func (w *Workspace) ListSection(section string) ([]string, error) {
	abs, err := w.safePath(section)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("workspace: list %s: %w", section, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), DocExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ListAll returns listing entries for every document in both section
// directories, notes first, with content checksums for change
// detection.
func (w *Workspace) ListAll() ([]DocumentInfo, error) {
	var out []DocumentInfo
	for _, section := range []string{NotesDir, ExperimentsDir} {
		names, err := w.ListSection(section)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			rel := filepath.Join(section, name)
			abs, err := w.safePath(rel)
			if err != nil {
				return nil, err
			}
			info, err := os.Stat(abs)
			if err != nil {
				return nil, fmt.Errorf("workspace: stat %s: %w", rel, err)
			}
			data, err := os.ReadFile(abs)
			if err != nil {
				return nil, fmt.Errorf("workspace: read %s: %w", rel, err)
			}
			out = append(out, DocumentInfo{
				Path:      rel,
				Checksum:  checksum(data),
				UpdatedAt: info.ModTime(),
			})
		}
	}
	return out, nil
}

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
