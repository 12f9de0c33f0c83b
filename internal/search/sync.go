package search

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/starford/jera/internal/document"
	"github.com/starford/jera/internal/parser"
	"github.com/starford/jera/internal/workspace"
)

// Sync walks the workspace and brings the index up to date:
//   - new/changed documents are parsed and upserted
//   - documents removed from disk are deleted from the index
func Sync(db *DB, ws *workspace.Workspace, logger *slog.Logger) error {
	infos, err := ws.ListAll()
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		disk[info.Path] = struct{}{}

		if checksums[info.Path] == info.Checksum {
			continue
		}

		data, err := ws.Read(info.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", info.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexDocument(db, info, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", info.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", info.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteDocument(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexDocument parses data and upserts it into the DB.
func indexDocument(db *DB, info workspace.DocumentInfo, data []byte) error {
	raw, err := parser.Load(string(data))
	if err != nil {
		return err
	}

	slug := raw.Metadata.Slug(stemFromPath(info.Path))
	title := raw.Metadata.String("title")
	if title == "" {
		title = slug
	}

	row := DocumentRow{
		Path:      info.Path,
		Kind:      raw.Metadata.Kind(kindFromPath(info.Path)),
		Slug:      slug,
		Title:     title,
		Date:      raw.Metadata.String("date"),
		Summary:   raw.Metadata.String("summary"),
		Tags:      raw.Metadata.StringList("tags"),
		Checksum:  info.Checksum,
		UpdatedAt: info.UpdatedAt,
	}
	return db.UpsertDocument(row, raw.Body)
}

func kindFromPath(path string) string {
	if filepath.Dir(path) == workspace.ExperimentsDir {
		return document.KindExperiment
	}
	return document.KindNote
}

func stemFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), workspace.DocExt)
}
