package api

import (
	"context"

	"github.com/starford/jera/internal/search"
)

// Service answers read-only queries against the search index for the API layer.
// The preview server never mutates documents; editing happens on disk.
type Service struct {
	idx search.DocumentIndex
}

// NewService creates a new API service.
func NewService(idx search.DocumentIndex) *Service {
	return &Service{idx: idx}
}

// ListDocuments returns paginated documents with optional kind and tag filters.
func (s *Service) ListDocuments(_ context.Context, kind, tag string, limit, offset int) ([]DocumentListItem, int, error) {
	rows, total, err := s.idx.ListDocuments(kind, tag, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]DocumentListItem, len(rows))
	for i, row := range rows {
		tags := row.Tags
		if tags == nil {
			tags = []string{}
		}
		items[i] = DocumentListItem{
			Path:    row.Path,
			Kind:    row.Kind,
			Slug:    row.Slug,
			Title:   row.Title,
			Date:    row.Date,
			Summary: row.Summary,
			Tags:    tags,
			URL:     pageURL(row.Kind, row.Slug),
		}
	}
	return items, total, nil
}

// Search delegates to the index and attaches page URLs.
func (s *Service) Search(_ context.Context, query string, limit int) ([]SearchHit, error) {
	results, err := s.idx.Search(query, limit)
	if err != nil {
		return nil, err
	}
	hits := make([]SearchHit, len(results))
	for i, r := range results {
		hits[i] = SearchHit{
			Path:    r.Path,
			Kind:    r.Kind,
			Slug:    r.Slug,
			Title:   r.Title,
			URL:     pageURL(r.Kind, r.Slug),
			Snippet: r.Snippet,
		}
	}
	return hits, nil
}

// Tags delegates to the index.
func (s *Service) Tags(_ context.Context) ([]TagInfo, error) {
	counts, err := s.idx.TagCounts()
	if err != nil {
		return nil, err
	}
	tags := make([]TagInfo, len(counts))
	for i, c := range counts {
		tags[i] = TagInfo{Tag: c.Tag, Count: c.Count}
	}
	return tags, nil
}

// pageURL maps a document to its rendered location in the built site.
func pageURL(kind, slug string) string {
	return "/" + kind + "s/" + slug + "/"
}
