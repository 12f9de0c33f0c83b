// Package parser turns .jera source text into documents: a front
// matter loader that validates the metadata envelope, and a block
// scanner that splits the body into its fenced segments.
package parser

import (
	"github.com/starford/jera/internal/document"
)

// ParseDocument loads source text and scans its body into blocks.
// sourcePath is recorded on the document for diagnostics and is not
// read from disk here.
func ParseDocument(text, sourcePath string) (*document.Document, error) {
	raw, err := Load(text)
	if err != nil {
		return nil, err
	}
	return &document.Document{
		Metadata:   raw.Metadata,
		Blocks:     ParseBlocks(raw.Body),
		SourcePath: sourcePath,
	}, nil
}
