package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/jera/internal/document"
)

const delimiter = "---"

// Load splits source text into front matter and body. The first line
// must trim to ---, and a second such line must close the metadata
// block; everything between them parses as a YAML mapping (an empty
// block yields empty metadata). The body below the closing delimiter
// is kept verbatim apart from leading blank lines. CRLF line endings
// are normalized before splitting.
func Load(text string) (*document.RawDocument, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	if strings.TrimSpace(lines[0]) != delimiter {
		return nil, ErrMissingOpenDelimiter
	}
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, ErrMissingCloseDelimiter
	}

	meta, err := parseMetadata(strings.Join(lines[1:end], "\n"))
	if err != nil {
		return nil, err
	}
	body := strings.TrimLeft(strings.Join(lines[end+1:], "\n"), "\n")

	return &document.RawDocument{Metadata: meta, Body: body}, nil
}

// parseMetadata decodes the front matter block. yaml.v3 rejects
// duplicate keys and non-mapping documents, which is exactly the
// validation the format asks for; both surface as ErrInvalidMetadata.
func parseMetadata(block string) (document.Metadata, error) {
	var m map[string]any
	if err := yaml.Unmarshal([]byte(block), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	if m == nil {
		return document.Metadata{}, nil
	}
	return document.Metadata(m), nil
}
