package parser

import "errors"

// Sentinel errors for malformed source files. The delimiter errors
// mean the front matter envelope is broken; ErrInvalidMetadata means
// the envelope was found but its content is not a YAML mapping.
// Callers match with errors.Is; all three abort a build.
var (
	ErrMissingOpenDelimiter  = errors.New("missing opening front matter delimiter")
	ErrMissingCloseDelimiter = errors.New("missing closing front matter delimiter")
	ErrInvalidMetadata       = errors.New("front matter is not a mapping")
)
