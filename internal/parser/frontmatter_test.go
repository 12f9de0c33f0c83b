package parser

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoad_MetadataAndBody(t *testing.T) {
	input := "---\ntitle: Test Note\ndate: 2024-01-15\ntags:\n  - ml\n  - notes\n---\n# Heading\n\nBody text.\n"
	raw, err := Load(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := raw.Metadata.String("title"); got != "Test Note" {
		t.Errorf("title = %q, want %q", got, "Test Note")
	}
	if got := raw.Metadata.String("date"); got != "2024-01-15" {
		t.Errorf("date = %q, want %q", got, "2024-01-15")
	}
	tags := raw.Metadata.StringList("tags")
	if len(tags) != 2 || tags[0] != "ml" || tags[1] != "notes" {
		t.Errorf("tags = %v, want [ml notes]", tags)
	}
	if raw.Body != "# Heading\n\nBody text.\n" {
		t.Errorf("body = %q", raw.Body)
	}
}

func TestLoad_MissingOpeningDelimiter(t *testing.T) {
	for _, input := range []string{
		"",
		"no front matter here\n",
		"title: Test\n---\nbody\n",
		"\n---\ntitle: Test\n---\nbody\n",
	} {
		if _, err := Load(input); !errors.Is(err, ErrMissingOpenDelimiter) {
			t.Errorf("Load(%q) error = %v, want ErrMissingOpenDelimiter", input, err)
		}
	}
}

func TestLoad_MissingClosingDelimiter(t *testing.T) {
	_, err := Load("---\ntitle: Test\nbody without closing\n")
	if !errors.Is(err, ErrMissingCloseDelimiter) {
		t.Errorf("error = %v, want ErrMissingCloseDelimiter", err)
	}
}

func TestLoad_EmptyMetadataBlock(t *testing.T) {
	raw, err := Load("---\n---\njust a body\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw.Metadata) != 0 {
		t.Errorf("metadata = %v, want empty", raw.Metadata)
	}
	if raw.Body != "just a body\n" {
		t.Errorf("body = %q", raw.Body)
	}
}

func TestLoad_CommentOnlyMetadata(t *testing.T) {
	raw, err := Load("---\n# just a comment\n---\nbody\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw.Metadata) != 0 {
		t.Errorf("metadata = %v, want empty", raw.Metadata)
	}
}

func TestLoad_NonMappingMetadata(t *testing.T) {
	for _, input := range []string{
		"---\n- a\n- b\n---\nbody\n",
		"---\njust a scalar\n---\nbody\n",
	} {
		if _, err := Load(input); !errors.Is(err, ErrInvalidMetadata) {
			t.Errorf("Load(%q) error = %v, want ErrInvalidMetadata", input, err)
		}
	}
}

func TestLoad_DuplicateKeys(t *testing.T) {
	_, err := Load("---\ntitle: One\ntitle: Two\n---\nbody\n")
	if !errors.Is(err, ErrInvalidMetadata) {
		t.Errorf("error = %v, want ErrInvalidMetadata", err)
	}
}

func TestLoad_CRLFInput(t *testing.T) {
	raw, err := Load("---\r\ntitle: Test\r\n---\r\nline one\r\nline two\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := raw.Metadata.String("title"); got != "Test" {
		t.Errorf("title = %q, want %q", got, "Test")
	}
	if raw.Body != "line one\nline two\n" {
		t.Errorf("body = %q", raw.Body)
	}
}

func TestLoad_DelimiterWithSurroundingSpace(t *testing.T) {
	raw, err := Load("  ---  \ntitle: Test\n ---\nbody\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := raw.Metadata.String("title"); got != "Test" {
		t.Errorf("title = %q, want %q", got, "Test")
	}
}

func TestLoad_BodyLeadingBlankLinesStripped(t *testing.T) {
	raw, err := Load("---\ntitle: Test\n---\n\n\nfirst line\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Body != "first line\n" {
		t.Errorf("body = %q, want %q", raw.Body, "first line\n")
	}
}

func TestLoad_DateValueIsTime(t *testing.T) {
	raw, err := Load("---\ndate: 2024-03-09\n---\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := raw.Metadata["date"].(time.Time)
	if !ok {
		t.Fatalf("date value = %T, want time.Time", raw.Metadata["date"])
	}
	if v.Year() != 2024 || v.Month() != 3 || v.Day() != 9 {
		t.Errorf("date = %v", v)
	}
}

func TestLoad_MetadataRoundTrip(t *testing.T) {
	raw, err := Load("---\ntitle: Round Trip\ncount: 3\ntags:\n  - a\n  - b\n---\nbody\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := yaml.Marshal(map[string]any(raw.Metadata))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again map[string]any
	if err := yaml.Unmarshal(out, &again); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(map[string]any(raw.Metadata), again) {
		t.Errorf("round trip changed metadata:\n got %v\nwant %v", again, raw.Metadata)
	}
}
