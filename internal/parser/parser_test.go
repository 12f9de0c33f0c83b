package parser

import (
	"errors"
	"testing"

	"github.com/starford/jera/internal/document"
)

func TestParseDocument_Full(t *testing.T) {
	input := "---\n" +
		"title: Training Run 12\n" +
		"date: 2024-02-01\n" +
		"tags:\n  - ml\n---\n" +
		"Kickoff notes.\n" +
		"\n" +
		":::summary\nBaseline beaten by 2 points.\n:::\n" +
		"\n" +
		":::figure\npath: loss.png\ncaption: Loss curve\n:::\n" +
		"\n" +
		"Conclusions below.\n"

	doc, err := ParseDocument(input, "experiments/run-12.jera")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.SourcePath != "experiments/run-12.jera" {
		t.Errorf("source path = %q", doc.SourcePath)
	}
	if got := doc.Metadata.String("title"); got != "Training Run 12" {
		t.Errorf("title = %q", got)
	}
	if len(doc.Blocks) != 4 {
		t.Fatalf("len(blocks) = %d, want 4", len(doc.Blocks))
	}
	if _, ok := doc.Blocks[0].(document.Markdown); !ok {
		t.Errorf("blocks[0] = %T, want Markdown", doc.Blocks[0])
	}
	s, ok := doc.Blocks[1].(document.Summary)
	if !ok {
		t.Fatalf("blocks[1] = %T, want Summary", doc.Blocks[1])
	}
	if s.Content != "Baseline beaten by 2 points." {
		t.Errorf("summary = %q", s.Content)
	}
	f, ok := doc.Blocks[2].(document.Figure)
	if !ok {
		t.Fatalf("blocks[2] = %T, want Figure", doc.Blocks[2])
	}
	if f.Path != "loss.png" || f.Caption != "Loss curve" {
		t.Errorf("figure = %+v", f)
	}
	if _, ok := doc.Blocks[3].(document.Markdown); !ok {
		t.Errorf("blocks[3] = %T, want Markdown", doc.Blocks[3])
	}
}

func TestParseDocument_LoadErrorPropagates(t *testing.T) {
	_, err := ParseDocument("no envelope at all\n", "notes/broken.jera")
	if !errors.Is(err, ErrMissingOpenDelimiter) {
		t.Errorf("error = %v, want ErrMissingOpenDelimiter", err)
	}
}
