package parser

import (
	"strings"

	"github.com/starford/jera/internal/document"
)

// fenceKinds maps an opening sigil line (trimmed) to its block kind.
// A ::: line not in this map is ordinary prose.
var fenceKinds = map[string]string{
	":::summary": "summary",
	":::figure":  "figure",
	":::log":     "log",
	":::code":    "code",
}

// ParseBlocks scans a document body into its ordered blocks. Plain
// lines accumulate until a known fence opens; the fence then consumes
// lines up to the closing ::: or the end of input. Unknown sigils stay
// in the prose run untouched.
func ParseBlocks(body string) []document.Block {
	lines := strings.Split(body, "\n")

	var blocks []document.Block
	var pending []string

	flush := func() {
		if len(pending) == 0 {
			return
		}
		content := strings.Trim(strings.Join(pending, "\n"), "\n")
		if strings.TrimSpace(content) != "" {
			blocks = append(blocks, document.Markdown{Content: content})
		}
		pending = pending[:0]
	}

	for i := 0; i < len(lines); {
		kind, known := fenceKinds[strings.TrimSpace(lines[i])]
		if !known {
			pending = append(pending, lines[i])
			i++
			continue
		}
		flush()
		inner, next := consumeFence(lines, i+1)
		blocks = append(blocks, parseFence(kind, inner))
		i = next
	}
	flush()

	return blocks
}

// consumeFence collects lines until a closing ::: line, which it
// consumes. A fence left open runs to the end of input; that is not
// an error.
func consumeFence(lines []string, start int) ([]string, int) {
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == ":::" {
			return lines[start:i], i + 1
		}
	}
	return lines[start:], len(lines)
}

func parseFence(kind string, inner []string) document.Block {
	switch kind {
	case "summary":
		return document.Summary{Content: strings.Trim(strings.Join(inner, "\n"), "\n")}
	case "log":
		// Leading blank lines are part of a transcript; only trailing
		// ones are noise. Keep this asymmetry with Summary.
		return document.Log{Content: strings.TrimRight(strings.Join(inner, "\n"), "\n")}
	case "figure":
		return parseFigure(inner)
	default:
		return parseCode(inner)
	}
}

// parseFigure reads key: value lines. Recognized keys are path,
// caption, and alt; a missing path yields an empty one rather than an
// error.
func parseFigure(inner []string) document.Figure {
	data := make(map[string]string)
	for _, raw := range inner {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || !strings.Contains(trimmed, ":") {
			continue
		}
		parts := strings.SplitN(trimmed, ":", 2)
		data[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return document.Figure{
		Path:    data["path"],
		Caption: data["caption"],
		Alt:     data["alt"],
	}
}

// parseCode splits fence content into an optional key: value header
// and the code body. The header ends at the first blank line (which is
// swallowed) or at the first non-blank line without a colon (which
// starts the body). Header keys lang and caption are read; others are
// discarded.
func parseCode(inner []string) document.Code {
	header := make(map[string]string)
	var body []string

	inHeader := true
	for _, raw := range inner {
		if inHeader {
			trimmed := strings.TrimSpace(raw)
			if trimmed == "" {
				inHeader = false
				continue
			}
			if strings.Contains(trimmed, ":") {
				parts := strings.SplitN(trimmed, ":", 2)
				header[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
				continue
			}
			inHeader = false
		}
		body = append(body, raw)
	}

	return document.Code{
		Language: header["lang"],
		Caption:  header["caption"],
		Content:  strings.TrimRight(strings.Join(body, "\n"), "\n"),
	}
}
