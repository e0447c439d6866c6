package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemawalk/parser"
)

// RenderSummaryTable renders a table of results.
// In quiet mode, headers are omitted and rows are tab-separated for piping.
// In normal mode, a fixed-width table with headers is rendered.
func RenderSummaryTable(w io.Writer, headers []string, rows [][]string, quiet bool) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if !quiet {
		writeRow(w, headers, widths)
	}
	for _, row := range rows {
		if quiet {
			Writef(w, "%s\n", strings.Join(row, "\t"))
			continue
		}
		writeRow(w, row, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	var sb strings.Builder
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == len(cells)-1 {
			// no trailing padding on the last column
			sb.WriteString(cell)
			continue
		}
		fmt.Fprintf(&sb, "%-*s", widths[i], cell)
	}
	Writef(w, "%s\n", sb.String())
}

// RenderDetail renders a value in the specified format (JSON, YAML, or text).
// Text output uses YAML.
func RenderDetail(w io.Writer, v any, format string) error {
	var data []byte
	var err error

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
	case FormatYAML, FormatText:
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}

	if _, err := fmt.Fprintln(w, strings.TrimRight(string(data), "\n")); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// RenderNode renders a schema node, keeping its key order.
func RenderNode(w io.Writer, node *yaml.Node, format string) error {
	var data []byte
	var err error

	switch format {
	case FormatJSON:
		data, err = parser.MarshalJSON(node, "  ")
	case FormatYAML, FormatText:
		data, err = parser.MarshalYAML(node)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}

	if _, err := fmt.Fprintln(w, strings.TrimRight(string(data), "\n")); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
