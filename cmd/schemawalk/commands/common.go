// Package commands provides CLI command handlers for schemawalk.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/erraggy/schemawalk"
	"github.com/erraggy/schemawalk/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// FormatSchemaPath returns a display-friendly path for the schema.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSchemaPath(schemaPath string) string {
	if schemaPath == StdinFilePath {
		return "<stdin>"
	}
	return schemaPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// OutputSchemaHeader outputs the common schema header.
func OutputSchemaHeader(w io.Writer, schemaPath string, result *parser.ParseResult) {
	Writef(w, "schemawalk version: %s\n", schemawalk.Version())
	Writef(w, "Schema: %s\n", FormatSchemaPath(schemaPath))
	Writef(w, "Format: %s\n", result.SourceFormat)
	Writef(w, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
	Writef(w, "Load Time: %v\n", result.LoadTime)
}

// showDecoration reports whether headers should be written to w.
// Quiet mode and non-terminal writers get plain output.
func showDecoration(w io.Writer, quiet bool) bool {
	if quiet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newLogger returns a debug logger on w when verbose is set, else nil.
func newLogger(w io.Writer, verbose bool) parser.Logger {
	if !verbose {
		return nil
	}
	return parser.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// parseSchema parses a schema from a file path, URL, or stdin ("-").
func parseSchema(schemaPath string, stdin io.Reader, logger parser.Logger) (*parser.ParseResult, error) {
	opts := []parser.Option{}
	if logger != nil {
		opts = append(opts, parser.WithLogger(logger))
	}
	if schemaPath == StdinFilePath {
		opts = append(opts, parser.WithReader(stdin), parser.WithSourceName("<stdin>"))
	} else {
		opts = append(opts, parser.WithFilePath(schemaPath))
	}
	return parser.ParseWithOptions(opts...)
}

// renderNoResults prints an informative message when no results match the filters.
func renderNoResults(w io.Writer, nodeType string, quiet bool) {
	if !quiet {
		Writef(w, "No %s matched the given filters.\n", nodeType)
	}
}
