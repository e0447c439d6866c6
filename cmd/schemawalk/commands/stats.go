package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/erraggy/schemawalk/parser"
	"github.com/erraggy/schemawalk/traverse"
)

// StatsReport is the stats output for one input.
type StatsReport struct {
	File           string         `json:"file" yaml:"file"`
	Total          int            `json:"total" yaml:"total"`
	MaxDepth       int            `json:"max_depth" yaml:"max_depth"`
	BooleanSchemas int            `json:"boolean_schemas" yaml:"boolean_schemas"`
	ByKeyword      map[string]int `json:"by_keyword" yaml:"by_keyword"`
}

func newStatsReport(file string, s *traverse.Stats) StatsReport {
	return StatsReport{
		File:           file,
		Total:          s.Total,
		MaxDepth:       s.MaxDepth,
		BooleanSchemas: s.BooleanSchemas,
		ByKeyword:      s.ByKeyword,
	}
}

// HandleStats executes the stats command.
func HandleStats(args []string) error {
	return runStats(args, os.Stdin, os.Stdout, os.Stderr)
}

func runStats(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var flags WalkFlags
	flags.register(fs)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemawalk stats [flags] <file|url|->...\n\n")
		Writef(fs.Output(), "Count the subschemas of a JSON Schema document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemawalk stats schema.json\n")
		Writef(fs.Output(), "  schemawalk stats --format json a.json b.yaml\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := flags.validate(); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("stats requires at least one schema file argument")
	}

	logger := newLogger(stderr, flags.Verbose)
	decorate := showDecoration(stderr, flags.Quiet)

	var merr error
	var reports []StatsReport
	for _, schemaPath := range fs.Args() {
		result, stats, err := statsFile(schemaPath, stdin, &flags, logger)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", FormatSchemaPath(schemaPath), err))
			continue
		}
		if decorate && flags.Format == FormatText {
			OutputSchemaHeader(stderr, schemaPath, result)
		}
		reports = append(reports, newStatsReport(FormatSchemaPath(schemaPath), stats))
	}

	if flags.Format == FormatText {
		p := message.NewPrinter(language.English)
		for i, r := range reports {
			if i > 0 {
				Writef(stdout, "\n")
			}
			renderStatsText(stdout, p, r, flags.Quiet)
		}
	} else if len(reports) > 0 {
		var v any = reports
		if len(reports) == 1 {
			v = reports[0]
		}
		if err := RenderDetail(stdout, v, flags.Format); err != nil {
			return fmt.Errorf("stats: %w", err)
		}
	}

	if merr != nil {
		return fmt.Errorf("stats: %w", merr)
	}
	return nil
}

func statsFile(schemaPath string, stdin io.Reader, flags *WalkFlags, logger parser.Logger) (*parser.ParseResult, *traverse.Stats, error) {
	result, err := parseSchema(schemaPath, stdin, logger)
	if err != nil {
		return nil, nil, err
	}
	start, err := flags.startNode(result.Root)
	if err != nil {
		return nil, nil, err
	}
	stats, err := traverse.ComputeStats(start, flags.traverseOptions(logger)...)
	if err != nil {
		return nil, nil, err
	}
	return result, stats, nil
}

// renderStatsText prints a stats report with grouped numbers.
// Keywords are listed in traversal order; unused ones are omitted.
func renderStatsText(w io.Writer, p *message.Printer, r StatsReport, quiet bool) {
	if quiet {
		writePrinted(w, p, "%s\t%d\t%d\t%d\n", r.File, r.Total, r.MaxDepth, r.BooleanSchemas)
		return
	}
	writePrinted(w, p, "%s\n", r.File)
	writePrinted(w, p, "  Schemas:         %d\n", r.Total)
	writePrinted(w, p, "  Max depth:       %d\n", r.MaxDepth)
	writePrinted(w, p, "  Boolean schemas: %d\n", r.BooleanSchemas)
	if len(r.ByKeyword) == 0 {
		return
	}
	writePrinted(w, p, "  By keyword:\n")
	for _, kw := range traverse.Keywords() {
		if n := r.ByKeyword[kw]; n > 0 {
			writePrinted(w, p, "    %-22s %d\n", kw, n)
		}
	}
}

func writePrinted(w io.Writer, p *message.Printer, format string, args ...any) {
	if _, err := p.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
