package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemawalk/internal/nodeutil"
	"github.com/erraggy/schemawalk/internal/options"
	"github.com/erraggy/schemawalk/internal/pathutil"
	"github.com/erraggy/schemawalk/parser"
	"github.com/erraggy/schemawalk/traverse"
)

// WalkFlags contains the flags of the walk and stats commands.
type WalkFlags struct {
	Format   string // Output format: text, json, yaml.
	Quiet    bool   // Suppress headers and decoration for piping.
	Detail   bool   // Print each schema instead of a summary table.
	Keywords string // Comma-separated parent keyword filter.
	Pointer  string // JSON Pointer of the schema to start from.
	MaxDepth int    // Nesting limit, 0 for none.
	Verbose  bool   // Debug logging to stderr.
}

// WalkEntry is one visited schema in walk output.
type WalkEntry struct {
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Pointer string `json:"pointer" yaml:"pointer"`
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Key     string `json:"key,omitempty" yaml:"key,omitempty"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	Depth   int    `json:"depth" yaml:"depth"`

	node *yaml.Node
}

func (f *WalkFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.Format, "format", FormatText, "Output format: text, json, yaml")
	fs.BoolVar(&f.Quiet, "q", false, "Suppress headers and decoration")
	fs.BoolVar(&f.Quiet, "quiet", false, "Suppress headers and decoration")
	fs.StringVar(&f.Pointer, "pointer", "", "JSON Pointer of the schema to start from (e.g. /definitions/Pet)")
	fs.IntVar(&f.MaxDepth, "max-depth", 0, "Fail when schemas nest deeper than this (0 = unlimited)")
	fs.BoolVar(&f.Verbose, "verbose", false, "Log skipped values to stderr")
}

func (f *WalkFlags) validate() error {
	if err := ValidateOutputFormat(f.Format); err != nil {
		return err
	}
	if err := options.ValidateNonNegative("max-depth", int64(f.MaxDepth)); err != nil {
		return err
	}
	for _, kw := range f.keywordFilter() {
		if !traverse.IsKeyword(kw) {
			return fmt.Errorf("unknown keyword '%s'. Valid keywords: %s", kw, strings.Join(traverse.Keywords(), ", "))
		}
	}
	return nil
}

func (f *WalkFlags) keywordFilter() []string {
	if f.Keywords == "" {
		return nil
	}
	var out []string
	for _, kw := range strings.Split(f.Keywords, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func (f *WalkFlags) traverseOptions(logger parser.Logger) []traverse.Option {
	opts := []traverse.Option{traverse.WithMaxDepth(f.MaxDepth)}
	if logger != nil {
		opts = append(opts, traverse.WithLogger(logger))
	}
	return opts
}

// startNode resolves the --pointer flag against the document root.
func (f *WalkFlags) startNode(root *yaml.Node) (*yaml.Node, error) {
	if f.Pointer == "" || f.Pointer == "#" {
		return root, nil
	}
	node, err := pathutil.Lookup(root, f.Pointer)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// HandleWalk executes the walk command.
func HandleWalk(args []string) error {
	return runWalk(args, os.Stdin, os.Stdout, os.Stderr)
}

func runWalk(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("walk", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var flags WalkFlags
	flags.register(fs)
	fs.StringVar(&flags.Keywords, "keyword", "", "Only list schemas found under these keywords (comma-separated)")
	fs.BoolVar(&flags.Detail, "detail", false, "Print each schema instead of a summary table")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemawalk walk [flags] <file|url|->...\n\n")
		Writef(fs.Output(), "List every subschema of a JSON Schema document in depth-first order.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemawalk walk schema.json\n")
		Writef(fs.Output(), "  schemawalk walk --keyword properties,items -q schema.yaml\n")
		Writef(fs.Output(), "  schemawalk walk --pointer /definitions/Pet --detail --format json schema.json\n")
		Writef(fs.Output(), "  cat schema.json | schemawalk walk --format yaml -\n")
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
		return fmt.Errorf("walk requires at least one schema file argument")
	}

	logger := newLogger(stderr, flags.Verbose)
	multi := fs.NArg() > 1

	var merr error
	var entries []WalkEntry
	for _, schemaPath := range fs.Args() {
		found, err := walkFile(schemaPath, stdin, &flags, logger)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", FormatSchemaPath(schemaPath), err))
			continue
		}
		if multi {
			for i := range found {
				found[i].File = FormatSchemaPath(schemaPath)
			}
		}
		entries = append(entries, found...)
	}

	if err := renderWalk(stdout, stderr, entries, &flags, multi); err != nil {
		return fmt.Errorf("walk: %w", err)
	}
	if merr != nil {
		return fmt.Errorf("walk: %w", merr)
	}
	return nil
}

// walkFile parses one input and returns its visited schemas in pre-order.
func walkFile(schemaPath string, stdin io.Reader, flags *WalkFlags, logger parser.Logger) ([]WalkEntry, error) {
	result, err := parseSchema(schemaPath, stdin, logger)
	if err != nil {
		return nil, err
	}
	start, err := flags.startNode(result.Root)
	if err != nil {
		return nil, err
	}
	base := strings.TrimPrefix(flags.Pointer, "#")

	filter := flags.keywordFilter()
	var entries []WalkEntry
	err = traverse.TraverseFunc(start, func(v *traverse.Visit) error {
		kw, _ := v.ParentKeyword()
		if len(filter) > 0 && !slices.Contains(filter, kw) {
			return nil
		}
		key, _ := v.Key()
		entries = append(entries, WalkEntry{
			Pointer: base + v.Pointer,
			Keyword: kw,
			Key:     key,
			Type:    nodeutil.SchemaType(v.Node),
			Depth:   v.Depth(),
			node:    v.Node,
		})
		return nil
	}, flags.traverseOptions(logger)...)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func renderWalk(stdout, stderr io.Writer, entries []WalkEntry, flags *WalkFlags, multi bool) error {
	if len(entries) == 0 {
		renderNoResults(stderr, "schemas", flags.Quiet)
		return nil
	}

	if flags.Detail {
		for _, e := range entries {
			if flags.Format != FormatJSON && !flags.Quiet {
				Writef(stdout, "# %s%s\n", filePrefix(e.File), displayPointer(e.Pointer))
			}
			if err := RenderNode(stdout, e.node, flags.Format); err != nil {
				return err
			}
		}
		return nil
	}

	if flags.Format != FormatText {
		return RenderDetail(stdout, entries, flags.Format)
	}

	headers := []string{"POINTER", "KEYWORD", "KEY", "TYPE", "DEPTH"}
	if multi {
		headers = append([]string{"FILE"}, headers...)
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{displayPointer(e.Pointer), e.Keyword, e.Key, e.Type, strconv.Itoa(e.Depth)}
		if multi {
			row = append([]string{e.File}, row...)
		}
		rows = append(rows, row)
	}
	RenderSummaryTable(stdout, headers, rows, flags.Quiet)
	return nil
}

// displayPointer shows the root pointer as "#".
func displayPointer(ptr string) string {
	if ptr == "" {
		return "#"
	}
	return ptr
}

func filePrefix(file string) string {
	if file == "" {
		return ""
	}
	return file + ": "
}
