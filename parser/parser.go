package parser

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemawalk/internal/nodeutil"
	"github.com/erraggy/schemawalk/schemaerrors"
)

// DefaultMaxFileSize is the input size limit used when Parser.MaxFileSize is zero.
const DefaultMaxFileSize int64 = 64 << 20

// SourceFormat is the serialization format of a parsed document.
type SourceFormat string

const (
	// SourceFormatJSON indicates a JSON document.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML indicates a YAML document.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatUnknown indicates the format could not be determined.
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult holds a decoded schema document and information about its source.
type ParseResult struct {
	// Root is the root schema node. It is the content of the YAML document
	// node, so it is a mapping for object schemas and a boolean scalar for
	// boolean schemas.
	Root *yaml.Node

	// Document is the enclosing YAML document node. It carries head and foot
	// comments and is what MarshalYAML should be given to keep them.
	Document *yaml.Node

	// SourcePath is the file path or URL the document was read from.
	// Byte and reader inputs get a synthetic name such as "ParseBytes.json".
	SourcePath string

	// SourceFormat is the detected format of the input.
	SourceFormat SourceFormat

	// SourceSize is the size of the input in bytes.
	SourceSize int64

	// LoadTime is how long reading the input took (file or network I/O only).
	LoadTime time.Duration
}

// Parser decodes JSON Schema documents.
type Parser struct {
	// Logger receives debug and warning records. Nil disables logging.
	Logger Logger

	// UserAgent is sent when fetching http(s) inputs. Defaults to schemawalk/<version>.
	UserAgent string

	// HTTPClient is used for http(s) inputs. A client with a 30s timeout is used when nil.
	HTTPClient *http.Client

	// MaxFileSize is the maximum accepted input size in bytes.
	// Zero means DefaultMaxFileSize.
	MaxFileSize int64
}

// New creates a new Parser with default settings.
func New() *Parser {
	return &Parser{}
}

// Parse reads and decodes the schema at schemaPath, which may be a local file
// path or an http(s) URL.
func (p *Parser) Parse(schemaPath string) (*ParseResult, error) {
	var data []byte
	var err error
	format := SourceFormatUnknown

	loadStart := time.Now()
	if isURL(schemaPath) {
		var contentType string
		data, contentType, err = p.fetchURL(schemaPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(schemaPath, contentType)
	} else {
		data, err = p.readFile(schemaPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromPath(schemaPath)
	}
	loadTime := time.Since(loadStart)

	res, err := p.decode(data, schemaPath)
	if err != nil {
		return nil, err
	}
	if format != SourceFormatUnknown {
		res.SourceFormat = format
	}
	res.SourcePath = schemaPath
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader reads all of r and decodes it.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := p.readAll(r, "reader")
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, err
	}

	res, err := p.decode(data, "")
	if err != nil {
		return nil, err
	}
	res.SourcePath = syntheticName("ParseReader", res.SourceFormat)
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes decodes a schema held in memory.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if err := p.checkSize(int64(len(data)), "bytes"); err != nil {
		return nil, err
	}
	res, err := p.decode(data, "")
	if err != nil {
		return nil, err
	}
	res.SourcePath = syntheticName("ParseBytes", res.SourceFormat)
	return res, nil
}

// Parse is a convenience function that parses schemaPath with a default Parser.
func Parse(schemaPath string) (*ParseResult, error) {
	return New().Parse(schemaPath)
}

// ParseBytes is a convenience function that parses data with a default Parser.
func ParseBytes(data []byte) (*ParseResult, error) {
	return New().ParseBytes(data)
}

func (p *Parser) log() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

func (p *Parser) checkSize(size int64, source string) error {
	if limit := p.maxFileSize(); size > limit {
		return &schemaerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       size,
			Message:      source + " input too large",
		}
	}
	return nil
}

func (p *Parser) readFile(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // G304 - reading a user-selected schema is the point
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return p.readAll(f, path)
}

// readAll reads r up to the size limit, failing instead of truncating.
func (p *Parser) readAll(r io.Reader, source string) ([]byte, error) {
	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &schemaerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Message:      source + " input too large",
		}
	}
	return data, nil
}

// decode turns raw bytes into a ParseResult. path is only used for errors.
func (p *Parser) decode(data []byte, path string) (*ParseResult, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, newParseError(path, err)
	}

	root := nodeutil.Unwrap(&doc)
	if root == nil {
		return nil, &schemaerrors.ParseError{Path: path, Message: "empty document"}
	}

	format := detectFormatFromContent(data)
	p.log().Debug("decoded schema document",
		"path", path,
		"format", string(format),
		"bytes", len(data),
		"root", nodeutil.Kind(root),
	)
	if root.Kind != yaml.MappingNode && !nodeutil.IsBool(root) {
		p.log().Warn("document root is not a schema object or boolean", "path", path, "kind", nodeutil.Kind(root))
	}

	return &ParseResult{
		Root:         root,
		Document:     &doc,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
	}, nil
}

var lineRegex = regexp.MustCompile(`line (\d+)`)

// newParseError wraps a decoder error, lifting the line number out of the
// message when the decoder reports one.
func newParseError(path string, err error) *schemaerrors.ParseError {
	perr := &schemaerrors.ParseError{Path: path, Message: "failed to decode JSON/YAML", Cause: err}
	if m := lineRegex.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			perr.Line = n
		}
	}
	return perr
}

func syntheticName(prefix string, format SourceFormat) string {
	if format == SourceFormatJSON {
		return prefix + ".json"
	}
	return prefix + ".yaml"
}
