package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/0xalexb/yaml2json/document"

	goyaml "github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/parser"
)

var (
	// ErrSyntax is returned when the input is not well-formed YAML.
	ErrSyntax = errors.New("invalid yaml")
	// ErrInvalidEncoding is returned when the input is not valid UTF-8.
	ErrInvalidEncoding = errors.New("input is not valid utf-8")
)

// Parser implements convert.Parser for YAML streams.
type Parser struct{}

// NewParser creates a new YAML stream parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseAll parses data as a stream of YAML documents and returns one value per document, in order.
// A leading byte order mark is ignored. No partial result is returned on error.
func (p *Parser) ParseAll(data []byte) ([]document.Value, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %w at byte %d", ErrSyntax, ErrInvalidEncoding, invalidOffset(data))
	}

	docs := []document.Value{}

	if len(bytes.TrimSpace(bytes.TrimPrefix(data, byteOrderMark))) == 0 {
		return docs, nil
	}

	for index, raw := range splitDocuments(data) {
		value, err := parseDocument(raw, "$["+strconv.Itoa(index)+"]")
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", index, err)
		}

		docs = append(docs, value)
	}

	return docs, nil
}

// parseDocument parses the source of a single document.
func parseDocument(raw rawDocument, path string) (document.Value, error) {
	src := string(raw.source)
	tokens := lexer.Tokenize(src)

	err := checkEscapes([]rune(src), tokens)
	if err != nil {
		return document.Value{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	file, err := parser.Parse(tokens, 0)
	if err != nil {
		// position and message only, the source excerpt spans several lines
		return document.Value{}, fmt.Errorf("%w: %s", ErrSyntax, goyaml.FormatError(err, false, false))
	}

	var body ast.Node

	for _, doc := range file.Docs {
		if doc == nil || !hasContent(doc.Body) {
			continue
		}

		if body != nil {
			return document.Value{}, fmt.Errorf("%w: more than one document at line %d", ErrSyntax, raw.line)
		}

		body = doc.Body
	}

	if body == nil {
		return document.Null(), nil
	}

	err = checkTags(body)
	if err != nil {
		return document.Value{}, err
	}

	return newBuilder().value(body, path)
}

// hasContent reports whether a document body holds a node, ignoring comments and directives.
func hasContent(node ast.Node) bool {
	switch node.(type) {
	case nil, *ast.CommentGroupNode, *ast.CommentNode, *ast.DirectiveNode:
		return false
	default:
		return true
	}
}

func invalidOffset(data []byte) int {
	for offset := 0; offset < len(data); {
		r, size := utf8.DecodeRune(data[offset:])
		if r == utf8.RuneError && size <= 1 {
			return offset
		}

		offset += size
	}

	return len(data)
}
