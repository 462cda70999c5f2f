package yaml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml/ast"
)

// ErrDisallowedTag is returned when a document uses a tag outside the plain-data allow-list.
var ErrDisallowedTag = errors.New("disallowed tag")

const coreTagPrefix = "tag:yaml.org,2002:"

// plainDataTags are the tags that resolve to plain data values.
var plainDataTags = map[string]bool{ //nolint:gochecknoglobals
	"null":      true,
	"bool":      true,
	"int":       true,
	"float":     true,
	"str":       true,
	"seq":       true,
	"map":       true,
	"binary":    true,
	"timestamp": true,
}

// allowedTag reports whether tag resolves to a plain data value.
// Accepted spellings are the shorthand (!!str), the long form
// (tag:yaml.org,2002:str), the verbatim form (!<tag:yaml.org,2002:str>)
// and the non-specific tag (!).
func allowedTag(tag string) bool {
	_, ok := coreTagName(tag)

	return ok
}

// coreTagName returns the short name of an allowed tag ("str", "int", ...),
// or "" for the non-specific tag.
func coreTagName(tag string) (string, bool) {
	if tag == "!" {
		return "", true
	}

	if strings.HasPrefix(tag, "!<") && strings.HasSuffix(tag, ">") {
		tag = tag[2 : len(tag)-1]
	}

	var name string

	switch {
	case strings.HasPrefix(tag, "!!"):
		name = tag[2:]
	case strings.HasPrefix(tag, coreTagPrefix):
		name = tag[len(coreTagPrefix):]
	default:
		return "", false
	}

	if !plainDataTags[name] {
		return "", false
	}

	return name, true
}

// tagChecker walks a document and records the first disallowed tag.
type tagChecker struct {
	err error
}

func (c *tagChecker) Visit(node ast.Node) ast.Visitor { //nolint:ireturn // ast.Walk contract
	if c.err != nil {
		return nil
	}

	tagNode, isTag := node.(*ast.TagNode)
	if !isTag || tagNode.Start == nil {
		return c
	}

	tag := tagNode.Start.Value
	if allowedTag(tag) {
		return c
	}

	if pos := tagNode.Start.Position; pos != nil {
		c.err = fmt.Errorf("%w %q at line %d, column %d", ErrDisallowedTag, tag, pos.Line, pos.Column)
	} else {
		c.err = fmt.Errorf("%w %q", ErrDisallowedTag, tag)
	}

	return nil
}

// checkTags returns an error wrapping ErrDisallowedTag when body contains a tag outside the allow-list.
func checkTags(body ast.Node) error {
	checker := &tagChecker{}
	ast.Walk(checker, body)

	return checker.err
}
