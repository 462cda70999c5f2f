package yaml

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/0xalexb/yaml2json/document"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/token"
)

// ErrInvalidValue is returned when a scalar cannot be read as the type its tag names,
// or a merge key does not refer to mappings.
var ErrInvalidValue = errors.New("invalid value")

// ErrUnknownAlias is returned for an alias without a preceding anchor in the same document.
var ErrUnknownAlias = errors.New("unknown alias")

// builder turns the AST of one document into a document.Value.
// Anchors are scoped to the document.
type builder struct {
	anchors map[string]*anchor
}

type anchor struct {
	value    document.Value
	resolved bool
}

func newBuilder() *builder {
	return &builder{anchors: map[string]*anchor{}}
}

// value builds node. path locates it in the output array for diagnostics.
//
//nolint:cyclop,funlen // one case per node type
func (b *builder) value(node ast.Node, path string) (document.Value, error) {
	switch n := node.(type) {
	case nil:
		return document.Null(), nil
	case *ast.NullNode, *ast.CommentGroupNode, *ast.CommentNode:
		return document.Null(), nil
	case *ast.BoolNode:
		return document.Bool(n.Value), nil
	case *ast.IntegerNode:
		return integerValue(n.Value, n.Token, path)
	case *ast.FloatNode:
		return document.Float(n.Value), nil
	case *ast.InfinityNode:
		return document.Float(n.Value), nil
	case *ast.NanNode:
		return document.Float(math.NaN()), nil
	case *ast.StringNode:
		return stringValue(n), nil
	case *ast.LiteralNode:
		if n.Value == nil {
			return document.String(""), nil
		}

		return document.String(n.Value.Value), nil
	case *ast.MergeKeyNode:
		return document.String("<<"), nil
	case *ast.TagNode:
		return b.tagged(n, path)
	case *ast.AnchorNode:
		return b.anchored(n, path)
	case *ast.AliasNode:
		return b.alias(n, path)
	case *ast.MappingNode:
		return b.mapping(n.Values, path)
	case *ast.MappingValueNode:
		return b.mapping([]*ast.MappingValueNode{n}, path)
	case *ast.MappingKeyNode:
		return b.value(n.Value, path)
	case *ast.SequenceNode:
		return b.sequence(n.Values, path)
	case *ast.DocumentNode:
		return b.value(n.Body, path)
	default:
		return document.Value{}, fmt.Errorf("%w: unexpected %s node at %s", ErrSyntax, node.Type(), path)
	}
}

func (b *builder) sequence(nodes []ast.Node, path string) (document.Value, error) {
	items := make([]document.Value, 0, len(nodes))

	for i, node := range nodes {
		item, err := b.value(node, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return document.Value{}, err
		}

		items = append(items, item)
	}

	return document.Sequence(items...), nil
}

// mapping builds a mapping. Entries brought in by merge keys come first, in
// the order they are merged, followed by the mapping's own entries; a key
// keeps its first position and takes its last value, so own entries override
// merged ones.
func (b *builder) mapping(entries []*ast.MappingValueNode, path string) (document.Value, error) {
	var merged, own []document.Pair

	for _, entry := range entries {
		if entry == nil {
			continue
		}

		if entry.Key != nil && entry.Key.IsMergeKey() {
			pairs, err := b.merge(entry.Value, path)
			if err != nil {
				return document.Value{}, err
			}

			merged = append(merged, pairs...)

			continue
		}

		var keyNode ast.Node
		if entry.Key != nil {
			keyNode = entry.Key
		}

		keyValue, err := b.value(keyNode, path)
		if err != nil {
			return document.Value{}, err
		}

		key, err := keyText(keyValue, path)
		if err != nil {
			return document.Value{}, err
		}

		value, err := b.value(entry.Value, path+"."+key)
		if err != nil {
			return document.Value{}, err
		}

		own = append(own, document.Pair{Key: key, Value: value})
	}

	return document.Mapping(append(merged, own...)...), nil
}

// merge returns the entries a "<<" key brings in. For a sequence of mappings
// the later mappings are merged first, so earlier ones take precedence.
func (b *builder) merge(node ast.Node, path string) ([]document.Pair, error) {
	value, err := b.value(node, path+".<<")
	if err != nil {
		return nil, err
	}

	switch value.Kind() {
	case document.MappingKind:
		return value.Pairs(), nil
	case document.SequenceKind:
		items := value.Items()

		var pairs []document.Pair

		for i := len(items) - 1; i >= 0; i-- {
			if items[i].Kind() != document.MappingKind {
				return nil, fmt.Errorf("%w: merge sequence holds a %s at %s.<<[%d]", ErrInvalidValue, items[i].Kind(), path, i)
			}

			pairs = append(pairs, items[i].Pairs()...)
		}

		return pairs, nil
	default:
		return nil, fmt.Errorf("%w: merge value is a %s at %s.<<", ErrInvalidValue, value.Kind(), path)
	}
}

func (b *builder) anchored(n *ast.AnchorNode, path string) (document.Value, error) {
	name := nodeText(n.Name)
	state := &anchor{}
	b.anchors[name] = state

	value, err := b.value(n.Value, path)
	if err != nil {
		return document.Value{}, err
	}

	state.value = value
	state.resolved = true

	return value, nil
}

func (b *builder) alias(n *ast.AliasNode, path string) (document.Value, error) {
	name := nodeText(n.Value)

	state, ok := b.anchors[name]
	if !ok {
		return document.Value{}, fmt.Errorf("%w %q at %s", ErrUnknownAlias, name, path)
	}

	if !state.resolved {
		return document.Value{}, fmt.Errorf("%w: recursive alias %q at %s", document.ErrNotRepresentable, name, path)
	}

	return state.value, nil
}

//nolint:cyclop // one case per core tag
func (b *builder) tagged(n *ast.TagNode, path string) (document.Value, error) {
	var tag string
	if n.Start != nil {
		tag = n.Start.Value
	}

	name, ok := coreTagName(tag)
	if !ok {
		return document.Value{}, fmt.Errorf("%w %q at %s", ErrDisallowedTag, tag, path)
	}

	switch name {
	case "", "str":
		if text, isScalar := scalarText(n.Value); isScalar {
			return document.String(text), nil
		}

		if name == "" {
			return b.value(n.Value, path)
		}

		return b.expectKind(n.Value, path, tag, document.StringKind)
	case "int":
		return fromText(n.Value, path, tag, parseInteger)
	case "float":
		return fromText(n.Value, path, tag, parseFloat)
	case "bool":
		return fromText(n.Value, path, tag, parseBool)
	case "null":
		return fromText(n.Value, path, tag, func(string) (document.Value, bool) {
			return document.Null(), true
		})
	case "seq":
		return b.expectKind(n.Value, path, tag, document.SequenceKind)
	case "map":
		return b.expectKind(n.Value, path, tag, document.MappingKind)
	default:
		// binary and timestamp load safely but have no JSON form
		return document.Value{}, fmt.Errorf("%w: %s value at %s", document.ErrNotRepresentable, tag, path)
	}
}

func fromText(
	node ast.Node, path, tag string, parse func(string) (document.Value, bool),
) (document.Value, error) {
	text, isScalar := scalarText(node)
	if !isScalar {
		return document.Value{}, fmt.Errorf("%w: %s on a collection at %s", ErrInvalidValue, tag, path)
	}

	value, ok := parse(text)
	if !ok {
		return document.Value{}, fmt.Errorf("%w: %q is not %s at %s", ErrInvalidValue, text, tag, path)
	}

	return value, nil
}

func (b *builder) expectKind(node ast.Node, path, tag string, kind document.Kind) (document.Value, error) {
	value, err := b.value(node, path)
	if err != nil {
		return document.Value{}, err
	}

	if value.Kind() != kind {
		return document.Value{}, fmt.Errorf("%w: %s on a %s at %s", ErrInvalidValue, tag, value.Kind(), path)
	}

	return value, nil
}

// scalarText returns the source text of a scalar node.
func scalarText(node ast.Node) (string, bool) {
	switch n := node.(type) {
	case nil:
		return "", true
	case *ast.StringNode:
		return n.Value, true
	case *ast.LiteralNode:
		if n.Value == nil {
			return "", true
		}

		return n.Value.Value, true
	case *ast.NullNode, *ast.BoolNode, *ast.IntegerNode, *ast.FloatNode,
		*ast.InfinityNode, *ast.NanNode, *ast.MergeKeyNode:
		return nodeText(n), true
	default:
		return "", false
	}
}

func nodeText(node ast.Node) string {
	if node == nil {
		return ""
	}

	tk := node.GetToken()
	if tk == nil {
		return ""
	}

	return tk.Value
}

func integerValue(value any, tk *token.Token, path string) (document.Value, error) {
	switch typed := value.(type) {
	case int64:
		return document.Int(typed), nil
	case uint64:
		return document.Uint(typed), nil
	}

	if tk != nil {
		if parsed, ok := parseInteger(tk.Value); ok {
			return parsed, nil
		}
	}

	return document.Value{}, fmt.Errorf("%w: integer %v at %s", ErrInvalidValue, value, path)
}

// stringValue builds a string node. The scanner leaves plain numbers that
// overflow 64 bits as strings; they are read as numbers here.
func stringValue(n *ast.StringNode) document.Value {
	if n.Token != nil && n.Token.Type == token.StringType {
		if number, ok := overflowedNumber(n.Value); ok {
			return number
		}
	}

	return document.String(n.Value)
}

func overflowedNumber(text string) (document.Value, bool) {
	if value, ok := parseInteger(text); ok {
		return value, true
	}

	if strings.Count(text, ".") != 1 {
		return document.Value{}, false
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)

	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return document.Float(f), true
	}

	return document.Value{}, false
}

// parseInteger reads decimal, hexadecimal (0x), octal (0o or a leading 0)
// and binary (0b) integers of any size. Underscores are ignored.
func parseInteger(text string) (document.Value, bool) {
	digits := strings.ReplaceAll(text, "_", "")
	if digits == "" || strings.HasPrefix(text, "_") {
		return document.Value{}, false
	}

	negative := false

	switch digits[0] {
	case '-':
		negative = true
		digits = digits[1:]
	case '+':
		digits = digits[1:]
	}

	base := 10

	switch {
	case strings.HasPrefix(digits, "0x"):
		base, digits = 16, digits[2:]
	case strings.HasPrefix(digits, "0o"):
		base, digits = 8, digits[2:]
	case strings.HasPrefix(digits, "0b"):
		base, digits = 2, digits[2:]
	case len(digits) > 1 && digits[0] == '0':
		base, digits = 8, digits[1:]
	}

	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return document.Value{}, false
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return document.Value{}, false
	}

	if negative {
		n.Neg(n)
	}

	return document.BigInt(n), true
}

func parseFloat(text string) (document.Value, bool) {
	switch strings.ToLower(text) {
	case ".inf", "+.inf":
		return document.Float(math.Inf(1)), true
	case "-.inf":
		return document.Float(math.Inf(-1)), true
	case ".nan":
		return document.Float(math.NaN()), true
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return document.Value{}, false
		}
	}

	return document.Float(f), true
}

func parseBool(text string) (document.Value, bool) {
	switch strings.ToLower(text) {
	case "true", "yes", "on":
		return document.Bool(true), true
	case "false", "no", "off":
		return document.Bool(false), true
	default:
		return document.Value{}, false
	}
}

// keyText turns a scalar mapping key into the string used as the JSON object key.
func keyText(key document.Value, path string) (string, error) {
	switch key.Kind() {
	case document.StringKind:
		return key.Str(), nil
	case document.NullKind:
		return "null", nil
	case document.BoolKind:
		return strconv.FormatBool(key.Bool()), nil
	case document.IntKind:
		return strconv.FormatInt(key.Int(), 10), nil
	case document.UintKind:
		return strconv.FormatUint(key.Uint(), 10), nil
	case document.BigIntKind:
		return key.BigInt().String(), nil
	case document.FloatKind:
		text, ok := document.FloatText(key.Float())
		if !ok {
			return "", fmt.Errorf("%w: non-finite mapping key %v at %s",
				document.ErrNotRepresentable, key.Float(), path)
		}

		return text, nil
	default:
		return "", fmt.Errorf("%w: %s mapping key at %s", document.ErrNotRepresentable, key.Kind(), path)
	}
}
