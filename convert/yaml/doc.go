// Package yaml implements convert.Parser for YAML streams.
//
// The input must be UTF-8; a leading byte order mark is dropped. The stream
// is cut into documents on their "---" and "..." marker lines, and each
// document is tokenized and parsed with github.com/goccy/go-yaml. Escapes in
// double-quoted scalars are validated against the source, and every tag is
// checked against an allow-list of plain-data tags before any value is
// built, so input can never select a Go type or trigger behavior through a
// tag. Values are then built straight from the AST:
//
//   - mappings keep their key order; entries brought in by "<<" merge keys
//     come before the mapping's own entries
//   - plain integers of any size stay numbers
//   - anchors are resolved within their document
//
// Document counting follows the stream: a document with content yields its
// value, an explicit "---" with no content yields null, and input without
// any content yields no documents at all.
package yaml
