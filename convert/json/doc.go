// Package json implements convert.Encoder on top of the jsontext token encoder
// from github.com/go-json-experiment/json.
//
// Documents are written as a single JSON array, indented by four spaces per
// level, with mapping keys in source order. Floating-point values always keep a
// fractional part or an exponent so that they read back as floats.
package json
