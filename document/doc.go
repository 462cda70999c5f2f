// Package document defines the generic value produced by parsing one YAML document.
//
// A Value is a tagged variant over null, boolean, number, string, sequence and
// mapping. Mappings are ordered lists of key/value pairs rather than Go maps, so
// the key order found in the source text survives all the way to the JSON output.
//
// Numbers keep the representation they were parsed with: signed integers,
// unsigned integers above math.MaxInt64, and floating-point values.
package document
