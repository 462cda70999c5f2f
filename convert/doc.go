// Package convert turns a stream of YAML documents into one JSON array.
//
// The Converter is a straight pipeline with three extension points:
//   - Source: yields the raw input bytes (stdin, a file, ...)
//   - Parser: splits the input into documents and builds document.Value trees
//   - Encoder: renders the documents as a single JSON array
//
// Failures are reported as *ParseError or *SerializeError. Nothing is written
// to the output unless the whole input converted successfully.
//
// Usage:
//
//	converter := convert.NewConverter(source, yaml.NewParser(), json.NewEncoder(), slog.Default())
//	err := converter.Run(os.Stdout)
package convert
