// Package config loads the tool's own settings.
//
// The package uses an interface-based design with four extension points:
//   - Parser: deserializes raw data into a settings struct, with path navigation support
//   - DataFetcher: retrieves raw data (a file, a stream, ...)
//   - Validator: validates settings after parsing
//   - Defaulter: applies default values before validation
//
// # Path Navigation
//
// Load accepts a path that targets a section within the data. Paths use colon
// (:) as the separator:
//
//	"yaml2json"        -> config["yaml2json"]
//	"tools:yaml2json"  -> config["tools"]["yaml2json"]
//	""                 -> entire document
//
// # Example
//
//	type Settings struct {
//	    Input string `yaml:"input"`
//	}
//
//	fetcher, err := file.NewFetcher(".yaml2json.yml")()
//	cfg, err := config.Load(fetcher, yamlparser.NewParser(), &Settings{}, "yaml2json")
package config
