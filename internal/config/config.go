// =============================================================================
// Catalog to HTML Converter - Configuration Module
// =============================================================================
//
// This module loads the converter configuration.
//
// LOADING ORDER:
//   1. Built-in defaults (Default).
//   2. The YAML file (catalog.yaml unless --config names another file).
//   3. Environment overrides with the CATALOG_ prefix, read through Viper.
//      Keys are the YAML paths in upper case with dots replaced by
//      underscores, e.g. CATALOG_INPUT_CSV_ENCODING=windows-1251.
//   4. Validation.
//
// EXAMPLE catalog.yaml:
//   input:
//     categories_file: groups.csv
//     products_file: products.csv
//     csv:
//       delimiter: ";"
//       encoding: UTF-8
//       lazy_quotes: false
//     xlsx:
//       sheet: ""
//   output:
//     result_file: result.txt
//   render:
//     category_body: heading
//   log_level: info
//   log_format: text
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CATALOG"

// DefaultConfigFile is loaded when no --config flag is given.
const DefaultConfigFile = "catalog.yaml"

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config represents the full converter configuration.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`
}

// InputConfig describes the two input files and how to read them.
type InputConfig struct {
	// CategoriesFile is used when no categories path is given on the
	// command line.
	CategoriesFile string `yaml:"categories_file"`

	// ProductsFile is used when no products path is given on the command
	// line.
	ProductsFile string `yaml:"products_file"`

	CSV  CSVSettings  `yaml:"csv"`
	XLSX XLSXSettings `yaml:"xlsx"`
}

// CSVSettings contains settings for reading delimited text files.
type CSVSettings struct {
	// Delimiter is the field separator. Accepts a single character or one
	// of the aliases tab, pipe, semicolon, comma.
	// Default: ";"
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character set of the input, by WHATWG name
	// (UTF-8, windows-1251, koi8-r, ...).
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// LazyQuotes tolerates quotes that do not follow RFC 4180. When false,
	// malformed quoting is a parse error.
	LazyQuotes bool `yaml:"lazy_quotes"`
}

// XLSXSettings contains settings for reading spreadsheet files.
type XLSXSettings struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`
}

// OutputConfig describes the result file.
type OutputConfig struct {
	// ResultFile is used when no output path is given on the command line.
	ResultFile string `yaml:"result_file"`
}

// RenderConfig contains document rendering options.
type RenderConfig struct {
	// CategoryBody is heading or template.
	CategoryBody string `yaml:"category_body"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration file at path, fills in defaults and validates
// the result.
//
// PARAMETERS:
//   - path: The YAML file to read.
//   - required: When false, a missing file yields the built-in defaults.
//
// RETURNS:
//   - The configuration.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string, required bool) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
		// Built-in defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Input.CategoriesFile == "" {
		cfg.Input.CategoriesFile = "groups.csv"
	}
	if cfg.Input.ProductsFile == "" {
		cfg.Input.ProductsFile = "products.csv"
	}
	if cfg.Input.CSV.Delimiter == "" {
		cfg.Input.CSV.Delimiter = ";"
	}
	if cfg.Input.CSV.Encoding == "" {
		cfg.Input.CSV.Encoding = "UTF-8"
	}
	if cfg.Output.ResultFile == "" {
		cfg.Output.ResultFile = "result.txt"
	}
	if cfg.Render.CategoryBody == "" {
		cfg.Render.CategoryBody = "heading"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// envKeys lists every key that can be overridden from the environment.
var envKeys = []string{
	"input.categories_file",
	"input.products_file",
	"input.csv.delimiter",
	"input.csv.encoding",
	"input.csv.lazy_quotes",
	"input.xlsx.sheet",
	"output.result_file",
	"render.category_body",
	"log_level",
	"log_format",
}

// NewEnv returns a Viper instance bound to the CATALOG_ environment keys.
func NewEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		// BindEnv only fails without a key.
		_ = v.BindEnv(key)
	}
	return v
}

// ApplyEnv copies every override set in v onto cfg and validates the result.
func ApplyEnv(cfg *Config, v *viper.Viper) error {
	override := func(key string, dst *string) {
		if value := v.GetString(key); value != "" {
			*dst = value
		}
	}

	override("input.categories_file", &cfg.Input.CategoriesFile)
	override("input.products_file", &cfg.Input.ProductsFile)
	override("input.csv.delimiter", &cfg.Input.CSV.Delimiter)
	override("input.csv.encoding", &cfg.Input.CSV.Encoding)
	override("input.xlsx.sheet", &cfg.Input.XLSX.Sheet)
	override("output.result_file", &cfg.Output.ResultFile)
	override("render.category_body", &cfg.Render.CategoryBody)
	override("log_level", &cfg.LogLevel)
	override("log_format", &cfg.LogFormat)

	if v.GetString("input.csv.lazy_quotes") != "" {
		cfg.Input.CSV.LazyQuotes = v.GetBool("input.csv.lazy_quotes")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks every option that has a closed set of values.
func (c *Config) Validate() error {
	if _, err := DelimiterRune(c.Input.CSV.Delimiter); err != nil {
		return err
	}

	if _, err := htmlindex.Get(c.Input.CSV.Encoding); err != nil {
		return fmt.Errorf("unknown encoding %q: %w", c.Input.CSV.Encoding, err)
	}

	switch c.Render.CategoryBody {
	case "heading", "template":
	default:
		return fmt.Errorf("render.category_body must be heading or template, got %q", c.Render.CategoryBody)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}

	return nil
}

// DelimiterRune resolves a delimiter setting to the separator rune.
func DelimiterRune(delimiter string) (rune, error) {
	switch delimiter {
	case "\\t", "tab", "TAB":
		return '\t', nil
	case "pipe", "PIPE":
		return '|', nil
	case "semicolon":
		return ';', nil
	case "comma":
		return ',', nil
	}

	r, size := utf8.DecodeRuneInString(delimiter)
	if size == 0 || size != len(delimiter) || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("delimiter %q is not allowed", delimiter)
	}
	return r, nil
}

// ParseLevel maps a log_level setting to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
