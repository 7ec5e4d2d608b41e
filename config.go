package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/dnr/reflow/comment"
)

const (
	defaultConfigFile = ".reflow.yaml"
	envPrefix         = "REFLOW"
)

// Config is the effective configuration. Field tags give the YAML key and
// the environment variable (with the REFLOW_ prefix).
type Config struct {
	LineWidth       int             `yaml:"line_width" envconfig:"LINE_WIDTH"`
	IndentationSize int             `yaml:"indentation_size" envconfig:"INDENTATION_SIZE"`
	TabWidth        int             `yaml:"tab_width" envconfig:"TAB_WIDTH"`
	TabKind         comment.TabKind `yaml:"tab_kind" envconfig:"TAB_KIND"`
	// Newline is lf, crlf or cr.
	Newline string `yaml:"newline" envconfig:"NEWLINE"`

	ClearBlankLinesBlock       bool `yaml:"clear_blank_lines_block" envconfig:"CLEAR_BLANK_LINES_BLOCK"`
	ClearBlankLinesDoc         bool `yaml:"clear_blank_lines_doc" envconfig:"CLEAR_BLANK_LINES_DOC"`
	FormatHTML                 bool `yaml:"format_html" envconfig:"FORMAT_HTML"`
	FormatEmbeddedCode         bool `yaml:"format_embedded_code" envconfig:"FORMAT_EMBEDDED_CODE"`
	IndentRootTags             bool `yaml:"indent_root_tags" envconfig:"INDENT_ROOT_TAGS"`
	IndentParameterDescription bool `yaml:"indent_parameter_description" envconfig:"INDENT_PARAMETER_DESCRIPTION"`
	BlankLineBeforeRootTags    bool `yaml:"blank_line_before_root_tags" envconfig:"BLANK_LINE_BEFORE_ROOT_TAGS"`
	NewLinePerParameter        bool `yaml:"new_line_per_parameter" envconfig:"NEW_LINE_PER_PARAMETER"`

	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`
	// Jobs bounds the number of files formatted concurrently.
	Jobs int `yaml:"jobs" envconfig:"JOBS"`
}

var newlines = map[string]string{"lf": "\n", "crlf": "\r\n", "cr": "\r"}

func DefaultConfig() Config {
	o := comment.DefaultOptions()
	return Config{
		LineWidth:                  o.LineWidth,
		IndentationSize:            o.IndentationSize,
		TabWidth:                   o.TabWidth,
		TabKind:                    o.TabKind,
		Newline:                    "lf",
		ClearBlankLinesBlock:       o.ClearBlankLinesBlock,
		ClearBlankLinesDoc:         o.ClearBlankLinesDoc,
		FormatHTML:                 o.FormatHTML,
		FormatEmbeddedCode:         o.FormatEmbeddedCode,
		IndentRootTags:             o.IndentRootTags,
		IndentParameterDescription: o.IndentParameterDescription,
		BlankLineBeforeRootTags:    o.BlankLineBeforeRootTags,
		NewLinePerParameter:        o.NewLinePerParameter,
		LogLevel:                   "info",
		LogFormat:                  "text",
		Jobs:                       4,
	}
}

// LoadConfig layers defaults, the YAML file and the environment. A
// missing default file is not an error; a missing explicit one is.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return c, fmt.Errorf("loading .env: %w", err)
		}
	}

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return c, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &c); err != nil {
		return c, fmt.Errorf("reading environment: %w", err)
	}
	return c, nil
}

// Options converts the configuration to formatter preferences.
func (c Config) Options() (comment.Options, error) {
	sep, ok := newlines[c.Newline]
	if !ok {
		return comment.Options{}, fmt.Errorf("%w: newline %q (want lf, crlf or cr)", comment.ErrInvalidOptions, c.Newline)
	}
	o := comment.Options{
		LineWidth:                  c.LineWidth,
		IndentationSize:            c.IndentationSize,
		TabWidth:                   c.TabWidth,
		TabKind:                    c.TabKind,
		LineSeparator:              sep,
		ClearBlankLinesBlock:       c.ClearBlankLinesBlock,
		ClearBlankLinesDoc:         c.ClearBlankLinesDoc,
		FormatHTML:                 c.FormatHTML,
		FormatEmbeddedCode:         c.FormatEmbeddedCode,
		IndentRootTags:             c.IndentRootTags,
		IndentParameterDescription: c.IndentParameterDescription,
		BlankLineBeforeRootTags:    c.BlankLineBeforeRootTags,
		NewLinePerParameter:        c.NewLinePerParameter,
	}
	return o, o.Validate()
}
