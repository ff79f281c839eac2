// Package config loads the project configuration file, .catchr.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chriserin/catchr/internal/artifact"
	"github.com/chriserin/catchr/internal/keyword"
	"github.com/chriserin/catchr/internal/render"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".catchr.yaml"

// Config is the decoded configuration file.
type Config struct {
	// Root is the directory searched for scenario files.
	Root string `yaml:"root"`
	// Layout is "flat" or "subtests".
	Layout string `yaml:"layout"`
	// Mode is the leaf annotation: "sync", "parallel" or "context".
	Mode string `yaml:"mode"`
	// Suffix replaces the source extension to name generated files.
	Suffix string `yaml:"suffix"`
	// Keywords registers extra block kinds, keyword to prefix.
	Keywords map[string]string `yaml:"keywords,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Root:   ".",
		Layout: render.Flat.String(),
		Mode:   artifact.Sync{}.Marker(),
		Suffix: "_catchr_test.go",
	}
}

// Load reads path, filling unset fields from [Default]. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) fill() {
	d := Default()
	if c.Root == "" {
		c.Root = d.Root
	}
	if c.Layout == "" {
		c.Layout = d.Layout
	}
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.Suffix == "" {
		c.Suffix = d.Suffix
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := render.ParseLayout(c.Layout); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := artifact.AnnotationFor(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !strings.HasSuffix(c.Suffix, "_test.go") {
		return fmt.Errorf("config: suffix %q must end in _test.go", c.Suffix)
	}
	if _, err := c.Registry(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Registry returns the default keywords extended with c.Keywords.
func (c Config) Registry() (keyword.Registry, error) {
	reg := keyword.Default()
	words := make([]string, 0, len(c.Keywords))
	for w := range c.Keywords {
		words = append(words, w)
	}
	sort.Strings(words)

	for _, w := range words {
		var err error
		if reg, err = reg.With(w, c.Keywords[w]); err != nil {
			return keyword.Registry{}, err
		}
	}
	return reg, nil
}
