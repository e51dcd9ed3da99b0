// Package config provides repository and global configuration for overlyx.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/overlyx/overlyx/internal/output"
)

// FileName is the repository config file, looked up at the repo root.
const FileName = ".overlyx.yml"

// Default values used when the config file is missing or a field is empty.
const (
	DefaultRootDocument = "main.lyx"
	DefaultAuthoringExt = ".lyx"
	DefaultMarkupExt    = ".tex"
	DefaultLyxCommand   = "lyx"
)

// Config holds per-repository settings read from .overlyx.yml.
// Every field is optional; zero values fall back to defaults.
type Config struct {
	// RootDocument is the file name of the designated root document.
	// Only the root document's exported output is filtered.
	RootDocument string `yaml:"root_document,omitempty"`

	// AuthoringExt is the extension of authoring documents (".lyx").
	AuthoringExt string `yaml:"authoring_ext,omitempty"`

	// MarkupExt is the extension of exported markup files (".tex").
	MarkupExt string `yaml:"markup_ext,omitempty"`

	// TexDir overrides the tex directory. When empty the directory is
	// resolved from the repo root: the root itself if its base name
	// starts with "tex", otherwise <root>/tex.
	TexDir string `yaml:"tex_dir,omitempty"`

	// LyxCommand is the export tool binary. OVERLYX_LYX_COMMAND wins
	// over the file value.
	LyxCommand string `yaml:"lyx_command,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return (&Config{}).withDefaults()
}

// Load reads the config file from the given repo root.
// A missing file yields the defaults without error.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, output.NewSystemErrorWithCause("failed to read "+FileName, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, output.NewUserError("invalid " + FileName + ": " + err.Error())
	}
	return cfg.withDefaults(), nil
}

// Save writes the config file to the given repo root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return output.NewSystemErrorWithCause("failed to encode config", err)
	}
	path := filepath.Join(root, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}

// withDefaults fills empty fields with default values.
func (c *Config) withDefaults() *Config {
	if c.RootDocument == "" {
		c.RootDocument = DefaultRootDocument
	}
	if c.AuthoringExt == "" {
		c.AuthoringExt = DefaultAuthoringExt
	}
	if c.MarkupExt == "" {
		c.MarkupExt = DefaultMarkupExt
	}
	if c.LyxCommand == "" {
		c.LyxCommand = DefaultLyxCommand
	}
	return c
}

// ResolveTexDir returns the directory holding the documents for a repo root.
// An explicit TexDir setting wins (resolved against the root when relative).
// Otherwise the naming convention applies: the root itself when its base
// name starts with "tex", else <root>/tex.
func (c *Config) ResolveTexDir(root string) string {
	if c.TexDir != "" {
		if filepath.IsAbs(c.TexDir) {
			return c.TexDir
		}
		return filepath.Join(root, c.TexDir)
	}
	if strings.HasPrefix(filepath.Base(root), "tex") {
		return root
	}
	return filepath.Join(root, "tex")
}

// ResolveLyxCommand returns the export tool binary to invoke.
// OVERLYX_LYX_COMMAND takes precedence over the config file value.
func (c *Config) ResolveLyxCommand() string {
	if cmd := os.Getenv("OVERLYX_LYX_COMMAND"); cmd != "" {
		return cmd
	}
	return c.LyxCommand
}

// MarkupPath returns the markup sibling of an authoring document path.
func (c *Config) MarkupPath(docPath string) string {
	return strings.TrimSuffix(docPath, c.AuthoringExt) + c.MarkupExt
}

// IsAuthoringDocument reports whether a path names an authoring document.
func (c *Config) IsAuthoringDocument(path string) bool {
	return strings.HasSuffix(path, c.AuthoringExt)
}

// IsRootDocument reports whether a path names the designated root document.
// Matched by exact base name, so the designation never leaks to
// similarly named files in subdirectories.
func (c *Config) IsRootDocument(path string) bool {
	return filepath.Base(path) == c.RootDocument
}
