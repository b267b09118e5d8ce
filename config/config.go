// Package config holds the settings shared by every inspector operation:
// the proc root and the size limits applied to reads. Settings come from
// built-in defaults, an optional YAML file, PROCINSPECT_* environment
// variables and command-line flags, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultRoot       = "/proc"
	DefaultMaxLines   = 10
	DefaultCmdlineMax = 4096
	DefaultChunkSize  = 1024
)

// Environment variable names.
const (
	EnvConfig     = "PROCINSPECT_CONFIG"
	EnvRoot       = "PROCINSPECT_ROOT"
	EnvMaxLines   = "PROCINSPECT_MAX_LINES"
	EnvCmdlineMax = "PROCINSPECT_CMDLINE_MAX"
	EnvChunkSize  = "PROCINSPECT_CHUNK_SIZE"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config configures an inspector.
type Config struct {
	// Root is the mount point of the introspection filesystem.
	Root string `yaml:"root"`
	// MaxLines caps the lines printed per system snapshot section.
	MaxLines int `yaml:"max_lines"`
	// CmdlineMax caps the bytes captured from a cmdline record.
	CmdlineMax int `yaml:"cmdline_max"`
	// ChunkSize is the read(2) size of the unbuffered strategy.
	ChunkSize int `yaml:"chunk_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Root:       DefaultRoot,
		MaxLines:   DefaultMaxLines,
		CmdlineMax: DefaultCmdlineMax,
		ChunkSize:  DefaultChunkSize,
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	// #nosec G304 -- path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overlays PROCINSPECT_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	if root := strings.TrimSpace(os.Getenv(EnvRoot)); root != "" {
		c.Root = root
	}

	ints := []struct {
		name   string
		target *int
	}{
		{EnvMaxLines, &c.MaxLines},
		{EnvCmdlineMax, &c.CmdlineMax},
		{EnvChunkSize, &c.ChunkSize},
	}
	for _, v := range ints {
		raw := strings.TrimSpace(os.Getenv(v.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, v.name, raw)
		}
		*v.target = n
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Root) == "":
		return fmt.Errorf("%w: root must not be empty", ErrInvalid)
	case c.MaxLines <= 0:
		return fmt.Errorf("%w: max_lines must be positive, got %d", ErrInvalid, c.MaxLines)
	case c.CmdlineMax <= 0:
		return fmt.Errorf("%w: cmdline_max must be positive, got %d", ErrInvalid, c.CmdlineMax)
	case c.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalid, c.ChunkSize)
	}
	return nil
}
