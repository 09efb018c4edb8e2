package calendar

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yml
var builtinData embed.FS

// validKeys are the only keys a calendar document may carry.
var validKeys = []string{"holidays", "working_days", "extra_working_dates"}

// calendarExtensions are tried in order when looking a calendar up by name.
var calendarExtensions = []string{".yml", ".yaml"}

// Source looks calendar definitions up by name. Find returns (nil, nil)
// when the source does not carry the calendar.
type Source interface {
	Name() string
	Find(name string) (*Config, error)
}

// FSSource reads "<name>.yml" (or ".yaml") documents from a file system.
type FSSource struct {
	name string
	fsys fs.FS
}

// NewFSSource creates a source reading calendar documents from fsys.
func NewFSSource(name string, fsys fs.FS) *FSSource {
	return &FSSource{name: name, fsys: fsys}
}

// NewDirSource creates a source reading calendar documents from a
// directory on disk.
func NewDirSource(dir string) *FSSource {
	return NewFSSource(dir, os.DirFS(dir))
}

// NewBuiltinSource returns the source of calendars compiled into the
// binary ("weekdays").
func NewBuiltinSource() *FSSource {
	sub, err := fs.Sub(builtinData, "data")
	if err != nil {
		panic(fmt.Sprintf("builtin calendars: %v", err))
	}
	return NewFSSource("builtin", sub)
}

// Name returns the source's description.
func (s *FSSource) Name() string {
	return s.name
}

// Find reads and decodes the named calendar document.
func (s *FSSource) Find(name string) (*Config, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid calendar name %q", name)
	}

	for _, ext := range calendarExtensions {
		file := name + ext
		data, err := fs.ReadFile(s.fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read calendar file %s: %w", path.Join(s.name, file), err)
		}

		cfg, err := DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse calendar file %s: %w", path.Join(s.name, file), err)
		}
		cfg.Name = name
		return cfg, nil
	}

	return nil, nil
}

// DecodeConfig decodes a YAML calendar document. Keys other than
// holidays, working_days and extra_working_dates are rejected. An empty
// document yields an empty Config.
func DecodeConfig(r io.Reader) (*Config, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Config{}, nil
		}
		return nil, err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &Config{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return &Config{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("calendar document must be a mapping (line %d)", root.Line)
	}

	var unknown []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		if !isValidKey(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w %s: only valid keys are: %s",
			ErrUnknownKeys, strings.Join(unknown, ", "), strings.Join(validKeys, ", "))
	}

	var cfg Config
	if err := root.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isValidKey(key string) bool {
	for _, k := range validKeys {
		if k == key {
			return true
		}
	}
	return false
}

// MapSource serves calendars defined in memory, keyed by name. It takes
// the place of a directory when definitions are built by the caller.
type MapSource map[string]Config

// Name returns the source's description.
func (m MapSource) Name() string {
	return "memory"
}

// Find returns a copy of the named definition.
func (m MapSource) Find(name string) (*Config, error) {
	cfg, ok := m[name]
	if !ok {
		return nil, nil
	}
	cfg.Name = name
	return &cfg, nil
}
