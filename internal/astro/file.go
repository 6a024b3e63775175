package astro

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// CatalogFile is the layout of a catalog file. Files are YAML, or TOML when
// the name ends in .toml.
type CatalogFile struct {
	Objects    []ObjectEntry    `yaml:"objects" toml:"objects"`
	Telescopes []TelescopeEntry `yaml:"telescopes" toml:"telescopes"`
}

// ObjectEntry is one object in a catalog file.
type ObjectEntry struct {
	Key      string      `yaml:"key" toml:"key"`
	Name     string      `yaml:"name" toml:"name"`
	Category string      `yaml:"category" toml:"category"`
	Detail   []TierEntry `yaml:"detail" toml:"detail"`
}

// TierEntry is one detail tier in a catalog file.
type TierEntry struct {
	Power int    `yaml:"power" toml:"power"`
	Text  string `yaml:"text" toml:"text"`
}

// TelescopeEntry is one telescope in a catalog file.
type TelescopeEntry struct {
	Key         string `yaml:"key" toml:"key"`
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description" toml:"description"`
	MaxPower    int    `yaml:"max_power" toml:"max_power"`
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f CatalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("astro: cannot parse catalog: %w", err)
	}
	return f.Build()
}

// ParseTOML decodes and validates a TOML catalog.
func ParseTOML(data []byte) (*Catalog, error) {
	var f CatalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("astro: cannot parse catalog: %w", err)
	}
	return f.Build()
}

// ReadFile reads and validates the catalog at path, picking the format
// from the extension.
func ReadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("astro: failed to read catalog %s: %w", path, err)
	}
	parse := Parse
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseTOML
	}
	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("astro: catalog %s: %w", path, err)
	}
	return c, nil
}

// Build converts the file entries into a validated catalog.
func (f CatalogFile) Build() (*Catalog, error) {
	objects := make([]Object, 0, len(f.Objects))
	for _, e := range f.Objects {
		tiers := make([]Threshold, 0, len(e.Detail))
		for _, d := range e.Detail {
			tiers = append(tiers, T(d.Power, d.Text))
		}
		objects = append(objects, NewObject(Category(e.Category), e.Key, e.Name, tiers...))
	}

	telescopes := make([]Telescope, 0, len(f.Telescopes))
	for _, e := range f.Telescopes {
		telescopes = append(telescopes, Telescope{
			Key:         e.Key,
			Name:        e.Name,
			Description: e.Description,
			MaxPower:    e.MaxPower,
		})
	}

	return New(objects, telescopes)
}

// LoadCatalog loads a catalog.
// Search order: customPath -> ~/.deepfield/catalog.{yaml,toml} -> ./configs/catalog.{yaml,toml} -> embedded default
// A search-path file that exists but does not load is skipped with a warning.
func LoadCatalog(customPath string) (*Catalog, error) {
	if customPath != "" {
		return ReadFile(customPath)
	}

	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".deepfield"))
	}
	dirs = append(dirs, "configs")

	for _, dir := range dirs {
		for _, name := range []string{"catalog.yaml", "catalog.toml"} {
			path := filepath.Join(dir, name)
			c, err := ReadFile(path)
			if err == nil {
				return c, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				log.Warn("skipping catalog", "path", path, "error", err)
			}
		}
	}

	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return c, nil
}
