package nav

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed navigation.yaml
var defaultDocument []byte

type document struct {
	Locales []Entry `yaml:"locales"`
}

// Parse decodes a navigation document and builds a registry from it.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("nav: decode document: %w", err)
	}
	return NewRegistry(doc.Locales)
}

// LoadFile reads and parses a navigation document from disk.
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("nav: read %s: %w", path, err)
	}
	return Parse(raw)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the compiled-in registry. It is built on first use and
// shared for the life of the process.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Parse(defaultDocument)
	})
	return defaultRegistry, defaultErr
}
