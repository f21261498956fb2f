// Package catalog holds the static tables the search pipeline reads: the
// ordered source list, per-source fallback catalogs and the prompt stop-word
// set. A Catalog is immutable after Load and safe for concurrent use.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/grocerlens/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDocument []byte

// document is the on-disk shape of a catalog file
type document struct {
	Sources   []domain.Source             `yaml:"sources"`
	Fallback  map[string][]domain.RawItem `yaml:"fallback"`
	StopWords []string                    `yaml:"stopwords"`
}

// Catalog is the validated, read-only form of a catalog document
type Catalog struct {
	sources   []domain.Source
	fallback  map[string][]domain.RawItem
	stopWords map[string]struct{}
}

// Load reads the catalog at path, or the embedded default when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog file: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded catalog. It panics if the embedded document
// is invalid, which is a build defect.
func Default() *Catalog {
	c, err := Parse(defaultDocument)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unable to decode catalog: %w", err)
	}

	if err := validate(&doc); err != nil {
		return nil, err
	}

	stop := make(map[string]struct{}, len(doc.StopWords))
	for _, w := range doc.StopWords {
		stop[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	return &Catalog{
		sources:   doc.Sources,
		fallback:  doc.Fallback,
		stopWords: stop,
	}, nil
}

// New builds a catalog directly, mainly for substituting sources in tests
func New(sources []domain.Source, fallback map[string][]domain.RawItem, stopWords []string) (*Catalog, error) {
	doc := document{Sources: sources, Fallback: fallback, StopWords: stopWords}
	if err := validate(&doc); err != nil {
		return nil, err
	}
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &Catalog{sources: sources, fallback: fallback, stopWords: stop}, nil
}

func validate(doc *document) error {
	if len(doc.Sources) == 0 {
		return fmt.Errorf("%w: at least one source is required", domain.ErrInvalidCatalog)
	}

	seen := make(map[string]bool, len(doc.Sources))
	for _, src := range doc.Sources {
		if src.ID == "" {
			return fmt.Errorf("%w: source id is required", domain.ErrInvalidCatalog)
		}
		if seen[src.ID] {
			return fmt.Errorf("%w: duplicate source %q", domain.ErrInvalidCatalog, src.ID)
		}
		seen[src.ID] = true

		if src.BaseURL == "" {
			return fmt.Errorf("%w: source %q has no base_url", domain.ErrInvalidCatalog, src.ID)
		}

		items := doc.Fallback[src.ID]
		if len(items) == 0 {
			return fmt.Errorf("%w: source %q has an empty fallback catalog", domain.ErrInvalidCatalog, src.ID)
		}
		for _, item := range items {
			if strings.TrimSpace(item.Name) == "" {
				return fmt.Errorf("%w: source %q has a fallback item without a name", domain.ErrInvalidCatalog, src.ID)
			}
			if item.Price != nil && *item.Price < 0 {
				return fmt.Errorf("%w: %q in %q has a negative price", domain.ErrInvalidCatalog, item.Name, src.ID)
			}
		}
	}

	return nil
}

// Sources returns the configured sources in query order
func (c *Catalog) Sources() []domain.Source {
	out := make([]domain.Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// Fallback returns a copy of the fallback catalog for a source. Unknown
// sources yield nil.
func (c *Catalog) Fallback(sourceID string) []domain.RawItem {
	items, ok := c.fallback[sourceID]
	if !ok {
		return nil
	}
	out := make([]domain.RawItem, len(items))
	for i, item := range items {
		out[i] = item
		if item.Price != nil {
			out[i].Price = domain.PriceOf(*item.Price)
		}
	}
	return out
}

// StopWords returns the prompt stop-word set. Callers must not modify it.
func (c *Catalog) StopWords() map[string]struct{} {
	return c.stopWords
}
