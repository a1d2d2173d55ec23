// Package catalog loads wallpaper pattern catalogs, either the built-in
// default or external JSON/YAML files.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/wallcalc/internal/model"
)

//go:embed catalog.yaml
var catalogRawData []byte

// catalogFile is the top-level structure of a catalog document.
type catalogFile struct {
	Patterns []model.Pattern `json:"patterns" yaml:"patterns"`
}

// Catalog provides lazy-loaded access to the embedded default catalog.
type Catalog struct {
	once     sync.Once
	catalog  model.PatternCatalog
	warnings []string
	err      error
}

// NewCatalog creates a Catalog that parses the embedded YAML on first access.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Patterns returns a copy of the embedded catalog.
func (c *Catalog) Patterns() (model.PatternCatalog, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return model.PatternCatalog{}, c.err
	}
	return model.NewPatternCatalog(c.catalog.Patterns...), nil
}

// Warnings returns validation warnings raised while parsing the embedded data.
func (c *Catalog) Warnings() []string {
	c.once.Do(c.load)
	return append([]string(nil), c.warnings...)
}

func (c *Catalog) load() {
	c.catalog, c.warnings, c.err = DecodeYAML(catalogRawData)
	if c.err != nil {
		c.err = fmt.Errorf("catalog: embedded data: %w", c.err)
	}
}

var defaultCatalog = NewCatalog()

// Default returns a copy of the built-in pattern catalog.
func Default() (model.PatternCatalog, error) {
	return defaultCatalog.Patterns()
}

// DecodeJSON reads a catalog from JSON. Both a bare array of pattern records
// and an object with a "patterns" array are accepted.
func DecodeJSON(data []byte) (model.PatternCatalog, []string, error) {
	var patterns []model.Pattern
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &patterns); err != nil {
			return model.PatternCatalog{}, nil, fmt.Errorf("catalog: parse json: %w", err)
		}
	} else {
		var f catalogFile
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return model.PatternCatalog{}, nil, fmt.Errorf("catalog: parse json: %w", err)
		}
		patterns = f.Patterns
	}
	c, warnings := normalize(patterns)
	return c, warnings, nil
}

// DecodeYAML reads a catalog from YAML, accepting the same two shapes as
// DecodeJSON.
func DecodeYAML(data []byte) (model.PatternCatalog, []string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return model.PatternCatalog{}, nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return model.NewPatternCatalog(), nil, nil
	}

	var patterns []model.Pattern
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&patterns); err != nil {
			return model.PatternCatalog{}, nil, fmt.Errorf("catalog: decode yaml: %w", err)
		}
	case yaml.MappingNode:
		var f catalogFile
		if err := doc.Decode(&f); err != nil {
			return model.PatternCatalog{}, nil, fmt.Errorf("catalog: decode yaml: %w", err)
		}
		patterns = f.Patterns
	default:
		return model.PatternCatalog{}, nil, fmt.Errorf("catalog: unexpected yaml document at line %d", doc.Line)
	}
	c, warnings := normalize(patterns)
	return c, warnings, nil
}

// LoadFile reads a catalog file, choosing the decoder from its extension.
func LoadFile(path string) (model.PatternCatalog, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PatternCatalog{}, nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return model.PatternCatalog{}, nil, fmt.Errorf("catalog: unsupported file type %q", filepath.Ext(path))
	}
}

// WriteYAML encodes a catalog in the same shape the loaders read.
func WriteYAML(path string, c model.PatternCatalog) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Patterns: c.Patterns}); err != nil {
		return fmt.Errorf("catalog: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("catalog: encode yaml: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("catalog: write %s: %w", path, err)
	}
	return nil
}

func normalize(patterns []model.Pattern) (model.PatternCatalog, []string) {
	c := model.NewPatternCatalog()
	var warnings []string
	for i, p := range patterns {
		v := p
		v.SaleType = model.ParseSaleType(string(p.SaleType))
		for _, problem := range v.Validate() {
			warnings = append(warnings, fmt.Sprintf("record %d (%s): %s", i+1, recordKey(p), problem))
		}
		c.Add(model.NormalizePattern(p))
	}
	return c, warnings
}

func recordKey(p model.Pattern) string {
	if p.SKU != "" {
		return p.SKU
	}
	if p.Name != "" {
		return p.Name
	}
	return "unnamed"
}
