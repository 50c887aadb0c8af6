package analysis

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CatalogEntry is one workout from the static catalog.
type CatalogEntry struct {
	Name            string   `yaml:"name" json:"name"`
	TSS             int      `yaml:"tss" json:"tss"`
	IntensityFactor float64  `yaml:"intensity_factor" json:"intensity_factor"`
	Category        Category `yaml:"category" json:"category"`
}

type catalogFile struct {
	Workouts []CatalogEntry `yaml:"workouts"`
}

var (
	catalogOnce    sync.Once
	catalogEntries []CatalogEntry
	catalogErr     error
)

// Catalog returns the embedded workout catalog, parsed once at first use and
// read-only from then on.
func Catalog() ([]CatalogEntry, error) {
	catalogOnce.Do(func() {
		var f catalogFile
		if err := yaml.Unmarshal(catalogYAML, &f); err != nil {
			catalogErr = fmt.Errorf("parsing workout catalog: %w", err)
			return
		}
		for _, e := range f.Workouts {
			if !validCategory(e.Category) {
				catalogErr = fmt.Errorf("workout %q has unknown category %q", e.Name, e.Category)
				return
			}
		}
		catalogEntries = f.Workouts
	})
	return catalogEntries, catalogErr
}
