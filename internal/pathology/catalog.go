package pathology

import (
	"fmt"
	"sort"
	"sync"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Preset carries the default presentation parameters for one pathology:
// display name, heart rate, trace amplitude, baseline noise and sample rate.
// The monitor seeds its SynthesisConfig from these when a pathology is
// selected.
type Preset struct {
	Name       string  `yaml:"name"`
	HeartRate  float64 `yaml:"heart_rate"`
	Amplitude  float64 `yaml:"amplitude"`
	Noise      float64 `yaml:"noise"`
	SampleRate float64 `yaml:"sample_rate"`
}

type catalogFile struct {
	Pathologies map[ID]Preset `yaml:"pathologies"`
}

var (
	catalogOnce sync.Once
	catalog     map[ID]Preset
	catalogErr  error
)

func loadCatalog() {
	var f catalogFile
	if err := yaml.Unmarshal(catalogYAML, &f); err != nil {
		catalogErr = fmt.Errorf("parse embedded catalog: %w", err)
		return
	}
	catalog = f.Pathologies
}

// Lookup returns the preset for id. The boolean is false for unknown IDs.
func Lookup(id ID) (Preset, bool) {
	catalogOnce.Do(loadCatalog)
	p, ok := catalog[id]
	return p, ok
}

// DisplayName returns the human-readable name for id, falling back to the
// raw identifier when the catalog has no entry.
func DisplayName(id ID) string {
	if p, ok := Lookup(id); ok {
		return p.Name
	}
	return string(id)
}

// All returns every catalogued pathology ID in sorted order.
func All() []ID {
	catalogOnce.Do(loadCatalog)
	ids := make([]ID, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CatalogError reports a parse failure of the embedded catalog, if any.
// A nil error is the normal case; the file ships inside the binary.
func CatalogError() error {
	catalogOnce.Do(loadCatalog)
	return catalogErr
}
