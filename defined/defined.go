// Package defined provides ready-made region collections: classic
// scientific reference regions embedded with the package, and a
// fetcher that downloads and caches named remote catalogs.
//
//	srex, err := defined.SREX()
//	if err != nil {
//		...
//	}
//	mask, err := srex.Mask2D(lon, lat)
package defined

import (
	"embed"
	"fmt"
	"sync"

	"github.com/ivanhigueram/regionmask"
	"github.com/ivanhigueram/regionmask/geojson"
)

//go:embed data/*.geojson
var dataFS embed.FS

var (
	loadGiorgi = sync.OnceValues(func() (*regionmask.Regions, error) {
		return load("giorgi.geojson")
	})
	loadSREX = sync.OnceValues(func() (*regionmask.Regions, error) {
		return load("srex.geojson")
	})
)

func load(name string) (*regionmask.Regions, error) {
	data, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("defined: read %s: %w", name, err)
	}
	r, err := geojson.DecodeBytes(data,
		geojson.WithNumbers("number"),
		geojson.WithNames("name"),
		geojson.WithAbbrevs("abbrev"),
	)
	if err != nil {
		return nil, fmt.Errorf("defined: %s: %w", name, err)
	}
	return r, nil
}

// fresh hands out an independent view of a cached collection.
func fresh(load func() (*regionmask.Regions, error)) (*regionmask.Regions, error) {
	r, err := load()
	if err != nil {
		return nil, err
	}
	keys := make([]any, 0, r.Len())
	for _, n := range r.Numbers() {
		keys = append(keys, n)
	}
	return r.Subset(keys...)
}

// Giorgi returns the 21 rectangular climate reference regions of
// Giorgi and Francisco (2000), numbered 1 to 21. The collection is
// parsed once and cached; every call returns a new collection value.
func Giorgi() (*regionmask.Regions, error) { return fresh(loadGiorgi) }

// SREX returns the 26 reference regions of the IPCC Special Report on
// Managing the Risks of Extreme Events and Disasters (Seneviratne et
// al., 2012), numbered 1 to 26. The collection is parsed once and
// cached; every call returns a new collection value.
func SREX() (*regionmask.Regions, error) { return fresh(loadSREX) }
