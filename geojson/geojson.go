// Package geojson converts GeoJSON feature collections to and from
// region collections.
//
// Region outlines come from Polygon and MultiPolygon geometries; the
// first ring of a polygon is its exterior, any further rings are
// holes. Region metadata is taken from feature properties named by
// the decode options:
//
//	regions, err := geojson.Decode(f,
//		geojson.WithNames("NAME"),
//		geojson.WithAbbrevs("KEY"),
//		geojson.WithNumbers("ID"),
//	)
//
// Without options the regions get the usual defaults: numbers 0..n-1
// and labels derived from them. When the file carries no abbreviation
// property, [WithAbbrevsFromNames] derives abbreviations from the
// selected names.
package geojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/ivanhigueram/regionmask"
)

// Option configures decoding.
type Option func(*config)

type config struct {
	namesKey         string
	abbrevsKey       string
	abbrevsFromNames bool
	numbersKey       string
	name             string
	nameSet          bool
	source           string
	sourceSet        bool
	overlap          bool
}

// WithNames selects the feature property holding region names.
func WithNames(key string) Option {
	return func(c *config) { c.namesKey = key }
}

// WithAbbrevs selects the feature property holding region
// abbreviations.
func WithAbbrevs(key string) Option {
	return func(c *config) { c.abbrevsKey = key }
}

// WithAbbrevsFromNames derives abbreviations from the selected names
// with [regionmask.ConstructAbbrevs] instead of reading a property.
// Requires [WithNames].
func WithAbbrevsFromNames() Option {
	return func(c *config) { c.abbrevsFromNames = true }
}

// WithNumbers selects the feature property holding region numbers.
// The values must be whole numbers.
func WithNumbers(key string) Option {
	return func(c *config) { c.numbersKey = key }
}

// WithName sets the collection name, overriding the top-level "name"
// member of the file.
func WithName(name string) Option {
	return func(c *config) { c.name = name; c.nameSet = true }
}

// WithSource sets the collection source, overriding the top-level
// "source" member of the file.
func WithSource(source string) Option {
	return func(c *config) { c.source = source; c.sourceSet = true }
}

// WithOverlap declares that the decoded outlines may overlap. See
// [regionmask.WithOverlap].
func WithOverlap(overlap bool) Option {
	return func(c *config) { c.overlap = overlap }
}

type featureCollection struct {
	Type     string    `json:"type"`
	Name     string    `json:"name,omitempty"`
	Source   string    `json:"source,omitempty"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   geometry       `json:"geometry"`
}

// geometry defers coordinate decoding until the type is known: a
// Polygon carries three nesting levels, a MultiPolygon four.
type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Decode reads a GeoJSON FeatureCollection and builds a region
// collection from its features.
func Decode(r io.Reader, opts ...Option) (*regionmask.Regions, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("geojson: decode: %w", err)
	}
	return fromCollection(&fc, opts)
}

// DecodeBytes is like [Decode] but reads from a byte slice.
func DecodeBytes(data []byte, opts ...Option) (*regionmask.Regions, error) {
	return Decode(bytes.NewReader(data), opts...)
}

func fromCollection(fc *featureCollection, opts []Option) (*regionmask.Regions, error) {
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("geojson: expected a FeatureCollection, got %q", fc.Type)
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	outlines := make([]regionmask.MultiPolygon, len(fc.Features))
	for i, ft := range fc.Features {
		outline, err := toOutline(ft.Geometry, i)
		if err != nil {
			return nil, err
		}
		outlines[i] = outline
	}

	var regionOpts []regionmask.RegionsOption
	if cfg.numbersKey != "" {
		numbers, err := intProperty(fc.Features, cfg.numbersKey)
		if err != nil {
			return nil, err
		}
		regionOpts = append(regionOpts, regionmask.WithNumbers(numbers))
	}
	var names []string
	if cfg.namesKey != "" {
		var err error
		names, err = stringProperty("names", fc.Features, cfg.namesKey)
		if err != nil {
			return nil, err
		}
		regionOpts = append(regionOpts, regionmask.WithNames(names))
	}
	switch {
	case cfg.abbrevsFromNames && cfg.abbrevsKey != "":
		return nil, fmt.Errorf("geojson: WithAbbrevs and WithAbbrevsFromNames are mutually exclusive")
	case cfg.abbrevsFromNames:
		if names == nil {
			return nil, fmt.Errorf("geojson: WithAbbrevsFromNames requires WithNames")
		}
		regionOpts = append(regionOpts, regionmask.WithAbbrevs(regionmask.ConstructAbbrevs(names)))
	case cfg.abbrevsKey != "":
		abbrevs, err := stringProperty("abbrevs", fc.Features, cfg.abbrevsKey)
		if err != nil {
			return nil, err
		}
		regionOpts = append(regionOpts, regionmask.WithAbbrevs(abbrevs))
	}

	name := fc.Name
	if cfg.nameSet {
		name = cfg.name
	}
	if name != "" {
		regionOpts = append(regionOpts, regionmask.WithName(name))
	}
	source := fc.Source
	if cfg.sourceSet {
		source = cfg.source
	}
	if source != "" {
		regionOpts = append(regionOpts, regionmask.WithSource(source))
	}
	if cfg.overlap {
		regionOpts = append(regionOpts, regionmask.WithOverlap(true))
	}

	return regionmask.New(outlines, regionOpts...)
}

// propertyValues gathers one property across all features. Absent and
// null values come back as nil; a property present in no feature at
// all is an error.
func propertyValues(features []feature, key string) ([]any, error) {
	vals := make([]any, len(features))
	found := false
	for i, ft := range features {
		v, ok := ft.Properties[key]
		if ok {
			found = true
		}
		vals[i] = v
	}
	if !found {
		return nil, fmt.Errorf("geojson: property %q not found", key)
	}
	return vals, nil
}

func stringProperty(role string, features []feature, key string) ([]string, error) {
	vals, err := propertyValues(features, key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		if v == nil {
			return nil, fmt.Errorf("geojson: %s cannot contain missing values", role)
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("geojson: property %q must be a string, got %T", key, v)
		}
		out[i] = s
	}
	return out, nil
}

func intProperty(features []feature, key string) ([]int, error) {
	vals, err := propertyValues(features, key)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(vals))
	for i, v := range vals {
		if v == nil {
			return nil, fmt.Errorf("geojson: numbers cannot contain missing values")
		}
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("geojson: property %q must be numeric, got %T", key, v)
		}
		if math.Trunc(f) != f {
			return nil, fmt.Errorf("geojson: numbers must be whole numbers, got %v", f)
		}
		out[i] = int(f)
	}
	return out, nil
}

func toOutline(g geometry, idx int) (regionmask.MultiPolygon, error) {
	switch g.Type {
	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("geojson: feature %d: %w", idx, err)
		}
		pg, err := toPolygon(coords, idx)
		if err != nil {
			return nil, err
		}
		return regionmask.MultiPolygon{pg}, nil
	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("geojson: feature %d: %w", idx, err)
		}
		mp := make(regionmask.MultiPolygon, 0, len(coords))
		for _, pgCoords := range coords {
			pg, err := toPolygon(pgCoords, idx)
			if err != nil {
				return nil, err
			}
			mp = append(mp, pg)
		}
		if len(mp) == 0 {
			return nil, fmt.Errorf("geojson: feature %d has no polygons", idx)
		}
		return mp, nil
	default:
		return nil, fmt.Errorf(
			"geojson: feature %d has unsupported geometry type %q (want Polygon or MultiPolygon)",
			idx, g.Type)
	}
}

func toPolygon(coords [][][]float64, idx int) (regionmask.Polygon, error) {
	if len(coords) == 0 {
		return regionmask.Polygon{}, fmt.Errorf("geojson: feature %d has no rings", idx)
	}
	rings := make([]regionmask.Ring, len(coords))
	for i, ringCoords := range coords {
		ring, err := toRing(ringCoords, idx)
		if err != nil {
			return regionmask.Polygon{}, err
		}
		rings[i] = ring
	}
	return regionmask.Polygon{Exterior: rings[0], Holes: rings[1:]}, nil
}

// toRing converts one GeoJSON ring, dropping the closing vertex that
// repeats the first point. Extra position elements beyond lon and lat
// (altitude) are ignored.
func toRing(coords [][]float64, idx int) (regionmask.Ring, error) {
	ring := make(regionmask.Ring, 0, len(coords))
	for _, pos := range coords {
		if len(pos) < 2 {
			return nil, fmt.Errorf("geojson: feature %d has a position with fewer than two elements", idx)
		}
		ring = append(ring, regionmask.Point{Lon: pos[0], Lat: pos[1]})
	}
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return nil, fmt.Errorf("geojson: feature %d has a ring with fewer than three distinct points", idx)
	}
	return ring, nil
}

type encGeometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

type encFeature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   encGeometry    `json:"geometry"`
}

type encCollection struct {
	Type     string       `json:"type"`
	Name     string       `json:"name,omitempty"`
	Source   string       `json:"source,omitempty"`
	Features []encFeature `json:"features"`
}

// Encode writes the collection as a GeoJSON FeatureCollection. Each
// region becomes one feature with "number", "name", and "abbrev"
// properties; single-polygon outlines are written as Polygon
// geometries, others as MultiPolygon. Rings are closed as the format
// requires.
func Encode(w io.Writer, r *regionmask.Regions) error {
	fc := encCollection{
		Type:     "FeatureCollection",
		Source:   r.Source(),
		Features: make([]encFeature, 0, r.Len()),
	}
	if name := r.Name(); name != "unnamed" {
		fc.Name = name
	}
	for _, reg := range r.Regions() {
		fc.Features = append(fc.Features, encFeature{
			Type: "Feature",
			Properties: map[string]any{
				"number": reg.Number,
				"name":   reg.Name,
				"abbrev": reg.Abbrev,
			},
			Geometry: fromOutline(reg.Geometry),
		})
	}
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		return fmt.Errorf("geojson: encode: %w", err)
	}
	return nil
}

func fromOutline(mp regionmask.MultiPolygon) encGeometry {
	polys := make([][][][]float64, len(mp))
	for i, pg := range mp {
		rings := append([]regionmask.Ring{pg.Exterior}, pg.Holes...)
		polys[i] = make([][][]float64, len(rings))
		for j, ring := range rings {
			closed := make([][]float64, 0, len(ring)+1)
			for _, p := range ring {
				closed = append(closed, []float64{p.Lon, p.Lat})
			}
			closed = append(closed, []float64{ring[0].Lon, ring[0].Lat})
			polys[i][j] = closed
		}
	}
	if len(polys) == 1 {
		return encGeometry{Type: "Polygon", Coordinates: polys[0]}
	}
	return encGeometry{Type: "MultiPolygon", Coordinates: polys}
}
