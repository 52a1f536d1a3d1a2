package regionmask

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned when a region lookup key matches no
// region number, name, or abbreviation. Use errors.Is to test for it;
// the returned error carries the offending key.
var ErrKeyNotFound = errors.New("regionmask: region key not found")

// Regions is an ordered, immutable collection of named regions.
// Construct it with [New], [geojson.Decode], or one of the defined
// collections, then derive masks with [Regions.Mask2D] and friends.
type Regions struct {
	regions []Region
	name    string
	source  string
	overlap bool

	byNumber map[int]int
	byName   map[string]int
	byAbbrev map[string]int
}

// New creates a region collection from outlines. Metadata defaults:
// numbers are 0..n-1, names are "Region<number>", abbreviations are
// "r<number>", and the collection name is "unnamed". Override them
// with [WithNumbers], [WithNames], [WithAbbrevs], [WithName],
// [WithSource], and [WithOverlap].
//
// Numbers, names, and abbreviations must each be unique; names and
// abbreviations must not be empty. Collections intended for
// [Regions.Mask3D] with intersecting outlines must be constructed
// with WithOverlap(true).
func New(outlines []MultiPolygon, opts ...RegionsOption) (*Regions, error) {
	n := len(outlines)
	if n == 0 {
		return nil, errors.New("regionmask: outlines must not be empty")
	}
	for i, o := range outlines {
		if len(o) == 0 {
			return nil, fmt.Errorf("regionmask: outline %d is empty", i)
		}
	}

	cfg := defaultRegionsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	numbers := cfg.numbers
	if numbers == nil {
		numbers = make([]int, n)
		for i := range numbers {
			numbers[i] = i
		}
	} else if len(numbers) != n {
		return nil, fmt.Errorf(
			"regionmask: numbers must have the same length as outlines (%d != %d)",
			len(numbers), n)
	}

	names, err := sanitizeLabels("names", cfg.names, numbers, "Region")
	if err != nil {
		return nil, err
	}
	abbrevs, err := sanitizeLabels("abbrevs", cfg.abbrevs, numbers, "r")
	if err != nil {
		return nil, err
	}

	regions := make([]Region, n)
	for i := range regions {
		regions[i] = Region{
			Number:   numbers[i],
			Name:     names[i],
			Abbrev:   abbrevs[i],
			Geometry: outlines[i],
		}
	}
	return newFromRegions(regions, cfg.name, cfg.source, cfg.overlap)
}

// sanitizeLabels validates user-provided labels or derives defaults
// from the region numbers.
func sanitizeLabels(what string, labels []string, numbers []int, prefix string) ([]string, error) {
	if labels == nil {
		out := make([]string, len(numbers))
		for i, num := range numbers {
			out[i] = fmt.Sprintf("%s%d", prefix, num)
		}
		return out, nil
	}
	if len(labels) != len(numbers) {
		return nil, fmt.Errorf(
			"regionmask: %s must have the same length as outlines (%d != %d)",
			what, len(labels), len(numbers))
	}
	for _, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("regionmask: %s cannot contain missing values", what)
		}
	}
	return labels, nil
}

// newFromRegions assembles a collection from ready-made regions,
// enforcing uniqueness of numbers, names, and abbreviations.
func newFromRegions(regions []Region, name, source string, overlap bool) (*Regions, error) {
	byNumber := make(map[int]int, len(regions))
	byName := make(map[string]int, len(regions))
	byAbbrev := make(map[string]int, len(regions))
	for i, reg := range regions {
		if _, ok := byNumber[reg.Number]; ok {
			return nil, errors.New("regionmask: numbers cannot contain duplicate values")
		}
		if _, ok := byName[reg.Name]; ok {
			return nil, errors.New("regionmask: names cannot contain duplicate values")
		}
		if _, ok := byAbbrev[reg.Abbrev]; ok {
			return nil, errors.New("regionmask: abbrevs cannot contain duplicate values")
		}
		byNumber[reg.Number] = i
		byName[reg.Name] = i
		byAbbrev[reg.Abbrev] = i
	}
	return &Regions{
		regions:  regions,
		name:     name,
		source:   source,
		overlap:  overlap,
		byNumber: byNumber,
		byName:   byName,
		byAbbrev: byAbbrev,
	}, nil
}

// Len returns the number of regions in the collection.
func (r *Regions) Len() int { return len(r.regions) }

// Name returns the collection name.
func (r *Regions) Name() string { return r.name }

// Source returns the provenance string of the collection.
func (r *Regions) Source() string { return r.source }

// Overlap reports whether the collection was declared as containing
// overlapping outlines.
func (r *Regions) Overlap() bool { return r.overlap }

// Regions returns the regions in collection order.
func (r *Regions) Regions() []Region {
	out := make([]Region, len(r.regions))
	copy(out, r.regions)
	return out
}

// Numbers returns the region numbers in collection order.
func (r *Regions) Numbers() []int {
	out := make([]int, len(r.regions))
	for i, reg := range r.regions {
		out[i] = reg.Number
	}
	return out
}

// Names returns the region names in collection order.
func (r *Regions) Names() []string {
	out := make([]string, len(r.regions))
	for i, reg := range r.regions {
		out[i] = reg.Name
	}
	return out
}

// Abbrevs returns the region abbreviations in collection order.
func (r *Regions) Abbrevs() []string {
	out := make([]string, len(r.regions))
	for i, reg := range r.regions {
		out[i] = reg.Abbrev
	}
	return out
}

// Bounds returns the bounding box of each region in collection order.
func (r *Regions) Bounds() []Bounds {
	out := make([]Bounds, len(r.regions))
	for i, reg := range r.regions {
		out[i] = reg.Bounds()
	}
	return out
}

// BoundsGlobal returns the bounding box covering all regions.
func (r *Regions) BoundsGlobal() Bounds {
	b := emptyBounds()
	for _, reg := range r.regions {
		b = b.Union(reg.Bounds())
	}
	return b
}

// Centroids returns the centroid of each region in collection order.
func (r *Regions) Centroids() []Point {
	out := make([]Point, len(r.regions))
	for i, reg := range r.regions {
		out[i] = reg.Centroid()
	}
	return out
}

// IsLon180 reports whether the outlines follow the [-180, 180]
// longitude convention. Collections whose extent fits both
// conventions (e.g. 0..180) report true for IsLon180 and IsLon360
// alike. Outlines mixing values below 0 with values above 180 are an
// error.
func (r *Regions) IsLon180() (bool, error) {
	b := r.BoundsGlobal()
	return isLon180(b.MinLon, b.MaxLon)
}

// IsLon360 reports whether the outlines follow the [0, 360] longitude
// convention. See [Regions.IsLon180] for the ambiguous and erroneous
// cases.
func (r *Regions) IsLon360() (bool, error) {
	b := r.BoundsGlobal()
	if _, err := isLon180(b.MinLon, b.MaxLon); err != nil {
		return false, err
	}
	return round6(b.MinLon) >= 0, nil
}

// index resolves a lookup key to a position in the collection.
// Integers match region numbers; strings match names, then
// abbreviations.
func (r *Regions) index(key any) (int, error) {
	switch k := key.(type) {
	case int:
		if i, ok := r.byNumber[k]; ok {
			return i, nil
		}
	case string:
		if i, ok := r.byName[k]; ok {
			return i, nil
		}
		if i, ok := r.byAbbrev[k]; ok {
			return i, nil
		}
	default:
		return 0, fmt.Errorf("regionmask: invalid region key type %T (want int or string)", key)
	}
	return 0, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
}

// Get returns the region identified by key: a region number (int), a
// name, or an abbreviation (string). Unknown keys return an error
// wrapping [ErrKeyNotFound].
func (r *Regions) Get(key any) (Region, error) {
	i, err := r.index(key)
	if err != nil {
		return Region{}, err
	}
	return r.regions[i], nil
}

// MapKey resolves a lookup key to the corresponding region number.
func (r *Regions) MapKey(key any) (int, error) {
	i, err := r.index(key)
	if err != nil {
		return 0, err
	}
	return r.regions[i].Number, nil
}

// Subset returns a new collection containing only the selected
// regions, in the order given. Regions keep their numbers, names, and
// abbreviations; the collection keeps its name, source, and overlap
// flag. Each key must resolve to a distinct region.
func (r *Regions) Subset(keys ...any) (*Regions, error) {
	if len(keys) == 0 {
		return nil, errors.New("regionmask: subset must select at least one region")
	}
	seen := make(map[int]struct{}, len(keys))
	regions := make([]Region, 0, len(keys))
	for _, key := range keys {
		i, err := r.index(key)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[i]; ok {
			return nil, fmt.Errorf("regionmask: duplicate region key %v", key)
		}
		seen[i] = struct{}{}
		regions = append(regions, r.regions[i])
	}
	return newFromRegions(regions, r.name, r.source, r.overlap)
}
