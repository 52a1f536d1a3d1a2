// Package regionmask creates masks of geographic regions for
// latitude/longitude grids.
//
// # Overview
//
// A Regions collection holds named polygon outlines (possibly with interior
// holes). Masking determines, for every point of a grid, which region the
// point falls in. The result is either a 2D mask of region numbers (NaN
// where no region matches) or a 3D stack of boolean layers, one per region.
//
// # Quick Start
//
//	import "github.com/ivanhigueram/regionmask"
//
//	// Two unit squares stacked on top of each other.
//	outlines := []regionmask.MultiPolygon{
//		{{Exterior: regionmask.Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}}}},
//		{{Exterior: regionmask.Ring{{0, 1}, {0, 2}, {1, 2}, {1, 1}}}},
//	}
//	regions, err := regionmask.New(outlines,
//		regionmask.WithNames([]string{"lower", "upper"}))
//	if err != nil {
//		// handle error
//	}
//
//	mask, err := regions.Mask2D([]float64{0.5, 1.5}, []float64{0.5, 1.5})
//	if err != nil {
//		// handle error
//	}
//	number, ok := mask.RegionAt(0, 0) // 0, true: (lat 0.5, lon 0.5) is in "lower"
//
// # Methods
//
// Three backends compute masks with identical results:
//
//   - MethodRasterize: scanline rasterization, used automatically for
//     equally spaced grids. Fastest.
//   - MethodContains: point-in-polygon tests against prepared polygons,
//     used automatically when the grid is not equally spaced.
//   - MethodLegacy: unprepared point-in-polygon tests. Slowest; selected
//     only explicitly, kept for comparison.
//
// # Edge Behavior
//
// Points that fall exactly on a region outline are treated consistently by
// all methods: the tested point is shifted by a tiny offset to the south
// west, so outlines on the northern and eastern side of a region include
// their points while southern and western outlines do not. A grid point on
// a border shared by two regions therefore belongs to exactly one of them.
// Grid points at -180°E (or 0°E) and at -90°N are special-cased so that
// global grids have no unassigned seam.
//
// # Coordinate Conventions
//
// Longitudes may follow either the [-180, 180) or the [0, 360) convention.
// When the grid and the region outlines disagree, the grid coordinates are
// wrapped automatically; see WithWrapLon to control this.
//
// # Logging
//
// The package is silent by default. Call SetLogger with a *slog.Logger to
// receive debug information about method selection, coordinate wrapping and
// catalog downloads.
package regionmask

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
