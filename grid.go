package regionmask

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Spacing comparisons use numpy-style isclose tolerances so grids
// produced by floating-point range constructions still count as
// equally spaced.
const (
	spacingRelTol = 1e-5
	spacingAbsTol = 1e-8
)

// wrapTo360 wraps a longitude into [0, 360).
func wrapTo360(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	return lon
}

// wrapTo180 wraps a longitude into [-180, 180). Values already in the
// target range are returned unchanged, so 180 maps to -180 but 179.5
// stays put.
func wrapTo180(lon float64) float64 {
	if lon >= -180 && lon < 180 {
		return lon
	}
	return wrapTo360(lon+180) - 180
}

// wrapLons returns a wrapped copy of lons. Wrapping must not collapse
// two distinct grid points onto the same value; if it does the grid
// cannot be interpreted unambiguously and an error is returned.
func wrapLons(lons []float64, to180 bool) ([]float64, error) {
	wrapped := make([]float64, len(lons))
	for i, v := range lons {
		if to180 {
			wrapped[i] = wrapTo180(v)
		} else {
			wrapped[i] = wrapTo360(v)
		}
	}
	if hasDuplicates(wrapped) {
		return nil, errors.New("regionmask: wrapping produced duplicate longitude values")
	}
	return wrapped, nil
}

func hasDuplicates(vals []float64) bool {
	seen := make(map[float64]struct{}, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

// round6 rounds to 6 decimal places. Convention checks use rounded
// extremes so grids like [-180.0000001, ..., 180.0000001] are not
// flagged as mixed.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// isLon180 reports whether the longitude range [min, max] follows the
// [-180, 180] convention. Ranges that contain values below 0 together
// with values above 180 belong to neither convention and are rejected.
func isLon180(min, max float64) (bool, error) {
	min, max = round6(min), round6(max)
	if min < 0 && max > 180 {
		return false, errors.New(
			"regionmask: longitudes mix values below 0 and above 180; wrap them to [-180, 180) or [0, 360) first")
	}
	return max <= 180, nil
}

// diffs returns the consecutive differences of vals.
func diffs(vals []float64) []float64 {
	d := make([]float64, len(vals)-1)
	for i := 1; i < len(vals); i++ {
		d[i-1] = vals[i] - vals[i-1]
	}
	return d
}

// equallySpaced reports whether vals form an arithmetic sequence with
// nonzero step, ascending or descending. Vectors shorter than two
// elements are not equally spaced.
func equallySpaced(vals []float64) bool {
	if len(vals) < 2 {
		return false
	}
	step := vals[1] - vals[0]
	if step == 0 {
		return false
	}
	for i := 2; i < len(vals); i++ {
		d := vals[i] - vals[i-1]
		if !scalar.EqualWithinAbsOrRel(d, step, spacingAbsTol, spacingRelTol) {
			return false
		}
	}
	return true
}

// medianStep estimates the regular step of a nearly equally spaced
// vector as the median of its consecutive differences. With a single
// irregular jump among the differences the median recovers the
// regular step.
func medianStep(vals []float64) float64 {
	d := diffs(vals)
	slices.Sort(d)
	return stat.Quantile(0.5, stat.LinInterp, d, nil)
}

// equallySpacedOnSplitLon reports whether lons is equally spaced apart
// from exactly one interior jump, as in a global grid stored as
// [180..359, 0..179].
func equallySpacedOnSplitLon(lons []float64) bool {
	if len(lons) < 2 {
		return false
	}
	step := medianStep(lons)
	if step == 0 {
		return false
	}
	irregular := 0
	for _, d := range diffs(lons) {
		if !scalar.EqualWithinAbsOrRel(d, step, spacingAbsTol, spacingRelTol) {
			irregular++
		}
	}
	return irregular == 1
}

// findSplitPoint returns the index of the first element after the
// single irregular jump in a split longitude vector.
func findSplitPoint(lons []float64) (int, error) {
	step := medianStep(lons)
	split := -1
	for i, d := range diffs(lons) {
		if !scalar.EqualWithinAbsOrRel(d, step, spacingAbsTol, spacingRelTol) {
			if split != -1 {
				return 0, errors.New("regionmask: more than one split point found")
			}
			split = i + 1
		}
	}
	if split == -1 {
		return 0, errors.New("regionmask: no split point found")
	}
	return split, nil
}

// rotate returns vals rotated left by k, so the element at index k
// comes first.
func rotate(vals []float64, k int) []float64 {
	out := make([]float64, 0, len(vals))
	out = append(out, vals[k:]...)
	out = append(out, vals[:k]...)
	return out
}

// validateCoords rejects coordinate vectors no masking method can
// handle: empty vectors, NaNs, and duplicate values.
func validateCoords(lon, lat []float64) error {
	if len(lon) == 0 || len(lat) == 0 {
		return errors.New("regionmask: lon and lat must not be empty")
	}
	for _, v := range lon {
		if math.IsNaN(v) {
			return errors.New("regionmask: lon must not contain NaN")
		}
	}
	for _, v := range lat {
		if math.IsNaN(v) {
			return errors.New("regionmask: lat must not contain NaN")
		}
	}
	if hasDuplicates(lon) {
		return fmt.Errorf("regionmask: lon contains duplicate values")
	}
	if hasDuplicates(lat) {
		return fmt.Errorf("regionmask: lat contains duplicate values")
	}
	return nil
}
