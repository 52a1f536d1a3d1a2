package regionmask

// RegionsOption configures region collection construction. Options
// are applied in order by [New].
type RegionsOption func(*regionsConfig)

type regionsConfig struct {
	numbers []int
	names   []string
	abbrevs []string
	name    string
	source  string
	overlap bool
}

func defaultRegionsConfig() regionsConfig {
	return regionsConfig{name: "unnamed"}
}

// WithNumbers sets the region numbers. Numbers identify regions in
// masks and need not be consecutive or start at zero, but must be
// unique. Default: 0..n-1.
func WithNumbers(numbers []int) RegionsOption {
	return func(c *regionsConfig) { c.numbers = numbers }
}

// WithNames sets the region names. Default: "Region<number>".
func WithNames(names []string) RegionsOption {
	return func(c *regionsConfig) { c.names = names }
}

// WithAbbrevs sets the region abbreviations. Default: "r<number>".
func WithAbbrevs(abbrevs []string) RegionsOption {
	return func(c *regionsConfig) { c.abbrevs = abbrevs }
}

// WithName sets the name of the collection itself. Default: "unnamed".
func WithName(name string) RegionsOption {
	return func(c *regionsConfig) { c.name = name }
}

// WithSource records where the outlines come from, e.g. a citation or
// URL. Default: empty.
func WithSource(source string) RegionsOption {
	return func(c *regionsConfig) { c.source = source }
}

// WithOverlap declares that the outlines may overlap. Overlapping
// collections cannot be flattened into a 2D mask; [Regions.Mask3D]
// then burns each region independently so a grid cell can belong to
// several regions at once. Default: false.
func WithOverlap(overlap bool) RegionsOption {
	return func(c *regionsConfig) { c.overlap = overlap }
}

// MaskOption configures mask computation. Options are applied in
// order by [Regions.Mask2D], [Regions.Mask3D], and
// [Regions.Mask3DFrac].
type MaskOption func(*maskConfig)

type maskConfig struct {
	method    Method
	wrap      WrapMode
	drop      bool
	precision int
	workers   int
}

func defaultMaskConfig() maskConfig {
	return maskConfig{
		method:    MethodAuto,
		wrap:      WrapAuto,
		drop:      true,
		precision: 10,
	}
}

// WithMethod forces a particular masking method instead of the
// automatic choice. Default: [MethodAuto].
func WithMethod(m Method) MaskOption {
	return func(c *maskConfig) { c.method = m }
}

// WithWrapLon controls how grid longitudes are reconciled with the
// longitude convention of the outlines. Default: [WrapAuto].
func WithWrapLon(w WrapMode) MaskOption {
	return func(c *maskConfig) { c.wrap = w }
}

// WithDrop controls whether [Regions.Mask3D] and
// [Regions.Mask3DFrac] remove layers of regions that cover no grid
// cell. Default: true.
func WithDrop(drop bool) MaskOption {
	return func(c *maskConfig) { c.drop = drop }
}

// WithPrecision sets the subsampling factor of
// [Regions.Mask3DFrac]: each grid cell is sampled on a
// precision x precision subgrid. Higher values refine the fractional
// overlap estimate at quadratic cost. Values below 1 are an error.
// Default: 10.
func WithPrecision(precision int) MaskOption {
	return func(c *maskConfig) { c.precision = precision }
}

// WithWorkers sets the number of goroutines used by the contains
// method. Zero selects [runtime.GOMAXPROCS]. One forces sequential
// processing. Default: 0.
func WithWorkers(workers int) MaskOption {
	return func(c *maskConfig) { c.workers = workers }
}
