package lib

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// ECLevel is a QR error correction tier.
type ECLevel string

const (
	ECLow      ECLevel = "L" // ~7% recovery
	ECMedium   ECLevel = "M" // ~15%
	ECQuartile ECLevel = "Q" // ~25%
	ECHigh     ECLevel = "H" // ~30%
)

// ECLevels lists the recognized levels in ascending resilience.
var ECLevels = []ECLevel{ECLow, ECMedium, ECQuartile, ECHigh}

func (l ECLevel) Valid() bool {
	switch l {
	case ECLow, ECMedium, ECQuartile, ECHigh:
		return true
	}

	return false
}

const (
	MinVersion = 1
	MaxVersion = 40
)

// SideForVersion is the module count of one side of a version's symbol.
func SideForVersion(version int) int {
	return 17 + 4*version
}

// EncodeOptions carries everything an engine needs besides the content.
// Version 0 asks the engine to pick the smallest version that fits.
type EncodeOptions struct {
	Level   ECLevel
	Version int
	BoxSize int
	Border  int
	Fill    color.Color
	Back    color.Color
}

// GeneratedImage is the artifact an engine returns. Save writes it to path,
// inferring the image format from the extension.
type GeneratedImage interface {
	Save(path string) error
}

// VersionedImage is implemented by images that know which QR version the
// engine settled on.
type VersionedImage interface {
	GeneratedImage
	Version() int
}

// Encoder turns content into a GeneratedImage.
type Encoder interface {
	Encode(content string, opts EncodeOptions) (GeneratedImage, error)
}

// FormatChecker is implemented by engines that only write some formats.
type FormatChecker interface {
	SupportsFormat(f ImageFormat) bool
}

// Engine names accepted by NewEncoder.
const (
	EngineSkip2  = "skip2"
	EngineYeqown = "yeqown"
	EngineRSC    = "rsc"
)

var engines = map[string]func() Encoder{
	EngineSkip2:  func() Encoder { return &Skip2Encoder{} },
	EngineYeqown: func() Encoder { return &YeqownEncoder{} },
	EngineRSC:    func() Encoder { return &RSCEncoder{} },
}

// EngineNames returns the registered engine names, sorted.
func EngineNames() []string {
	names := make([]string, 0, len(engines))

	for name := range engines {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// NewEncoder returns the engine registered under name.
func NewEncoder(name string) (Encoder, error) {
	ctor, ok := engines[strings.ToLower(name)]

	if !ok {
		return nil, newValidationError(
			"engine",
			"Invalid engine '%s'. Use one of: %s",
			name,
			strings.Join(EngineNames(), ", "),
		)
	}

	return ctor(), nil
}

// gridImage is a module grid awaiting rasterization.
type gridImage struct {
	raster  Raster
	version int
}

func (g *gridImage) Save(path string) error {
	return g.raster.Save(path)
}

func (g *gridImage) Version() int {
	return g.version
}

func newGridImage(modules [][]bool, version int, opts EncodeOptions) *gridImage {
	return &gridImage{
		raster: Raster{
			Modules: modules,
			BoxSize: opts.BoxSize,
			Border:  opts.Border,
			Fill:    opts.Fill,
			Back:    opts.Back,
		},
		version: version,
	}
}

func versionForSide(side int) int {
	return (side - 17) / 4
}

func errVersionMismatch(want, got int) error {
	return fmt.Errorf("fixed version %d requested but encoder produced version %d", want, got)
}
