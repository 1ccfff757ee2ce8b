package lib

import (
	"fmt"

	"rsc.io/qr"
	"rsc.io/qr/coding"
)

// RSCEncoder builds symbols with rsc.io/qr. Auto-fit goes through qr.Encode;
// a fixed version is planned directly with rsc.io/qr/coding.
type RSCEncoder struct{}

func rscLevel(l ECLevel) (qr.Level, error) {
	switch l {
	case ECLow:
		return qr.L, nil
	case ECMedium:
		return qr.M, nil
	case ECQuartile:
		return qr.Q, nil
	case ECHigh:
		return qr.H, nil
	}

	return 0, fmt.Errorf("unknown error correction level %q", l)
}

// rscEncoding picks the densest segment mode the whole content fits.
func rscEncoding(content string) coding.Encoding {
	switch {
	case coding.Num(content).Check() == nil:
		return coding.Num(content)
	case coding.Alpha(content).Check() == nil:
		return coding.Alpha(content)
	}

	return coding.String(content)
}

func (e *RSCEncoder) Encode(content string, opts EncodeOptions) (GeneratedImage, error) {
	level, err := rscLevel(opts.Level)

	if err != nil {
		return nil, err
	}

	if opts.Version != 0 {
		return e.encodeFixed(content, level, opts)
	}

	code, err := qr.Encode(content, level)

	if err != nil {
		return nil, err
	}

	return newGridImage(rscModules(code.Size, code.Black), versionForSide(code.Size), opts), nil
}

func (e *RSCEncoder) encodeFixed(content string, level qr.Level, opts EncodeOptions) (GeneratedImage, error) {
	version := coding.Version(opts.Version)
	l := coding.Level(level)
	enc := rscEncoding(content)

	if bits, capacity := enc.Bits(version), version.DataBytes(l)*8; bits > capacity {
		return nil, fmt.Errorf("content needs %d bits but version %d at level %s holds %d", bits, opts.Version, opts.Level, capacity)
	}

	plan, err := coding.NewPlan(version, l, 0)

	if err != nil {
		return nil, err
	}

	code, err := plan.Encode(enc)

	if err != nil {
		return nil, err
	}

	return newGridImage(rscModules(code.Size, code.Black), opts.Version, opts), nil
}

func rscModules(size int, black func(x, y int) bool) [][]bool {
	modules := make([][]bool, size)

	for y := range modules {
		modules[y] = make([]bool, size)

		for x := range modules[y] {
			modules[y][x] = black(x, y)
		}
	}

	return modules
}
