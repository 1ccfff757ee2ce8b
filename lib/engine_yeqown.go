package lib

import (
	"fmt"
	"math"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// YeqownEncoder builds symbols with github.com/yeqown/go-qrcode and lets its
// standard writer draw them. Only PNG and JPEG output is available.
type YeqownEncoder struct{}

func yeqownLevel(l ECLevel) (qrcode.EncodeOption, error) {
	switch l {
	case ECLow:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow), nil
	case ECMedium:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium), nil
	case ECQuartile:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart), nil
	case ECHigh:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest), nil
	}

	return nil, fmt.Errorf("unknown error correction level %q", l)
}

func (e *YeqownEncoder) SupportsFormat(f ImageFormat) bool {
	return f == FormatPNG || f == FormatJPEG
}

func (e *YeqownEncoder) Encode(content string, opts EncodeOptions) (GeneratedImage, error) {
	if opts.BoxSize > math.MaxUint8 {
		return nil, fmt.Errorf("box size %d exceeds %d, the largest the yeqown writer draws", opts.BoxSize, math.MaxUint8)
	}

	level, err := yeqownLevel(opts.Level)

	if err != nil {
		return nil, err
	}

	encOpts := []qrcode.EncodeOption{level}

	if opts.Version != 0 {
		encOpts = append(encOpts, qrcode.WithVersion(opts.Version))
	}

	qrc, width, err := yeqownSymbol(content, encOpts)

	if err != nil {
		return nil, err
	}

	version := versionForSide(width)

	if opts.Version != 0 && opts.Version != version {
		return nil, errVersionMismatch(opts.Version, version)
	}

	return &yeqownImage{
		qrc:     qrc,
		opts:    opts,
		version: version,
	}, nil
}

// yeqownSymbol encodes content and measures the matrix before anything
// touches the disk. The library panics when content overflows a fixed
// version; that panic comes back as an error.
func yeqownSymbol(content string, encOpts []qrcode.EncodeOption) (qrc *qrcode.QRCode, width int, err error) {
	defer func() {
		if r := recover(); r != nil {
			qrc, width, err = nil, 0, fmt.Errorf("%v", r)
		}
	}()

	qrc, err = qrcode.NewWith(content, encOpts...)

	if err != nil {
		return nil, 0, err
	}

	probe := &matrixProbe{}

	if err = qrc.Save(probe); err != nil {
		return nil, 0, err
	}

	return qrc, probe.width, nil
}

// matrixProbe is a qrcode.Writer that only records the symbol size.
type matrixProbe struct {
	width int
}

func (p *matrixProbe) Write(mat qrcode.Matrix) error {
	p.width = mat.Width()
	return nil
}

func (p *matrixProbe) Close() error {
	return nil
}

type yeqownImage struct {
	qrc     *qrcode.QRCode
	opts    EncodeOptions
	version int
}

func (y *yeqownImage) Version() int {
	return y.version
}

func (y *yeqownImage) Save(path string) error {
	format, err := FormatFromPath(path)

	if err != nil {
		return err
	}

	encoder := standard.WithBuiltinImageEncoder(standard.PNG_FORMAT)

	switch format {
	case FormatPNG:
	case FormatJPEG:
		encoder = standard.WithBuiltinImageEncoder(standard.JPEG_FORMAT)
	default:
		return fmt.Errorf("yeqown engine cannot write %s images", format)
	}

	w, err := standard.New(
		path,
		standard.WithQRWidth(uint8(y.opts.BoxSize)),
		standard.WithBorderWidth(y.opts.Border*y.opts.BoxSize),
		standard.WithFgColor(y.opts.Fill),
		standard.WithBgColor(y.opts.Back),
		encoder,
	)

	if err != nil {
		return err
	}

	err = y.qrc.Save(w)
	// Save may already have closed the writer
	_ = w.Close()

	return err
}
