package lib

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Skip2Encoder builds symbols with github.com/skip2/go-qrcode and rasterizes
// the module bitmap itself, so border and box size are exact.
type Skip2Encoder struct{}

func skip2Level(l ECLevel) (qrcode.RecoveryLevel, error) {
	switch l {
	case ECLow:
		return qrcode.Low, nil
	case ECMedium:
		return qrcode.Medium, nil
	case ECQuartile:
		return qrcode.High, nil
	case ECHigh:
		return qrcode.Highest, nil
	}

	return 0, fmt.Errorf("unknown error correction level %q", l)
}

func (e *Skip2Encoder) Encode(content string, opts EncodeOptions) (GeneratedImage, error) {
	level, err := skip2Level(opts.Level)

	if err != nil {
		return nil, err
	}

	var q *qrcode.QRCode

	if opts.Version == 0 {
		q, err = qrcode.New(content, level)
	} else {
		q, err = qrcode.NewWithForcedVersion(content, opts.Version, level)
	}

	if err != nil {
		return nil, err
	}

	// the quiet zone is painted by the raster
	q.DisableBorder = true

	return newGridImage(q.Bitmap(), q.VersionNumber, opts), nil
}
