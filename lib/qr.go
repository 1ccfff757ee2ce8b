package lib

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// GenerationRequest describes one QR image to produce.
type GenerationRequest struct {
	Content string
	Out     string
	ECLevel ECLevel
	BoxSize int
	Border  int
	Fill    string
	Back    string
	// Version pins the QR version (1-40). Zero means auto-fit.
	Version int
}

// DefaultRequest returns a request carrying the documented defaults.
func DefaultRequest(content string) GenerationRequest {
	return GenerationRequest{
		Content: content,
		Out:     "qr.png",
		ECLevel: ECMedium,
		BoxSize: 10,
		Border:  4,
		Fill:    "black",
		Back:    "white",
	}
}

// Builder validates requests, hands them to an Encoder and persists the
// result. A Builder holds no per-call state and may be shared.
type Builder struct {
	Encoder Encoder
	Logger  logrus.FieldLogger
	// Verify decodes every written image and compares it with the content.
	Verify bool
}

// NewBuilder returns a Builder for the named engine.
func NewBuilder(engine string, logger logrus.FieldLogger) (*Builder, error) {
	enc, err := NewEncoder(engine)

	if err != nil {
		return nil, err
	}

	return &Builder{
		Encoder: enc,
		Logger:  logger,
	}, nil
}

// Build generates the QR image described by req and returns its absolute path.
func Build(req GenerationRequest) (string, error) {
	return (&Builder{Encoder: &Skip2Encoder{}}).Build(req)
}

// Build validates req, encodes the trimmed content, writes the image to
// req.Out (creating missing parent directories) and returns the absolute
// output path.
func (b *Builder) Build(req GenerationRequest) (string, error) {
	log := b.logger()
	content := strings.TrimSpace(req.Content)

	opts, err := b.validate(content, req)

	if err != nil {
		return "", err
	}

	log.WithFields(logrus.Fields{
		"level":   opts.Level,
		"version": opts.Version,
		"out":     req.Out,
	}).Debug("encoding content")

	img, err := b.Encoder.Encode(content, opts)

	if err != nil {
		return "", &EncodingError{Err: err}
	}

	if v, ok := img.(VersionedImage); ok {
		log.Debugf("encoder selected version %d", v.Version())

		if err = checkImageSide(SideForVersion(v.Version()), opts.Border, opts.BoxSize); err != nil {
			return "", err
		}
	}

	if err = EnsureDir(filepath.Dir(req.Out)); err != nil {
		return "", err
	}

	if err = img.Save(req.Out); err != nil {
		return "", &FilesystemError{Path: req.Out, Err: err}
	}

	log.Debugf("image saved to %s", req.Out)

	if b.Verify {
		if err = VerifyFile(req.Out, content); err != nil {
			return "", &EncodingError{Err: err}
		}
	}

	abs, err := filepath.Abs(req.Out)

	if err != nil {
		return "", &FilesystemError{Path: req.Out, Err: err}
	}

	return abs, nil
}

func (b *Builder) validate(content string, req GenerationRequest) (EncodeOptions, error) {
	var opts EncodeOptions

	if content == "" {
		return opts, newValidationError("content", "Content is empty. Provide some text or a URL.")
	}

	if !req.ECLevel.Valid() {
		return opts, newValidationError(
			"error",
			"Invalid error correction '%s'. Use one of: L, M, Q, H",
			req.ECLevel,
		)
	}

	if req.Version != 0 && (req.Version < MinVersion || req.Version > MaxVersion) {
		return opts, newValidationError(
			"version",
			"Invalid version %d. Use %d-%d or omit for auto-fit",
			req.Version, MinVersion, MaxVersion,
		)
	}

	if req.BoxSize <= 0 {
		return opts, newValidationError("box-size", "Invalid box size %d. Must be a positive integer", req.BoxSize)
	}

	if req.Border < 0 {
		return opts, newValidationError("border", "Invalid border %d. Must be zero or more", req.Border)
	}

	if req.BoxSize > MaxImageSide || req.Border > MaxImageSide {
		return opts, newValidationError(
			"box-size",
			"Box size %d with border %d exceeds the %d pixel image limit",
			req.BoxSize, req.Border, MaxImageSide,
		)
	}

	smallest := req.Version

	if smallest == 0 {
		smallest = MinVersion
	}

	if err := checkImageSide(SideForVersion(smallest), req.Border, req.BoxSize); err != nil {
		return opts, err
	}

	fill, err := ParseColor(req.Fill)

	if err != nil {
		return opts, newValidationError("fill", "Invalid fill color '%s'", req.Fill)
	}

	back, err := ParseColor(req.Back)

	if err != nil {
		return opts, newValidationError("back", "Invalid back color '%s'", req.Back)
	}

	if strings.TrimSpace(req.Out) == "" {
		return opts, newValidationError("out", "Output path is empty")
	}

	format, err := FormatFromPath(req.Out)

	if err != nil {
		return opts, newValidationError("out", "Invalid output path: %s", err)
	}

	if fc, ok := b.Encoder.(FormatChecker); ok && !fc.SupportsFormat(format) {
		return opts, newValidationError("out", "Output format %s is not supported by this engine", format)
	}

	return EncodeOptions{
		Level:   req.ECLevel,
		Version: req.Version,
		BoxSize: req.BoxSize,
		Border:  req.Border,
		Fill:    fill,
		Back:    back,
	}, nil
}

// checkImageSide rejects symbols whose rendered side would pass MaxImageSide.
// Callers bound border and box size first so the product cannot overflow.
func checkImageSide(modules, border, boxSize int) error {
	side := RenderedSide(modules, border, boxSize)

	if side > MaxImageSide {
		return newValidationError(
			"box-size",
			"Image would be %d pixels wide, the limit is %d. Lower the box size or border",
			side, MaxImageSide,
		)
	}

	return nil
}

func (b *Builder) logger() logrus.FieldLogger {
	if b.Logger == nil {
		return discardLogger
	}

	return b.Logger
}

// EnsureDir creates dir and any missing parents. An existing directory is
// not an error.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return &FilesystemError{Path: dir, Err: err}
	}

	return nil
}

// RemoveFile deletes a temporary file, logging instead of failing.
func RemoveFile(filePath string, log logrus.FieldLogger) {
	err := os.Remove(filePath)

	if err != nil {
		log.Warnf("Error removing tmp file %s %s", filePath, err.Error())
	}
}
