package lib

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageFormat is an output encoding picked from the file extension.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpeg"
	FormatGIF  ImageFormat = "gif"
	FormatBMP  ImageFormat = "bmp"
	FormatTIFF ImageFormat = "tiff"
)

var extensionFormats = map[string]ImageFormat{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
}

// FormatFromPath infers the image format from the extension of path.
func FormatFromPath(path string) (ImageFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}

	if ext == "" {
		return "", fmt.Errorf("unknown file extension for %q", path)
	}

	return "", fmt.Errorf("unknown file extension %q", ext)
}

// ContentType returns the MIME type served for a format.
func (f ImageFormat) ContentType() string {
	return "image/" + string(f)
}

// Extension returns the canonical file extension, dot included.
func (f ImageFormat) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}

	return "." + string(f)
}

// MaxImageSide bounds the width and height of a rendered image in pixels.
const MaxImageSide = 16384

// RenderedSide is the pixel side of a symbol of modules modules per side
// drawn with the given quiet zone and box size.
func RenderedSide(modules, border, boxSize int) int {
	return (modules + 2*border) * boxSize
}

// Raster paints a square module grid. Dark modules take Fill, light ones and
// the quiet zone take Back.
type Raster struct {
	Modules [][]bool
	BoxSize int
	Border  int
	Fill    color.Color
	Back    color.Color
}

// Image renders the grid. The side of the result is
// (len(Modules) + 2*Border) * BoxSize pixels.
func (r *Raster) Image() *image.Paletted {
	side := RenderedSide(len(r.Modules), r.Border, r.BoxSize)

	// index 0 is back, 1 is fill
	img := image.NewPaletted(image.Rect(0, 0, side, side), color.Palette{r.Back, r.Fill})

	for y, row := range r.Modules {
		for x, dark := range row {
			if !dark {
				continue
			}

			x0 := (x + r.Border) * r.BoxSize
			y0 := (y + r.Border) * r.BoxSize

			for py := y0; py < y0+r.BoxSize; py++ {
				offset := img.PixOffset(x0, py)

				for px := 0; px < r.BoxSize; px++ {
					img.Pix[offset+px] = 1
				}
			}
		}
	}

	return img
}

// Save renders the grid and writes it to path, creating or truncating the file.
func (r *Raster) Save(path string) error {
	format, err := FormatFromPath(path)

	if err != nil {
		return err
	}

	f, err := os.Create(path)

	if err != nil {
		return err
	}

	if err = EncodeImage(f, r.Image(), format); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// EncodeImage writes img to w in the given format.
func EncodeImage(w io.Writer, img image.Image, format ImageFormat) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}

	return fmt.Errorf("unsupported image format %q", format)
}
