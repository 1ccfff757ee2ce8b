package lib

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ReadDataFromQR decodes the first QR symbol found in img.
func ReadDataFromQR(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)

	if err != nil {
		return "", fmt.Errorf("failed to get NewBinaryBitmapFromImage: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)

	if err != nil {
		return "", fmt.Errorf("failed to decode the QR-code contents: %w", err)
	}

	return result.String(), nil
}

// ReadQRFile opens an image file in any supported format and decodes it.
func ReadQRFile(path string) (string, error) {
	f, err := os.Open(path)

	if err != nil {
		return "", err
	}

	defer f.Close()

	img, _, err := image.Decode(f)

	if err != nil {
		return "", fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return ReadDataFromQR(img)
}

// VerifyFile checks that the image at path decodes to exactly want.
func VerifyFile(path, want string) error {
	got, err := ReadQRFile(path)

	if err != nil {
		return err
	}

	if got != want {
		return fmt.Errorf("decoded content %q does not match %q", got, want)
	}

	return nil
}
