package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Lossy reports whether LSB data cannot be expected to survive the format.
func (f Format) Lossy() bool {
	return f == JPEG
}

// Writable reports whether Encode can store every sample exactly in f.
func (f Format) Writable() bool {
	switch f {
	case PNG, BMP, TIFF:
		return true
	}
	return false
}

// FormatOf maps a file extension to a format. The result is empty when unknown.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	case ".jpg", ".jpeg":
		return JPEG
	case ".gif":
		return GIF
	}
	return ""
}

// Decode reads any registered format and reports which one it was.
func Decode(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, Format(name), nil
}

// Encode writes img in a lossless format. Lossy and palette formats are refused.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("%w: cannot write %q without losing LSB data", ErrUnsupportedFormat, f)
}

// Load opens and decodes the image at path.
func Load(path string) (image.Image, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return Decode(f)
}

// Save encodes img into path, choosing the format from the extension.
// Nothing is created when the format is not writable.
func Save(path string, img image.Image) (err error) {
	format := FormatOf(path)
	if !format.Writable() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, img, format)
}
