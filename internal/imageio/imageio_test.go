package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, color.NRGBA{uint8(x*13 + y), uint8(y * 29), uint8(x ^ y), 255})
		}
	}
	return img
}

func assertSamePixels(t *testing.T, want, got image.Image) {
	t.Helper()
	require.Equal(t, want.Bounds(), got.Bounds())
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			w := color.NRGBAModel.Convert(want.At(x, y))
			g := color.NRGBAModel.Convert(got.At(x, y))
			require.Equal(t, w, g, "pixel (%d,%d)", x, y)
		}
	}
}

func TestEncodeDecodeLossless(t *testing.T) {
	img := createImage(17, 9)
	for _, f := range []Format{PNG, BMP, TIFF} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, img, f))
			got, format, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, f, format)
			assertSamePixels(t, img, got)
		})
	}
}

func TestEncodeRefusesLossy(t *testing.T) {
	for _, f := range []Format{JPEG, GIF, ""} {
		err := Encode(&bytes.Buffer{}, createImage(2, 2), f)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	}
}

func TestFormat(t *testing.T) {
	test := []struct {
		path     string
		format   Format
		lossy    bool
		writable bool
	}{
		{"a.png", PNG, false, true},
		{"a.PNG", PNG, false, true},
		{"dir/a.bmp", BMP, false, true},
		{"a.tif", TIFF, false, true},
		{"a.tiff", TIFF, false, true},
		{"a.jpg", JPEG, true, false},
		{"a.jpeg", JPEG, true, false},
		{"a.gif", GIF, false, false},
		{"a.webp", "", false, false},
	}
	for _, tt := range test {
		f := FormatOf(tt.path)
		assert.Equal(t, tt.format, f, tt.path)
		assert.Equal(t, tt.lossy, f.Lossy(), tt.path)
		assert.Equal(t, tt.writable, f.Writable(), tt.path)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	img := createImage(8, 8)

	path := filepath.Join(dir, "out.png")
	require.NoError(t, Save(path, img))
	got, format, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, PNG, format)
	assertSamePixels(t, img, got)

	jpgPath := filepath.Join(dir, "out.jpg")
	assert.ErrorIs(t, Save(jpgPath, img), ErrUnsupportedFormat)
	_, err = os.Stat(jpgPath)
	assert.True(t, os.IsNotExist(err))

	_, _, err = Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestLoadJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, createImage(8, 8), &jpeg.Options{Quality: 100}))
	require.NoError(t, f.Close())

	_, format, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, JPEG, format)
	assert.True(t, format.Lossy())
}
