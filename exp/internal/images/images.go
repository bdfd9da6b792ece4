package images

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Kind names a synthetic cover generator.
type Kind string

const (
	Gradient Kind = "gradient"
	Radial   Kind = "radial"
	Plasma   Kind = "plasma"
	Noise    Kind = "noise"
)

// Kinds lists every synthetic generator.
var Kinds = []Kind{Gradient, Radial, Plasma, Noise}

// Synthetic builds a deterministic cover of the given kind.
// Every kind adds seeded sensor-like noise of a few levels so that the LSB
// plane is not trivially constant.
func Synthetic(kind Kind, width, height int, seed int64) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	rd := rand.New(rand.NewSource(seed))
	var base func(x, y float64) (r, g, b float64)
	switch kind {
	case Gradient:
		base = func(x, y float64) (float64, float64, float64) {
			return 40 + 170*x, 30 + 180*y, 200 - 120*(x+y)/2
		}
	case Radial:
		base = func(x, y float64) (float64, float64, float64) {
			d := math.Hypot(x-0.5, y-0.5) / math.Sqrt2
			return 230 - 180*d, 120 + 60*math.Cos(6*d), 60 + 150*d
		}
	case Plasma:
		base = func(x, y float64) (float64, float64, float64) {
			v := math.Sin(7*x) + math.Sin(5*y) + math.Sin(4*(x+y))
			return 128 + 35*v, 128 + 30*math.Sin(v+1), 128 - 32*v
		}
	case Noise:
		base = func(float64, float64) (float64, float64, float64) {
			return 128, 128, 128
		}
	default:
		return nil, fmt.Errorf("unknown cover kind %q", kind)
	}
	amplitude := 2.0
	if kind == Noise {
		amplitude = 40
	}

	dist := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			r, g, b := base(float64(x)/float64(width), float64(y)/float64(height))
			dist.SetRGBA(x, y, color.RGBA{
				R: clamp(r + rd.NormFloat64()*amplitude),
				G: clamp(g + rd.NormFloat64()*amplitude),
				B: clamp(b + rd.NormFloat64()*amplitude),
				A: 0xff,
			})
		}
	}
	return dist, nil
}

func clamp(v float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(v, 0), 255)))
}

// LoadWithSize decodes the image at path and center-crops and resizes it to width x height.
func LoadWithSize(path string, width, height int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return Resize(src, width, height), nil
}

// Resize center-crops src to the target aspect ratio and scales it.
func Resize(src image.Image, targetWidth, targetHeight int) *image.RGBA {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	srcRect := bounds
	srcRatio := float64(width) / float64(height)
	targetRatio := float64(targetWidth) / float64(targetHeight)

	if srcRatio > targetRatio {
		// source too wide - center crop
		newWidth := int(float64(height) * targetRatio)
		x := bounds.Min.X + (width-newWidth)/2
		srcRect = image.Rect(x, bounds.Min.Y, x+newWidth, bounds.Max.Y)
	} else if srcRatio < targetRatio {
		// source too tall - center crop
		newHeight := int(float64(width) / targetRatio)
		y := bounds.Min.Y + (height-newHeight)/2
		srcRect = image.Rect(bounds.Min.X, y, bounds.Max.X, y+newHeight)
	}

	dist := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dist, dist.Bounds(), src, srcRect, draw.Over, nil)
	return dist
}

var extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}

// ListDir returns the decodable image files directly under dir, sorted by name.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(extensions, strings.ToLower(filepath.Ext(e.Name()))) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
