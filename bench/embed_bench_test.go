package bench_test

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stegolab/stegano"
	"github.com/stegolab/stegano/payload"
)

// BenchmarkEmbed runs a table-driven set of embed benchmarks for FHD images
func BenchmarkEmbed(b *testing.B) {
	test := []struct {
		name string
		size int // payload bytes
		opts []stegano.Option
	}{
		{name: "sequential_1KiB", size: 1 << 10},
		{name: "sequential_256KiB", size: 256 << 10},
		{name: "shuffled_1KiB", size: 1 << 10, opts: []stegano.Option{stegano.WithShuffle(1)}},
		{name: "shuffled_256KiB", size: 256 << 10, opts: []stegano.Option{stegano.WithShuffle(1)}},
	}

	img := createImage(1920, 1080)
	ctx := b.Context()

	for _, tt := range test {
		b.Run(tt.name, func(b *testing.B) {
			s, err := stegano.New(tt.opts...)
			if err != nil {
				b.Fatalf("Failed to create Stegano instance (%s): %v", tt.name, err)
			}
			data := createPayload(b, tt.size)
			for b.Loop() {
				dist, err := s.Embed(ctx, img, data)
				if err != nil {
					b.Fatalf("Failed to embed payload (%s): %v", tt.name, err)
				}
				_ = dist
			}
		})
	}
}

func BenchmarkExtract(b *testing.B) {
	img := createImage(1920, 1080)
	ctx := b.Context()
	for _, size := range []int{1 << 10, 256 << 10} {
		marked, err := stegano.Embed(ctx, img, createPayload(b, size))
		if err != nil {
			b.Fatalf("Failed to embed payload: %v", err)
		}
		b.Run(fmt.Sprintf("%dKiB", size>>10), func(b *testing.B) {
			for b.Loop() {
				if _, err := stegano.Extract(ctx, marked); err != nil {
					b.Fatalf("Failed to extract payload: %v", err)
				}
			}
		})
	}
}

func BenchmarkAnalyze(b *testing.B) {
	test := []struct {
		name          string
		width, height int
	}{
		{name: "VGA", width: 640, height: 480},
		{name: "FHD", width: 1920, height: 1080},
	}
	ctx := b.Context()
	for _, tt := range test {
		batch, err := stegano.NewBatch(createImage(tt.width, tt.height))
		if err != nil {
			b.Fatalf("Failed to create batch: %v", err)
		}
		b.Run(tt.name, func(b *testing.B) {
			for b.Loop() {
				if _, err := batch.Analyze(ctx); err != nil {
					b.Fatalf("Failed to analyze (%s): %v", tt.name, err)
				}
			}
		})
	}
}

// createImage creates a widthxheight test image with gradient pattern
func createImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			// Create gradient effect to simulate realistic image data
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8(((x + y) * 255) / (width + height))
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}
	return img
}

func createPayload(b *testing.B, size int) []byte {
	b.Helper()
	data, err := payload.Text(size * 8)
	if err != nil {
		b.Fatalf("Failed to generate payload: %v", err)
	}
	return data
}
