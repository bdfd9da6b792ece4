package images

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthetic(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			a, err := Synthetic(kind, 32, 24, 1)
			require.NoError(t, err)
			b, err := Synthetic(kind, 32, 24, 1)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 32, 24), a.Bounds())
			assert.Equal(t, a, b)

			c, err := Synthetic(kind, 32, 24, 2)
			require.NoError(t, err)
			assert.NotEqual(t, a, c)
		})
	}

	_, err := Synthetic("checker", 8, 8, 1)
	assert.Error(t, err)
	_, err = Synthetic(Gradient, 0, 8, 1)
	assert.Error(t, err)
}

func TestResize(t *testing.T) {
	test := []struct {
		name string
		src  image.Rectangle
	}{
		{"wide", image.Rect(0, 0, 200, 50)},
		{"tall", image.Rect(0, 0, 50, 200)},
		{"offset", image.Rect(10, 10, 110, 85)},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			dist := Resize(image.NewRGBA(tt.src), 40, 30)
			assert.Equal(t, image.Rect(0, 0, 40, 30), dist.Bounds())
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	img, err := Synthetic(Plasma, 20, 20, 3)
	require.NoError(t, err)
	f, err := os.Create(filepath.Join(dir, "b.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a.png"), 0o755))

	paths, err := ListDir(dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "b.png")}, paths)

	loaded, err := LoadWithSize(paths[0], 10, 5)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 5), loaded.Bounds())
}
