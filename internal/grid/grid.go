package grid

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Channels is the number of color samples per pixel.
const Channels = 3

type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

func (c Channel) Valid() bool {
	return c >= Red && c <= Blue
}

var (
	ErrEmpty      = errors.New("image has no pixels")
	ErrColorModel = errors.New("image does not carry three color channels")
)

// Grid is a fixed-size raster of 8-bit RGB samples.
// Samples are stored row-major with channels interleaved, so sample i belongs
// to pixel i/3 and channel i%3. That flat order is the scan order of the codec.
type Grid struct {
	bounds        image.Rectangle
	width, height int

	samples []uint8
	alpha   []uint8
}

// New returns a zeroed grid of the given size with an opaque alpha plane.
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		bounds:  image.Rect(0, 0, width, height),
		width:   width,
		height:  height,
		samples: make([]uint8, width*height*Channels),
		alpha:   make([]uint8, width*height),
	}
	for i := range g.alpha {
		g.alpha[i] = 0xff
	}
	return g
}

// FromImage copies src into a new grid.
// Gray and alpha-only images are rejected; everything else is converted to
// non-premultiplied 8-bit RGBA so that opaque pixels keep their exact values.
func FromImage(src image.Image) (*Grid, error) {
	switch src.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return nil, fmt.Errorf("%w: %T", ErrColorModel, src)
	}
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, ErrEmpty
	}
	g := New(bounds.Dx(), bounds.Dy())
	g.bounds = bounds

	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			g.samples[idx*Channels] = c.R
			g.samples[idx*Channels+1] = c.G
			g.samples[idx*Channels+2] = c.B
			g.alpha[idx] = c.A
			idx++
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Len returns the number of color samples, which is also the capacity in bits.
func (g *Grid) Len() int { return len(g.samples) }

func (g *Grid) At(i int) uint8 { return g.samples[i] }

func (g *Grid) Set(i int, v uint8) { g.samples[i] = v }

// Row returns the samples of row y. The slice aliases the grid.
func (g *Grid) Row(y int) []uint8 {
	n := g.width * Channels
	return g.samples[y*n : (y+1)*n : (y+1)*n]
}

// Channel returns a copy of one channel flattened in raster order.
func (g *Grid) Channel(c Channel) []uint8 {
	out := make([]uint8, 0, g.width*g.height)
	for i := int(c); i < len(g.samples); i += Channels {
		out = append(out, g.samples[i])
	}
	return out
}

func (g *Grid) Copy() *Grid {
	tmp := *g
	tmp.samples = make([]uint8, len(g.samples))
	tmp.alpha = make([]uint8, len(g.alpha))
	_ = copy(tmp.samples, g.samples)
	_ = copy(tmp.alpha, g.alpha)
	return &tmp
}

// Image builds an NRGBA image with the grid's original bounds.
func (g *Grid) Image() *image.NRGBA {
	dist := image.NewNRGBA(g.bounds)
	for y := range g.Height() {
		row := g.Row(y)
		alpha := g.alpha[y*g.width : (y+1)*g.width]
		off := y * dist.Stride
		for x := range g.width {
			p := dist.Pix[off+x*4 : off+x*4+4 : off+x*4+4]
			copy(p, row[x*Channels:(x+1)*Channels])
			p[3] = alpha[x]
		}
	}
	return dist
}
