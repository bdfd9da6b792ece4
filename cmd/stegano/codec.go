package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/stegolab/stegano"
	"github.com/stegolab/stegano/internal/imageio"
)

type codecFlags struct {
	shuffle  bool
	seed     int64
	sentinel string
	zstd     bool
}

func (c *codecFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&c.shuffle, "shuffle", false, "Spread the payload over a seeded permutation of samples")
	fs.Int64Var(&c.seed, "seed", 1234567890, "Seed for -shuffle")
	fs.StringVar(&c.sentinel, "sentinel", string(stegano.DefaultSentinel), "End-of-payload marker")
	fs.BoolVar(&c.zstd, "zstd", false, "Compress the payload with zstd")
}

func (c *codecFlags) options() []stegano.Option {
	opts := []stegano.Option{stegano.WithSentinel([]byte(c.sentinel))}
	if c.shuffle {
		opts = append(opts, stegano.WithShuffle(c.seed))
	}
	return opts
}

func loadImage(path string) (image.Image, error) {
	img, format, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	printInfo("Loaded %s (%s, %dx%d)", path, format, img.Bounds().Dx(), img.Bounds().Dy())
	if format.Lossy() {
		printWarning("%s is %s; LSB data read from or derived from a lossy image cannot be guaranteed", path, format)
	}
	return img, nil
}

func runEmbed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("embed", flag.ContinueOnError)
	var (
		in   = fs.String("in", "", "Cover image")
		out  = fs.String("out", "", "Output image (png, bmp or tiff; default <in>_stego.png)")
		msg  = fs.String("msg", "", "Message to hide")
		file = fs.String("file", "", "File whose content to hide")
		cf   codecFlags
	)
	cf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("embed: -in is required")
	}
	if (*msg == "") == (*file == "") {
		return errors.New("embed: exactly one of -msg and -file is required")
	}
	if *out == "" {
		*out = strings.TrimSuffix(*in, filepath.Ext(*in)) + "_stego.png"
	}
	if !imageio.FormatOf(*out).Writable() {
		return fmt.Errorf("embed: %w: %s would destroy the payload; use .png, .bmp or .tiff",
			imageio.ErrUnsupportedFormat, filepath.Ext(*out))
	}

	data := []byte(*msg)
	if *file != "" {
		var err error
		if data, err = os.ReadFile(*file); err != nil {
			return err
		}
	}
	if cf.zstd {
		compressed, err := compress(data)
		if err != nil {
			return err
		}
		printInfo("Compressed payload %d -> %d bytes", len(data), len(compressed))
		data = compressed
	}

	src, err := loadImage(*in)
	if err != nil {
		return err
	}
	marked, err := stegano.Embed(ctx, src, data, cf.options()...)
	if err != nil {
		return err
	}
	if err := imageio.Save(*out, marked); err != nil {
		return err
	}
	printSuccess("Embedded %d bytes into %s", len(data), *out)
	return nil
}

func runExtract(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	var (
		in  = fs.String("in", "", "Stego image")
		out = fs.String("out", "", "Write the payload to this file instead of stdout")
		cf  codecFlags
	)
	cf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("extract: -in is required")
	}
	src, err := loadImage(*in)
	if err != nil {
		return err
	}
	data, err := stegano.Extract(ctx, src, cf.options()...)
	if err != nil {
		var nf *stegano.NotFoundError
		if errors.As(err, &nf) {
			printWarning("No payload found: read %d bytes without meeting the sentinel", len(nf.Partial))
			return notFound{err}
		}
		return err
	}
	if cf.zstd {
		if data, err = decompress(data); err != nil {
			return err
		}
	}
	if *out != "" {
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			return err
		}
		printSuccess("Extracted %d bytes to %s", len(data), *out)
		return nil
	}
	printSuccess("Extracted %d bytes:", len(data))
	fmt.Fprintf(stdout, "%s\n", data)
	return nil
}

func runCapacity(args []string) error {
	fs := flag.NewFlagSet("capacity", flag.ContinueOnError)
	var (
		in = fs.String("in", "", "Cover image")
		cf codecFlags
	)
	cf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("capacity: -in is required")
	}
	src, err := loadImage(*in)
	if err != nil {
		return err
	}
	s, err := stegano.New(cf.options()...)
	if err != nil {
		return err
	}
	n, err := s.Capacity(src)
	if err != nil {
		return err
	}
	printSuccess("Capacity: %d payload bytes", n)
	return nil
}

type notFound struct{ error }

func (notFound) ExitCode() int { return 2 }

func (n notFound) Unwrap() error { return n.error }

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}
	return out, nil
}
