package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"exp/internal/db"
	"exp/internal/images"

	"github.com/stegolab/stegano"
)

// rscurve embeds random text at increasing shares of capacity into a set of
// covers, runs RS analysis on every stego image and stores the reports. The
// averaged curves are rendered as an HTML line chart.

type cover struct {
	id   int64
	name string
	img  image.Image
}

func main() {
	var (
		dbPath   = flag.String("db", "/tmp/rscurve/rscurve.db", "Path to database file")
		outDir   = flag.String("out", "/tmp/rscurve", "Directory for the chart")
		coverDir = flag.String("covers", "", "Directory of cover images; synthetic covers are used when empty")
		width    = flag.Int("w", 256, "Cover width")
		height   = flag.Int("h", 192, "Cover height")
		seeds    = flag.Int("n", 4, "Synthetic covers per kind")
		step     = flag.Int("step", 10, "Rate step in percent of capacity")
		channel  = flag.String("channel", "red", "Channel to analyze: red, green or blue")
		shuffle  = flag.Bool("shuffle", false, "Embed along a seeded permutation instead of raster order")
		seed     = flag.Int64("seed", 1234567890, "Seed for -shuffle")
		chart    = flag.Bool("chart-only", false, "Skip the experiment and render the stored results")
	)
	flag.Parse()

	if *step <= 0 || *step > 100 {
		log.Fatalf("step must be in 1..100, got %d", *step)
	}
	ch, err := parseChannel(*channel)
	if err != nil {
		log.Fatal(err)
	}
	opts := []stegano.Option{stegano.WithChannel(ch)}
	strategy := stegano.Strategy(stegano.Sequential{})
	if *shuffle {
		strategy = stegano.Shuffled(*seed)
	}
	opts = append(opts, stegano.WithStrategy(strategy))

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()
	log.Printf("Database initialized: %s\n", *dbPath)

	if !*chart {
		covers, err := loadCovers(database, *coverDir, *width, *height, *seeds)
		if err != nil {
			log.Fatalf("Failed to prepare covers: %v", err)
		}
		var rates []float64
		for p := 0; p <= 100; p += *step {
			rates = append(rates, float64(p)/100)
		}
		log.Printf("Running %d covers x %d rates (channel=%s, strategy=%s)\n",
			len(covers), len(rates), ch, strategy.Name())

		results := run(context.Background(), covers, rates, ch, strategy.Name(), opts)
		if err := database.InsertResults(results); err != nil {
			log.Fatalf("Failed to store results: %v", err)
		}
		log.Printf("Stored %d results\n", len(results))
	}

	curve, err := database.RateCurve(ch.String(), strategy.Name())
	if err != nil {
		log.Fatalf("Failed to query rate curve: %v", err)
	}
	if len(curve) == 0 {
		log.Fatal("No results to render")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	outputPath := filepath.Join(*outDir, fmt.Sprintf("rscurve_%s_%s.html", ch, fileSafe.Replace(strategy.Name())))
	if err := renderCurve(outputPath, curve); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}
	log.Printf("Chart written: %s\n", outputPath)
}

var fileSafe = strings.NewReplacer("(", "-", ")", "")

func parseChannel(s string) (stegano.Channel, error) {
	switch strings.ToLower(s) {
	case "r", "red":
		return stegano.Red, nil
	case "g", "green":
		return stegano.Green, nil
	case "b", "blue":
		return stegano.Blue, nil
	}
	return 0, fmt.Errorf("unknown channel %q", s)
}

func loadCovers(database *db.DB, dir string, width, height, perKind int) ([]cover, error) {
	var covers []cover
	if dir != "" {
		paths, err := images.ListDir(dir)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			img, err := images.LoadWithSize(path, width, height)
			if err != nil {
				log.Printf("Skipping %s: %v", path, err)
				continue
			}
			name := filepath.Base(path)
			id, err := database.InsertCover(name, path, width, height)
			if err != nil {
				return nil, err
			}
			covers = append(covers, cover{id: id, name: name, img: img})
		}
		return covers, nil
	}

	for _, kind := range images.Kinds {
		for i := range perKind {
			img, err := images.Synthetic(kind, width, height, int64(i))
			if err != nil {
				return nil, err
			}
			name := fmt.Sprintf("%s-%d", kind, i)
			id, err := database.InsertCover(name, "synthetic", width, height)
			if err != nil {
				return nil, err
			}
			covers = append(covers, cover{id: id, name: name, img: img})
		}
	}
	return covers, nil
}
