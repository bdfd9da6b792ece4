package main

import (
	"context"
	"database/sql"
	"log"
	"runtime"
	"sync"

	"exp/internal/db"

	"github.com/stegolab/stegano"
	"github.com/stegolab/stegano/payload"
)

type task struct {
	cover cover
	batch *stegano.Batch
	rate  float64
}

// run evaluates every cover at every rate on a worker pool.
func run(ctx context.Context, covers []cover, rates []float64, ch stegano.Channel, strategy string, opts []stegano.Option) []*db.Result {
	numWorkers := runtime.GOMAXPROCS(0)
	taskCh := make(chan task, numWorkers)
	resultCh := make(chan *db.Result, numWorkers)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for range numWorkers {
		go func() {
			defer wg.Done()
			for t := range taskCh {
				r, err := evaluate(ctx, t, opts)
				if err != nil {
					log.Printf("  %s @ %.0f%%: %v", t.cover.name, t.rate*100, err)
					continue
				}
				r.Channel = ch.String()
				r.Strategy = strategy
				resultCh <- r
			}
		}()
	}

	go func() {
		defer close(taskCh)
		for _, c := range covers {
			batch, err := stegano.NewBatch(c.img)
			if err != nil {
				log.Printf("  %s: %v", c.name, err)
				continue
			}
			for _, rate := range rates {
				taskCh <- task{cover: c, batch: batch, rate: rate}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var results []*db.Result
	for r := range resultCh {
		results = append(results, r)
		if len(results)%50 == 0 {
			log.Printf("  %d results\n", len(results))
		}
	}
	return results
}

// evaluate embeds rate*capacity bytes of random text and analyzes the stego image.
// Rate zero analyzes the untouched cover.
func evaluate(ctx context.Context, t task, opts []stegano.Option) (*db.Result, error) {
	s, err := stegano.New(opts...)
	if err != nil {
		return nil, err
	}
	capacity, err := t.batch.Capacity(opts...)
	if err != nil {
		return nil, err
	}
	result := &db.Result{
		CoverID:    t.cover.id,
		TargetRate: t.rate,
	}

	var report *stegano.Report
	if t.rate == 0 {
		report, err = t.batch.Analyze(ctx, opts...)
		if err != nil {
			return nil, err
		}
		result.Recovered = true
	} else {
		n := int(float64(capacity) * t.rate)
		text, err := payload.Text(n * 8)
		if err != nil {
			return nil, err
		}
		marked, err := t.batch.Embed(ctx, text, opts...)
		if err != nil {
			return nil, err
		}
		if report, err = stegano.Analyze(ctx, marked, opts...); err != nil {
			return nil, err
		}
		extracted, err := stegano.Extract(ctx, marked, opts...)
		result.Recovered = err == nil && string(extracted) == string(text)
		result.PayloadBytes = len(text)

		samples := marked.Bounds().Dx() * marked.Bounds().Dy() * 3
		result.EmbeddedRate = float64((len(text)+len(s.Sentinel()))*8) / float64(samples)
	}

	result.Groups = report.Groups
	result.RM = report.RM
	result.SM = report.SM
	result.RNegM = report.RNegM
	result.SNegM = report.SNegM
	result.Smoothness = report.Smoothness
	verdict, err := report.Verdict.MarshalText()
	if err != nil {
		return nil, err
	}
	result.Verdict = string(verdict)
	if report.RateOK {
		result.EstimatedRate = sql.NullFloat64{Float64: report.Rate, Valid: true}
	}
	return result, nil
}
