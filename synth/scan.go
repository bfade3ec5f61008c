package synth

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/wiless/farfield"
	"github.com/wiless/farfield/element"
)

// Beam is the peak of one steering command in a scan.
type Beam struct {
	ID        int
	Steer     farfield.Steer
	Peak      float64
	PeakTheta float64
	PeakPhi   float64
}

// Scan synthesises cfg once per steering command, cfg.Steer being replaced
// by each entry, and returns the peaks in input order with the index of the
// strongest beam. Commands are independent and run on up to workers
// goroutines (GOMAXPROCS when workers <= 0). The first error cancels the
// remaining work.
func Scan(ctx context.Context, samples map[string]*element.Sample, cfg Config, steers []farfield.Steer, workers int) ([]Beam, int, error) {
	if len(steers) == 0 {
		return nil, -1, nil
	}
	if err := validQuantity(cfg.Quantity); err != nil {
		return nil, -1, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(steers) {
		workers = len(steers)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	beams := make([]Beam, len(steers))
	jobs := make(chan int)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for id := range jobs {
				c := cfg
				c.Steer = steers[id]
				r, err := Calc(samples, c)
				if err != nil {
					fail(fmt.Errorf("beam %d %v: %w", id, steers[id], err))
					continue
				}
				beams[id] = Beam{ID: id, Steer: steers[id], Peak: r.Peak, PeakTheta: r.PeakTheta, PeakPhi: r.PeakPhi}
			}
		}()
	}

feed:
	for id := range steers {
		select {
		case jobs <- id:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, -1, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, -1, err
	}

	best := 0
	for id, b := range beams {
		if b.Peak > beams[best].Peak {
			best = id
		}
	}
	log.Debugf("synth: scanned %d beams, best %d %v peak %.2f at (%.1f,%.1f)",
		len(beams), best, beams[best].Steer, beams[best].Peak, beams[best].PeakTheta, beams[best].PeakPhi)
	return beams, best, nil
}
