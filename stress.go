// Ownership operations promise more than functional correctness: the counts
// must stay exact under arbitrary interleavings of Clone, Drop, Downgrade
// and Promote from independent goroutines, and the finalizer must fire
// exactly once no matter which goroutine loses the race. The stress harness
// exists to hold that promise under real contention rather than in
// single-goroutine unit tests.
//
// The harness runs an Operation at a ladder of concurrency levels and
// reports throughput and latency percentiles per level. The interesting
// output is usually not the numbers but the absence of panics, count
// underflows, and double finalizations while they were produced.
package refbench

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// Operation is one unit of stress work. Implementations must be safe for
// concurrent execution and should return an error only for an invariant
// violation; errors abort the whole run.
type Operation func(ctx context.Context) error

// StressConfig controls stress execution.
type StressConfig struct {
	Duration time.Duration // How long to run at each concurrency level
	Warmup   time.Duration // Warmup period before measurement
	Levels   []int         // Concurrency levels to test
}

// DefaultStressConfig returns levels that cover the single-owner case and
// enough parallelism to surface count races on ordinary hardware.
func DefaultStressConfig() StressConfig {
	return StressConfig{
		Duration: 500 * time.Millisecond,
		Warmup:   100 * time.Millisecond,
		Levels:   []int{1, 2, 4, 8},
	}
}

// StressResult contains measurements from a single concurrency level.
type StressResult struct {
	N          int             // Number of concurrent workers
	Duration   time.Duration   // Total measured duration
	Operations int64           // Total operations completed
	Throughput float64         // Operations per second
	Latencies  []time.Duration // Individual operation latencies (for percentiles)
}

// Statistics contains percentile latency data for one stress level.
type Statistics struct {
	Mean   time.Duration
	Stddev time.Duration
	P50    time.Duration
	P95    time.Duration
	P99    time.Duration
}

// RunStress executes op at each configured concurrency level.
// The first invariant violation reported by op aborts the run.
func RunStress(ctx context.Context, op Operation, cfg StressConfig) ([]StressResult, error) {
	results := make([]StressResult, 0, len(cfg.Levels))

	for _, n := range cfg.Levels {
		result, err := runStressLevel(ctx, op, n, cfg)
		if err != nil {
			return nil, fmt.Errorf("stress failed at N=%d: %w", n, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// runStressLevel executes op with n concurrent workers: warmup, then a
// measured phase.
func runStressLevel(ctx context.Context, op Operation, n int, cfg StressConfig) (StressResult, error) {
	if cfg.Warmup > 0 {
		warmupCtx, cancel := context.WithTimeout(ctx, cfg.Warmup)
		_, err := runStressPhase(warmupCtx, op, n)
		cancel()
		if err != nil {
			return StressResult{}, err
		}
	}

	measureCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	return runStressPhase(measureCtx, op, n)
}

// runStressPhase drives n workers against op until the context expires.
func runStressPhase(ctx context.Context, op Operation, n int) (StressResult, error) {
	var operations atomic.Int64
	latencies := make([][]time.Duration, n) // Per-worker latency slices

	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		workerID := i
		latencies[workerID] = make([]time.Duration, 0, 1024)

		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				default:
					opStart := time.Now()
					if err := op(gctx); err != nil {
						return fmt.Errorf("worker %d: %w", workerID, err)
					}
					operations.Inc()
					latencies[workerID] = append(latencies[workerID], time.Since(opStart))
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return StressResult{}, err
	}
	elapsed := time.Since(start)

	// Merge latencies from all workers
	total := operations.Load()
	allLatencies := make([]time.Duration, 0, total)
	for _, workerLatencies := range latencies {
		allLatencies = append(allLatencies, workerLatencies...)
	}

	return StressResult{
		N:          n,
		Duration:   elapsed,
		Operations: total,
		Throughput: float64(total) / elapsed.Seconds(),
		Latencies:  allLatencies,
	}, nil
}

// Stats summarizes the level's merged latency samples. The zero Statistics
// is returned when the level recorded no operations.
func (r StressResult) Stats() Statistics {
	n := len(r.Latencies)
	if n == 0 {
		return Statistics{}
	}

	sorted := slices.Clone(r.Latencies)
	slices.Sort(sorted)

	var sum time.Duration
	for _, lat := range sorted {
		sum += lat
	}
	mean := sum / time.Duration(n)

	var variance float64
	for _, lat := range sorted {
		d := float64(lat - mean)
		variance += d * d
	}

	pct := func(p int) time.Duration { return sorted[n*p/100] }
	return Statistics{
		Mean:   mean,
		Stddev: time.Duration(math.Sqrt(variance / float64(n))),
		P50:    pct(50),
		P95:    pct(95),
		P99:    pct(99),
	}
}

// ChurnOp builds an Operation that walks one cell through its whole
// lifecycle: allocate, clone, downgrade, drop every owner, then verify the
// weak handle observes a dead cell. finalized is incremented once per cycle
// by the cell's finalizer, so after a run it must equal the operation count.
//
// The returned Operation reports an invariant violation as an error:
// unexpected counts, a promotion succeeding after death, or expiry
// observed while owners remain.
func ChurnOp[T any](a *Arena[T], value func() T, clones int, finalized *atomic.Int64) Operation {
	return func(ctx context.Context) error {
		s := a.Alloc(value(), func(T) { finalized.Inc() })

		owners := make([]Strong[T], 0, clones)
		for i := 0; i < clones; i++ {
			owners = append(owners, s.Clone())
		}
		if got, want := s.StrongCount(), int64(1+clones); got != want {
			return fmt.Errorf("strong count after %d clones = %d, want %d", clones, got, want)
		}

		w := s.Downgrade()
		if w.Expired() {
			return fmt.Errorf("weak handle expired while %d owners remain", 1+clones)
		}

		// A mid-life promotion must succeed and must not disturb lifetime.
		p, ok := w.Promote()
		if !ok {
			return fmt.Errorf("promotion denied on a live cell")
		}
		p.Drop()

		for i := range owners {
			owners[i].Drop()
		}
		s.Drop()

		if !w.Expired() {
			return fmt.Errorf("weak handle still live after all owners dropped")
		}
		if _, ok := w.Promote(); ok {
			return fmt.Errorf("promotion succeeded on a dead cell")
		}
		w.Drop()
		return nil
	}
}

// ContendOp builds an Operation that hammers a single shared cell: promote
// the shared weak handle, briefly hold the promoted owner, drop it. Run at
// high concurrency this contends Promote's compare-and-swap against
// concurrent Drops on the same count, while the anchor handle keeps the
// cell live for the duration of the run.
func ContendOp[T any](w Weak[T]) Operation {
	return func(ctx context.Context) error {
		s, ok := w.Promote()
		if !ok {
			return fmt.Errorf("promotion denied while anchor owner is live")
		}
		_ = s.Get()
		s.Drop()
		return nil
	}
}
