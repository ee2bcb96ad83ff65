package rankcheck

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/standings/pkg/logger"
	"github.com/okian/standings/pkg/ranking"
)

// Run executes the complete rank check against a running server and
// returns the collected statistics. The error is non-nil when the server
// is unreachable or any board fails a check.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	dir, _ := config.direction()

	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting rank check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("batches", config.Batches),
		logger.Int("batchSize", config.BatchSize),
		logger.Int("workers", config.Workers),
		logger.Float64("rps", config.RPS),
		logger.String("timeout", config.Timeout.String()),
		logger.String("direction", dir.String()),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate batches
	batches, err := generateBatches(ctx, config, stats)
	if err != nil {
		return stats, fmt.Errorf("batch generation failed: %w", err)
	}

	// Step 3: Submit and check concurrently
	runErr := submitBatches(ctx, config, dir, batches, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if runErr != nil {
		return stats, runErr
	}
	logger.Get().Info(ctx, "rank check passed")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout, 0, 1)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// submitBatches fans batches out to workers. Each worker submits a batch,
// checks the board, then resubmits the board's results shuffled and
// confirms every name keeps its rank.
func submitBatches(ctx context.Context, config *Config, dir ranking.Direction, batches [][]Result, stats *Stats) error {
	client := newHTTPClient(config.Timeout, config.RPS, config.Workers)
	url := config.BaseURL + "/leaderboard"

	var (
		submitted  atomic.Int64
		passed     atomic.Int64
		failed     atomic.Int64
		violations atomic.Int64
		unstable   atomic.Int64
		ranked     atomic.Int64

		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if len(errs) < maxReported {
			errs = append(errs, err)
		}
	}

	batchChan := make(chan []Result, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batchChan {
				if ctx.Err() != nil {
					continue
				}
				req := request{Scale: "numeric", Direction: dir.String(), Results: batch}

				submitted.Add(1)
				first, err := submitBoard(ctx, client, url, req)
				if err != nil {
					failed.Add(1)
					record(err)
					continue
				}
				ranked.Add(int64(len(first.Entries)))

				if err := checkBoard(first, dir, len(batch)); err != nil {
					violations.Add(1)
					record(err)
					continue
				}

				req.Results = shuffled(resultsOf(first.Entries))
				submitted.Add(1)
				second, err := submitBoard(ctx, client, url, req)
				if err != nil {
					failed.Add(1)
					record(err)
					continue
				}
				if err := sameRanks(first.Entries, second.Entries); err != nil {
					unstable.Add(1)
					record(err)
					continue
				}

				passed.Add(1)
				if config.Verbose {
					logger.Get().Debug(ctx, "board checked",
						logger.Int("entries", len(first.Entries)),
						logger.Int("progress", int(passed.Load())))
				}
			}
		}()
	}

	go func() {
		defer close(batchChan)
		for _, batch := range batches {
			select {
			case <-ctx.Done():
				return
			case batchChan <- batch:
			}
		}
	}()

	wg.Wait()

	stats.RequestsSubmitted = int(submitted.Load())
	stats.BatchesPassed = int(passed.Load())
	stats.BatchesFailed = int(failed.Load())
	stats.Violations = int(violations.Load())
	stats.Unstable = int(unstable.Load())
	stats.EntriesRanked = int(ranked.Load())

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// checkBoard runs Check and confirms the board echoes the request shape.
func checkBoard(b board, dir ranking.Direction, size int) error {
	var errs []error
	if len(b.Entries) != size {
		errs = append(errs, fmt.Errorf("%w: %d results submitted, %d ranked", ErrViolation, size, len(b.Entries)))
	}
	if b.Direction != dir.String() {
		errs = append(errs, fmt.Errorf("%w: direction %q, want %q", ErrViolation, b.Direction, dir))
	}
	if err := Check(b.Entries, dir); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func resultsOf(entries []Entry) []Result {
	results := make([]Result, len(entries))
	for i, e := range entries {
		results[i] = Result{Name: e.Name, Score: e.Score}
	}
	return results
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var passRate, boardsPerSecond float64

	if stats.BatchesGenerated > 0 {
		passRate = float64(stats.BatchesPassed) / float64(stats.BatchesGenerated) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		boardsPerSecond = float64(stats.RequestsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("batchesGenerated", stats.BatchesGenerated),
		logger.Int("requestsSubmitted", stats.RequestsSubmitted),
		logger.Int("batchesPassed", stats.BatchesPassed),
		logger.Int("batchesFailed", stats.BatchesFailed),
		logger.Int("violations", stats.Violations),
		logger.Int("unstable", stats.Unstable),
		logger.Int("entriesRanked", stats.EntriesRanked),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("passRate", passRate),
		logger.Float64("requestsPerSecond", boardsPerSecond))
}
