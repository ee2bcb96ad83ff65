package rankcheck

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/standings/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	performerDivisor   = 4
)

// Constants for score generation ranges.
const (
	avgPerformerMin    = 3.0
	avgPerformerRange  = 4.0
	highPerformerMin   = 7.0
	highPerformerRange = 3.0
	lowPerformerMin    = 0.0
	lowPerformerRange  = 3.0
	wideRange          = 10.0
)

// Constants for performance type cases.
const (
	caseAveragePerformer = 0
	caseHighPerformer    = 1
	caseLowPerformer     = 2
	caseWideRange        = 3
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomIndex returns a random index in [0, n).
func randomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateBatches creates the configured number of result batches.
func generateBatches(ctx context.Context, config *Config, stats *Stats) ([][]Result, error) {
	logger.Get().Info(ctx, "generating batches",
		logger.Int("batches", config.Batches),
		logger.Int("batchSize", config.BatchSize))

	batches := make([][]Result, config.Batches)
	for i := range batches {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during batch generation: %w", err)
		}
		batches[i] = generateBatch(config.BatchSize)
	}

	stats.BatchesGenerated = len(batches)
	return batches, nil
}

// generateBatch returns size uniquely named results. Scores are rounded
// to one decimal so larger batches always contain ties, and a few scores
// are copied verbatim from earlier results.
func generateBatch(size int) []Result {
	results := make([]Result, size)
	for i := range results {
		score := roundTenth(generateVariedScore())
		if i > 0 && randomIndex(performerDivisor) == 0 {
			score = results[randomIndex(i)].Score
		}
		results[i] = Result{Name: uuid.NewString(), Score: score}
	}
	return results
}

// generateVariedScore creates a score with varied distribution.
func generateVariedScore() float64 {
	switch randomIndex(performerDivisor) {
	case caseAveragePerformer:
		return avgPerformerMin + getRandomFloat()*avgPerformerRange
	case caseHighPerformer:
		return highPerformerMin + getRandomFloat()*highPerformerRange
	case caseLowPerformer:
		return lowPerformerMin + getRandomFloat()*lowPerformerRange
	case caseWideRange:
		return getRandomFloat() * wideRange
	default:
		return getRandomFloat() * wideRange
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// shuffled returns a shuffled copy of results.
func shuffled(results []Result) []Result {
	out := make([]Result, len(results))
	copy(out, results)
	for i := len(out) - 1; i > 0; i-- {
		j := randomIndex(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
