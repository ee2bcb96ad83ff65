package ranking_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/okian/standings/pkg/ranking"
)

func benchmarkInput(n, spread int) []ranking.ScoredEntry[float64] {
	rng := rand.New(rand.NewSource(42))
	in := make([]ranking.ScoredEntry[float64], n)
	for i := range in {
		in[i] = ranking.ScoredEntry[float64]{
			Name:  "talent_" + strconv.Itoa(i),
			Score: float64(rng.Intn(spread)),
		}
	}
	return in
}

func BenchmarkGenerateLeaderboard_1K(b *testing.B) {
	engine := ranking.New[float64]()
	in := benchmarkInput(1_000, 1_000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.GenerateLeaderboard(in)
	}
}

func BenchmarkGenerateLeaderboard_100K(b *testing.B) {
	engine := ranking.New[float64]()
	in := benchmarkInput(100_000, 100_000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.GenerateLeaderboard(in)
	}
}

func BenchmarkGenerateLeaderboard_HeavyTies(b *testing.B) {
	engine := ranking.ForLowScore[float64]()
	in := benchmarkInput(100_000, 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.GenerateLeaderboard(in)
	}
}
