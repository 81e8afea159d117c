package search_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bsetsearch/bigint"
	"github.com/katalvlaran/bsetsearch/search"
	"github.com/katalvlaran/bsetsearch/sumset"
)

func mkU64(vals ...uint64) []uint64 {
	return vals
}

func solutionAsUint64(sol []bigint.Int) []uint64 {
	out := make([]uint64, len(sol))
	for i, v := range sol {
		out[i] = v.Uint64()
	}
	return out
}

// allSubsetSumsDistinct is the brute-force oracle used to validate engine
// output independently of the sumset package.
func allSubsetSumsDistinct(t *testing.T, vals []uint64) bool {
	t.Helper()
	n := len(vals)
	seen := make(map[uint64]bool, 1<<uint(n))
	for mask := 0; mask < (1 << uint(n)); mask++ {
		var sum uint64
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				sum += vals[i]
			}
		}
		if seen[sum] {
			return false
		}
		seen[sum] = true
	}
	return true
}

func TestEngine_N1(t *testing.T) {
	eng := search.New(search.DefaultConfig(1))
	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.StatusOptimal, res.Status)
	assert.Equal(t, uint64(1), res.MaxValue.Uint64())
	assert.Equal(t, mkU64(1), solutionAsUint64(res.Solution))
}

func TestEngine_N2(t *testing.T) {
	eng := search.New(search.DefaultConfig(2))
	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.StatusOptimal, res.Status)
	assert.Equal(t, uint64(2), res.MaxValue.Uint64())
	assert.Equal(t, mkU64(1, 2), solutionAsUint64(res.Solution))
	assert.Greater(t, res.NodesExplored, uint64(0))
}

func TestEngine_N3(t *testing.T) {
	eng := search.New(search.DefaultConfig(3))
	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.StatusOptimal, res.Status)
	assert.Equal(t, uint64(4), res.MaxValue.Uint64())
	assert.Equal(t, mkU64(1, 2, 4), solutionAsUint64(res.Solution))
}

func TestEngine_N4_FindsKnownOptimum(t *testing.T) {
	eng := search.New(search.DefaultConfig(4))
	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.StatusOptimal, res.Status)
	assert.Equal(t, uint64(7), res.MaxValue.Uint64())
	assert.True(t, allSubsetSumsDistinct(t, solutionAsUint64(res.Solution)))
}

func TestEngine_N4_FindAllOptima_MatchesUniqueKnownOptimum(t *testing.T) {
	// N=4's optimum max=7 is witnessed uniquely by {3,5,6,7}; there is no
	// second length-4 B-set with max=7, so the all-optima list must contain
	// exactly that one sequence.
	cfg := search.DefaultConfig(4)
	cfg.FindAllOptima = true
	eng := search.New(cfg)
	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.StatusOptimal, res.Status)
	assert.Equal(t, uint64(7), res.MaxValue.Uint64())

	require.Len(t, res.Optima, 1)
	assert.Equal(t, mkU64(3, 5, 6, 7), solutionAsUint64(res.Optima[0]))
	for _, opt := range res.Optima {
		assert.True(t, allSubsetSumsDistinct(t, solutionAsUint64(opt)))
	}
}

// naiveBSequenceOptima brute-force-enumerates every strictly-increasing
// length-n sequence of values in [1, maxValue] satisfying the B-property,
// and returns only those whose last element equals maxValue — the
// independent ground truth spec §8 property 7 is checked against.
func naiveBSequenceOptima(n int, maxValue uint64) [][]uint64 {
	var out [][]uint64
	prefix := make([]uint64, 0, n)

	var rec func(next uint64)
	rec = func(next uint64) {
		if uint64(len(prefix)) == uint64(n) {
			if prefix[len(prefix)-1] == maxValue {
				cp := make([]uint64, len(prefix))
				copy(cp, prefix)
				out = append(out, cp)
			}

			return
		}
		remaining := n - len(prefix) - 1
		for v := next; v+uint64(remaining) <= maxValue; v++ {
			prefix = append(prefix, v)
			if bSequenceSound(prefix) {
				rec(v + 1)
			}
			prefix = prefix[:len(prefix)-1]
		}
	}
	rec(1)

	return out
}

// bSequenceSound reports whether every two distinct subsets of vals have
// distinct sums.
func bSequenceSound(vals []uint64) bool {
	n := len(vals)
	seen := make(map[uint64]bool, 1<<uint(n))
	for mask := 0; mask < (1 << uint(n)); mask++ {
		var sum uint64
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				sum += vals[i]
			}
		}
		if seen[sum] {
			return false
		}
		seen[sum] = true
	}

	return true
}

func TestEngine_N5_FindAllOptima_IsCompleteAgainstNaiveEnumeration(t *testing.T) {
	cfg := search.DefaultConfig(5)
	cfg.FindAllOptima = true
	eng := search.New(cfg)
	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.StatusOptimal, res.Status)
	assert.Equal(t, uint64(13), res.MaxValue.Uint64())

	got := make(map[string]bool, len(res.Optima))
	for _, opt := range res.Optima {
		got[fmt.Sprint(solutionAsUint64(opt))] = true
	}

	// Known witnesses from spec.md §8/§9: two distinct length-5 B-sets share
	// the optimal max=13.
	assert.True(t, got[fmt.Sprint(mkU64(3, 6, 11, 12, 13))], "missing witness {3,6,11,12,13}")
	assert.True(t, got[fmt.Sprint(mkU64(6, 9, 11, 12, 13))], "missing witness {6,9,11,12,13}")

	want := naiveBSequenceOptima(5, 13)
	require.Equal(t, len(want), len(res.Optima), "all-optima list must match naive enumeration exactly (completeness, spec §8 property 7)")
	for _, w := range want {
		assert.True(t, got[fmt.Sprint(w)], "naive enumeration found %v but engine's optima list did not", w)
	}
}

func TestEngine_N5_MatchesKnownOptimum(t *testing.T) {
	eng := search.New(search.DefaultConfig(5))
	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.StatusOptimal, res.Status)
	assert.Equal(t, uint64(13), res.MaxValue.Uint64())
	assert.True(t, allSubsetSumsDistinct(t, solutionAsUint64(res.Solution)))
}

func TestEngine_N6_MatchesKnownOptimum(t *testing.T) {
	eng := search.New(search.DefaultConfig(6))
	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.StatusOptimal, res.Status)
	assert.Equal(t, uint64(24), res.MaxValue.Uint64())
	assert.True(t, allSubsetSumsDistinct(t, solutionAsUint64(res.Solution)))
}

func TestEngine_ExplicitOracleKindsAgree(t *testing.T) {
	for _, kind := range []sumset.Kind{sumset.Indexed, sumset.Exhaustive} {
		cfg := search.DefaultConfig(4)
		cfg.OracleKind = kind
		eng := search.New(cfg)
		res, err := eng.Solve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, uint64(7), res.MaxValue.Uint64(), "oracle kind %v", kind)
	}
}

func TestEngine_FirstOnly_ReportsFeasibleNotOptimal(t *testing.T) {
	cfg := search.DefaultConfig(4)
	cfg.FirstOnly = true
	eng := search.New(cfg)
	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.StatusFeasible, res.Status)
	assert.True(t, allSubsetSumsDistinct(t, solutionAsUint64(res.Solution)))
}

func TestEngine_TooTightBound_ReportsNoSolution(t *testing.T) {
	cfg := search.DefaultConfig(4)
	cfg.InitialBound = bigint.FromUint64(4) // below the true optimum of 7
	eng := search.New(cfg)
	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.StatusNoSolution, res.Status)
}

func TestEngine_CanceledContext_ReportsInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := search.New(search.DefaultConfig(6))
	res, err := eng.Solve(ctx)
	require.NoError(t, err)
	assert.Equal(t, search.StatusInterrupted, res.Status)
}

func TestEngine_DeadlineExceeded_ReportsTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	eng := search.New(search.DefaultConfig(6))
	res, err := eng.Solve(ctx)
	require.NoError(t, err)
	assert.Equal(t, search.StatusTimeout, res.Status)
}

func TestEngine_InvalidTargetN_ReturnsError(t *testing.T) {
	eng := search.New(search.Config{TargetN: 0})
	_, err := eng.Solve(context.Background())
	assert.ErrorIs(t, err, search.ErrInvalidTargetN)
}

func TestEngine_OnSolutionCallbackFires(t *testing.T) {
	var solutionCalls int
	cfg := search.DefaultConfig(5)
	cfg.OnSolution = func(_ []bigint.Int, _ bigint.Int) { solutionCalls++ }
	eng := search.New(cfg)
	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.StatusOptimal, res.Status)
	assert.Greater(t, solutionCalls, 0)
}
