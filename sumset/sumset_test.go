package sumset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bsetsearch/bigint"
	"github.com/katalvlaran/bsetsearch/sumset"
)

// allSubsetSumsDistinct brute-force verifies the B-property directly against
// 2^len(elements) subset sums, independent of either oracle implementation.
func allSubsetSumsDistinct(t *testing.T, elements []bigint.Int) bool {
	t.Helper()
	k := len(elements)
	seen := make(map[string]bool, 1<<uint(k))
	for mask := 0; mask < 1<<uint(k); mask++ {
		var sum bigint.Int
		for i := 0; i < k; i++ {
			if mask&(1<<uint(i)) != 0 {
				sum = bigint.Add(sum, elements[i])
			}
		}
		key := sum.String()
		if seen[key] {
			return false
		}
		seen[key] = true
	}

	return true
}

func mk(vals ...uint64) []bigint.Int {
	out := make([]bigint.Int, len(vals))
	for i, v := range vals {
		out[i] = bigint.FromUint64(v)
	}

	return out
}

func newOracles(n int) map[string]sumset.Oracle {
	return map[string]sumset.Oracle{
		"indexed":    sumset.NewIndexed(n),
		"exhaustive": sumset.NewExhaustive(n),
	}
}

// TestOracle_AdmissibilitySoundness implements spec property 1: after any
// sequence of successful TryPush/Pop ops, all subset sums of the current
// elements are pairwise distinct.
func TestOracle_AdmissibilitySoundness(t *testing.T) {
	trace := []uint64{1, 2, 4, 8, 100, 3}
	for name, oracle := range newOracles(8) {
		t.Run(name, func(t *testing.T) {
			var accepted []bigint.Int
			for _, v := range trace {
				x := bigint.FromUint64(v)
				if oracle.TryPush(x) {
					accepted = append(accepted, x)
					assert.True(t, allSubsetSumsDistinct(t, accepted), "B-property violated after accepting %v", v)
				}
			}
		})
	}
}

// TestOracle_AdmissibilityCompleteness implements spec property 2: Indexed and
// Exhaustive must agree on every push in a shared increasing trace.
func TestOracle_AdmissibilityCompleteness(t *testing.T) {
	trace := []uint64{1, 2, 3, 4, 5, 6, 7, 11, 12, 13}
	idx := sumset.NewIndexed(len(trace))
	exh := sumset.NewExhaustive(len(trace))

	for _, v := range trace {
		x := bigint.FromUint64(v)
		gotIdx := idx.TryPush(x)
		gotExh := exh.TryPush(x)
		assert.Equal(t, gotIdx, gotExh, "oracles disagree on pushing %v", v)
	}
}

// TestOracle_UndoIsExact implements spec property 3: Push then Pop restores
// an observationally identical state (same Len, same Get(i) for all i).
func TestOracle_UndoIsExact(t *testing.T) {
	for name, oracle := range newOracles(8) {
		t.Run(name, func(t *testing.T) {
			for _, v := range []uint64{1, 2, 4, 8} {
				require.True(t, oracle.TryPush(bigint.FromUint64(v)))
			}
			before := oracle.Snapshot(nil)
			beforeLen := oracle.Len()

			require.True(t, oracle.TryPush(bigint.FromUint64(100)))
			oracle.Pop()

			assert.Equal(t, beforeLen, oracle.Len())
			after := oracle.Snapshot(nil)
			require.Equal(t, len(before), len(after))
			for i := range before {
				assert.Equal(t, 0, bigint.Cmp(before[i], after[i]))
			}

			if io, ok := oracle.(*sumset.IndexedOracle); ok {
				sumsBefore := io.SumCount()
				require.True(t, io.TryPush(bigint.FromUint64(200)))
				io.Pop()
				assert.Equal(t, sumsBefore, io.SumCount())
			}
		})
	}
}

// TestOracle_MonotoneLengths implements spec property 4.
func TestOracle_MonotoneLengths(t *testing.T) {
	for name, oracle := range newOracles(8) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 0, oracle.Len())
			require.True(t, oracle.TryPush(bigint.FromUint64(1)))
			assert.Equal(t, 1, oracle.Len())
			require.True(t, oracle.TryPush(bigint.FromUint64(2)))
			assert.Equal(t, 2, oracle.Len())
			oracle.Pop()
			assert.Equal(t, 1, oracle.Len())
			oracle.Reset()
			assert.Equal(t, 0, oracle.Len())
		})
	}
}

func TestIndexedOracle_SumSetSizeMatchesPowerOfTwoMinusOne(t *testing.T) {
	idx := sumset.NewIndexed(4)
	vals := []uint64{1, 2, 4, 8}
	for i, v := range vals {
		require.True(t, idx.TryPush(bigint.FromUint64(v)))
		want := (1 << uint(i+1)) - 1
		assert.Equal(t, want, idx.SumCount())
	}
}

func TestIndexedOracle_RejectsDuplicateElement(t *testing.T) {
	idx := sumset.NewIndexed(4)
	require.True(t, idx.TryPush(bigint.FromUint64(5)))
	assert.False(t, idx.TryPush(bigint.FromUint64(5)))
}

func TestIndexedOracle_RejectsCompletionCollision(t *testing.T) {
	// {1, 2, 4} is a valid B-set; appending 3 collides (1+2 == 3).
	idx := sumset.NewIndexed(4)
	require.True(t, idx.TryPush(bigint.FromUint64(1)))
	require.True(t, idx.TryPush(bigint.FromUint64(2)))
	assert.False(t, idx.TryPush(bigint.FromUint64(3)))
	require.True(t, idx.TryPush(bigint.FromUint64(4)))
}

func TestExhaustiveOracle_AgreesWithIndexedOnKnownOptimum(t *testing.T) {
	// N=4 optimum witness from spec.md §8.
	set := mk(3, 5, 6, 7)
	idx := sumset.NewIndexed(4)
	exh := sumset.NewExhaustive(4)
	for _, v := range set {
		require.True(t, idx.TryPush(v))
		require.True(t, exh.TryPush(v))
	}
}

func TestExhaustiveOracle_OversizedGuardIsDistinctFromCollision(t *testing.T) {
	exh := sumset.NewExhaustive(1)
	// Pushing past MaxExhaustiveN is impractical here; instead check that
	// neither an accepted push nor a collision rejection sets Oversized.
	require.True(t, exh.TryPush(bigint.FromUint64(1)))
	assert.False(t, exh.Oversized())
	assert.False(t, exh.TryPush(bigint.FromUint64(1)))
	assert.False(t, exh.Oversized())
}

func TestOracle_Get_ReturnsInsertionOrder(t *testing.T) {
	for name, oracle := range newOracles(4) {
		t.Run(name, func(t *testing.T) {
			require.True(t, oracle.TryPush(bigint.FromUint64(1)))
			require.True(t, oracle.TryPush(bigint.FromUint64(5)))
			require.True(t, oracle.TryPush(bigint.FromUint64(11)))
			assert.Equal(t, uint64(1), oracle.Get(0).Uint64())
			assert.Equal(t, uint64(5), oracle.Get(1).Uint64())
			assert.Equal(t, uint64(11), oracle.Get(2).Uint64())
		})
	}
}

func TestSelect_AutoPicksIndexedBelowThresholdAndExhaustiveAbove(t *testing.T) {
	o, downgraded := sumset.Select(sumset.Auto, 10)
	assert.False(t, downgraded)
	_, isIndexed := o.(*sumset.IndexedOracle)
	assert.True(t, isIndexed)

	o, downgraded = sumset.Select(sumset.Auto, 30)
	assert.False(t, downgraded)
	_, isExhaustive := o.(*sumset.ExhaustiveOracle)
	assert.True(t, isExhaustive)
}

func TestSelect_ExplicitIndexedDowngradesAboveThreshold(t *testing.T) {
	o, downgraded := sumset.Select(sumset.Indexed, sumset.IndexedMaxN+5)
	assert.True(t, downgraded)
	_, isExhaustive := o.(*sumset.ExhaustiveOracle)
	assert.True(t, isExhaustive)
}
