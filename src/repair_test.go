package hedges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A 48-bit message under a two-run homopolymer cap whose search
// behaviour is known exactly. The encoded string's final symbol
// carries no redundancy padding, so the true hypothesis chain lands on
// precisely 48 bits and every repair below terminates quickly.
const repair_message = "000101100011111001111100000010010111111011011111"
const repair_strand = 7
const repair_encoded = "CGGACCGAACTTATAGCGCTTCCGTCT"

func repair_filter(t *testing.T) *LocalBioFilter {
	t.Helper()
	var f, err = NewLocalBioFilter(10, 2, nil, nil)
	require.NoError(t, err)
	return f
}

func TestRepairMessageEncodes(t *testing.T) {
	var dna, err = Encode(bits_of(repair_message), repair_strand, DefaultMapping(), repair_filter(t), DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, repair_encoded, dna)

	var decoded, decodeErr = Decode(dna, repair_strand, len(repair_message), DefaultMapping(), repair_filter(t), DefaultParams())
	require.NoError(t, decodeErr)
	assert.Equal(t, bits_of(repair_message), decoded)
}

func TestRepairCleanAgreement(t *testing.T) {
	// The encoder's own output must always be among the candidates.
	var candidates, size, err = Repair(repair_encoded, repair_strand, 0, len(repair_message),
		DefaultMapping(), repair_filter(t), DefaultParams(), 1000000, DefaultPenalties(), nil)
	require.NoError(t, err)
	assert.Contains(t, candidates, repair_encoded)
	assert.Len(t, candidates, 3)
	assert.Equal(t, 216, size)

	// The winning batch also carries siblings that differ from the
	// true string only in the final symbol (alternate last-bit
	// hypotheses finishing in the same batch).
	for _, c := range candidates {
		assert.Equal(t, len(repair_encoded), len(c))
		assert.Equal(t, repair_encoded[:len(repair_encoded)-1], c[:len(c)-1])
	}

	var decoded, decodeErr = Decode(repair_encoded, repair_strand, len(repair_message), DefaultMapping(), repair_filter(t), DefaultParams())
	require.NoError(t, decodeErr)
	assert.Equal(t, bits_of(repair_message), decoded)
}

func TestRepairSingleInsertion(t *testing.T) {
	var p = len(repair_encoded) / 3
	var corrupted = repair_encoded[:p] + "A" + repair_encoded[p:]

	var candidates, size, err = Repair(corrupted, repair_strand, 0, len(repair_message),
		DefaultMapping(), repair_filter(t), DefaultParams(), 1000000, DefaultPenalties(), nil)
	require.NoError(t, err)
	assert.Contains(t, candidates, repair_encoded)
	assert.Len(t, candidates, 3)
	assert.Equal(t, 475, size)
}

func TestRepairSingleDeletion(t *testing.T) {
	var p = len(repair_encoded) / 3
	var corrupted = repair_encoded[:p] + repair_encoded[p+1:]

	var candidates, size, err = Repair(corrupted, repair_strand, 0, len(repair_message),
		DefaultMapping(), repair_filter(t), DefaultParams(), 1000000, DefaultPenalties(), nil)
	require.NoError(t, err)
	assert.Contains(t, candidates, repair_encoded)
	assert.Len(t, candidates, 2)
	assert.Equal(t, 604, size)
}

func TestRepairSingleSubstitution(t *testing.T) {
	var mid = len(repair_encoded) / 2
	var replacement byte
	for _, n := range DefaultMapping() {
		if n != repair_encoded[mid] {
			replacement = n
			break
		}
	}
	var corrupted = repair_encoded[:mid] + string([]byte{replacement}) + repair_encoded[mid+1:]

	// A substitution costs a deletion plus an insertion on the winning
	// path, and on this input one hypothesis chain overshoots the
	// target bit count (47 to 49 across a four-way position) before
	// any chain lands on it exactly, so the search only stops at the
	// frontier bound. Hypotheses producing exactly the target count
	// exist by then, so this is still a successful repair, not an
	// exhausted one.
	var candidates, size, err = Repair(corrupted, repair_strand, 0, len(repair_message),
		DefaultMapping(), repair_filter(t), DefaultParams(), 50000, DefaultPenalties(), nil)
	require.NoError(t, err)
	assert.Contains(t, candidates, repair_encoded)
	assert.Equal(t, 50006, size)
	assert.Len(t, candidates, 180)
}

func TestRepairBudgetExhaustion(t *testing.T) {
	var p = len(repair_encoded) / 3
	var corrupted = repair_encoded[:p] + repair_encoded[p+1:]

	var candidates, size, err = Repair(corrupted, repair_strand, 0, len(repair_message),
		DefaultMapping(), repair_filter(t), DefaultParams(), 100, DefaultPenalties(), nil)
	require.Error(t, err)
	var exhausted *RepairBudgetExhausted
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, repair_strand, exhausted.Strand)
	assert.Empty(t, candidates)
	assert.Greater(t, size, 100)
}

func TestRepairMonitorObservesProgress(t *testing.T) {
	var calls = 0
	var last_size = 0
	var monitor Monitor = func(current int, total int, size int, score float64) {
		calls++
		last_size = size
		assert.Equal(t, len(repair_encoded), total)
	}

	var with_monitor, size, err = Repair(repair_encoded, repair_strand, 0, len(repair_message),
		DefaultMapping(), repair_filter(t), DefaultParams(), 1000000, DefaultPenalties(), monitor)
	require.NoError(t, err)
	assert.Positive(t, calls)
	assert.Equal(t, size, last_size)

	// A monitor must not change the outcome.
	var without_monitor, size2, err2 = Repair(repair_encoded, repair_strand, 0, len(repair_message),
		DefaultMapping(), repair_filter(t), DefaultParams(), 1000000, DefaultPenalties(), nil)
	require.NoError(t, err2)
	assert.Equal(t, with_monitor, without_monitor)
	assert.Equal(t, size, size2)
}

func TestRepairInitialScoreShiftsScoresOnly(t *testing.T) {
	// The initial score offsets every path equally, so the candidate
	// set is unchanged.
	var base, _, err = Repair(repair_encoded, repair_strand, 0, len(repair_message),
		DefaultMapping(), repair_filter(t), DefaultParams(), 1000000, DefaultPenalties(), nil)
	require.NoError(t, err)

	var shifted, _, err2 = Repair(repair_encoded, repair_strand, 2.5, len(repair_message),
		DefaultMapping(), repair_filter(t), DefaultParams(), 1000000, DefaultPenalties(), nil)
	require.NoError(t, err2)
	assert.Equal(t, base, shifted)
}

func TestRepairZeroBitLength(t *testing.T) {
	// The root hypothesis has already produced zero bits, so the
	// search wins immediately with the empty string.
	var candidates, _, err = Repair("ACGT", 0, 0, 0,
		DefaultMapping(), Unconstrained(), DefaultParams(), 1000, DefaultPenalties(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, candidates)
}

func TestRepairDeadSearch(t *testing.T) {
	// An oracle that blocks every extension past one symbol kills all
	// hypotheses. The search must stop with no candidates instead of
	// spinning on retired vertices.
	var oracle = OracleFunc(func(prefix string, onlyLast bool) bool {
		return len(prefix) <= 1
	})
	var candidates, size, err = Repair("ACGT", 4, 0, 8,
		DefaultMapping(), oracle, DefaultParams(), 1000, DefaultPenalties(), nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Positive(t, size)
}

func TestRepairConstraintSafety(t *testing.T) {
	// Every candidate must itself satisfy the oracle at every prefix.
	var p = len(repair_encoded) / 3
	var corrupted = repair_encoded[:p] + repair_encoded[p+1:]
	var filter = repair_filter(t)

	var candidates, _, err = Repair(corrupted, repair_strand, 0, len(repair_message),
		DefaultMapping(), filter, DefaultParams(), 1000000, DefaultPenalties(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		for i := 1; i <= len(c); i++ {
			assert.True(t, filter.Valid(c[:i], true), "candidate prefix %q violates the filter", c[:i])
		}
	}
}
