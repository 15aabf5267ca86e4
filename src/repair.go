package hedges

/*-------------------------------------------------------------
 *
 * Purpose:	Recover a message from a corrupted nucleotide string by
 *		best-first search over substitution, insertion and
 *		deletion hypotheses.
 *
 * Description:	Each vertex of the search lattice carries the state the
 *		decoder would be in after committing some hypothesis
 *		prefix: the previous-bits register, the number of
 *		message bits produced, and the nucleotide string built
 *		so far; the frontier additionally tracks how far into
 *		the received string the hypothesis has consumed and its
 *		accumulated score. Agreeing with the received symbol is
 *		rewarded (negative penalty), each edit costs a positive
 *		penalty, so the frontier minimum chases the likeliest
 *		explanation first.
 *
 *		The frontier is a set of parallel slices. Expanded
 *		vertices are retired by overwriting their score with a
 *		sentinel no live path can reach; their children are
 *		appended. All vertices tied at the minimum score are
 *		expanded as one batch, which keeps the search
 *		deterministic without a tie-breaking rule.
 *
 *		The search ends as soon as the largest bit count any
 *		hypothesis has produced equals the target exactly (a
 *		hypothesis that overshoots it does not end the search),
 *		or when the frontier outgrows the caller's bound, or
 *		when every hypothesis is retired. The winners are every
 *		vertex sitting at exactly the target count; their
 *		strings may end in a redundancy nucleotide.
 *
 *--------------------------------------------------------------*/

import (
	"bytes"
	"sort"
)

// Penalties are the additive per-edge score contributions of the
// repair search. Lower accumulated score is preferred.
type Penalties struct {
	Correct float64 // received symbol agrees with the hypothesis
	Insert  float64 // received symbol is spurious
	Delete  float64 // a transmitted symbol is missing
	Mutate  float64 // received symbol was substituted
}

// DefaultPenalties returns the published defaults. Correct is negative
// on purpose: rewarding agreement is what steers the frontier along
// the received string.
func DefaultPenalties() Penalties {
	return Penalties{Correct: -0.035, Insert: 1.0, Delete: 1.0, Mutate: 1.0}
}

// Monitor receives progress during repair: position consumed in the
// received string, its total length, the frontier size and the score
// of the batch being expanded. A nil Monitor changes nothing.
type Monitor func(current int, total int, size int, score float64)

// repair_vertex is one hypothesis: the decoder state after committing
// some prefix of edits.
type repair_vertex struct {
	prev      int64  // previous-bits register
	bit_count int    // message bits produced so far
	dna       string // nucleotide string produced so far
}

type repair_search struct {
	received  string
	mapping   Mapping
	oracle    Oracle
	salt      int64
	prev_mod  int64 // 2^prev_bits
	low_mod   int64 // 2^low_order_bits
	penalties Penalties
}

// branch_width is the number of message bits a forward step consumes
// for a given available-set size: floor(log2(k)).
func branch_width(k int) int {
	switch {
	case k >= 4:
		return 2
	case k >= 2:
		return 1
	default:
		return 0
	}
}

// expand generates the children of v under the three edit hypotheses.
// consumed is v's index into the received string; score is v's
// accumulated score. Returns parallel slices of children, their
// scores, and their consumed indices.
func (rs *repair_search) expand(v repair_vertex, consumed int, score float64) ([]repair_vertex, []float64, []int) {
	if consumed > len(rs.received)-1 {
		return nil, nil, nil
	}

	var available = available_nucleotides(v.dna, rs.mapping, rs.oracle)
	if len(available) == 0 {
		// This path is blocked; it dies here.
		return nil, nil, nil
	}

	var w = branch_width(len(available))
	var bit_index = int64(v.bit_count) % rs.low_mod

	var children []repair_vertex
	var scores []float64
	var indices []int

	// Hypothesis 1: the received symbol is in place, either correct or
	// substituted. Either way it is kept; the hypotheses differ in
	// which message bits they commit.
	var n = rs.received[consumed]
	if bytes.IndexByte(available, n) >= 0 {
		switch w {
		case 1:
			var h = hash_mix(bit_index|v.prev|rs.salt) & 1
			for b := int64(0); b < 2; b++ {
				var delta = rs.penalties.Mutate
				if available[(h+b)%2] == n {
					delta = rs.penalties.Correct
				}
				children = append(children, repair_vertex{
					prev:      (v.prev*2 + b) % rs.prev_mod,
					bit_count: v.bit_count + 1,
					dna:       extend(v.dna, n),
				})
				scores = append(scores, score+delta)
				indices = append(indices, consumed+1)
			}
		case 2:
			var h = hash_mix(bit_index|v.prev|rs.salt) & 3
			for b := int64(0); b < 4; b++ {
				var delta = rs.penalties.Mutate
				if available[(h+b)%4] == n {
					delta = rs.penalties.Correct
				}
				children = append(children, repair_vertex{
					prev:      (v.prev*4 + b) % rs.prev_mod,
					bit_count: v.bit_count + 2,
					dna:       extend(v.dna, n),
				})
				scores = append(scores, score+delta)
				indices = append(indices, consumed+1)
			}
		default: // w == 0: forced symbol, single child
			children = append(children, repair_vertex{
				prev:      v.prev,
				bit_count: v.bit_count,
				dna:       extend(v.dna, n),
			})
			scores = append(scores, score+rs.penalties.Correct)
			indices = append(indices, consumed+1)
		}
	}

	// Hypothesis 2: the received symbol is an insertion, so the true
	// current symbol is the one after it. A child exists only when the
	// committed bits actually resolve to that symbol.
	if consumed+1 < len(rs.received) {
		var next = rs.received[consumed+1]
		if bytes.IndexByte(available, next) >= 0 {
			switch w {
			case 1:
				var h = hash_mix(bit_index|v.prev|rs.salt) & 1
				for b := int64(0); b < 2; b++ {
					if available[(h+b)%2] == next {
						children = append(children, repair_vertex{
							prev:      (v.prev*2 + b) % rs.prev_mod,
							bit_count: v.bit_count + 1,
							dna:       extend(v.dna, next),
						})
						scores = append(scores, score+rs.penalties.Insert)
						indices = append(indices, consumed+2)
					}
				}
			case 2:
				var h = hash_mix(bit_index|v.prev|rs.salt) & 3
				for b := int64(0); b < 4; b++ {
					if available[(h+b)%4] == next {
						children = append(children, repair_vertex{
							prev:      (v.prev*4 + b) % rs.prev_mod,
							bit_count: v.bit_count + 2,
							dna:       extend(v.dna, next),
						})
						scores = append(scores, score+rs.penalties.Insert)
						indices = append(indices, consumed+2)
					}
				}
			default:
				children = append(children, repair_vertex{
					prev:      v.prev,
					bit_count: v.bit_count,
					dna:       extend(v.dna, next),
				})
				scores = append(scores, score+rs.penalties.Insert)
				indices = append(indices, consumed+2)
			}
		}
	}

	// Hypothesis 3: a transmitted symbol was deleted before the
	// received one, so a symbol is produced without consuming input.
	switch w {
	case 1:
		var h = hash_mix(bit_index|v.prev|rs.salt) & 1
		for b := int64(0); b < 2; b++ {
			children = append(children, repair_vertex{
				prev:      (v.prev*2 + b) % rs.prev_mod,
				bit_count: v.bit_count + 1,
				dna:       extend(v.dna, available[(h+b)%2]),
			})
			scores = append(scores, score+rs.penalties.Delete)
			indices = append(indices, consumed)
		}
	case 2:
		var h = hash_mix(bit_index|v.prev|rs.salt) & 3
		for b := int64(0); b < 4; b++ {
			// Historic quirk kept for wire compatibility: the symbol
			// is resolved from the high message bit alone, not from
			// the full 2-bit value.
			children = append(children, repair_vertex{
				prev:      (v.prev*4 + b) % rs.prev_mod,
				bit_count: v.bit_count + 2,
				dna:       extend(v.dna, available[(h+(b>>1))%4]),
			})
			scores = append(scores, score+rs.penalties.Delete)
			indices = append(indices, consumed)
		}
	default: // w == 0: any available symbol may have been deleted
		for _, d := range available {
			children = append(children, repair_vertex{
				prev:      v.prev,
				bit_count: v.bit_count,
				dna:       extend(v.dna, d),
			})
			scores = append(scores, score+rs.penalties.Delete)
			indices = append(indices, consumed)
		}
	}

	return children, scores, indices
}

// Repair searches for messages whose encoding explains the received
// string under substitution/insertion/deletion edits. It returns the
// deduplicated, sorted strings of every hypothesis that produced
// exactly bitLength message bits when the search stopped, together
// with the final frontier size. When the frontier exceeded heapLimit
// before any hypothesis finished, the error is RepairBudgetExhausted
// and the (empty) candidate list is still returned.
func Repair(dna string, strandIndex int, initialScore float64, bitLength int,
	mapping Mapping, oracle Oracle, params Params, heapLimit int,
	penalties Penalties, monitor Monitor) ([]string, int, error) {

	if err := params.check(); err != nil {
		return nil, 0, err
	}
	if err := mapping.check(); err != nil {
		return nil, 0, err
	}

	var rs = &repair_search{
		received:  dna,
		mapping:   mapping,
		oracle:    oracle,
		salt:      int64(strandIndex) % (1 << params.SaltBits),
		prev_mod:  1 << params.PrevBits,
		low_mod:   1 << params.LowOrderBits,
		penalties: penalties,
	}

	// Parallel frontier slices. Nothing is ever removed: expansion
	// retires a vertex by overwriting its score with a sentinel that
	// exceeds any reachable live score.
	var vertices = []repair_vertex{{prev: 0, bit_count: 0, dna: ""}}
	var scores = []float64{initialScore}
	var consumed = []int{0}
	var lengths = []int{0}
	var max_length = 0
	var retired = float64(len(dna))

	for {
		var min_score = scores[0]
		for _, s := range scores[1:] {
			if s < min_score {
				min_score = s
			}
		}
		var batch []int
		for i, s := range scores {
			if s == min_score {
				batch = append(batch, i)
			}
		}

		// Every hypothesis is retired: the search is dead (the oracle
		// blocked every path). Stop rather than reselecting the same
		// retired vertices forever.
		var finished = min_score == retired && len(batch) == len(scores)
		if finished {
			batch = nil
		}
		for _, c := range batch {
			var v, base = vertices[c], consumed[c]
			scores[c] = retired
			var cv, cs, ci = rs.expand(v, base, min_score)

			if monitor != nil {
				monitor(base, len(dna), len(vertices), min_score)
			}

			// The checks run before this vertex's children join the
			// frontier: the first chain of hypotheses to produce the
			// full message wins, and a mid-batch stop leaves the rest
			// of the batch unexpanded.
			if bitLength == max_length || len(vertices) > heapLimit {
				finished = true
				break
			}

			vertices = append(vertices, cv...)
			scores = append(scores, cs...)
			consumed = append(consumed, ci...)
			for _, child := range cv {
				lengths = append(lengths, child.bit_count)
				if child.bit_count > max_length {
					max_length = child.bit_count
				}
			}
		}

		if finished {
			var unique = make(map[string]bool)
			for i, l := range lengths {
				if l == bitLength {
					unique[vertices[i].dna] = true
				}
			}
			var results = make([]string, 0, len(unique))
			for s := range unique {
				results = append(results, s)
			}
			sort.Strings(results)

			if len(results) == 0 && len(vertices) > heapLimit {
				return results, len(vertices), &RepairBudgetExhausted{Strand: strandIndex, HeapSize: len(vertices)}
			}
			return results, len(vertices), nil
		}
	}
}
