package hedges

/*-------------------------------------------------------------
 *
 * Purpose:	Local biochemical constraint filter.
 *
 * Description:	Judges a nucleotide sequence against three local rules:
 *		maximum homopolymer run length, GC content of the
 *		observed window, and a blacklist of undesired motifs
 *		(restriction cut sites, nanopore-hostile patterns and
 *		the like). With onlyLast set, only the trailing window
 *		of the configured length is examined, which is the mode
 *		the codec uses at every position.
 *
 *		The GC rule is proportional: a window of length w must
 *		hold between floor(lo*w) and ceil(hi*w) G/C symbols.
 *		Applying the raw ratio to short prefixes would reject
 *		every 1-symbol prefix under a tight range and no
 *		encoding could ever start.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
	"math"
	"strings"
)

// LocalBioFilter is an Oracle implementing local biochemical
// constraints. The zero rule set accepts everything.
type LocalBioFilter struct {
	observed_length int
	max_runs        int // 0 disables the homopolymer rule
	has_gc          bool
	gc_low          float64
	gc_high         float64
	motifs          []string
}

// DefaultObservedLength is the trailing window the filter examines
// when asked for a local judgement.
const DefaultObservedLength = 10

// NewLocalBioFilter builds a filter. observedLength <= 0 selects
// DefaultObservedLength. maxHomopolymerRuns <= 0 disables the run
// rule. gcRange is nil to disable the GC rule, or [low, high] with
// 0 <= low <= high <= 1.
func NewLocalBioFilter(observedLength int, maxHomopolymerRuns int, gcRange []float64, undesiredMotifs []string) (*LocalBioFilter, error) {
	var f = &LocalBioFilter{
		observed_length: observedLength,
		max_runs:        maxHomopolymerRuns,
	}
	if f.observed_length <= 0 {
		f.observed_length = DefaultObservedLength
	}
	if gcRange != nil {
		if len(gcRange) != 2 {
			return nil, fmt.Errorf("gc range needs exactly [low, high], got %d values", len(gcRange))
		}
		if gcRange[0] < 0 || gcRange[1] > 1 || gcRange[0] > gcRange[1] {
			return nil, fmt.Errorf("gc range [%v, %v] out of order or outside [0,1]", gcRange[0], gcRange[1])
		}
		f.has_gc = true
		f.gc_low = gcRange[0]
		f.gc_high = gcRange[1]
	}
	for _, m := range undesiredMotifs {
		if m == "" {
			return nil, fmt.Errorf("empty undesired motif")
		}
		for i := 0; i < len(m); i++ {
			switch m[i] {
			case 'A', 'C', 'G', 'T':
			default:
				return nil, fmt.Errorf("undesired motif %q contains %q", m, m[i])
			}
		}
		f.motifs = append(f.motifs, m)
	}
	return f, nil
}

// ObservedLength reports the trailing window length the filter
// guarantees to restrict itself to when onlyLast is set.
func (f *LocalBioFilter) ObservedLength() int {
	return f.observed_length
}

// Valid reports whether the sequence satisfies every configured rule.
func (f *LocalBioFilter) Valid(prefix string, onlyLast bool) bool {
	var window = prefix
	if onlyLast && len(window) > f.observed_length {
		window = window[len(window)-f.observed_length:]
	}
	if len(window) == 0 {
		return true
	}

	if f.max_runs > 0 {
		var run = 1
		for i := 1; i < len(window); i++ {
			if window[i] == window[i-1] {
				run++
				if run > f.max_runs {
					return false
				}
			} else {
				run = 1
			}
		}
	}

	if f.has_gc {
		var count = 0
		for i := 0; i < len(window); i++ {
			if window[i] == 'G' || window[i] == 'C' {
				count++
			}
		}
		var lo = int(math.Floor(f.gc_low * float64(len(window))))
		var hi = int(math.Ceil(f.gc_high * float64(len(window))))
		if count < lo || count > hi {
			return false
		}
	}

	for _, m := range f.motifs {
		if strings.Contains(window, m) {
			return false
		}
	}

	return true
}
