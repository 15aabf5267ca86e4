package hedges

/*-------------------------------------------------------------
 *
 * Purpose:	Error kinds surfaced by the codec.
 *
 *		None of these are recovered internally. Every error
 *		carries the strand index so a batch caller can tell
 *		which message failed.
 *
 *--------------------------------------------------------------*/

import "fmt"

// ConstraintBlocked reports that the encoder reached a position where
// no nucleotide keeps the prefix valid. The caller must alter the
// mapping, the oracle, or the message.
type ConstraintBlocked struct {
	Strand int
}

func (e *ConstraintBlocked) Error() string {
	return fmt.Sprintf("strand %d cannot be encoded because of the established constraints", e.Strand)
}

// DecodeConstraintViolation reports that the decoder's available set
// became empty: the input is not a valid codeword. Route the string to
// Repair instead.
type DecodeConstraintViolation struct {
	Strand int
}

func (e *DecodeConstraintViolation) Error() string {
	return fmt.Sprintf("strand %d contains error(s)", e.Strand)
}

// RepairBudgetExhausted reports that the repair search exceeded its
// frontier bound before any hypothesis produced the full message. The
// caller may raise the bound and retry.
type RepairBudgetExhausted struct {
	Strand   int
	HeapSize int
}

func (e *RepairBudgetExhausted) Error() string {
	return fmt.Sprintf("strand %d repair abandoned: frontier grew to %d", e.Strand, e.HeapSize)
}
