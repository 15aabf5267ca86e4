package hedges

/*-------------------------------------------------------------
 *
 * Purpose:	Constraint oracle interface consumed by the codec.
 *
 *		The oracle judges whether a nucleotide prefix is
 *		biochemically acceptable. With onlyLast set it is
 *		permitted to examine only a bounded trailing window,
 *		which is what makes the constraints local and the
 *		codec's per-position recomputation cheap.
 *
 *--------------------------------------------------------------*/

// Oracle decides whether a nucleotide sequence is acceptable. It must
// be referentially transparent: the codec asks the same questions on
// both ends of a round trip and relies on identical answers.
type Oracle interface {
	Valid(prefix string, onlyLast bool) bool
}

// OracleFunc adapts a plain predicate to the Oracle interface.
type OracleFunc func(prefix string, onlyLast bool) bool

func (f OracleFunc) Valid(prefix string, onlyLast bool) bool {
	return f(prefix, onlyLast)
}

// Unconstrained accepts every sequence.
func Unconstrained() Oracle {
	return OracleFunc(func(string, bool) bool { return true })
}
