package hedges

/*-------------------------------------------------------------
 *
 * Purpose:	Drive the state machine forward from message bits to
 *		nucleotides.
 *
 * Description:	At each position the oracle is asked which of the four
 *		nucleotides may extend the string. The size k of that
 *		set fixes how many message bits the position carries:
 *
 *		    k = 1      forced symbol, no bits consumed
 *		    k = 2, 3   1 bit (only the first two entries used)
 *		    k = 4      2 bits
 *		    k = 0      dead end, encoding fails
 *
 *		The hash of (bit position | previous bits | salt)
 *		rotates the available set so the emitted symbol stream
 *		is decorrelated across positions and strands. The three
 *		registers are combined with a bitwise OR, not packed
 *		disjointly; the fields overlap. That is the published
 *		behaviour and decoding depends on it exactly.
 *
 *--------------------------------------------------------------*/

// Encode maps a binary message (one bit per byte, values 0 or 1) to a
// nucleotide string acceptable to the oracle. The strand index salts
// the hash so sibling strands encode differently.
func Encode(bits []byte, strandIndex int, mapping Mapping, oracle Oracle, params Params) (string, error) {
	if err := params.check(); err != nil {
		return "", err
	}
	if err := mapping.check(); err != nil {
		return "", err
	}

	var salt = int64(strandIndex) % (1 << params.SaltBits)
	var dna string
	var available = []byte(mapping) // the empty prefix is trivially valid
	var bit_loc = 0

	for bit_loc < len(bits) {
		var bit_index = int64(bit_loc) % (1 << params.LowOrderBits)
		var prev int64
		if bit_loc-params.PrevBits >= 0 {
			prev = bit_window_value(bits, bit_loc-params.PrevBits, bit_loc)
		}

		var nucleotide byte
		switch len(available) {
		case 1:
			nucleotide = available[0]

		case 2, 3:
			var h = hash_mix(bit_index|prev|salt) & 1
			var b = int64(bits[bit_loc] & 1)
			nucleotide = available[(h+b)%2]
			bit_loc++

		default: // k == 4
			var h = hash_mix(bit_index|prev|salt) & 3
			var b int64
			if bit_loc+2 <= len(bits) {
				b = int64(bits[bit_loc]&1)*2 + int64(bits[bit_loc+1]&1)
			} else {
				// Ragged tail: the lone remaining bit rides as the
				// low bit of a 2-bit branch.
				b = int64(bits[bit_loc] & 1)
			}
			nucleotide = available[(h+b)%4]
			bit_loc += 2
		}

		dna = extend(dna, nucleotide)

		available = available_nucleotides(dna, mapping, oracle)
		if len(available) == 0 {
			return "", &ConstraintBlocked{Strand: strandIndex}
		}
	}

	return dna, nil
}
