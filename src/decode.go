package hedges

/*-------------------------------------------------------------
 *
 * Purpose:	Invert the state machine on a clean nucleotide stream.
 *
 * Description:	The decoder replays the encoder's walk. The available
 *		set at each position depends only on the string so far,
 *		so it is reconstructed from the oracle the same way, and
 *		the observed nucleotide picks out which message bits the
 *		encoder must have consumed there.
 *
 *--------------------------------------------------------------*/

// Decode recovers the binary message from a nucleotide string encoded
// with identical parameters, mapping, oracle and strand index. The
// output is truncated to bitLength; the final symbol of an odd-length
// message carries one redundant bit which is discarded here.
func Decode(dna string, strandIndex int, bitLength int, mapping Mapping, oracle Oracle, params Params) ([]byte, error) {
	if err := params.check(); err != nil {
		return nil, err
	}
	if err := mapping.check(); err != nil {
		return nil, err
	}

	var salt = int64(strandIndex) % (1 << params.SaltBits)
	var bits = make([]byte, 0, bitLength+1)
	var available = []byte(mapping)

	for i := 0; i < len(dna); i++ {
		var nucleotide = dna[i]
		var bit_index = int64(len(bits)) % (1 << params.LowOrderBits)
		var prev int64
		if len(bits)-params.PrevBits >= 0 {
			prev = bit_window_value(bits, len(bits)-params.PrevBits, len(bits))
		}

		switch len(available) {
		case 1:
			// Forced symbol. No bits were consumed here.

		case 2, 3:
			var h = hash_mix(bit_index|prev|salt) & 1
			if available[h] == nucleotide {
				bits = append(bits, 0)
			} else {
				bits = append(bits, 1)
			}

		default: // k == 4
			var h = hash_mix(bit_index|prev|salt) & 3
			for b := int64(0); b < 4; b++ {
				if available[(h+b)%4] == nucleotide {
					if len(bits)+2 > bitLength {
						// Ragged tail: only the low bit is message.
						bits = append(bits, byte(b%2))
					} else {
						bits = append(bits, byte(b/2), byte(b%2))
					}
					break
				}
			}
		}

		available = available_nucleotides(dna[:i+1], mapping, oracle)
		if len(available) == 0 {
			return nil, &DecodeConstraintViolation{Strand: strandIndex}
		}
	}

	if len(bits) > bitLength {
		bits = bits[:bitLength]
	}
	return bits, nil
}
