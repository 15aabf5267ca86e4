package hedges

/*-------------------------------------------------------------
 *
 * Purpose:	64-bit integer scrambler that whitens the codec state.
 *
 *		Both ends of a transmission derive the same pseudo-random
 *		symbol rotation from this function, so the constants and
 *		shift amounts are load-bearing and must never change.
 *
 * Reference:	Press, Hawkins, Jones, Schaub & Finkelstein (2020),
 *		"HEDGES error-correcting code for DNA storage corrects
 *		indels and allows sequence constraints."
 *
 *--------------------------------------------------------------*/

const hash_multiplier_1 int64 = 0x369DEA0F31A53F85
const hash_increment int64 = 0x25584FA4FF82E38B
const hash_multiplier_2 int64 = 0x422EB4BE0BE98727

// hash_mix scrambles a 64-bit value in two's complement wrap-around
// arithmetic. Right shifts are arithmetic (sign-propagating), matching
// the published behaviour. Callers reduce the result with &1 or &3.
func hash_mix(source int64) int64 {
	var v = source * hash_multiplier_1
	v += hash_increment
	v ^= v >> 21
	v ^= v << 37
	v ^= v >> 4
	v *= hash_multiplier_2
	v ^= v << 20
	v ^= v >> 41
	v ^= v << 5
	return v
}
