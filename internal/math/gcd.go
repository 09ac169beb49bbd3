package math

func GreatestCommonDivisor(a uint64, b uint64) uint64 {
	for b != 0 {
		b, a = a%b, b
	}

	return a
}

// LowestCommonMultiple returns the LCM of a and b. The second return value is
// false if the result does not fit in a uint64. The LCM of zero and anything
// is zero.
func LowestCommonMultiple(a uint64, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	reduced := a / GreatestCommonDivisor(a, b)
	if reduced > ^uint64(0)/b {
		return 0, false
	}

	return reduced * b, true
}
