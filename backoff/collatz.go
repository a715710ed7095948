package backoff

import "math"

// Iterating further cannot improve mixing: every small seed has fallen into
// the terminal 1 -> 2 -> 1 cycle long before this bound.
const maxCollatzIters = 4096

// collatzStep applies one Collatz step with the /2 shortcut on the odd branch.
func collatzStep(n uint64) uint64 {
	if n%2 == 0 {
		return n / 2
	}
	// 3n+1 must not overflow; shedding high bits keeps the iteration
	// deterministic, which is all the schedule needs from it.
	if n > (math.MaxUint64-1)/3 {
		n >>= 32
	}
	return (3*n + 1) / 2
}

// collatzIter iterates the Collatz step iters times from seed.
func collatzIter(seed uint64, iters int) uint64 {
	if iters > maxCollatzIters {
		iters = maxCollatzIters
	}
	n := seed
	for i := 0; i < iters; i++ {
		n = collatzStep(n)
	}
	return n
}

// coefficients derives the step-k affine pair from seed. a is forced odd,
// which makes it invertible mod any power-of-two slotsM. For other moduli
// the pair may degrade to a=1, reported via the returned flag.
func coefficients(seed uint64, k int, slotsM uint64) (a, b uint64, degraded bool) {
	if slotsM == 0 {
		return 1, 0, false
	}

	n := collatzIter(seed, k+1)

	// Force odd, keep in [1..slotsM-1] to avoid 0
	a = (n | 1) % slotsM
	if a == 0 {
		a = 1
	}

	b = (n >> 3) % slotsM

	// Safety: ensure invertibility. Only reachable when slotsM is not a
	// power of two, since odd a is already coprime to 2^n.
	if gcd(a, slotsM) != 1 {
		a = 1
		degraded = true
	}

	return a, b, degraded
}

// Coefficients returns the affine permutation pair (a_k, b_k) for retry
// step k, derived from seed alone. a_k is always odd and invertible mod
// slotsM whenever slotsM is a power of two; b_k is in [0, slotsM). It is a
// pure function of its inputs and never fails.
func Coefficients(seed uint64, k int, slotsM uint64) (uint64, uint64) {
	a, b, _ := coefficients(seed, k, slotsM)
	return a, b
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
