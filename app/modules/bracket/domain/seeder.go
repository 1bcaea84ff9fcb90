package bracketdomain

import "math/bits"

// Seed pads the ordered competitor list with synthetic byes until its
// length reaches the next power of two, returning the padded slot
// order. Competitors keep their relative order; byes are distributed
// between the two halves of the draw and placed at each half's
// boundaries so strong seeds are kept away from forced walkovers.
// Callers wanting seeded placement sort by seed before calling.
func Seed(competitors []Competitor) ([]Competitor, error) {
	n := len(competitors)
	if n == 0 {
		return nil, ErrNoCompetitors
	}

	byeCount := nextPowerOfTwo(n) - n

	pool := make([]Competitor, byeCount)
	for i := range pool {
		pool[i] = NewBye(i + 1)
	}

	upper, lower := splitHalves(competitors)
	upperByes, _ := splitByes(byeCount, n%2 != 0)

	out := make([]Competitor, 0, n+byeCount)
	out = padHalf(out, upper, upperByes, &pool)
	for extra := upperByes - 2; extra > 0; extra-- {
		out = appendBye(out, &pool)
	}
	// Historical quirk, kept on purpose: the lower half's boundary
	// placement is bounded by the total bye count, not by the lower
	// half's own allocation from splitByes, so the lower half simply
	// drains whatever the pool still holds. TestSeed_FiveCompetitors
	// pins the resulting slot order.
	out = padHalf(out, lower, byeCount, &pool)
	out = append(out, pool...)

	return out, nil
}

// nextPowerOfTwo returns the smallest power of two >= n, for n >= 1.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// splitHalves splits the draw into its upper and lower halves. An odd
// count leaves the extra competitor in the upper half.
func splitHalves(competitors []Competitor) (upper, lower []Competitor) {
	n := len(competitors)
	cut := n / 2
	if n%2 != 0 {
		cut = (n + 1) / 2
	}
	return competitors[:cut], competitors[cut:]
}

// splitByes divides the bye count between the two halves. An even
// count splits equally; an odd count gives the extra bye to the lower
// half when the competitor count was odd and to the upper half when it
// was even.
func splitByes(byeCount int, oddCompetitors bool) (upper, lower int) {
	if byeCount%2 == 0 {
		return byeCount / 2, byeCount / 2
	}
	if oddCompetitors {
		return byeCount / 2, byeCount/2 + 1
	}
	return byeCount/2 + 1, byeCount / 2
}

// padHalf places byes around one half of the draw: one immediately
// before the half's first entry when the bound allows at least one,
// one immediately before its last entry when it allows two. Byes are
// consumed from the shared pool in generation order; whatever the
// half's allocation did not fit at the boundaries stays in the pool
// and is appended after the half by the caller.
func padHalf(dst, half []Competitor, bound int, pool *[]Competitor) []Competitor {
	last := len(half) - 1
	for i, c := range half {
		if i == 0 && bound >= 1 {
			dst = appendBye(dst, pool)
		}
		if i == last && bound >= 2 {
			dst = appendBye(dst, pool)
		}
		dst = append(dst, c)
	}
	return dst
}

func appendBye(dst []Competitor, pool *[]Competitor) []Competitor {
	if len(*pool) == 0 {
		return dst
	}
	dst = append(dst, (*pool)[0])
	*pool = (*pool)[1:]
	return dst
}
