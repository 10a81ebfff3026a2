// Package derive holds the deterministic name heuristics: numerology, zodiac sign,
// sibling compatibility and parent-name blending. Every function is pure.
package derive

// Numerology sums the alphabet positions of a name's ASCII letters (case-insensitive)
// and reduces the total to a single digit. A name without letters yields 0.
func Numerology(name string) int {
	sum := 0
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			sum += int(r-'a') + 1
		case r >= 'A' && r <= 'Z':
			sum += int(r-'A') + 1
		}
	}
	return digitalRoot(sum)
}

// digitalRoot repeatedly sums decimal digits until n < 10. 0 stays 0.
func digitalRoot(n int) int {
	for n > 9 {
		s := 0
		for n > 0 {
			s += n % 10
			n /= 10
		}
		n = s
	}
	return n
}
