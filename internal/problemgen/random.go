package problemgen

import "math/rand/v2"

// Source yields uniformly distributed values in [0, 1). Every random
// decision a Generator makes is drawn from its Source, so tests can
// replay exact sequences.
type Source func() float64

// DefaultSource draws from the global math/rand/v2 generator.
func DefaultSource() float64 { return rand.Float64() }

// intn returns an integer in [0, n).
func (s Source) intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// number returns an integer in [1, d.Range()].
func (s Source) number(d Difficulty) int {
	return s.intn(d.Range()) + 1
}

// pick returns a random element of items.
func pick[T any](s Source, items []T) T {
	return items[s.intn(len(items))]
}

// shuffle permutes items in place (Fisher-Yates).
func shuffle[T any](s Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := s.intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
