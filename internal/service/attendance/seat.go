package attendance

import "math/rand/v2"

// RandomSeatPicker draws uniformly from the pool. Safe for concurrent use.
type RandomSeatPicker struct{}

func (RandomSeatPicker) Pick(pool []int) int {
	return pool[rand.IntN(len(pool))]
}
