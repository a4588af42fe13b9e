package analytics

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Color assignment modes accepted in configuration.
const (
	ColorModeHash   = "hash"
	ColorModeRandom = "random"
)

// ColorAssigner assigns a visual identifier to a matrix series.
// To swap the strategy: implement this interface and pass it to the Builder.
type ColorAssigner interface {
	// ColorFor returns an RGB hex color ("#1a2b3c") for the series key.
	ColorFor(key string) string
}

// HashColors derives the color from an FNV-1a hash of the series key.
// The same key always gets the same color, across processes and refreshes.
// This is the default assigner.
type HashColors struct{}

func (HashColors) ColorFor(key string) string {
	h := fnv.New32a()
	h.Write([]byte(key))
	return fmt.Sprintf("#%06x", h.Sum32()&0xffffff)
}

// RandomColors draws a uniformly random RGB color per key at assignment
// time. Two recomputations over identical data may color the same series
// differently; select this mode only when visual stability across
// refreshes does not matter.
type RandomColors struct {
	rng *rand.Rand
}

// NewRandomColors creates a random assigner from the given seed.
func NewRandomColors(seed int64) *RandomColors {
	return &RandomColors{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomColors) ColorFor(_ string) string {
	return fmt.Sprintf("#%06x", r.rng.Intn(0x1000000))
}
