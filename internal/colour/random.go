package colour

import (
	"fmt"
	"math/rand/v2"
)

// RandomHex returns a colour drawn uniformly from the 24-bit RGB space.
func RandomHex() string {
	return randomHex(rand.IntN)
}

func randomHex(intn func(int) int) string {
	return fmt.Sprintf("#%06x", intn(1<<24))
}
