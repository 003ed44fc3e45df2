package sim

import (
	"strconv"
	"strings"
)

// Sequence is a deterministic pseudo-random float generator in [0,1).
// The same seed always yields the same sequence; trip reports rely on this
// to reproduce identical output for repeated requests and exports.
//
// The mixing function is from the mulberry32 family: the increment constant
// is folded into the state once at construction and each draw runs two
// multiply/xor-shift rounds over 32-bit state.
type Sequence struct {
	state uint32
}

// NewSequence creates a Sequence from the given seed.
func NewSequence(seed uint32) *Sequence {
	return &Sequence{state: seed + 0x6D2B79F5}
}

// Float64 advances the state and returns the next value in [0,1).
func (s *Sequence) Float64() float64 {
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	s.state = t
	return float64(t^(t>>14)) / 4294967296
}

// TripSeed derives the trip-generation seed for a (vehicle, date) pair:
// the date digits with hyphens removed, concatenated with the numeric
// suffix of the vehicle id, parsed base-10. Same pair, same seed, forever.
func TripSeed(vehicleID, date string) uint32 {
	digits := strings.ReplaceAll(date, "-", "") + numericSuffix(vehicleID)
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0
	}
	return uint32(v)
}

// numericSuffix returns the trailing digit run of id, "" when none.
func numericSuffix(id string) string {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	return id[i:]
}
