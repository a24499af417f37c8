package testmsg

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
)

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// RandomPerson builds a pseudo-random message tree whose friend lists nest
// up to depth levels. Empty collections are left nil and NaN is never
// produced, so a decoded copy compares equal to the original.
func RandomPerson(rng *rand.Rand, depth int) *Person {
	p := &Person{
		Name:     randomString(rng, 24),
		ID:       int32(rng.Uint32()),
		Ratio:    rng.NormFloat64() * 1e6,
		Flags:    rng.Uint32(),
		Balance:  int64(rng.Uint64()),
		Checksum: rng.Uint64(),
		Active:   rng.IntN(2) == 1,
		Temp:     float32(rng.NormFloat64()),
	}
	if rng.IntN(2) == 0 {
		email := randomString(rng, 16) + "@example.com"
		p.Email = &email
	}
	for range rng.IntN(6) {
		p.Scores = append(p.Scores, randomInt64(rng))
	}
	for range rng.IntN(4) {
		p.Tags = append(p.Tags, randomString(rng, 8))
	}
	if rng.IntN(3) > 0 {
		p.Home = &Address{
			Street: randomString(rng, 20),
			City:   randomString(rng, 10),
			Zip:    rng.Uint32N(100000),
		}
	}
	for range rng.IntN(5) {
		p.Weights = append(p.Weights, float32(rng.Float64()*math.MaxInt16))
	}
	if n := rng.IntN(4); n > 0 {
		p.Labels = make(map[string]int64, n)
		for i := range n {
			p.Labels[fmt.Sprintf("k%d-%s", i, randomString(rng, 4))] = randomInt64(rng)
		}
	}
	if n := rng.IntN(64); n > 0 {
		p.Raw = make([]byte, n)
		for i := range p.Raw {
			p.Raw[i] = byte(rng.UintN(256))
		}
	}
	if depth > 0 {
		for range rng.IntN(3) {
			p.Friends = append(p.Friends, RandomPerson(rng, depth-1))
		}
	}
	return p
}

// randomInt64 favours the varint size boundaries.
func randomInt64(rng *rand.Rand) int64 {
	switch rng.IntN(4) {
	case 0:
		return int64(rng.IntN(128))
	case 1:
		return -int64(rng.IntN(1 << 20))
	case 2:
		return int64(rng.Uint64() >> uint(rng.IntN(64)))
	default:
		return int64(rng.Uint64())
	}
}

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789 éß"

func randomString(rng *rand.Rand, maxLen int) string {
	runes := []rune(alphabet)
	var sb strings.Builder
	for range 1 + rng.IntN(maxLen) {
		sb.WriteRune(runes[rng.IntN(len(runes))])
	}
	return sb.String()
}
