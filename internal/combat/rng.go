package combat

import (
	"hash/fnv"
	"math/rand"

	"github.com/pfassina/grimdark/internal/domain"
)

// Seed derives a deterministic RNG seed from the four values the spec
// pins as the stream's identity (attacker, defender, now, seq) — same
// inputs always produce the same seed, so replays of an identical
// action sequence reproduce identical damage rolls (spec §4.3, §5).
func Seed(attacker, defender domain.EntityID, now domain.Tick, seq uint64) int64 {
	h := fnv.New64a()
	var buf [24]byte
	putUint64(buf[0:8], uint64(attacker))
	putUint64(buf[8:16], uint64(defender))
	putUint64(buf[16:24], uint64(now)^seq)
	h.Write(buf[:])
	return int64(h.Sum64())
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// NewStream builds the single deterministic RNG stream a combat
// resolution reads from — one Source per resolution, never shared or
// reused across activations.
func NewStream(attacker, defender domain.EntityID, now domain.Tick, seq uint64) *rand.Rand {
	return rand.New(rand.NewSource(Seed(attacker, defender, now, seq)))
}
