package universe

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// IDSource mints entity identifiers. Generators take a source as a
// dependency instead of reaching for process-global randomness, so a
// seeded source makes generation a pure function of seed and input.
type IDSource interface {
	// SystemID returns a fresh system identifier (SYS-XXXXXXXX).
	SystemID() string
	// RailID returns a fresh rail identifier (RAIL-XXXXXXXX).
	RailID() string
}

// SeededIDs mints identifiers from a seeded PCG stream. The same seed
// yields the same identifier sequence, which keeps whole-galaxy
// generation reproducible bit for bit.
type SeededIDs struct {
	rng *rand.Rand
}

// NewSeededIDs creates a deterministic ID source for the given seed.
func NewSeededIDs(seed uint64) *SeededIDs {
	return &SeededIDs{rng: rand.New(rand.NewPCG(seed, seed^0x1d5ace))}
}

// SystemID returns the next system identifier in the stream.
func (s *SeededIDs) SystemID() string {
	return fmt.Sprintf("SYS-%08X", s.rng.Uint32())
}

// RailID returns the next rail identifier in the stream.
func (s *SeededIDs) RailID() string {
	return fmt.Sprintf("RAIL-%08X", s.rng.Uint32())
}

// RandomIDs mints identifiers from random UUIDs. Suitable for ad-hoc
// entity creation outside seeded generation runs.
type RandomIDs struct{}

// SystemID returns a UUID-derived system identifier.
func (RandomIDs) SystemID() string { return "SYS-" + uuidFragment() }

// RailID returns a UUID-derived rail identifier.
func (RandomIDs) RailID() string { return "RAIL-" + uuidFragment() }

func uuidFragment() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(hex[:8])
}

var (
	_ IDSource = (*SeededIDs)(nil)
	_ IDSource = RandomIDs{}
)
