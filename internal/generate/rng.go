// Package generate builds room contents and scaled mobs.
//
// # Determinism
//
// All randomness used while generating a room comes from the generator
// returned by NewRoomRand. Given the same world seed, path and catalog, and the
// same depth, corruption and shortcut inputs, Room produces the same record.
// Revisiting a path draws the same sequence, but current depth and corruption
// feed the scaling, so contents may differ between visits.
package generate

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// NewRoomRand returns the generator for the room at path in the world named
// by seed.
func NewRoomRand(seed, path string) *rand.Rand {
	sum := sha256.Sum256([]byte(seed + path))
	return rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(sum[:8]))))
}
