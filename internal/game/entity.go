package game

import "math/rand"

// DefaultEntitySize is the diameter of a falling object's bounding square.
const DefaultEntitySize = 20

// DefaultSpawnDepth is how far above the visible area entities respawn.
// A fresh entity gets a Y in [-DefaultSpawnDepth, 0).
const DefaultSpawnDepth = 200

// Entity is a single falling body. Position is the top-left corner of its
// bounding square. Entities are created once per session and reused: a caught
// or missed entity is reset above the play area rather than destroyed.
type Entity struct {
	X, Y  int
	Size  int // Diameter, fixed at construction
	Speed int // Pixels descended per tick, re-randomized on reset
}

// Advance moves the entity down by its current speed.
func (e *Entity) Advance() {
	e.Y += e.Speed
}

// ResetAbove re-randomizes the entity within the spawn band: X uniform in
// [0, playWidth-Size), Y uniform in [-spawnDepth, 0), Speed uniform in
// [speed.Min, speed.Max]. The caller must guarantee playWidth > Size.
func (e *Entity) ResetAbove(rng *rand.Rand, playWidth, spawnDepth int, speed SpeedRange) {
	e.X = rng.Intn(playWidth - e.Size)
	e.Y = -spawnDepth + rng.Intn(spawnDepth)
	e.Speed = speed.Min + rng.Intn(speed.Max-speed.Min+1)
}
