package game

// EntityState is the per-entity portion of a Snapshot.
type EntityState struct {
	X, Y  int
	Speed int
}

// Snapshot captures the complete session state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lives    int
	PaddleX  int
	Ended    bool
	Entities []EntityState
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	entities := make([]EntityState, len(s.entities))
	for i, e := range s.entities {
		entities[i] = EntityState{X: e.X, Y: e.Y, Speed: e.Speed}
	}
	return Snapshot{
		Tick:     s.ticks,
		Score:    s.score,
		Lives:    s.lives,
		PaddleX:  s.paddleX,
		Ended:    s.ended,
		Entities: entities,
	}
}
