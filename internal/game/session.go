package game

import (
	"fmt"
	"math/rand"

	"github.com/ntrubin/skycatch/internal/core"
)

// DefaultLives is the number of misses a player can take before the game ends.
const DefaultLives = 3

// Geometry describes the play area and paddle as supplied by the host, all in
// game pixels. The paddle moves along a fixed horizontal line at PaddleY.
type Geometry struct {
	PlayW   int // Play area width
	PlayH   int // Play area height; entities below this line are missed
	PaddleW int // Paddle width
	PaddleH int // Paddle height
	PaddleY int // Y of the paddle's top edge (the catch threshold)
}

// Validate checks the geometry against the entity size.
func (g Geometry) Validate(entitySize int) error {
	if g.PlayW <= entitySize {
		return fmt.Errorf("game: play width %d must exceed entity size %d", g.PlayW, entitySize)
	}
	if g.PlayH <= 0 {
		return fmt.Errorf("game: play height must be positive, got %d", g.PlayH)
	}
	if g.PaddleW <= 0 || g.PaddleW > g.PlayW {
		return fmt.Errorf("game: paddle width %d out of range (0, %d]", g.PaddleW, g.PlayW)
	}
	return nil
}

// TickResult reports what happened during one simulation tick. Termination is
// reported exactly once: Ended is true only on the tick that drives lives to
// zero, carrying the final score for the host to record.
type TickResult struct {
	Caught     int  // Entities caught this tick
	Missed     int  // Entities missed this tick
	Ended      bool // True exactly once, on the terminating tick
	FinalScore int  // Score at termination; only meaningful when Ended
}

// Session owns one playthrough's simulation state: the falling entities, the
// paddle position, score and lives. It is driven by a host calling Tick at a
// fixed interval and MovePaddle on input events. Not safe for concurrent use.
type Session struct {
	profile    Profile
	geom       Geometry
	rng        *rand.Rand
	entities   []Entity
	entitySize int
	spawnDepth int

	paddleX int
	score   int
	lives   int
	ended   bool
	ticks   uint64
}

// SessionOptions tune a session beyond its difficulty profile. Zero values
// fall back to the package defaults.
type SessionOptions struct {
	EntitySize int
	SpawnDepth int
	Lives      int
}

// NewSession creates a session for one playthrough. The paddle starts
// centered, score at zero, lives at three. Invalid profile or geometry values
// are configuration errors and fail fast.
func NewSession(profile Profile, geom Geometry, seed int64, opts SessionOptions) (*Session, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	entitySize := opts.EntitySize
	if entitySize == 0 {
		entitySize = DefaultEntitySize
	}
	if entitySize <= 0 {
		return nil, fmt.Errorf("game: entity size must be positive, got %d", entitySize)
	}
	spawnDepth := opts.SpawnDepth
	if spawnDepth == 0 {
		spawnDepth = DefaultSpawnDepth
	}
	if spawnDepth <= 0 {
		return nil, fmt.Errorf("game: spawn depth must be positive, got %d", spawnDepth)
	}
	lives := opts.Lives
	if lives == 0 {
		lives = DefaultLives
	}
	if lives < 0 {
		return nil, fmt.Errorf("game: lives must be positive, got %d", lives)
	}

	if err := geom.Validate(entitySize); err != nil {
		return nil, err
	}

	s := &Session{
		profile:    profile,
		geom:       geom,
		rng:        rand.New(rand.NewSource(seed)),
		entities:   make([]Entity, profile.ObjectCount),
		entitySize: entitySize,
		spawnDepth: spawnDepth,
		paddleX:    (geom.PlayW - geom.PaddleW) / 2,
		lives:      lives,
	}

	for i := range s.entities {
		s.entities[i].Size = entitySize
		s.entities[i].ResetAbove(s.rng, geom.PlayW, spawnDepth, profile.Speed)
	}

	return s, nil
}

// MovePaddle shifts the paddle horizontally by delta pixels, clamped to the
// play area. No-op once the session has ended.
func (s *Session) MovePaddle(delta int) {
	if s.ended {
		return
	}
	s.paddleX = core.Clamp(s.paddleX+delta, 0, s.geom.PlayW-s.geom.PaddleW)
}

// Tick advances every entity one step and resolves catches and misses in
// stable entity order. A caught entity scores a point; an entity that falls
// past the bottom costs a life. Catch takes precedence: an entity counted as
// caught is never also counted as missed in the same tick. The tick that
// drives lives to zero sets Ended on the result exactly once; after that the
// session is inert and Tick returns an empty result.
func (s *Session) Tick() TickResult {
	var res TickResult
	if s.ended {
		return res
	}
	s.ticks++

	for i := range s.entities {
		if s.ended {
			// Terminated mid-tick; remaining entities stay frozen.
			break
		}
		e := &s.entities[i]
		e.Advance()

		// The catch test compares the falling object's bounding square
		// against the paddle rectangle, so corner contact counts.
		if e.Y+e.Size >= s.geom.PaddleY && e.X+e.Size >= s.paddleX && e.X <= s.paddleX+s.geom.PaddleW {
			s.score++
			res.Caught++
			e.ResetAbove(s.rng, s.geom.PlayW, s.spawnDepth, s.profile.Speed)
			continue
		}

		if e.Y > s.geom.PlayH {
			s.lives--
			res.Missed++
			e.ResetAbove(s.rng, s.geom.PlayW, s.spawnDepth, s.profile.Speed)
			if s.lives <= 0 {
				s.ended = true
				res.Ended = true
				res.FinalScore = s.score
			}
		}
	}

	return res
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Lives returns the remaining lives.
func (s *Session) Lives() int {
	return s.lives
}

// Ended reports whether the playthrough has terminated.
func (s *Session) Ended() bool {
	return s.ended
}

// PaddleX returns the paddle's left edge.
func (s *Session) PaddleX() int {
	return s.paddleX
}

// PaddleRect returns the paddle's bounding rectangle in game pixels.
func (s *Session) PaddleRect() core.Rect {
	return core.NewRect(s.paddleX, s.geom.PaddleY, s.geom.PaddleW, s.geom.PaddleH)
}

// Entities returns the live entity slice for rendering. Callers must not
// mutate it.
func (s *Session) Entities() []Entity {
	return s.entities
}

// Geometry returns the session's play area and paddle dimensions.
func (s *Session) Geometry() Geometry {
	return s.geom
}
