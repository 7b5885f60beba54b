package game

import (
	"reflect"
	"testing"
)

// testGeometry is a 400x300 pixel play area with a 60px paddle riding 10px
// above the bottom edge, centered at x=170.
func testGeometry() Geometry {
	return Geometry{
		PlayW:   400,
		PlayH:   300,
		PaddleW: 60,
		PaddleH: 10,
		PaddleY: 290,
	}
}

func newTestSession(t *testing.T, profile Profile, opts SessionOptions) *Session {
	t.Helper()
	s, err := NewSession(profile, testGeometry(), 42, opts)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

// singleEntity is a profile with one slow entity, so tests can place it
// precisely without interference.
func singleEntity() Profile {
	return Profile{ObjectCount: 1, Speed: SpeedRange{Min: 2, Max: 4}}
}

func TestNewSessionDefaults(t *testing.T) {
	s := newTestSession(t, DefaultProfile(TierEasy), SessionOptions{})

	if got := len(s.Entities()); got != 3 {
		t.Errorf("EASY session should own 3 entities, got %d", got)
	}
	if s.Score() != 0 {
		t.Errorf("score should start at 0, got %d", s.Score())
	}
	if s.Lives() != DefaultLives {
		t.Errorf("lives should start at %d, got %d", DefaultLives, s.Lives())
	}
	if s.Ended() {
		t.Error("new session should not be ended")
	}
	if s.PaddleX() != (400-60)/2 {
		t.Errorf("paddle should start centered at 170, got %d", s.PaddleX())
	}

	for i, e := range s.Entities() {
		if e.Size != DefaultEntitySize {
			t.Errorf("entity %d size = %d, expected %d", i, e.Size, DefaultEntitySize)
		}
		if e.Y < -DefaultSpawnDepth || e.Y >= 0 {
			t.Errorf("entity %d should spawn above the play area, Y = %d", i, e.Y)
		}
		if e.X < 0 || e.X >= 400-e.Size {
			t.Errorf("entity %d X = %d outside play width", i, e.X)
		}
	}
}

func TestNewSessionValidation(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		geom    Geometry
		opts    SessionOptions
	}{
		{"zero objects", Profile{ObjectCount: 0, Speed: SpeedRange{Min: 2, Max: 4}}, testGeometry(), SessionOptions{}},
		{"inverted speed range", Profile{ObjectCount: 3, Speed: SpeedRange{Min: 5, Max: 2}}, testGeometry(), SessionOptions{}},
		{"play width too small", singleEntity(), Geometry{PlayW: 20, PlayH: 300, PaddleW: 10, PaddleH: 5, PaddleY: 290}, SessionOptions{}},
		{"paddle wider than play area", singleEntity(), Geometry{PlayW: 400, PlayH: 300, PaddleW: 500, PaddleH: 5, PaddleY: 290}, SessionOptions{}},
		{"negative lives", singleEntity(), testGeometry(), SessionOptions{Lives: -1}},
		{"negative entity size", singleEntity(), testGeometry(), SessionOptions{EntitySize: -5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSession(tc.profile, tc.geom, 1, tc.opts); err == nil {
				t.Error("NewSession should fail fast on invalid configuration")
			}
		})
	}
}

func TestTickNoEvents(t *testing.T) {
	s := newTestSession(t, DefaultProfile(TierEasy), SessionOptions{})

	// Park every entity far above the paddle so nothing can be caught or
	// missed this tick.
	before := make([]Entity, len(s.entities))
	for i := range s.entities {
		s.entities[i].Y = -190
		before[i] = s.entities[i]
	}

	res := s.Tick()

	if res.Caught != 0 || res.Missed != 0 || res.Ended {
		t.Errorf("quiet tick should report no events, got %+v", res)
	}
	if s.Score() != 0 || s.Lives() != DefaultLives {
		t.Error("quiet tick should not change score or lives")
	}
	for i, e := range s.entities {
		if e.Y != before[i].Y+before[i].Speed {
			t.Errorf("entity %d Y = %d, expected %d (advanced by exactly its speed)", i, e.Y, before[i].Y+before[i].Speed)
		}
	}
}

func TestTickCatch(t *testing.T) {
	s := newTestSession(t, singleEntity(), SessionOptions{})

	// Paddle sits at [170, 230]. Place the entity just above the catch
	// threshold and inside the paddle span.
	s.entities[0] = Entity{X: 180, Y: 265, Size: 20, Speed: 5}

	res := s.Tick()

	if res.Caught != 1 {
		t.Fatalf("expected 1 catch, got %+v", res)
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, expected 1", s.Score())
	}
	if s.Lives() != DefaultLives {
		t.Errorf("catch should not cost a life, lives = %d", s.Lives())
	}
	if e := s.entities[0]; e.Y >= 0 {
		t.Errorf("caught entity should respawn above the play area, Y = %d", e.Y)
	}
}

func TestTickCatchEdgeOverlap(t *testing.T) {
	// The catch test uses the bounding square, so an entity whose right
	// edge just reaches the paddle's left edge still counts.
	s := newTestSession(t, singleEntity(), SessionOptions{})
	s.entities[0] = Entity{X: 150, Y: 268, Size: 20, Speed: 2} // 150+20 == paddleX

	res := s.Tick()

	if res.Caught != 1 {
		t.Errorf("edge-touching entity should be caught, got %+v", res)
	}
}

func TestTickCatchTakesPrecedenceOverMiss(t *testing.T) {
	s := newTestSession(t, singleEntity(), SessionOptions{})

	// After advancing, this entity is simultaneously past the bottom
	// boundary and overlapping the paddle span. It must count as exactly
	// one catch and zero misses.
	s.entities[0] = Entity{X: 180, Y: 300, Size: 20, Speed: 5}

	res := s.Tick()

	if res.Caught != 1 || res.Missed != 0 {
		t.Errorf("catch must take precedence over miss, got %+v", res)
	}
	if s.Score() != 1 || s.Lives() != DefaultLives {
		t.Errorf("score = %d lives = %d, expected 1 and %d", s.Score(), s.Lives(), DefaultLives)
	}
}

func TestTickMiss(t *testing.T) {
	s := newTestSession(t, singleEntity(), SessionOptions{})

	// Far left of the paddle, already past the bottom after one advance.
	s.entities[0] = Entity{X: 0, Y: 299, Size: 20, Speed: 2}

	res := s.Tick()

	if res.Missed != 1 || res.Caught != 0 {
		t.Fatalf("expected 1 miss, got %+v", res)
	}
	if s.Lives() != DefaultLives-1 {
		t.Errorf("lives = %d, expected %d", s.Lives(), DefaultLives-1)
	}
	if s.Score() != 0 {
		t.Errorf("miss should not score, got %d", s.Score())
	}
	if e := s.entities[0]; e.Y >= 0 {
		t.Errorf("missed entity should respawn above the play area, Y = %d", e.Y)
	}
}

func TestThreeMissesEndGame(t *testing.T) {
	s := newTestSession(t, singleEntity(), SessionOptions{})

	// Score a catch first so the final score is non-trivial.
	s.entities[0] = Entity{X: 180, Y: 265, Size: 20, Speed: 5}
	s.Tick()

	endedCount := 0
	var finalScore int
	for i := 0; i < 3; i++ {
		if s.Ended() {
			t.Fatalf("session ended after %d misses, expected 3", i)
		}
		s.entities[0] = Entity{X: 0, Y: 299, Size: 20, Speed: 2}
		res := s.Tick()
		if res.Ended {
			endedCount++
			finalScore = res.FinalScore
		}
	}

	if !s.Ended() {
		t.Fatal("session should end on the third miss")
	}
	if endedCount != 1 {
		t.Errorf("termination should be reported exactly once, got %d", endedCount)
	}
	if finalScore != 1 {
		t.Errorf("FinalScore = %d, expected the score accumulated before termination (1)", finalScore)
	}
	if s.Lives() != 0 {
		t.Errorf("lives = %d, expected 0", s.Lives())
	}

	// Once ended the session is inert.
	s.entities[0] = Entity{X: 180, Y: 265, Size: 20, Speed: 5}
	res := s.Tick()
	if res.Caught != 0 || res.Missed != 0 || res.Ended {
		t.Errorf("tick after termination should be a no-op, got %+v", res)
	}
	if s.Score() != 1 || s.Lives() != 0 {
		t.Error("state must not change after termination")
	}
}

func TestLivesNeverGoNegative(t *testing.T) {
	// Three entities all miss on the same tick with a single life left.
	// Only the first miss lands; the session terminates and the remaining
	// entities stay frozen.
	s := newTestSession(t, Profile{ObjectCount: 3, Speed: SpeedRange{Min: 2, Max: 4}}, SessionOptions{Lives: 1})

	for i := range s.entities {
		s.entities[i] = Entity{X: 0, Y: 299, Size: 20, Speed: 2}
	}

	res := s.Tick()

	if res.Missed != 1 {
		t.Errorf("only the terminating miss should be counted, got %d", res.Missed)
	}
	if !res.Ended {
		t.Error("session should terminate when the last life is lost")
	}
	if s.Lives() != 0 {
		t.Errorf("lives = %d, must never go below 0", s.Lives())
	}
}

func TestMovePaddleClamps(t *testing.T) {
	s := newTestSession(t, singleEntity(), SessionOptions{})

	s.MovePaddle(-10000)
	if s.PaddleX() != 0 {
		t.Errorf("paddle should clamp at left edge, got %d", s.PaddleX())
	}

	s.MovePaddle(10000)
	if s.PaddleX() != 400-60 {
		t.Errorf("paddle should clamp at right edge, got %d", s.PaddleX())
	}

	s.MovePaddle(-30)
	if s.PaddleX() != 310 {
		t.Errorf("paddle X = %d, expected 310", s.PaddleX())
	}
}

func TestMovePaddleNoOpAfterEnd(t *testing.T) {
	s := newTestSession(t, singleEntity(), SessionOptions{Lives: 1})
	s.entities[0] = Entity{X: 0, Y: 299, Size: 20, Speed: 2}
	s.Tick()

	if !s.Ended() {
		t.Fatal("session should have ended")
	}

	before := s.PaddleX()
	s.MovePaddle(-40)
	if s.PaddleX() != before {
		t.Error("MovePaddle should be a no-op once the session has ended")
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() Snapshot {
		s, err := NewSession(DefaultProfile(TierHard), testGeometry(), 12345, SessionOptions{})
		if err != nil {
			t.Fatalf("NewSession() failed: %v", err)
		}
		for i := 0; i < 500 && !s.Ended(); i++ {
			switch i % 3 {
			case 0:
				s.MovePaddle(-10)
			case 1:
				s.MovePaddle(10)
			}
			s.Tick()
		}
		return s.Snapshot()
	}

	first := run()
	second := run()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed and inputs must produce identical runs:\n%+v\n%+v", first, second)
	}
}
