// Package game implements the falling-object simulation: entities, difficulty
// tiers, and the per-playthrough session with its tick/collision logic.
// It contains pure logic with no UI or storage dependencies.
package game

import "fmt"

// Tier is one of the fixed difficulty levels.
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
)

// Tiers lists all difficulty tiers in menu order.
var Tiers = []Tier{TierEasy, TierMedium, TierHard}

// String returns the uppercase tier name. This is also the base name of the
// tier's leaderboard file, so it must stay stable.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "EASY"
	case TierMedium:
		return "MEDIUM"
	case TierHard:
		return "HARD"
	default:
		return "UNKNOWN"
	}
}

// ParseTier converts a case-insensitive tier name to a Tier.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "easy", "EASY", "Easy":
		return TierEasy, nil
	case "medium", "MEDIUM", "Medium":
		return TierMedium, nil
	case "hard", "HARD", "Hard":
		return TierHard, nil
	default:
		return 0, fmt.Errorf("game: unknown difficulty %q", s)
	}
}

// SpeedRange is an inclusive range of per-tick descent speeds, in pixels.
type SpeedRange struct {
	Min int
	Max int
}

// Validate checks the range invariant: 0 < Min <= Max.
func (r SpeedRange) Validate() error {
	if r.Min <= 0 || r.Max <= 0 {
		return fmt.Errorf("game: speed range bounds must be positive, got [%d,%d]", r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("game: speed range min %d exceeds max %d", r.Min, r.Max)
	}
	return nil
}

// Profile is the static configuration for one difficulty tier.
type Profile struct {
	ObjectCount int        // Number of simultaneous falling entities
	Speed       SpeedRange // Per-tick descent speed range
}

// Validate checks the profile for configuration errors.
func (p Profile) Validate() error {
	if p.ObjectCount <= 0 {
		return fmt.Errorf("game: object count must be positive, got %d", p.ObjectCount)
	}
	return p.Speed.Validate()
}

// DefaultProfile returns the built-in profile for a tier.
func DefaultProfile(t Tier) Profile {
	switch t {
	case TierMedium:
		return Profile{ObjectCount: 4, Speed: SpeedRange{Min: 2, Max: 5}}
	case TierHard:
		return Profile{ObjectCount: 5, Speed: SpeedRange{Min: 3, Max: 6}}
	default:
		return Profile{ObjectCount: 3, Speed: SpeedRange{Min: 2, Max: 4}}
	}
}
