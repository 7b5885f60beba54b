// Package leaderboard maintains the per-difficulty top-5 high score lists and
// their plain-text persistence. Each tier is stored as <root>/<TIER>.txt with
// one "username:score" line per entry, highest score first.
package leaderboard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ntrubin/skycatch/internal/game"
)

// MaxEntries is the number of scores kept per tier.
const MaxEntries = 5

// Entry is a single recorded score. Immutable once stored.
type Entry struct {
	Username string
	Score    int
}

// Board holds the ranked top-5 lists for every difficulty tier and keeps them
// durable: every AddScore rewrites the tier's file synchronously. One Board is
// created per process and lives for its lifetime; no explicit teardown is
// needed since each write is immediately durable.
//
// The mutex exists for the SSH server, where concurrent sessions share one
// Board. Local play is single-threaded.
type Board struct {
	mu    sync.Mutex
	root  string
	lists map[game.Tier][]Entry
}

// Open loads the leaderboard from the given storage root, creating the
// directory if needed. A missing tier file means an empty list. Malformed
// lines are skipped. Whatever order the file is in, each list is re-sorted
// by descending score and truncated to MaxEntries.
func Open(root string) (*Board, error) {
	if root != "" && root[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("leaderboard: cannot expand home directory: %w", err)
		}
		root = filepath.Join(home, root[1:])
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("leaderboard: cannot create directory %s: %w", root, err)
	}

	b := &Board{
		root:  root,
		lists: make(map[game.Tier][]Entry, len(game.Tiers)),
	}

	for _, tier := range game.Tiers {
		entries, err := loadTier(b.tierPath(tier))
		if err != nil {
			return nil, err
		}
		b.lists[tier] = rank(entries)
	}

	return b, nil
}

// AddScore records a score for a tier and persists the updated list. Ties
// rank after existing entries with the same score. The in-memory list keeps
// the score even when the write fails; the caller decides how to report the
// returned I/O error.
func (b *Board) AddScore(username string, tier game.Tier, score int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lists[tier] = rank(append(b.lists[tier], Entry{Username: username, Score: score}))
	return b.saveTier(tier)
}

// Top returns a copy of the ranked list for a tier, at most MaxEntries long.
func (b *Board) Top(tier game.Tier) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.lists[tier]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Root returns the storage root directory.
func (b *Board) Root() string {
	return b.root
}

func (b *Board) tierPath(tier game.Tier) string {
	return filepath.Join(b.root, tier.String()+".txt")
}

// rank stably sorts entries by descending score and truncates to MaxEntries.
// Stability keeps earlier entries ahead of later equal scores.
func rank(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// loadTier parses one tier file. A missing file is not an error. Lines that
// do not split into exactly "username:score" with an integer score are
// skipped.
func loadTier(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leaderboard: cannot read %s: %w", path, err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}
		score, convErr := strconv.Atoi(parts[1])
		if convErr != nil {
			continue
		}
		entries = append(entries, Entry{Username: parts[0], Score: score})
	}
	return entries, nil
}

// saveTier rewrites a tier's file in rank order. Callers hold b.mu.
func (b *Board) saveTier(tier game.Tier) error {
	var sb strings.Builder
	for _, e := range b.lists[tier] {
		fmt.Fprintf(&sb, "%s:%d\n", e.Username, e.Score)
	}

	path := b.tierPath(tier)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("leaderboard: cannot write %s: %w", path, err)
	}
	return nil
}
