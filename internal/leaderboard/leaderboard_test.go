package leaderboard

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ntrubin/skycatch/internal/game"
)

func openBoard(t *testing.T) *Board {
	t.Helper()
	b, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return b
}

func TestOpenEmptyDirectory(t *testing.T) {
	b := openBoard(t)

	for _, tier := range game.Tiers {
		if got := b.Top(tier); len(got) != 0 {
			t.Errorf("fresh board should be empty for %s, got %v", tier, got)
		}
	}
}

func TestOpenCreatesNestedRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deep", "scores")
	if _, err := Open(root); err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	if _, err := os.Stat(root); err != nil {
		t.Errorf("storage root was not created: %v", err)
	}
}

func TestAddScoreRanking(t *testing.T) {
	b := openBoard(t)

	// Scores are re-ranked descending regardless of insertion order.
	for _, e := range []Entry{{"Al", 10}, {"Bo", 30}, {"Cy", 20}} {
		if err := b.AddScore(e.Username, game.TierEasy, e.Score); err != nil {
			t.Fatalf("AddScore() failed: %v", err)
		}
	}

	want := []Entry{{"Bo", 30}, {"Cy", 20}, {"Al", 10}}
	if got := b.Top(game.TierEasy); !reflect.DeepEqual(got, want) {
		t.Errorf("Top(EASY) = %v, expected %v", got, want)
	}
}

func TestAddScoreEviction(t *testing.T) {
	b := openBoard(t)

	for _, score := range []int{10, 20, 30, 40, 50, 60} {
		if err := b.AddScore("p", game.TierMedium, score); err != nil {
			t.Fatalf("AddScore() failed: %v", err)
		}
	}

	got := b.Top(game.TierMedium)
	if len(got) != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, len(got))
	}
	for i, want := range []int{60, 50, 40, 30, 20} {
		if got[i].Score != want {
			t.Errorf("rank %d score = %d, expected %d", i+1, got[i].Score, want)
		}
	}
}

func TestAddScoreTiesKeepInsertionOrder(t *testing.T) {
	b := openBoard(t)

	b.AddScore("first", game.TierEasy, 25)
	b.AddScore("second", game.TierEasy, 25)
	b.AddScore("third", game.TierEasy, 25)

	want := []Entry{{"first", 25}, {"second", 25}, {"third", 25}}
	if got := b.Top(game.TierEasy); !reflect.DeepEqual(got, want) {
		t.Errorf("tied scores must keep insertion order, got %v", got)
	}
}

func TestTruncationIdempotence(t *testing.T) {
	b := openBoard(t)

	for _, score := range []int{50, 40, 30, 20, 10} {
		b.AddScore("p", game.TierHard, score)
	}
	before := b.Top(game.TierHard)

	// Lower scores after the list is full never change it.
	for _, score := range []int{9, 8, 7, 1} {
		b.AddScore("q", game.TierHard, score)
	}

	if got := b.Top(game.TierHard); !reflect.DeepEqual(got, before) {
		t.Errorf("low scores should be evicted immediately: before %v, after %v", before, got)
	}
}

func TestTiersAreIndependent(t *testing.T) {
	b := openBoard(t)

	b.AddScore("e", game.TierEasy, 5)
	b.AddScore("h", game.TierHard, 50)

	if got := b.Top(game.TierEasy); len(got) != 1 || got[0].Username != "e" {
		t.Errorf("Top(EASY) = %v", got)
	}
	if got := b.Top(game.TierMedium); len(got) != 0 {
		t.Errorf("Top(MEDIUM) should be empty, got %v", got)
	}
	if got := b.Top(game.TierHard); len(got) != 1 || got[0].Username != "h" {
		t.Errorf("Top(HARD) = %v", got)
	}
}

func TestRoundTrip(t *testing.T) {
	root := t.TempDir()

	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	b.AddScore("Al", game.TierEasy, 10)
	b.AddScore("Bo", game.TierEasy, 30)
	b.AddScore("Cy", game.TierEasy, 20)

	// Reopening from the same root must reproduce the ranked list exactly.
	reopened, err := Open(root)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	want := []Entry{{"Bo", 30}, {"Cy", 20}, {"Al", 10}}
	if got := reopened.Top(game.TierEasy); !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip list = %v, expected %v", got, want)
	}
}

func TestFileFormat(t *testing.T) {
	root := t.TempDir()
	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	b.AddScore("Al", game.TierEasy, 10)
	b.AddScore("Bo", game.TierEasy, 30)

	data, err := os.ReadFile(filepath.Join(root, "EASY.txt"))
	if err != nil {
		t.Fatalf("tier file not written: %v", err)
	}
	if got := string(data); got != "Bo:30\nAl:10\n" {
		t.Errorf("file content = %q, expected rank-ordered username:score lines", got)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	root := t.TempDir()
	content := "Al:10\n" +
		"garbage line without separator\n" +
		"too:many:fields\n" +
		"Bo:notanumber\n" +
		"\n" +
		"Cy:20\n"
	if err := os.WriteFile(filepath.Join(root, "EASY.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	want := []Entry{{"Cy", 20}, {"Al", 10}}
	if got := b.Top(game.TierEasy); !reflect.DeepEqual(got, want) {
		t.Errorf("malformed lines must be skipped, got %v", got)
	}
}

func TestLoadTruncatesOversizedFile(t *testing.T) {
	root := t.TempDir()
	content := "a:1\nb:2\nc:3\nd:4\ne:5\nf:6\ng:7\n"
	if err := os.WriteFile(filepath.Join(root, "HARD.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	got := b.Top(game.TierHard)
	if len(got) != MaxEntries {
		t.Fatalf("expected %d entries after load, got %d", MaxEntries, len(got))
	}
	if got[0].Score != 7 || got[MaxEntries-1].Score != 3 {
		t.Errorf("loaded list should hold the 5 best scores, got %v", got)
	}
}

func TestTopReturnsDefensiveCopy(t *testing.T) {
	b := openBoard(t)
	b.AddScore("Al", game.TierEasy, 10)

	got := b.Top(game.TierEasy)
	got[0].Username = "mutated"
	got[0].Score = 999

	if fresh := b.Top(game.TierEasy); fresh[0].Username != "Al" || fresh[0].Score != 10 {
		t.Error("Top must return a copy the caller cannot use to mutate the board")
	}
}

func TestAddScoreKeepsMemoryOnWriteFailure(t *testing.T) {
	root := t.TempDir()
	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	// Make the tier file unwritable by turning its path into a directory.
	if err := os.Mkdir(filepath.Join(root, "EASY.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := b.AddScore("Al", game.TierEasy, 10); err == nil {
		t.Error("AddScore should surface the I/O failure")
	}

	// The score is still reflected in memory.
	if got := b.Top(game.TierEasy); len(got) != 1 || got[0].Score != 10 {
		t.Errorf("score should remain in memory after a failed write, got %v", got)
	}
}
