package game

import "testing"

// TestLevelOf проверяет лестницу уровней по 100 XP.
func TestLevelOf(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{101, 2},
		{950, 10},
		{-5, 1},
	}

	for _, tc := range cases {
		if got := LevelOf(tc.xp); got != tc.want {
			t.Fatalf("LevelOf(%d): expected %d, got %d", tc.xp, tc.want, got)
		}
	}
}

// TestLevelOfMonotonic проверяет монотонность уровня по XP.
func TestLevelOfMonotonic(t *testing.T) {
	for xp := 0; xp < 1000; xp++ {
		if LevelOf(xp) > LevelOf(xp+1) {
			t.Fatalf("level decreased between xp=%d and xp=%d", xp, xp+1)
		}
	}
}

// TestNextLevelAt проверяет порог следующего уровня.
func TestNextLevelAt(t *testing.T) {
	if got := NextLevelAt(0); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := NextLevelAt(95); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := NextLevelAt(100); got != 200 {
		t.Fatalf("expected 200, got %d", got)
	}
}

// TestLevelProgress проверяет прогресс внутри уровня.
func TestLevelProgress(t *testing.T) {
	if got := LevelProgress(115); got != 15 {
		t.Fatalf("expected 15, got %d", got)
	}
	if got := LevelProgress(-1); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
