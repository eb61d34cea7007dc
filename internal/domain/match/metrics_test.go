package match

import "testing"

func TestKDA_DeathlessGame(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kills, assists int
		want           float64
	}{
		{0, 0, 0},
		{5, 10, 15},
		{12, 0, 12},
	}
	for _, tc := range cases {
		if got := KDA(tc.kills, 0, tc.assists); got != tc.want {
			t.Fatalf("KDA(%d, 0, %d) = %v, want %v", tc.kills, tc.assists, got, tc.want)
		}
	}
}

func TestKDA_WithDeaths(t *testing.T) {
	t.Parallel()

	if got := KDA(5, 2, 10); got != 7.5 {
		t.Fatalf("KDA(5, 2, 10) = %v, want 7.5", got)
	}
	if got := KDA(0, 4, 0); got != 0 {
		t.Fatalf("KDA(0, 4, 0) = %v, want 0", got)
	}
	if got := KDA(3, 3, 3); got != 2 {
		t.Fatalf("KDA(3, 3, 3) = %v, want 2", got)
	}
}

func TestPerMinute_ZeroAmount(t *testing.T) {
	t.Parallel()

	for _, duration := range []int{1, 60, 1500, 3599} {
		if got := PerMinute(0, duration); got != 0 {
			t.Fatalf("PerMinute(0, %d) = %v, want 0", duration, got)
		}
	}
}

func TestPerMinute_ZeroDuration(t *testing.T) {
	t.Parallel()

	for _, amount := range []int{0, 1, 20000} {
		if got := PerMinute(amount, 0); got != 0 {
			t.Fatalf("PerMinute(%d, 0) = %v, want 0", amount, got)
		}
	}
}

func TestPerMinute_RoundsToNearest(t *testing.T) {
	t.Parallel()

	// 27:17 game, 13000 gold: 13000 / (1637/60) = 476.48... -> 476
	if got := PerMinute(13000, 1637); got != 476 {
		t.Fatalf("PerMinute(13000, 1637) = %v, want 476", got)
	}
	// exact half rounds up
	if got := PerMinute(150, 3600); got != 3 {
		t.Fatalf("PerMinute(150, 3600) = %v, want 3", got)
	}
}

func TestClockToSeconds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
	}{
		{"27:17", 1637},
		{"00:45", 45},
		{"45:00", 2700},
		{"", 0},
		{"2717", 0},
		{"12:34:56", 0},
		{"ab:cd", 0},
	}
	for _, tc := range cases {
		if got := ClockToSeconds(tc.in); got != tc.want {
			t.Fatalf("ClockToSeconds(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
