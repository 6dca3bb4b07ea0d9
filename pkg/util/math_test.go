package util

import "testing"

func TestRound(t *testing.T) {
	cases := []struct {
		v      float64
		places int
		want   float64
	}{
		{1.0526315789, 3, 1.053},
		{-1.0526315789, 3, -1.053},
		{505.005, 2, 505.01},
		{87.42105, 1, 87.4},
		{0, 3, 0},
	}
	for _, c := range cases {
		if got := Round(c.v, c.places); got != c.want {
			t.Fatalf("Round(%v, %d) = %v, want %v", c.v, c.places, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-7, -5, 5); got != -5 {
		t.Fatalf("expected -5, got %v", got)
	}
	if got := Clamp(7, -5, 5); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
	if got := Clamp(1.5, -5, 5); got != 1.5 {
		t.Fatalf("expected 1.5, got %v", got)
	}
}
