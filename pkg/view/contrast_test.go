package view

import "testing"

func TestContrastStep(t *testing.T) {
	c := NewContrast()
	if c.Bias != DefaultBias || c.Target != DefaultTarget {
		t.Fatalf("NewContrast() = %+v", c)
	}

	tests := []struct {
		delta int
		want  float64
	}{
		{1, 6},
		{-2, 4},
		{-10, MinBias},
		{100, MaxBias},
		{-1, MaxBias - 1},
	}
	for _, tt := range tests {
		if got := c.Step(tt.delta); got != tt.want {
			t.Errorf("Step(%d) = %v, want %v", tt.delta, got, tt.want)
		}
	}
	if c.Target != DefaultTarget {
		t.Errorf("Target changed to %v", c.Target)
	}
}
