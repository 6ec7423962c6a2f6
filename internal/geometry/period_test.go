package geometry

import (
	"math"
	"testing"
)

func TestLimitPeriod(t *testing.T) {
	tests := []struct {
		name   string
		val    float64
		offset float64
		period float64
		want   float64
	}{
		{"zero", 0, 0.5, TwoPi, 0},
		{"inside range", 1.0, 0.5, TwoPi, 1.0},
		{"pi wraps to minus pi", math.Pi, 0.5, TwoPi, -math.Pi},
		{"minus pi stays", -math.Pi, 0.5, TwoPi, -math.Pi},
		{"three halves pi", 1.5 * math.Pi, 0.5, TwoPi, -0.5 * math.Pi},
		{"minus three halves pi", -1.5 * math.Pi, 0.5, TwoPi, 0.5 * math.Pi},
		{"several turns", 7*math.Pi + 0.25, 0.5, TwoPi, -math.Pi + 0.25},
		{"offset zero", -0.5, 0, TwoPi, TwoPi - 0.5},
		{"period pi", 2.0, 0.5, math.Pi, 2.0 - math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LimitPeriod(tt.val, tt.offset, tt.period)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("LimitPeriod(%v, %v, %v) = %v, want %v", tt.val, tt.offset, tt.period, got, tt.want)
			}
		})
	}
}

func TestWrapAngle_Range(t *testing.T) {
	for a := -20.0; a <= 20.0; a += 0.137 {
		got := WrapAngle(a)
		if got < -math.Pi || got >= math.Pi {
			t.Fatalf("WrapAngle(%v) = %v, outside [-pi, pi)", a, got)
		}
		// Same direction as the input
		if math.Abs(math.Sin(got)-math.Sin(a)) > 1e-9 || math.Abs(math.Cos(got)-math.Cos(a)) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v changes direction", a, got)
		}
	}
}

func TestAngleDiff(t *testing.T) {
	if d := AngleDiff(math.Pi-0.1, -math.Pi+0.1); math.Abs(d-(-0.2)) > 1e-9 {
		t.Errorf("AngleDiff across the seam = %v, want -0.2", d)
	}
	if d := AngleDiff(1.0, 1.0+TwoPi); math.Abs(d) > 1e-9 {
		t.Errorf("AngleDiff of full turn = %v, want 0", d)
	}
}
