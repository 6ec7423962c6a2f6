package geometry

import "math"

// TwoPi is the full-turn period used for yaw normalization.
const TwoPi = 2 * math.Pi

// LimitPeriod wraps val into the half-open range [-offset*period, (1-offset)*period).
// With offset 0.5 and period 2π the result lies in [-π, π).
func LimitPeriod(val, offset, period float64) float64 {
	return val - math.Floor(val/period+offset)*period
}

// WrapAngle normalizes an angle in radians into [-π, π)
func WrapAngle(angle float64) float64 {
	wrapped := LimitPeriod(angle, 0.5, TwoPi)
	// Float rounding can land exactly on the open end
	if wrapped >= math.Pi {
		wrapped -= TwoPi
	}
	return wrapped
}

// AngleDiff returns the signed difference a-b wrapped into [-π, π)
func AngleDiff(a, b float64) float64 {
	return WrapAngle(a - b)
}
