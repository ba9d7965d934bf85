package anim

// clamp01 clamps x in [0,1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// easeInQuad, the reveal curve: slow start, full speed at the end.
func easeInQuad(x float64) float64 { return x * x }

// approach moves cur toward target by a fixed fraction. The rate is per
// frame, not per second, so convergence speed follows the host refresh rate.
// That matches the deployed behavior and is kept on purpose.
func approach(cur, target, rate float64) float64 {
	return cur + (target-cur)*rate
}
