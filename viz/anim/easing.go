package anim

// Easing names a deterministic progress-remapping function from [0,1] to
// [0,1]. The formulas are load-bearing for visual regression: do not
// adjust their constants.
type Easing string

const (
	EaseLinear     Easing = "linear"
	EaseInQuad     Easing = "easeInQuad"
	EaseOutQuad    Easing = "easeOutQuad"
	EaseInOutQuad  Easing = "easeInOutQuad"
	EaseInCubic    Easing = "easeInCubic"
	EaseOutCubic   Easing = "easeOutCubic"
	EaseInOutCubic Easing = "easeInOutCubic"
	EaseBounce     Easing = "bounce"
)

// Ease applies the named easing to raw progress t. Unknown easings fall
// back to linear.
func Ease(e Easing, t float64) float64 {
	switch e {
	case EaseInQuad:
		return t * t
	case EaseOutQuad:
		return t * (2 - t)
	case EaseInOutQuad:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	case EaseInCubic:
		return t * t * t
	case EaseOutCubic:
		u := t - 1
		return u*u*u + 1
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	case EaseBounce:
		return bounce(t)
	default:
		return t
	}
}

// bounce is the four-segment bounce curve.
func bounce(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}
