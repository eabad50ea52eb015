package rowan

import "math"

// Pure effect math shared by the Kage stages, the softfx reference
// implementation, and the tests. UV coordinates are normalized to [0, 1]
// with the origin at the top-left.

// Barrel distortion curvature divisors. The vertical coordinate bends the
// horizontal axis and vice versa, so a wide screen curves more along Y.
const (
	barrelCurveX = 6.0
	barrelCurveY = 4.0
)

// BarrelDistort remaps a UV coordinate through the CRT screen curve.
// Remapped coordinates can fall outside [0,1]; those texels are off the
// tube face and should render black.
func BarrelDistort(u, v float64) (float64, float64) {
	cu := u*2 - 1
	cv := v*2 - 1
	bu := math.Abs(cv) / barrelCurveX
	bv := math.Abs(cu) / barrelCurveY
	cu += cu * bu * bu
	cv += cv * bv * bv
	return cu*0.5 + 0.5, cv*0.5 + 0.5
}

// Vignette returns the darkening factor in [0, 1] for a UV coordinate.
// It is exactly 0 on every screen edge and approaches 1 at the center.
func Vignette(u, v float64) float64 {
	return clamp(math.Pow(16*u*v*(1-u)*(1-v), 0.3), 0, 1)
}

// Scan blur kernel: a 9×9 box, every sample weighted equally.
const (
	scanBlurTaps   = 9
	scanBlurWeight = 1.0 / (scanBlurTaps * scanBlurTaps)
)

// ScanBlurSize returns the per-sample UV spacing for the graded box blur at
// vertical coordinate v. The blur is strongest at the top of the frame,
// zero at mid-height, and pulls samples mirror-wise below it.
func ScanBlurSize(v float64) float64 {
	return (0.5 - v) / 300
}
