package softfx

import (
	"github.com/anthonynsimon/bild/blur"

	"github.com/phanxgames/rowan"
)

// Stage is a single CPU compositing pass. Apply reads src and writes the
// transformed frame into dst; src and dst must be distinct buffers of the
// same dimensions. Stages are stateless across frames.
type Stage interface {
	Apply(src, dst *Buffer, p rowan.EffectParams)
}

// Composite runs stages in order, ping-ponging between two buffers, and
// returns the buffer holding the final frame (src itself when stages is
// empty). src is not modified.
func Composite(src *Buffer, p rowan.EffectParams, stages ...Stage) *Buffer {
	current := src
	var scratch *Buffer
	for _, s := range stages {
		if scratch == nil {
			scratch = NewBuffer(src.W, src.H)
		}
		s.Apply(current, scratch, p)
		if current == src {
			current, scratch = scratch, nil
		} else {
			current, scratch = scratch, current
		}
	}
	return current
}

// --- CRT ---

// CRT warps the frame through the barrel-distortion curve, blacks out
// texels off the curved face, and applies the edge vignette. Pixel-exact
// mirror of the GPU CRTStage.
type CRT struct{}

// Apply runs the CRT pass.
func (CRT) Apply(src, dst *Buffer, _ rowan.EffectParams) {
	w, h := float64(src.W), float64(src.H)
	for y := 0; y < src.H; y++ {
		v := (float64(y) + 0.5) / h
		for x := 0; x < src.W; x++ {
			u := (float64(x) + 0.5) / w
			ru, rv := rowan.BarrelDistort(u, v)
			if ru < 0 || ru > 1 || rv < 0 || rv > 1 {
				dst.Set(x, y, 0, 0, 0, 1)
				continue
			}
			r, g, b, a := src.sampleUV(ru, rv)
			vig := float32(rowan.Vignette(ru, rv))
			dst.Set(x, y, r*vig, g*vig, b*vig, a)
		}
	}
}

// --- ScanBlur ---

// ScanBlur applies the 9×9 uniform-weight box blur with vertically graded
// sample spacing. Samples clamp to the frame edge, so a uniform field is a
// fixed point of the pass.
type ScanBlur struct{}

// Apply runs the graded blur pass.
func (ScanBlur) Apply(src, dst *Buffer, _ rowan.EffectParams) {
	w, h := float64(src.W), float64(src.H)
	for y := 0; y < src.H; y++ {
		v := (float64(y) + 0.5) / h
		blurSize := rowan.ScanBlurSize(v)
		for x := 0; x < src.W; x++ {
			u := (float64(x) + 0.5) / w
			var sr, sg, sb, sa float32
			for i := -4; i <= 4; i++ {
				for j := -4; j <= 4; j++ {
					su := clamp01(u + float64(i)*blurSize)
					sv := clamp01(v + float64(j)*blurSize)
					r, g, b, a := src.sampleUV(su, sv)
					sr += r
					sg += g
					sb += b
					sa += a
				}
			}
			const inv = float32(1.0 / 81.0)
			dst.Set(x, y, sr*inv, sg*inv, sb*inv, sa*inv)
		}
	}
}

// --- Intensity ---

// Intensity adds an intensity-scaled glow: out = src + intensity·blur(src),
// clamped per component. The blur term goes through an 8-bit Gaussian
// (bild), which quantizes the glow slightly; the base image is carried in
// float, so intensity 0 is still an exact identity.
type Intensity struct {
	// GlowRadius is the Gaussian radius in pixels feeding the glow term.
	GlowRadius float64
}

// Apply runs the glow pass.
func (s Intensity) Apply(src, dst *Buffer, p rowan.EffectParams) {
	radius := s.GlowRadius
	if radius <= 0 {
		radius = 8
	}
	intensity := float32(clamp01(p.Intensity))

	glow := FromRGBA(blur.Gaussian(src.ToRGBA(), radius))
	for i := 0; i < len(src.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := src.Pix[i+c] + glow.Pix[i+c]*intensity
			if v > 1 {
				v = 1
			}
			dst.Pix[i+c] = v
		}
		dst.Pix[i+3] = src.Pix[i+3]
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
