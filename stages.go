package rowan

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader sources ---
// All shaders use //kage:unit pixels as required by Ebitengine. The scene
// buffer is sampled with imageSrc0At (nearest fetch); UV math happens in
// normalized [0,1] coordinates derived from the source region.

const glowShaderSrc = `//kage:unit pixels
package main

var Intensity float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	base := imageSrc0At(src)
	glow := imageSrc1At(src)
	// Sources are premultiplied; color components must not exceed alpha.
	rgb := min(base.rgb+glow.rgb*Intensity, vec3(base.a))
	return vec4(rgb, base.a)
}
`

const crtShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	uv := (src - origin) / size

	// Barrel distortion: each axis bends by the square of the other.
	c := uv*2 - 1
	c += c * pow(abs(c.yx)/vec2(6, 4), vec2(2, 2))
	uv = c*0.5 + 0.5

	// Off the tube face: opaque black.
	if uv.x < 0 || uv.x > 1 || uv.y < 0 || uv.y > 1 {
		return vec4(0, 0, 0, 1)
	}

	col := imageSrc0At(uv*size + origin)
	vig := clamp(pow(16*uv.x*uv.y*(1-uv.x)*(1-uv.y), 0.3), 0, 1)
	return vec4(col.rgb*vig, col.a)
}
`

const scanBlurShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	uv := (src - origin) / size

	// Sample spacing grows toward the top of the frame and is zero at
	// mid-height. Taps clamp to the edge texel centers (uv 1.0 would fetch
	// one past the source region) so a uniform field stays uniform.
	blurSize := (0.5 - uv.y) / 300

	half := vec2(0.5) / size
	var sum vec4
	for x := -4; x <= 4; x++ {
		for y := -4; y <= 4; y++ {
			p := uv + vec2(float(x), float(y))*blurSize
			p = clamp(p, half, vec2(1)-half)
			sum += imageSrc0At(p*size + origin)
		}
	}
	return sum / 81
}
`

// --- Lazy shader compilation ---

// lazyShader compiles its source once, on first use. A failed compile is
// remembered, not retried: the owning stage skips its pass from then on
// and reports the error through Err, leaving the application to decide
// whether that is fatal.
type lazyShader struct {
	src      string
	shader   *ebiten.Shader
	compiled bool
	err      error
}

func (l *lazyShader) get() *ebiten.Shader {
	if !l.compiled {
		l.compiled = true
		l.shader, l.err = ebiten.NewShader([]byte(l.src))
	}
	return l.shader
}

// --- IntensityStage ---

// IntensityStage adds an intensity-scaled glow to the frame: the source is
// blurred with a Kawase downscale/upscale chain and added back on top,
// out = src + intensity·blur(src). At intensity 0 the output equals the
// input exactly; raising intensity only brightens.
type IntensityStage struct {
	// GlowRadius is the approximate blur radius in pixels feeding the
	// glow term.
	GlowRadius int

	shader   lazyShader
	temps    []*ebiten.Image
	full     *ebiten.Image // full-size blurred frame for the combine pass
	uniforms map[string]any
	imgOp    ebiten.DrawImageOptions
	shaderOp ebiten.DrawRectShaderOptions
}

// NewIntensityStage creates a glow stage with the given blur radius.
func NewIntensityStage(glowRadius int) *IntensityStage {
	if glowRadius < 1 {
		glowRadius = 1
	}
	return &IntensityStage{
		GlowRadius: glowRadius,
		shader:     lazyShader{src: glowShaderSrc},
		uniforms:   make(map[string]any, 1),
	}
}

// Name implements CompositingStage.
func (s *IntensityStage) Name() string { return "intensity" }

// Err returns the shader compile error, if any.
func (s *IntensityStage) Err() error { return s.shader.err }

// Apply blurs src into an internal buffer, then combines base and glow in
// one shader pass. Returns false while the combine shader is unavailable.
func (s *IntensityStage) Apply(src, dst *ebiten.Image, p EffectParams) bool {
	shader := s.shader.get()
	if shader == nil {
		return false
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	s.blurInto(src, w, h)

	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	s.uniforms["Intensity"] = float32(clamp(p.Intensity, 0, 1))
	s.shaderOp.Images[0] = src
	s.shaderOp.Images[1] = s.full
	s.shaderOp.Uniforms = s.uniforms
	dst.DrawRectShader(w, h, shader, &s.shaderOp)
	return true
}

// blurInto runs a Kawase blur over src, leaving the result in s.full at
// full resolution. Iterative half-size downscales followed by upscales;
// bilinear filtering during DrawImage does the smoothing work.
func (s *IntensityStage) blurInto(src *ebiten.Image, w, h int) {
	passes := int(math.Ceil(math.Log2(float64(s.GlowRadius))))
	if passes < 1 {
		passes = 1
	}

	for len(s.temps) < passes {
		s.temps = append(s.temps, nil)
	}
	for i := passes; i < len(s.temps); i++ {
		if s.temps[i] != nil {
			s.temps[i].Deallocate()
			s.temps[i] = nil
		}
	}
	s.temps = s.temps[:passes]

	op := &s.imgOp

	// Downscale chain.
	current := src
	tw, th := w, h
	for i := 0; i < passes; i++ {
		tw = max(tw/2, 1)
		th = max(th/2, 1)
		if s.temps[i] == nil || s.temps[i].Bounds().Dx() != tw || s.temps[i].Bounds().Dy() != th {
			if s.temps[i] != nil {
				s.temps[i].Deallocate()
			}
			s.temps[i] = ebiten.NewImage(tw, th)
		} else {
			s.temps[i].Clear()
		}
		op.GeoM.Reset()
		op.ColorScale.Reset()
		sb := current.Bounds()
		op.GeoM.Scale(float64(tw)/float64(sb.Dx()), float64(th)/float64(sb.Dy()))
		op.Filter = ebiten.FilterLinear
		s.temps[i].DrawImage(current, op)
		current = s.temps[i]
	}

	// Upscale chain, reusing the downscale temps.
	for i := passes - 2; i >= 0; i-- {
		s.temps[i].Clear()
		op.GeoM.Reset()
		op.ColorScale.Reset()
		sb := current.Bounds()
		db := s.temps[i].Bounds()
		op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
		op.Filter = ebiten.FilterLinear
		s.temps[i].DrawImage(current, op)
		current = s.temps[i]
	}

	// Final upscale to full resolution.
	if s.full == nil || s.full.Bounds().Dx() != w || s.full.Bounds().Dy() != h {
		if s.full != nil {
			s.full.Deallocate()
		}
		s.full = ebiten.NewImage(w, h)
	} else {
		s.full.Clear()
	}
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sb := current.Bounds()
	op.GeoM.Scale(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
	op.Filter = ebiten.FilterLinear
	s.full.DrawImage(current, op)
}

// --- CRTStage ---

// CRTStage warps the frame through a barrel-distortion curve, blacks out
// texels that fall off the curved face, and darkens toward the edges with
// a vignette. The shader formulas mirror BarrelDistort and Vignette.
type CRTStage struct {
	shader   lazyShader
	shaderOp ebiten.DrawRectShaderOptions
}

// NewCRTStage creates the CRT screen-curve stage.
func NewCRTStage() *CRTStage {
	return &CRTStage{shader: lazyShader{src: crtShaderSrc}}
}

// Name implements CompositingStage.
func (s *CRTStage) Name() string { return "crt" }

// Err returns the shader compile error, if any.
func (s *CRTStage) Err() error { return s.shader.err }

// Apply runs the CRT pass. Returns false while the shader is unavailable.
func (s *CRTStage) Apply(src, dst *ebiten.Image, _ EffectParams) bool {
	shader := s.shader.get()
	if shader == nil {
		return false
	}
	bounds := src.Bounds()
	s.shaderOp.Images[0] = src
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &s.shaderOp)
	return true
}

// --- ScanBlurStage ---

// ScanBlurStage applies a 9×9 box blur whose sample spacing grows toward
// the top of the frame, per ScanBlurSize. All 81 taps share the 1/81
// weight, so a uniform input field passes through unchanged.
type ScanBlurStage struct {
	shader   lazyShader
	shaderOp ebiten.DrawRectShaderOptions
}

// NewScanBlurStage creates the vertically graded blur stage.
func NewScanBlurStage() *ScanBlurStage {
	return &ScanBlurStage{shader: lazyShader{src: scanBlurShaderSrc}}
}

// Name implements CompositingStage.
func (s *ScanBlurStage) Name() string { return "scanblur" }

// Err returns the shader compile error, if any.
func (s *ScanBlurStage) Err() error { return s.shader.err }

// Apply runs the graded blur pass. Returns false while the shader is
// unavailable.
func (s *ScanBlurStage) Apply(src, dst *ebiten.Image, _ EffectParams) bool {
	shader := s.shader.get()
	if shader == nil {
		return false
	}
	bounds := src.Bounds()
	s.shaderOp.Images[0] = src
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &s.shaderOp)
	return true
}

// --- ShaderStage ---

// ShaderStage wraps a caller-supplied Kage shader as a compositing stage,
// exposing Ebitengine's shader system directly. Images[0] is auto-filled
// with the frame; Images[1] and Images[2] are free for extra textures. The
// frame's intensity is published to the shader as the Intensity uniform.
//
// A nil Shader makes the stage report not-ready, which the chain treats as
// a passthrough — the cold-start path for shaders compiled elsewhere.
type ShaderStage struct {
	Shader   *ebiten.Shader
	Uniforms map[string]any
	Images   [3]*ebiten.Image

	label    string
	shaderOp ebiten.DrawRectShaderOptions
}

// NewShaderStage creates a custom stage around an already compiled shader.
// shader may be nil and set later, once compilation finishes.
func NewShaderStage(label string, shader *ebiten.Shader) *ShaderStage {
	return &ShaderStage{
		Shader:   shader,
		Uniforms: make(map[string]any),
		label:    label,
	}
}

// Name implements CompositingStage.
func (s *ShaderStage) Name() string { return s.label }

// Apply runs the wrapped shader. Returns false while Shader is nil.
func (s *ShaderStage) Apply(src, dst *ebiten.Image, p EffectParams) bool {
	if s.Shader == nil {
		return false
	}
	bounds := src.Bounds()
	s.Uniforms["Intensity"] = float32(clamp(p.Intensity, 0, 1))
	s.shaderOp.Images[0] = src
	s.shaderOp.Images[1] = s.Images[1]
	s.shaderOp.Images[2] = s.Images[2]
	s.shaderOp.Uniforms = s.Uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), s.Shader, &s.shaderOp)
	return true
}
