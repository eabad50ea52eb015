package rowan

import "testing"

func TestStageNames(t *testing.T) {
	cases := []struct {
		stage CompositingStage
		want  string
	}{
		{NewIntensityStage(8), "intensity"},
		{NewCRTStage(), "crt"},
		{NewScanBlurStage(), "scanblur"},
		{NewShaderStage("ripple", nil), "ripple"},
	}
	for _, c := range cases {
		if got := c.stage.Name(); got != c.want {
			t.Errorf("Name() = %q, want %q", got, c.want)
		}
	}
}

func TestIntensityStageClampsRadius(t *testing.T) {
	s := NewIntensityStage(-5)
	if s.GlowRadius != 1 {
		t.Errorf("GlowRadius = %d, want clamped to 1", s.GlowRadius)
	}
}

func TestShaderStageSkipsWithoutShader(t *testing.T) {
	// Cold start: a stage whose shader hasn't been delivered yet must skip
	// rather than panic or draw. A skip must not touch its images.
	s := NewShaderStage("empty", nil)
	if ran := s.Apply(nil, nil, EffectParams{Intensity: 1}); ran {
		t.Error("Apply ran with a nil shader, want skip (false)")
	}
}

func TestBuiltinShadersCompile(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"glow", glowShaderSrc},
		{"crt", crtShaderSrc},
		{"scanblur", scanBlurShaderSrc},
	}
	for _, c := range cases {
		l := lazyShader{src: c.src}
		if l.get() == nil {
			t.Errorf("%s shader failed to compile: %v", c.name, l.err)
		}
	}
}

func TestLazyShaderRemembersCompileFailure(t *testing.T) {
	l := lazyShader{src: "package main\nfunc Fragment("}
	if l.get() != nil {
		t.Fatal("invalid source compiled")
	}
	if l.err == nil {
		t.Fatal("compile error not recorded")
	}
	first := l.err
	if l.get() != nil || l.err != first {
		t.Error("failed compile was re-attempted, want remembered")
	}
}

func TestScanBlurTapsFetchInsideSource(t *testing.T) {
	// Mirrors the shader's tap arithmetic. On the frame's edge rows the
	// unclamped taps land past the source region; clamping to the edge
	// texel centers must bring every fetch back inside, or edge pixels mix
	// in transparent black and a uniform field no longer passes through
	// unchanged.
	const w, h = 1280, 720
	for _, y := range []int{0, 1, h / 2, h - 2, h - 1} {
		v := (float64(y) + 0.5) / h
		blurSize := ScanBlurSize(v)
		for _, x := range []int{0, w / 2, w - 1} {
			u := (float64(x) + 0.5) / w
			for i := -4; i <= 4; i++ {
				for j := -4; j <= 4; j++ {
					pu := clamp(u+float64(i)*blurSize, 0.5/w, 1-0.5/w)
					pv := clamp(v+float64(j)*blurSize, 0.5/h, 1-0.5/h)
					px, py := int(pu*w), int(pv*h)
					if px < 0 || px >= w || py < 0 || py >= h {
						t.Fatalf("tap (%d,%d) at pixel (%d,%d) fetches (%d,%d), outside %dx%d",
							i, j, x, y, px, py, w, h)
					}
				}
			}
		}
	}
}

func TestStageErrNilBeforeCompile(t *testing.T) {
	// Compilation is lazy; before the first Apply there is no error to
	// report.
	if err := NewCRTStage().Err(); err != nil {
		t.Errorf("CRTStage.Err() = %v before first use, want nil", err)
	}
	if err := NewScanBlurStage().Err(); err != nil {
		t.Errorf("ScanBlurStage.Err() = %v before first use, want nil", err)
	}
	if err := NewIntensityStage(8).Err(); err != nil {
		t.Errorf("IntensityStage.Err() = %v before first use, want nil", err)
	}
}
