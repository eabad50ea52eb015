package rowan

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ParamTrack produces one EffectParams value per tick by tweening the
// intensity between two endpoints. The track owns all animation state;
// consumers receive a plain value that fully replaces last frame's.
type ParamTrack struct {
	from, to float64
	duration float32
	easeFn   ease.TweenFunc
	pingPong bool

	tween   *gween.Tween
	reverse bool
	value   float64
}

// NewParamTrack creates a one-shot ramp from `from` to `to` over duration
// seconds.
func NewParamTrack(from, to float64, duration float32, easeFn ease.TweenFunc) *ParamTrack {
	return &ParamTrack{
		from:     from,
		to:       to,
		duration: duration,
		easeFn:   easeFn,
		tween:    gween.New(float32(from), float32(to), duration, easeFn),
		value:    from,
	}
}

// NewPingPongTrack creates a track that sweeps from `from` to `to` and
// back, forever.
func NewPingPongTrack(from, to float64, duration float32, easeFn ease.TweenFunc) *ParamTrack {
	t := NewParamTrack(from, to, duration, easeFn)
	t.pingPong = true
	return t
}

// ConstantParams is a convenience for scenes that hold intensity fixed.
func ConstantParams(intensity float64) EffectParams {
	return EffectParams{Intensity: intensity}.Clamped()
}

// Update advances the track by dt seconds and returns this frame's params.
// A finished one-shot track keeps returning its final value; negative dt
// is treated as zero.
func (t *ParamTrack) Update(dt float64) EffectParams {
	if dt < 0 {
		dt = 0
	}
	v, done := t.tween.Update(float32(dt))
	t.value = float64(v)
	if done && t.pingPong {
		t.reverse = !t.reverse
		if t.reverse {
			t.tween = gween.New(float32(t.to), float32(t.from), t.duration, t.easeFn)
		} else {
			t.tween = gween.New(float32(t.from), float32(t.to), t.duration, t.easeFn)
		}
	}
	return EffectParams{Intensity: t.value}.Clamped()
}

// Value returns the most recently produced intensity.
func (t *ParamTrack) Value() float64 { return t.value }
