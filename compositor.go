package rowan

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// EffectParams is the per-frame knob set handed to every compositing stage.
// Each frame's value fully replaces the previous one; stages must not
// accumulate it.
type EffectParams struct {
	// Intensity is a generic effect strength in [0, 1]. Stages clamp it at
	// the point of use.
	Intensity float64
}

// Clamped returns the params with Intensity clamped to [0, 1].
func (p EffectParams) Clamped() EffectParams {
	p.Intensity = clamp(p.Intensity, 0, 1)
	return p
}

// CompositingStage is a single full-screen post-process pass. Apply reads
// src and writes the transformed frame into dst; src and dst are never the
// same image. The return value reports whether the stage actually ran:
// false means the stage skipped this frame (typically a shader that has
// not compiled yet) and dst was left untouched, so the caller must treat
// src as the pass output.
type CompositingStage interface {
	Apply(src, dst *ebiten.Image, p EffectParams) bool
	// Name identifies the stage in diagnostics.
	Name() string
}

// Chain runs compositing stages in order, ping-ponging between pooled
// offscreen buffers. The rendered scene goes in once; each stage's output
// becomes the next stage's input; the final image is blitted to the screen.
type Chain struct {
	Stages []*ChainEntry

	pool  bufferPool
	imgOp ebiten.DrawImageOptions
}

// ChainEntry wraps a stage with an enable flag so demos can toggle effects
// without rebuilding the chain.
type ChainEntry struct {
	Stage   CompositingStage
	Enabled bool
}

// NewChain builds a chain from the given stages, all enabled.
func NewChain(stages ...CompositingStage) *Chain {
	c := &Chain{}
	for _, s := range stages {
		c.Stages = append(c.Stages, &ChainEntry{Stage: s, Enabled: true})
	}
	return c
}

// Composite runs every enabled stage over src and draws the result into
// dst. Stages that skip (not ready) are transparent to the rest of the
// chain: their input flows through unchanged. With no runnable stage the
// chain degenerates to a plain copy of src.
func (c *Chain) Composite(src, dst *ebiten.Image, p EffectParams) {
	p = p.Clamped()
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	current := src
	var scratch *ebiten.Image

	for _, e := range c.Stages {
		if e == nil || e.Stage == nil || !e.Enabled {
			continue
		}
		if scratch == nil {
			scratch = c.pool.Acquire(w, h)
		} else {
			scratch.Clear()
		}
		if !e.Stage.Apply(current, scratch, p) {
			continue // cold start: src is this pass's output, retry next frame
		}
		if current != src {
			// current is a pooled buffer we own; recycle it as the next scratch.
			current, scratch = scratch, current
		} else {
			current, scratch = scratch, nil
		}
	}

	c.imgOp.GeoM.Reset()
	c.imgOp.ColorScale.Reset()
	c.imgOp.Filter = ebiten.FilterNearest
	dst.DrawImage(current, &c.imgOp)

	if current != src {
		c.pool.Release(current)
	}
	if scratch != nil {
		c.pool.Release(scratch)
	}
}

// --- Offscreen buffer pool ---

// bufferPool manages reusable offscreen ebiten.Images keyed by exact
// dimensions. Full-screen compositing uses a single size per window, so
// after warmup Acquire/Release are zero-alloc. Buffers are keyed exactly
// rather than rounded up: a stage's output is blitted whole, and padding
// pixels would bleed into the final frame.
type bufferPool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image of exactly (w, h) pixels.
func (p *bufferPool) Acquire(w, h int) *ebiten.Image {
	key := poolKey(w, h)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here (avoids redundant GPU work if released then
// immediately re-acquired).
func (p *bufferPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}
