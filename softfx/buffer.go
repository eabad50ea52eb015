// Package softfx is the CPU reference implementation of rowan's
// post-process effects. It mirrors the Kage stages over a float RGBA frame
// buffer, for headless rendering and for tests that need to read pixels
// back — something the GPU stages cannot do outside a running game loop.
package softfx

import "image"

// Buffer is a float RGBA frame buffer, row-major, four components per
// pixel, components nominally in [0, 1]. No premultiplication.
type Buffer struct {
	W, H int
	Pix  []float32
}

// NewBuffer creates a zeroed (transparent black) buffer.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{W: w, H: h, Pix: make([]float32, w*h*4)}
}

// At returns the pixel at (x, y). Out-of-range coordinates clamp to the
// nearest edge pixel, matching the shaders' clamp-to-edge sampling.
func (b *Buffer) At(x, y int) (r, g, bl, a float32) {
	if x < 0 {
		x = 0
	} else if x >= b.W {
		x = b.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= b.H {
		y = b.H - 1
	}
	i := (y*b.W + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Set writes the pixel at (x, y). Out-of-range coordinates are ignored.
func (b *Buffer) Set(x, y int, r, g, bl, a float32) {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return
	}
	i := (y*b.W + x) * 4
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// Fill sets every pixel to the given color.
func (b *Buffer) Fill(r, g, bl, a float32) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = r
		b.Pix[i+1] = g
		b.Pix[i+2] = bl
		b.Pix[i+3] = a
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := NewBuffer(b.W, b.H)
	copy(c.Pix, b.Pix)
	return c
}

// sampleUV fetches the nearest pixel for a normalized UV coordinate,
// clamped to the frame edge.
func (b *Buffer) sampleUV(u, v float64) (r, g, bl, a float32) {
	return b.At(int(u*float64(b.W)), int(v*float64(b.H)))
}

// ToRGBA converts the buffer to an 8-bit image, clamping each component.
func (b *Buffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.W, b.H))
	for i := 0; i < len(b.Pix); i++ {
		v := b.Pix[i]
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		img.Pix[i] = uint8(v*255 + 0.5)
	}
	return img
}

// FromRGBA converts an 8-bit image into a float buffer.
func FromRGBA(img *image.RGBA) *Buffer {
	bounds := img.Bounds()
	b := NewBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < b.H; y++ {
		row := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := 0; x < b.W*4; x++ {
			b.Pix[y*b.W*4+x] = float32(img.Pix[row+x]) / 255
		}
	}
	return b
}
