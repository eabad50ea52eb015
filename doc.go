// Package rowan is a character-controller and post-processing toolkit for
// [Ebitengine] demo scenes.
//
// Rowan provides the three pieces every small action demo ends up rewriting:
// a smoothed motion controller for a keyboard-driven body, a rigid follow
// camera derived from that body, and a screen-space compositing chain that
// post-processes the rendered frame.
//
// # Tick order
//
// One logical frame advances in a fixed order: sample input, step the body,
// derive the camera pose, render the scene, then composite. [Run] drives
// that loop for you:
//
//	demo := newMyDemo()
//	rowan.Run(demo, rowan.RunConfig{Title: "My Demo", Width: 1280, Height: 720})
//
// For full control, implement [ebiten.Game] yourself and call the pieces
// directly:
//
//	in := g.source.Sample()
//	rowan.Step(&g.body, in, dt, g.motion)
//	pose, ok := g.cam.Pose(&g.body)
//
// # Motion
//
// [Body] holds a target position written instantly from input and a current
// position that trails it through an exponential smoother. Vertical motion
// is a plain gravity integrator with a jump impulse and a ground clamp at
// y=0. All constants live in [MotionConfig].
//
// # Camera
//
// [FollowCamera] computes a pose as body position plus a constant offset,
// looking at the body. It keeps no state of its own: all visual softness
// comes from the body's position smoothing, never from camera lag.
//
// # Compositing
//
// A [CompositingStage] consumes the rendered frame and produces a new one.
// Built-in stages: [IntensityStage] (additive glow scaled by a per-frame
// intensity), [CRTStage] (barrel distortion + vignette), [ScanBlurStage]
// (vertically graded box blur), and [ShaderStage] for custom Kage shaders.
// [Chain] runs stages in order through pooled ping-pong buffers. A stage
// whose shader is not available skips its frame (passthrough): a
// [ShaderStage] becomes ready once its shader is set, while the built-in
// stages compile lazily on first use and, if compilation fails, stay
// skipped and report the error through their Err method.
//
// The softfx subpackage mirrors the built-in effects on a CPU float
// buffer for headless rendering and numeric tests.
//
// [Ebitengine]: https://ebitengine.org
package rowan
