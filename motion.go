package rowan

import "math"

// Body is a controlled entity's motion state. Target is written instantly
// from input each tick; Current trails it through an exponential smoother
// and is the position a scene should render. Target.Y never goes below
// zero (the ground plane).
type Body struct {
	// Current is the smoothed, rendered position.
	Current Vec3
	// Target is the input-driven goal position. Never rendered directly.
	Target Vec3
	// VerticalVelocity is the signed vertical speed in units per second,
	// driven by gravity and jump impulses.
	VerticalVelocity float64
	// FacingAngle is the yaw (radians) of the last movement direction.
	FacingAngle float64
	// RenderedAngle trails FacingAngle so meshes turn instead of snapping.
	RenderedAngle float64
	// Moving reports whether horizontal input was active on the last tick.
	// Useful for switching between locomotion and idle animations.
	Moving bool
}

// MotionConfig holds the constants the motion controller integrates with.
type MotionConfig struct {
	// Speed is the horizontal movement speed in units per second.
	Speed float64
	// Gravity is the vertical acceleration in units per second squared.
	// Negative values pull the body down.
	Gravity float64
	// JumpImpulse is the vertical velocity set when a jump triggers.
	JumpImpulse float64
	// PositionBlend is the per-tick fraction Current moves toward Target.
	// An exponential smoother, not a physical integrator: values in (0, 1]
	// never overshoot.
	PositionBlend float64
	// AngleBlend is the per-tick fraction RenderedAngle turns toward
	// FacingAngle, always along the shortest arc.
	AngleBlend float64
	// JumpEpsilon is the small positive Y nudge applied when a jump
	// triggers. Without it the ground clamp would immediately re-arm the
	// jump within the same tick.
	JumpEpsilon float64
}

// DefaultMotionConfig returns the constants the demo scenes tune from.
func DefaultMotionConfig() MotionConfig {
	return MotionConfig{
		Speed:         3.0,
		Gravity:       -12.0,
		JumpImpulse:   3.0,
		PositionBlend: 0.1,
		AngleBlend:    0.2,
		JumpEpsilon:   0.1,
	}
}

// Movement axes. Forward points away from the default follow camera, which
// sits on +X looking back at the body.
var (
	dirForward = Vec3{X: -1}
	dirBack    = Vec3{X: 1}
	dirLeft    = Vec3{Z: 1}
	dirRight   = Vec3{Z: -1}
)

// Step advances body by one tick of duration dt seconds. It is the only
// writer of Body state; the tick order is: horizontal move, facing update,
// gravity integration, jump trigger, ground clamp, position smoothing.
//
// A nil body, or a dt that is zero, negative, or NaN, is a no-op tick:
// the state is left exactly as it was, and a pending jump press is not
// consumed.
func Step(body *Body, in InputState, dt float64, cfg MotionConfig) {
	if body == nil || !(dt > 0) {
		return
	}

	// Horizontal movement: sum active unit directions, then normalize so
	// diagonals are not faster than cardinals.
	var move Vec3
	if in.Forward {
		move = move.Add(dirForward)
	}
	if in.Back {
		move = move.Add(dirBack)
	}
	if in.Left {
		move = move.Add(dirLeft)
	}
	if in.Right {
		move = move.Add(dirRight)
	}
	body.Moving = move.X != 0 || move.Z != 0
	if body.Moving {
		move = move.Normalize().Scale(cfg.Speed * dt)
		body.Target = body.Target.Add(move)
		body.FacingAngle = math.Atan2(move.X, move.Z)
	}
	body.RenderedAngle = lerpAngle(body.RenderedAngle, body.FacingAngle, cfg.AngleBlend)

	// Vertical kinematics.
	body.VerticalVelocity += cfg.Gravity * dt
	body.Target.Y += body.VerticalVelocity * dt

	// Jump triggers on the rising edge only, and only from the ground.
	if in.JumpJustPressed && body.Target.Y <= 0 {
		body.VerticalVelocity = cfg.JumpImpulse
		body.Target.Y = cfg.JumpEpsilon
	}

	// Ground clamp.
	if body.Target.Y < 0 {
		body.Target.Y = 0
		body.VerticalVelocity = 0
	}

	body.Current = body.Current.Lerp(body.Target, cfg.PositionBlend)
}

// lerpAngle interpolates between two angles along the shortest arc,
// keeping the result in (-π, π].
func lerpAngle(from, to, t float64) float64 {
	diff := math.Mod(to-from, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return normalizeAngle(from + diff*t)
}

// normalizeAngle wraps an angle into (-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
