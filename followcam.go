package rowan

import "math"

// CameraPose is a camera position and look-at target, recomputed every tick.
// It carries no accumulated state: the pose is a pure function of the body.
type CameraPose struct {
	Position Vec3
	Target   Vec3
}

// FollowCamera derives a camera pose from a body at a constant offset.
// There is no camera-side smoothing: the pose tracks the body's smoothed
// Current position rigidly, so the only lag in the system is the body's
// own position blend.
type FollowCamera struct {
	// Offset is added to the body's current position to place the camera.
	Offset Vec3
}

// DefaultCameraOffset positions the camera up and back along +X.
var DefaultCameraOffset = Vec3{X: 8, Y: 5, Z: 0}

// NewFollowCamera creates a follow camera with the default offset.
func NewFollowCamera() *FollowCamera {
	return &FollowCamera{Offset: DefaultCameraOffset}
}

// Pose computes the camera pose for the given body. Returns ok=false for a
// nil body (nothing to follow yet); callers should skip their camera update
// for that tick.
func (c *FollowCamera) Pose(body *Body) (CameraPose, bool) {
	if body == nil {
		return CameraPose{}, false
	}
	return CameraPose{
		Position: body.Current.Add(c.Offset),
		Target:   body.Current,
	}, true
}

// worldUp is the fixed up axis used to build the camera basis.
var worldUp = Vec3{Y: 1}

// Basis returns the camera's orthonormal right/up/forward axes, with
// forward pointing from the camera toward the look-at target. Returns
// ok=false when the pose is degenerate (camera on top of its target, or
// looking straight along the up axis).
func (p CameraPose) Basis() (right, up, forward Vec3, ok bool) {
	forward = p.Target.Sub(p.Position)
	if forward.Length() == 0 {
		return Vec3{}, Vec3{}, Vec3{}, false
	}
	forward = forward.Normalize()
	right = forward.Cross(worldUp)
	if right.Length() == 0 {
		return Vec3{}, Vec3{}, Vec3{}, false
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return right, up, forward, true
}

// nearPlane rejects points at or behind the camera during projection.
const nearPlane = 0.05

// Project maps a world-space point to pixel coordinates on a w×h screen
// using a perspective projection with the given vertical field of view
// (radians). depth is the distance along the view axis, usable for painter
// sorting and size attenuation. ok is false when the point is behind the
// near plane or the pose is degenerate.
func (p CameraPose) Project(point Vec3, w, h int, fov float64) (x, y, depth float64, ok bool) {
	right, up, forward, ok := p.Basis()
	if !ok {
		return 0, 0, 0, false
	}
	d := point.Sub(p.Position)
	vx := d.Dot(right)
	vy := d.Dot(up)
	vz := d.Dot(forward)
	if vz < nearPlane {
		return 0, 0, 0, false
	}
	f := float64(h) / 2 / math.Tan(fov/2)
	x = float64(w)/2 + vx*f/vz
	y = float64(h)/2 - vy*f/vz
	return x, y, vz, true
}
