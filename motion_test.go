package rowan

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func tickN(body *Body, in InputState, dt float64, cfg MotionConfig, n int) {
	for i := 0; i < n; i++ {
		Step(body, in, dt, cfg)
	}
}

func TestStepNoOpForZeroOrNegativeDT(t *testing.T) {
	cfg := DefaultMotionConfig()
	for _, dt := range []float64{0, -1.0 / 60, math.NaN()} {
		body := Body{
			Current:          Vec3{1, 2, 3},
			Target:           Vec3{4, 5, 6},
			VerticalVelocity: -7,
			FacingAngle:      0.5,
			RenderedAngle:    0.25,
			Moving:           true,
		}
		before := body
		Step(&body, InputState{Forward: true, JumpJustPressed: true}, dt, cfg)
		if body != before {
			t.Errorf("dt=%v: Step mutated state: got %+v, want %+v", dt, body, before)
		}
	}
}

func TestStepNilBody(t *testing.T) {
	// Must not panic: absent entity is a no-op tick.
	Step(nil, InputState{Forward: true}, 1.0/60, DefaultMotionConfig())
}

func TestGravityOnlyChangesY(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{Target: Vec3{X: 2, Y: 1, Z: -3}, Current: Vec3{X: 2, Y: 1, Z: -3}}

	prevDist := math.Abs(body.Current.Y - body.Target.Y)
	for i := 0; i < 30; i++ {
		prevTarget := body.Target
		Step(&body, InputState{}, 1.0/60, cfg)
		if body.Target.X != prevTarget.X || body.Target.Z != prevTarget.Z {
			t.Fatalf("tick %d: target moved horizontally with no input: %+v", i, body.Target)
		}
		dist := math.Abs(body.Current.Y - body.Target.Y)
		// The smoother lerps toward a moving target once per tick; as the
		// target settles on the ground the gap must shrink monotonically.
		if body.Target.Y == 0 && dist > prevDist+epsilon {
			t.Fatalf("tick %d: current diverged from target: %f > %f", i, dist, prevDist)
		}
		prevDist = dist
	}
}

func TestConvergenceNeverOvershoots(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{Target: Vec3{X: 10}}
	for i := 0; i < 200; i++ {
		Step(&body, InputState{}, 1.0/60, cfg)
		if body.Current.X > body.Target.X+epsilon {
			t.Fatalf("tick %d: current overshot target: %f > %f", i, body.Current.X, body.Target.X)
		}
	}
	if !approxEqual(body.Current.X, 10, 1e-6) {
		t.Errorf("current.X = %f, want ~10 after 200 ticks", body.Current.X)
	}
}

func TestGroundClamp(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{Target: Vec3{Y: 0.01}, VerticalVelocity: -5}
	Step(&body, InputState{}, 1.0/60, cfg)
	if body.Target.Y != 0 {
		t.Errorf("Target.Y = %f, want exactly 0 after clamp", body.Target.Y)
	}
	if body.VerticalVelocity != 0 {
		t.Errorf("VerticalVelocity = %f, want 0 after clamp", body.VerticalVelocity)
	}
}

func TestGroundClampInvariant(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{}
	in := InputState{Forward: true}
	for i := 0; i < 300; i++ {
		if i == 50 || i == 150 {
			Step(&body, InputState{Forward: true, JumpJustPressed: true}, 1.0/60, cfg)
		} else {
			Step(&body, in, 1.0/60, cfg)
		}
		if body.Target.Y < 0 {
			t.Fatalf("tick %d: Target.Y = %f, invariant Target.Y >= 0 violated", i, body.Target.Y)
		}
	}
}

func TestJumpFromGround(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{}
	Step(&body, InputState{JumpJustPressed: true}, 1.0/60, cfg)
	if body.VerticalVelocity != cfg.JumpImpulse {
		t.Errorf("VerticalVelocity = %f, want %f", body.VerticalVelocity, cfg.JumpImpulse)
	}
	if body.Target.Y != cfg.JumpEpsilon {
		t.Errorf("Target.Y = %f, want jump epsilon %f", body.Target.Y, cfg.JumpEpsilon)
	}
}

func TestNoDoubleJump(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{}
	Step(&body, InputState{JumpJustPressed: true}, 1.0/60, cfg)

	// A few ticks into the arc the body is airborne.
	tickN(&body, InputState{}, 1.0/60, cfg, 5)
	if body.Target.Y <= 0 {
		t.Fatalf("expected airborne body, Target.Y = %f", body.Target.Y)
	}
	vvBefore := body.VerticalVelocity
	Step(&body, InputState{JumpJustPressed: true}, 1.0/60, cfg)
	// The mid-air press must not re-impulse: velocity only changed by
	// this tick's gravity.
	want := vvBefore + cfg.Gravity*(1.0/60)
	if !approxEqual(body.VerticalVelocity, want, epsilon) {
		t.Errorf("VerticalVelocity = %f, want %f (gravity only)", body.VerticalVelocity, want)
	}
}

func TestJumpNeedsRisingEdge(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{}
	// Held without the edge never triggers.
	tickN(&body, InputState{JumpHeld: true}, 1.0/60, cfg, 10)
	if body.Target.Y != 0 {
		t.Errorf("held jump key triggered a jump: Target.Y = %f", body.Target.Y)
	}
}

func TestJumpParabolaReturnsToGround(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{}
	Step(&body, InputState{JumpJustPressed: true}, 1.0/60, cfg)

	apex := 0.0
	landed := false
	for i := 0; i < 600; i++ {
		Step(&body, InputState{}, 1.0/60, cfg)
		apex = math.Max(apex, body.Target.Y)
		if body.Target.Y == 0 && body.VerticalVelocity == 0 {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("body never returned to the ground")
	}
	// Analytic apex v²/2g, reached approximately under discrete integration.
	wantApex := cfg.JumpImpulse * cfg.JumpImpulse / (2 * -cfg.Gravity)
	if apex < wantApex*0.8 || apex > wantApex*1.3 {
		t.Errorf("apex = %f, want near %f", apex, wantApex)
	}
}

func TestForwardHeldOneSecond(t *testing.T) {
	// Pins the resolved open question: movement is scaled by speed*dt
	// exactly once per tick, and the position smoother runs once per tick.
	cfg := DefaultMotionConfig()
	body := Body{}
	in := InputState{Forward: true}

	wantCurrent := 0.0
	for i := 0; i < 60; i++ {
		Step(&body, in, 1.0/60, cfg)
		wantTarget := -cfg.Speed * float64(i+1) / 60
		if !approxEqual(body.Target.X, wantTarget, 1e-9) {
			t.Fatalf("tick %d: Target.X = %f, want %f", i, body.Target.X, wantTarget)
		}
		wantCurrent += (wantTarget - wantCurrent) * cfg.PositionBlend
	}
	if !approxEqual(body.Target.X, -3.0, 1e-9) {
		t.Errorf("Target.X = %f, want -3.0 after 1s at speed 3", body.Target.X)
	}
	if !approxEqual(body.Current.X, wantCurrent, 1e-9) {
		t.Errorf("Current.X = %f, want geometric-series value %f", body.Current.X, wantCurrent)
	}
	if math.Abs(body.Current.X) >= math.Abs(body.Target.X) {
		t.Errorf("Current should lag Target: |%f| >= |%f|", body.Current.X, body.Target.X)
	}
}

func TestDiagonalNotFaster(t *testing.T) {
	cfg := DefaultMotionConfig()
	straight := Body{}
	diagonal := Body{}
	Step(&straight, InputState{Forward: true}, 1.0/60, cfg)
	Step(&diagonal, InputState{Forward: true, Left: true}, 1.0/60, cfg)

	sd := straight.Target.Length()
	dd := diagonal.Target.Length()
	if !approxEqual(sd, dd, epsilon) {
		t.Errorf("diagonal displacement %f != straight displacement %f", dd, sd)
	}
}

func TestOpposedInputCancels(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{}
	Step(&body, InputState{Forward: true, Back: true}, 1.0/60, cfg)
	if body.Target.X != 0 || body.Target.Z != 0 {
		t.Errorf("opposed input moved the target: %+v", body.Target)
	}
	if body.Moving {
		t.Error("Moving = true with fully opposed input")
	}
}

func TestFacingAngleTracksMovement(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{}
	Step(&body, InputState{Left: true}, 1.0/60, cfg)
	// Left is +Z: atan2(0, +z) = 0.
	if !approxEqual(body.FacingAngle, 0, epsilon) {
		t.Errorf("FacingAngle = %f, want 0 for +Z movement", body.FacingAngle)
	}

	body = Body{}
	Step(&body, InputState{Forward: true}, 1.0/60, cfg)
	// Forward is -X: atan2(-x, 0) = -π/2.
	if !approxEqual(body.FacingAngle, -math.Pi/2, epsilon) {
		t.Errorf("FacingAngle = %f, want -π/2 for -X movement", body.FacingAngle)
	}
}

func TestRenderedAngleApproachesFacing(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{}
	in := InputState{Forward: true}
	tickN(&body, in, 1.0/60, cfg, 100)
	if !approxEqual(body.RenderedAngle, body.FacingAngle, 1e-6) {
		t.Errorf("RenderedAngle = %f, want converged to FacingAngle %f",
			body.RenderedAngle, body.FacingAngle)
	}
}

func TestFacingHeldWhenIdle(t *testing.T) {
	cfg := DefaultMotionConfig()
	body := Body{}
	Step(&body, InputState{Forward: true}, 1.0/60, cfg)
	facing := body.FacingAngle
	tickN(&body, InputState{}, 1.0/60, cfg, 10)
	if body.FacingAngle != facing {
		t.Errorf("FacingAngle changed while idle: %f -> %f", facing, body.FacingAngle)
	}
	if body.Moving {
		t.Error("Moving = true with no input")
	}
}

func TestLerpAngleShortestArc(t *testing.T) {
	// Crossing the ±π seam must take the short way around.
	got := lerpAngle(3.0, -3.0, 0.5)
	// Short arc from 3.0 to -3.0 passes through π (≈3.1416).
	want := normalizeAngle(3.0 + (2*math.Pi-6.0)/2)
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("lerpAngle(3, -3, 0.5) = %f, want %f", got, want)
	}
}
