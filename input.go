package rowan

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a logical input the motion controller understands.
type Action uint8

const (
	ActionForward Action = iota // move away from the camera
	ActionBack                  // move toward the camera
	ActionLeft                  // strafe left
	ActionRight                 // strafe right
	ActionJump                  // jump (rising edge only)
)

// InputState is one tick's sampled input. Held flags report whether the
// action's key is currently down; JumpJustPressed is true only on the tick
// the jump key transitioned from up to down.
type InputState struct {
	Forward         bool
	Back            bool
	Left            bool
	Right           bool
	JumpHeld        bool
	JumpJustPressed bool
}

// Source produces one InputState per tick. Implementations must be cheap:
// Sample is called exactly once per frame from the update path.
type Source interface {
	Sample() InputState
}

// KeyMap binds logical actions to keyboard keys.
type KeyMap map[Action]ebiten.Key

// DefaultKeyMap returns the standard WASD + Space binding.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ActionForward: ebiten.KeyW,
		ActionBack:    ebiten.KeyS,
		ActionLeft:    ebiten.KeyA,
		ActionRight:   ebiten.KeyD,
		ActionJump:    ebiten.KeySpace,
	}
}

// KeyboardSource samples the ebiten keyboard through a remappable KeyMap.
type KeyboardSource struct {
	Keys KeyMap
}

// NewKeyboardSource creates a keyboard source with the default bindings.
func NewKeyboardSource() *KeyboardSource {
	return &KeyboardSource{Keys: DefaultKeyMap()}
}

// Sample reads the current keyboard state. Jump edge detection uses
// inpututil, so Sample must be called from within an ebiten Update.
func (k *KeyboardSource) Sample() InputState {
	return InputState{
		Forward:         ebiten.IsKeyPressed(k.Keys[ActionForward]),
		Back:            ebiten.IsKeyPressed(k.Keys[ActionBack]),
		Left:            ebiten.IsKeyPressed(k.Keys[ActionLeft]),
		Right:           ebiten.IsKeyPressed(k.Keys[ActionRight]),
		JumpHeld:        ebiten.IsKeyPressed(k.Keys[ActionJump]),
		JumpJustPressed: inpututil.IsKeyJustPressed(k.Keys[ActionJump]),
	}
}
