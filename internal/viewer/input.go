package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/orbit"
)

// Input is everything the viewer reads from the devices in one frame.
type Input struct {
	Pointer rl.Vector2
	Pressed bool // left button went down this frame
	Down    bool // any button held
	Orbit   orbit.Input
	Keys    []int32 // keys pressed this frame
}

var shortcutKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeyR, rl.KeyI}

// PollInput reads the mouse and keyboard through raylib. Left drag rotates, right or middle
// drag pans, the wheel dollies.
func PollInput() Input {
	in := Input{
		Pointer: rl.GetMousePosition(),
		Pressed: rl.IsMouseButtonPressed(rl.MouseButtonLeft),
	}
	left := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	pan := rl.IsMouseButtonDown(rl.MouseButtonRight) || rl.IsMouseButtonDown(rl.MouseButtonMiddle)
	in.Down = left || pan
	delta := rl.GetMouseDelta()
	switch {
	case left && !in.Pressed:
		in.Orbit.Rotate = delta
	case pan:
		in.Orbit.Pan = delta
	}
	in.Orbit.Wheel = rl.GetMouseWheelMove()
	for _, k := range shortcutKeys {
		if rl.IsKeyPressed(k) {
			in.Keys = append(in.Keys, k)
		}
	}
	return in
}
