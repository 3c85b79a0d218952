package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window configures the window opened by Run.
type Window struct {
	Width     int32
	Height    int32
	Title     string
	TargetFPS int32
	MinWidth  int32
	MinHeight int32
}

// Loop holds the per-frame callbacks. Any of them may be nil.
type Loop struct {
	// Init runs once after the window and GL context exist.
	Init func()
	// Resize runs with the render size before the first frame and whenever the window is resized.
	Resize func(width, height int32)
	// Update runs every frame before drawing (input, animation).
	Update func()
	// Draw runs between BeginDrawing and EndDrawing, after the screen is cleared to Background.
	Draw func()
	// Close runs before the window is destroyed, while GPU resources can still be freed.
	Close func()

	Background rl.Color
}

// Run opens a resizable window and drives the loop until the window is closed.
// ESC closes the window (raylib's default exit key).
func Run(w Window, l Loop) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	if w.MinWidth > 0 && w.MinHeight > 0 {
		rl.SetWindowMinSize(int(w.MinWidth), int(w.MinHeight))
	}
	if w.TargetFPS > 0 {
		rl.SetTargetFPS(w.TargetFPS)
	}
	if l.Init != nil {
		l.Init()
	}
	if l.Close != nil {
		defer l.Close()
	}
	if l.Resize != nil {
		l.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	}

	for !rl.WindowShouldClose() {
		if l.Resize != nil && rl.IsWindowResized() {
			l.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		}
		if l.Update != nil {
			l.Update()
		}

		rl.BeginDrawing()
		rl.ClearBackground(l.Background)
		if l.Draw != nil {
			l.Draw()
		}
		rl.EndDrawing()
	}
}
