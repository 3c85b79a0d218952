package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
	logFontSize    = 14
	logLines       = 6
)

// Debug holds the runtime overlays (FPS and heap counters), drawn top-right in green.
// All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	// ShowLog draws the newest log lines bottom-right; needs SetLogSource.
	ShowLog bool

	font    rl.Font // optional; when set, Draw uses DrawTextEx instead of the default font
	fps     func() int32
	heap    func() uint64
	logs    func() []string
	frame   uint32
	fpsText string
	memText string
	mem     runtime.MemStats
}

// New returns a Debug system with the given overlays enabled.
func New(showFPS, showMemAlloc bool) *Debug {
	d := &Debug{ShowFPS: showFPS, ShowMemAlloc: showMemAlloc, fps: rl.GetFPS}
	d.heap = func() uint64 {
		runtime.ReadMemStats(&d.mem)
		return d.mem.Alloc
	}
	return d
}

// SetFont sets the font used to draw the overlay (e.g. same as UI). Zero texture ID = raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// SetLogSource sets where ShowLog reads lines from, oldest first.
func (d *Debug) SetLogSource(lines func() []string) {
	d.logs = lines
}

// LogTail returns the newest log lines shown by the overlay, oldest first.
func (d *Debug) LogTail() []string {
	if !d.ShowLog || d.logs == nil {
		return nil
	}
	lines := d.logs()
	if len(lines) > logLines {
		lines = lines[len(lines)-logLines:]
	}
	return lines
}

// Tick advances the frame counter and refreshes the text every updateInterval frames, or
// immediately when an overlay has no text yet.
func (d *Debug) Tick() {
	d.frame++
	update := d.frame%updateInterval == 0
	if d.ShowFPS && d.fpsText == "" || d.ShowMemAlloc && d.memText == "" {
		update = true
	}
	if !update {
		return
	}
	if d.ShowFPS {
		d.fpsText = fmt.Sprintf("FPS: %d", d.fps())
	}
	if d.ShowMemAlloc {
		d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.heap())/(1024*1024))
	}
}

// Lines returns the overlay text lines that are enabled.
func (d *Debug) Lines() []string {
	var out []string
	if d.ShowFPS && d.fpsText != "" {
		out = append(out, d.fpsText)
	}
	if d.ShowMemAlloc && d.memText != "" {
		out = append(out, d.memText)
	}
	return out
}

// Draw ticks and renders the enabled overlays. Call last in the draw callback.
func (d *Debug) Draw() {
	d.drawLog()
	if !d.ShowFPS && !d.ShowMemAlloc {
		return
	}
	d.Tick()
	screenW := float32(rl.GetScreenWidth())
	y := float32(padding)
	for _, text := range d.Lines() {
		if d.font.Texture.ID != 0 {
			w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
			rl.DrawTextEx(d.font, text, rl.NewVector2(screenW-w-padding, y), fontSize, 1, rl.Green)
		} else {
			w := float32(rl.MeasureText(text, fontSize))
			rl.DrawText(text, int32(screenW-w-padding), int32(y), fontSize, rl.Green)
		}
		y += lineHeight
	}
}

func (d *Debug) drawLog() {
	tail := d.LogTail()
	if len(tail) == 0 {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	y := int32(rl.GetScreenHeight()) - padding - int32(len(tail))*(logFontSize+2)
	for _, line := range tail {
		w := rl.MeasureText(line, logFontSize)
		rl.DrawText(line, screenW-w-padding, y, logFontSize, rl.LightGray)
		y += logFontSize + 2
	}
}
