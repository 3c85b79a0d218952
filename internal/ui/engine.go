package ui

import (
	_ "embed"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultFontSize = 20
	// fontBakeSize is the glyph atlas size; text is scaled from it.
	fontBakeSize = 40
	roundSegments = 8
)

//go:embed default.css
var defaultCSS string

// DefaultStylesheetCSS returns the built-in stylesheet source.
func DefaultStylesheetCSS() string {
	return defaultCSS
}

// DefaultStylesheet returns the built-in stylesheet.
func DefaultStylesheet() *Stylesheet {
	sheet, err := ParseCSS(defaultCSS)
	if err != nil {
		panic(fmt.Sprintf("ui: built-in stylesheet: %v", err))
	}
	return sheet
}

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached per node and recomputed when the sheet, the node list or a
// node's class changes, so per-frame layout does not allocate.
// If a font is loaded, text is drawn with it; otherwise raylib's default (pixel) font is used.
type Engine struct {
	sheet  *Stylesheet
	nodes  []*Node
	cache  []cachedStyle
	valid  bool
	font   rl.Font
	screen [2]int32
}

type cachedStyle struct {
	class string
	id    string
	style ComputedStyle
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded or merged CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.valid = false
}

// LoadDefaultFont loads Go Regular for text rendering. Call after the window exists. If
// loading fails the engine keeps raylib's default font.
func (e *Engine) LoadDefaultFont() error {
	f := rl.LoadFontFromMemory(".ttf", goregular.TTF, fontBakeSize, nil)
	if f.Texture.ID == 0 {
		return fmt.Errorf("ui: could not load Go Regular font")
	}
	e.Unload()
	e.font = f
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	return nil
}

// Font returns the loaded font; its texture ID is 0 when none is loaded.
func (e *Engine) Font() rl.Font {
	return e.font
}

// Unload frees the loaded font.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	e.valid = false
}

// Nodes returns the nodes in draw order.
func (e *Engine) Nodes() []*Node {
	return e.nodes
}

// resolveProps returns merged properties for a node (matching rules in order; last wins).
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		if rule.Matches(n) {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Style returns the computed style of n, resolving it if needed.
func (e *Engine) Style(n *Node) ComputedStyle {
	e.refresh()
	for i, m := range e.nodes {
		if m == n {
			return e.cache[i].style
		}
	}
	return ResolveProps(e.resolveProps(n))
}

func (e *Engine) refresh() {
	if !e.valid || len(e.cache) != len(e.nodes) {
		e.cache = make([]cachedStyle, len(e.nodes))
		for i := range e.cache {
			e.cache[i].class = "\x00"
		}
		e.valid = true
	}
	for i, n := range e.nodes {
		c := &e.cache[i]
		if c.class != n.Class || c.id != n.ID {
			c.class, c.id = n.Class, n.ID
			c.style = ResolveProps(e.resolveProps(n))
		}
	}
}

// Layout sets every node's bounds from its style for a screen of w x h pixels. Percentage
// positions place the node so that 50% centers it.
func (e *Engine) Layout(w, h int32) {
	e.refresh()
	e.screen = [2]int32{w, h}
	for i, n := range e.nodes {
		style := e.cache[i].style
		x, y := style.Left, style.Top
		if style.LeftPct >= 0 {
			x = (w - style.Width) * style.LeftPct / 100
		}
		if style.TopPct >= 0 {
			y = (h - style.Height) * style.TopPct / 100
		}
		n.Bounds = rl.NewRectangle(float32(x), float32(y), float32(style.Width), float32(style.Height))
	}
}

// HitTest returns the topmost visible node with an ID that contains p, or nil.
func (e *Engine) HitTest(p rl.Vector2) *Node {
	e.refresh()
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		if n.ID == "" || n.Hidden || e.cache[i].style.Hidden {
			continue
		}
		if n.Contains(p) {
			return n
		}
	}
	return nil
}

// Draw draws all visible nodes: background, border, then text.
func (e *Engine) Draw() {
	e.refresh()
	for i, n := range e.nodes {
		style := e.cache[i].style
		if n.Hidden || style.Hidden {
			continue
		}
		b := n.Bounds
		if style.Background.A > 0 && b.Width > 0 && b.Height > 0 {
			if style.Radius > 0 {
				rl.DrawRectangleRounded(b, roundness(b, style.Radius), roundSegments, style.Background)
			} else {
				rl.DrawRectangleRec(b, style.Background)
			}
		}
		if style.HasBorder && b.Width > 0 && b.Height > 0 {
			if style.Radius > 0 {
				rl.DrawRectangleRoundedLines(b, roundness(b, style.Radius), roundSegments, style.Border)
			} else {
				rl.DrawRectangleLinesEx(b, 1, style.Border)
			}
		}
		if n.Text != "" {
			e.drawText(n, style)
		}
	}
}

func (e *Engine) drawText(n *Node, style ComputedStyle) {
	size := float32(style.FontSize)
	pad := float32(style.Padding)
	pos := rl.NewVector2(n.Bounds.X+pad, n.Bounds.Y+pad)
	if style.Center {
		m := e.measure(n.Text, size)
		pos.X = n.Bounds.X + (n.Bounds.Width-m.X)/2
		pos.Y = n.Bounds.Y + (n.Bounds.Height-m.Y)/2
	}
	if e.font.Texture.ID != 0 {
		rl.DrawTextEx(e.font, n.Text, pos, size, 1, style.Color)
	} else {
		rl.DrawText(n.Text, int32(pos.X), int32(pos.Y), int32(size), style.Color)
	}
}

func (e *Engine) measure(text string, size float32) rl.Vector2 {
	if e.font.Texture.ID != 0 {
		return rl.MeasureTextEx(e.font, text, size, 1)
	}
	return rl.NewVector2(float32(rl.MeasureText(text, int32(size))), size)
}

func roundness(b rl.Rectangle, radius int32) float32 {
	short := b.Width
	if b.Height < short {
		short = b.Height
	}
	if short <= 0 {
		return 0
	}
	r := 2 * float32(radius) / short
	if r > 1 {
		r = 1
	}
	return r
}

// HasStylesheet returns whether a stylesheet with rules is set.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}
