package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Rule is a single CSS rule: one compound selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".btn.active" or "#error-message"
	Classes  []string          // every class the node must carry
	ID       string            // required id, or "" for any
	Props    map[string]string // e.g. "background" -> "#333"
}

// Matches reports whether n carries every class and the id of the rule.
func (r Rule) Matches(n *Node) bool {
	if r.ID != "" && r.ID != n.ID {
		return false
	}
	for _, c := range r.Classes {
		if !n.HasClass(c) {
			return false
		}
	}
	return r.ID != "" || len(r.Classes) > 0
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// ComputedStyle holds resolved values used for drawing (raylib types where applicable).
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type ComputedStyle struct {
	Background rl.Color
	Color      rl.Color
	Border     rl.Color
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32 // -1 = not set
	TopPct     int32 // -1 = not set
	Padding    int32 // text offset from node bounds (default 4)
	Gap        int32 // horizontal space after the node in a row
	Radius     int32 // corner radius in pixels
	FontSize   int32
	Center     bool // text-align: center
	Hidden     bool // display: none
}

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background: rl.NewColor(0, 0, 0, 0),
		Color:      rl.White,
		Border:     rl.Black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		FontSize:   defaultFontSize,
	}
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA into rl.Color. Returns rl.Black and false on parse error.
func ParseHexColor(s string) (rl.Color, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return rl.Black, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexByte(hex[i]); !ok {
			return rl.Black, false
		}
	}
	pair := func(i int) uint8 {
		hi, _ := hexByte(hex[i])
		lo, _ := hexByte(hex[i+1])
		return hi<<4 + lo
	}
	switch len(hex) {
	case 3:
		// #RGB -> RR GG BB
		r, _ := hexByte(hex[0])
		g, _ := hexByte(hex[1])
		b, _ := hexByte(hex[2])
		return rl.NewColor(r*17, g*17, b*17, 255), true
	case 6:
		return rl.NewColor(pair(0), pair(2), pair(4), 255), true
	case 8:
		return rl.NewColor(pair(0), pair(2), pair(4), pair(6)), true
	}
	return rl.Black, false
}

func hexByte(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from a merged property map (e.g. from matching rules).
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			if c, ok := ParseHexColor(lastField(v)); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "margin-right", "gap":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Gap = n
			}
		case "border-radius":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Radius = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		case "text-align":
			out.Center = v == "center"
		case "display":
			out.Hidden = v == "none"
		}
	}
	return out
}

// lastField returns the last space-separated part, so "1px solid #fff" yields "#fff".
func lastField(v string) string {
	f := strings.Fields(v)
	if len(f) == 0 {
		return ""
	}
	return f[len(f)-1]
}
