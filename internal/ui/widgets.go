package ui

import (
	"time"
)

const (
	classButton = "btn"
	classActive = "btn active"
	// DefaultBannerTimeout is how long the error banner stays up after the last Show.
	DefaultBannerTimeout = 10 * time.Second
)

// Button describes one toolbar button.
type Button struct {
	ID    string
	Label string
}

// Toolbar is a row of buttons. The .toolbar rule positions the row; .btn sizes the buttons.
type Toolbar struct {
	anchor  *Node
	buttons []*Node
}

// NewToolbar creates nodes for buttons in order.
func NewToolbar(buttons []Button) *Toolbar {
	t := &Toolbar{anchor: NewNode("panel", "toolbar", "", "")}
	for _, b := range buttons {
		t.buttons = append(t.buttons, NewNode("button", classButton, b.ID, b.Label))
	}
	return t
}

// Nodes returns the row anchor followed by the buttons.
func (t *Toolbar) Nodes() []*Node {
	return append([]*Node{t.anchor}, t.buttons...)
}

// Button returns the node for id, or nil.
func (t *Toolbar) Button(id string) *Node {
	for _, b := range t.buttons {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// SetActive marks the button with id active and every other button inactive. An unknown id
// clears the selection.
func (t *Toolbar) SetActive(id string) {
	for _, b := range t.buttons {
		if b.ID == id {
			b.Class = classActive
		} else {
			b.Class = classButton
		}
	}
}

// Active returns the id of the active button, or "".
func (t *Toolbar) Active() string {
	for _, b := range t.buttons {
		if b.HasClass("active") {
			return b.ID
		}
	}
	return ""
}

// Layout places the buttons left to right from the anchor. Call after Engine.Layout.
func (t *Toolbar) Layout(e *Engine) {
	x, y := t.anchor.Bounds.X, t.anchor.Bounds.Y
	for _, b := range t.buttons {
		style := e.Style(b)
		b.Bounds.X, b.Bounds.Y = x, y
		x += b.Bounds.Width + float32(style.Gap)
	}
}

// Banner is the error message bar. It hides itself timeout after the last Show.
type Banner struct {
	node     *Node
	timeout  time.Duration
	now      func() time.Time
	deadline time.Time
}

// NewBanner creates a hidden banner. now defaults to time.Now; timeout to DefaultBannerTimeout.
func NewBanner(id string, timeout time.Duration, now func() time.Time) *Banner {
	if now == nil {
		now = time.Now
	}
	if timeout <= 0 {
		timeout = DefaultBannerTimeout
	}
	n := NewNode("label", "banner", id, "")
	n.Hidden = true
	return &Banner{node: n, timeout: timeout, now: now}
}

// Node returns the banner's node.
func (b *Banner) Node() *Node { return b.node }

// Show displays text and restarts the auto-hide timer.
func (b *Banner) Show(text string) {
	b.node.Text = text
	b.node.Hidden = false
	b.deadline = b.now().Add(b.timeout)
}

// Hide hides the banner immediately.
func (b *Banner) Hide() {
	b.node.Hidden = true
}

// Update hides the banner once its timeout has passed. Call once per frame.
func (b *Banner) Update() {
	if !b.node.Hidden && !b.now().Before(b.deadline) {
		b.node.Hidden = true
	}
}

// Visible reports whether the banner is shown.
func (b *Banner) Visible() bool { return !b.node.Hidden }

// Text returns the current message.
func (b *Banner) Text() string { return b.node.Text }

// Indicator is a label shown while work is in progress.
type Indicator struct {
	node *Node
}

// NewIndicator creates a hidden indicator with the given id and text.
func NewIndicator(id, text string) *Indicator {
	n := NewNode("label", "indicator", id, text)
	n.Hidden = true
	return &Indicator{node: n}
}

func (i *Indicator) Node() *Node { return i.node }

func (i *Indicator) SetVisible(v bool) { i.node.Hidden = !v }

func (i *Indicator) Visible() bool { return !i.node.Hidden }
