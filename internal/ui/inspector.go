package ui

import "fmt"

// Inspector is a bottom-left panel describing the object on display.
// It owns its nodes; Update shows or hides them and rewrites their text from a Selection.
type Inspector struct {
	panel  *Node
	name   *Node
	kind   *Node
	scale  *Node
	source *Node
}

// NewInspector creates an Inspector with nodes styled by the .info and .info-line rules.
func NewInspector() *Inspector {
	return &Inspector{
		panel:  NewNode("panel", "info", "", ""),
		name:   NewNode("label", "info-line", "", ""),
		kind:   NewNode("label", "info-line", "", ""),
		scale:  NewNode("label", "info-line", "", ""),
		source: NewNode("label", "info-line", "", ""),
	}
}

// Selection holds the data shown in the inspector.
// Pass this from the viewer; ui does not depend on scene.
type Selection struct {
	Name   string
	Kind   string
	Scale  float32
	Source string // file the object was loaded from, "" for primitives
}

// Nodes returns the panel followed by its lines.
func (in *Inspector) Nodes() []*Node {
	return []*Node{in.panel, in.name, in.kind, in.scale, in.source}
}

// Update refreshes the labels from sel and shows or hides the panel.
func (in *Inspector) Update(visible bool, sel Selection) {
	for _, n := range in.Nodes() {
		n.Hidden = !visible
	}
	if !visible {
		return
	}
	in.name.Text = "Object: " + sel.Name
	in.kind.Text = "Type: " + sel.Kind
	in.scale.Text = fmt.Sprintf("Scale: %.3f", sel.Scale)
	if sel.Source != "" {
		in.source.Text = "Source: " + sel.Source
	} else {
		in.source.Text = "Source: built-in"
	}
}

// Layout stacks the lines inside the panel. Call after Engine.Layout.
func (in *Inspector) Layout(e *Engine) {
	pad := float32(e.Style(in.panel).Padding)
	y := in.panel.Bounds.Y + pad
	for _, n := range in.Nodes()[1:] {
		n.Bounds.X = in.panel.Bounds.X + pad
		n.Bounds.Y = y
		n.Bounds.Width = in.panel.Bounds.Width - 2*pad
		n.Bounds.Height = float32(e.Style(n).FontSize)
		y += n.Bounds.Height + 4
	}
}
