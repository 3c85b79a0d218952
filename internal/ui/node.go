package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, button. Class holds space-separated class names
// ("btn active") and ID is matched by #id rules. Bounds are set by Engine.Layout.
type Node struct {
	Type   string // "panel", "label", "button"
	Class  string // e.g. "btn active" for .btn and .active
	ID     string // e.g. "resetBtn" for #resetBtn
	Bounds rl.Rectangle
	Text   string
	Hidden bool
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:  typ,
		Class: class,
		ID:    id,
		Text:  text,
	}
}

// HasClass reports whether class is one of the node's classes.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// Contains reports whether p lies inside the node's bounds.
func (n *Node) Contains(p rl.Vector2) bool {
	b := n.Bounds
	return p.X >= b.X && p.X < b.X+b.Width && p.Y >= b.Y && p.Y < b.Y+b.Height
}
