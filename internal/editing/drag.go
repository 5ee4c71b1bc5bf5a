package editing

import (
	"strings"

	"github.com/jonathan/resume-editor/internal/resume"
)

// DragState is the phase of a drag-and-drop reorder gesture.
type DragState int

// Drag states.
const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// DragGesture tracks one reorder gesture. List identifies the list being
// reordered by its path (for example "experiences/0/highlights"). The view
// reads the active drag only for visual affordances; the document changes
// only through Drop.
type DragGesture struct {
	list   string
	index  int
	active bool
}

// Start enters Dragging with the item at index of list as the source.
func (g *DragGesture) Start(list string, index int) {
	g.list = strings.Trim(list, "/")
	g.index = index
	g.active = true
}

// State returns the current phase.
func (g *DragGesture) State() DragState {
	if g.active {
		return Dragging
	}
	return Idle
}

// Source returns the list and index being dragged, if any.
func (g *DragGesture) Source() (list string, index int, ok bool) {
	return g.list, g.index, g.active
}

// Drop ends the gesture over target in list. The move is applied only when a
// drag is active and the target lies in the same list as the source; in every
// case the gesture returns to Idle.
func (g *DragGesture) Drop(d resume.Document, list string, target int) resume.Document {
	source, from, active := g.list, g.index, g.active
	g.Cancel()

	if !active || source != strings.Trim(list, "/") {
		return d
	}
	out, err := Apply(d, Op{Op: KindMove, Path: list, From: from, To: target})
	if err != nil {
		return d
	}
	return out
}

// Cancel abandons the gesture without touching the document.
func (g *DragGesture) Cancel() {
	g.list = ""
	g.index = 0
	g.active = false
}
