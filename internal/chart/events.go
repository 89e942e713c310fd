package chart

import "github.com/san-kum/statplot/internal/dataset"

// EventKind identifies a UI interaction.
type EventKind int

const (
	Click EventKind = iota
	MouseOver
	MouseOut
)

func (k EventKind) String() string {
	switch k {
	case Click:
		return "click"
	case MouseOver:
		return "mouseover"
	case MouseOut:
		return "mouseout"
	}
	return "unknown"
}

// Event is one UI interaction. Field is set for clicks on axis labels,
// Mark for hover events.
type Event struct {
	Kind  EventKind
	Field dataset.Field
	Mark  int
}

func ClickEvent(f dataset.Field) Event { return Event{Kind: Click, Field: f} }
func HoverEvent(mark int) Event { return Event{Kind: MouseOver, Mark: mark} }
func LeaveEvent(mark int) Event { return Event{Kind: MouseOut, Mark: mark} }

// NotificationKind identifies a controller state change.
type NotificationKind int

const (
	Rendered NotificationKind = iota
	TooltipShown
	TooltipHidden
)

func (k NotificationKind) String() string {
	switch k {
	case Rendered:
		return "rendered"
	case TooltipShown:
		return "tooltip-shown"
	case TooltipHidden:
		return "tooltip-hidden"
	}
	return "unknown"
}

// Notification is delivered to subscribers after a state change.
type Notification struct {
	Kind  NotificationKind
	X, Y  dataset.Field
	Mark  int
	Scene *Scene
}

// Listener receives notifications synchronously on the dispatching goroutine.
type Listener func(Notification)
