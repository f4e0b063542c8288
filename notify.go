package curved

// EditorEventType identifies what an EditorEvent reports.
type EditorEventType uint8

const (
	EditorFrameSelected EditorEventType = iota
	EditorCurveModified
	EditorEventAdded
	EditorEventModified
	EditorEventDeleted
)

func (t EditorEventType) String() string {
	switch t {
	case EditorFrameSelected:
		return "frame-selected"
	case EditorCurveModified:
		return "curve-modified"
	case EditorEventAdded:
		return "event-added"
	case EditorEventModified:
		return "event-modified"
	case EditorEventDeleted:
		return "event-deleted"
	}
	return "unknown"
}

// EditorEvent is a notification emitted alongside the editor callbacks.
// Frame is the selected frame for EditorFrameSelected and -1 otherwise.
type EditorEvent struct {
	Type  EditorEventType
	Frame int
}

// EventSink receives every EditorEvent. The ecs sub-module provides one that
// publishes into a donburi world.
type EventSink interface {
	EmitEvent(ev EditorEvent)
}
