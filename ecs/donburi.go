package ecs

import (
	"github.com/phanxgames/curved"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EditorEventType is the Donburi event type for curve editor notifications.
var EditorEventType = events.NewEventType[curved.EditorEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Editor
// events are published to EditorEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) curved.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event curved.EditorEvent) {
	EditorEventType.Publish(s.world, event)
}
