// Package ecs provides ECS adapters for toolshed.
package ecs

import (
	"github.com/phanxgames/toolshed"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FieldEventType is the Donburi event type for toolshed text field events.
// Subscribe to this in your ECS systems to receive focus, edit and submit
// events.
var FieldEventType = events.NewEventType[toolshed.FieldEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Field
// events are published to FieldEventType and can be consumed with
// Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) toolshed.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitFieldEvent(event toolshed.FieldEvent) {
	FieldEventType.Publish(s.world, event)
}
