// Package ecs provides ECS adapters for toolshed's text field events.
//
// The primary adapter is [NewDonburiSink], which bridges field focus, blur,
// edit, submit and clear events into a [Donburi] world as typed events.
// Subscribe to [FieldEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	sceneManager.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
