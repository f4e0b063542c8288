// Package ecs provides ECS adapters for curved editor notifications.
//
// The primary adapter is [NewDonburiSink], which bridges editor events
// (frame selected, curve modified, animation event added/modified/deleted)
// into a [Donburi] world as typed events. Subscribe to [EditorEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	editor.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
