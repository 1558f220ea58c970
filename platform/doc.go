// Package platform defines the boundary between the engine and its host.
//
// The engine never touches raw platform handles (DOM nodes, native views,
// terminal cells). Hosts implement the interfaces here to translate their
// own primitives into typed positions, rectangles, and events; everything
// past this boundary works exclusively with [model] types.
//
// # Adapter
//
// The [Adapter] supplies the geometry and selection primitives the engine
// needs from a live host: page regions with zoom, client rectangles for the
// active selection, and programmatic selection control. Hosts whose
// platform offers a native point-to-text-position primitive additionally
// implement [PointResolver]; others rely on the engine's geometric
// resolution.
//
// # Input Events
//
// An [InputEventSource] delivers pointer, key, selection-change, and focus
// events to a subscribed [Handler]. The engine's reactions are synchronous
// functions of current state plus the event, so a test can drive the whole
// engine by calling handler methods directly with fabricated events.
package platform
