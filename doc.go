// Package curved is an animation curve editor core: keyframed Hermite curves
// with tangent modes, a tick generator for rulers, and the panels and
// controller of a curve editor window.
//
// The package draws into a [Canvas], an abstract recorder of lines,
// polylines, triangle strips and text ordered by depth. Nothing here touches
// a graphics API. Renderers live in sub-packages:
//
//   - curved/ebitenui runs an editor in an [Ebitengine] window.
//   - curved/ggrender renders editor panels to PNG with [gg], headless.
//   - curved/ecs publishes editor notifications into a [Donburi] world.
//
// # Quick start
//
//	c := curved.NewCurve([]curved.Keyframe{
//		{Time: 0, Value: 0},
//		{Time: 1, Value: 5},
//		{Time: 2, Value: 0},
//	}, nil)
//
//	ed := curved.NewEditor(curved.DefaultConfig(), nil)
//	ed.SetCurves([]curved.CurveInfo{{Curve: c, Color: curved.UniqueColor(0)}})
//	ebitenui.Run(ed, ebitenui.RunConfig{Title: "Curves", Width: 800, Height: 400})
//
// # Curves
//
// A [Curve] holds keyframes sorted by time and one [TangentMode] per key.
// Call [Curve.Apply] after editing: it re-sorts keys, recomputes the
// tangents derived from the modes and refreshes the evaluator. A tangent of
// [StepTangent] makes the curve hold its value across that side of the key.
//
// # Editor
//
// An [Editor] lays out a time ruler, an events bar, the curve drawing and a
// value sidebar. The host window feeds it [PointerEvent] and [KeyEvent]
// values and implements [Host] to show context menus, forms and messages.
// Scripted input goes through the inject queue ([Editor.InjectClick],
// [Editor.InjectDrag]) or a JSON [TestRunner].
//
// Logging goes through [log/slog]; see [SetLogger].
//
// [Ebitengine]: https://ebitengine.org
// [gg]: https://github.com/gogpu/gg
// [Donburi]: https://github.com/yohamta/donburi
package curved
