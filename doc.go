// Package flick is a gesture-driven animation engine for [Ebitengine].
//
// Flick turns raw pointer samples (touches or mouse) into recognized
// gestures, drives animated values with spring, decay, and timed motion,
// and resolves releases against configurable thresholds into committed
// state transitions. It renders nothing: components expose per-frame
// style snapshots and the host application draws them however it likes.
//
// # Quick start
//
// Implement [ebiten.Game] yourself, poll input through an [InputSource],
// and update a component each frame:
//
//	type Game struct {
//		input *flick.InputSource
//		item  *flick.SwipeItem
//	}
//
//	func (g *Game) Update() error {
//		dt := 1.0 / float64(ebiten.TPS())
//		g.item.Update(dt, g.input.Poll())
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		style := g.item.Style()
//		// draw the row at style.Offset with style.Opacity ...
//	}
//
// # Values and motions
//
// A [Value] is a single animated number with a current value and velocity,
// owned by exactly one component. Schedule motion on it with [Value.Set]
// and one of the motion constructors: [Immediate], [Timed], [Spring], or
// [Decay]. Each frame the host calls [Value.Step] and the active motion
// advances the value; completion callbacks report whether the motion
// finished naturally or was interrupted.
//
//	offset := flick.NewValue(0)
//	offset.Set(flick.Spring(0, flick.SpringConfig{
//		OnComplete: func(finished bool) { /* settled */ },
//	}))
//
// # Gestures
//
// Recognizers ([Pan], [Pinch], [Rotation], [Tap], [DoubleTap], [LongPress])
// consume pointer samples through a [Detector] and emit lifecycle
// callbacks as they move through [Phase] transitions. Compose them with
// [Simultaneous] and [Exclusive]; compositions nest.
//
//	pan, _ := flick.NewPan(flick.PanConfig{Axis: flick.AxisHorizontal})
//	det := flick.NewDetector(pan)
//	det.Feed(dt, samples)
//
// # Components
//
// Four ready-made interaction components tie gestures, motion, and
// threshold resolution together: [SwipeItem] (swipe-to-reveal and
// swipe-to-delete rows), [Modal] (animated presentation with drag
// dismissal), [Pressable] (press feedback with tap and long-press), and
// [Viewer] (pan/pinch/rotate content viewer with double-tap zoom).
//
// Application callbacks cross out of the engine through a [Dispatcher];
// the default hands them to a single background worker so interaction
// processing never blocks on application logic.
//
// Flick honors the platform reduced-motion preference: flip it with
// [SetReducedMotion] and every animated transition collapses to its end
// state while still firing the same callbacks.
//
// [Ebitengine]: https://ebitengine.org
package flick
