// Package physics drives the scroll-reactive parallax of a backdrop.
//
// # Overview
//
// Two spring-damper systems turn scroll movement into layer offsets. The
// vertical layer is tuned [Snappy]; the horizontal layer is [Floaty]. Both
// move along the same visual axis, and the difference in response is what
// separates them into a parallax.
//
//   - [Step]: one frame of the spring-damper recurrence for one axis
//   - [Engine]: both axes plus the shared scroll bookkeeping
//   - [Loop]: a frame-driven scheduler with an explicit cancel handle
//   - [Drift]: the independent, time-driven oscillation of each element
//
// # Frame Rate
//
// [Step] applies fixed per-frame gains and ignores wall-clock time between
// frames. Behavior is therefore tied to the frame rate; [DefaultFrameRate]
// is the rate the presets were tuned for.
//
// # Ownership
//
// An [Engine] belongs to a single view. A running [Loop] is the only writer
// of its engine; call [Handle.Cancel] on teardown:
//
//	h, err := loop.Start(ctx)
//	if err != nil {
//	    return err
//	}
//	defer h.Cancel()
package physics
