package flick

// Injector queues synthetic pointer frames for scripted interaction:
// automated demos, integration tests, and replayable gesture recordings.
// Each queued frame is one []Sample, consumed by Next in order, one frame
// per call, exactly as an InputSource would have produced it.
type Injector struct {
	frames [][]Sample
}

// NewInjector creates an empty injector.
func NewInjector() *Injector {
	return &Injector{}
}

// Press queues a one-pointer press frame at the given coordinates.
func (i *Injector) Press(x, y float64) {
	i.frames = append(i.frames, []Sample{{ID: 0, X: x, Y: y, Down: true}})
}

// Move queues a one-pointer move frame with the pointer held down. Use
// between Press and Release to simulate a drag.
func (i *Injector) Move(x, y float64) {
	i.frames = append(i.frames, []Sample{{ID: 0, X: x, Y: y, Down: true}})
}

// Release queues a one-pointer release frame at the given coordinates.
func (i *Injector) Release(x, y float64) {
	i.frames = append(i.frames, []Sample{{ID: 0, X: x, Y: y, Down: false}})
}

// Tap queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (i *Injector) Tap(x, y float64) {
	i.Press(x, y)
	i.Release(x, y)
}

// Drag queues a full drag: press at (fromX, fromY), linearly interpolated
// moves over frames-2 intermediate frames, and release at (toX, toY). The
// whole sequence consumes frames frames; the minimum is 2.
func (i *Injector) Drag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	i.Press(fromX, fromY)
	steps := frames - 2
	for n := 1; n <= steps; n++ {
		t := float64(n) / float64(steps+1)
		i.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	i.Release(toX, toY)
}

// Pinch queues a symmetric two-pointer spread about (cx, cy): both
// contacts land at fromDist/2 from the center on the horizontal axis, move
// apart (or together) to toDist/2 over the interpolated frames, and lift.
// The whole sequence consumes frames frames; the minimum is 2.
func (i *Injector) Pinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	pair := func(dist float64, down bool) []Sample {
		half := dist / 2
		return []Sample{
			{ID: 1, X: cx - half, Y: cy, Down: down},
			{ID: 2, X: cx + half, Y: cy, Down: down},
		}
	}
	i.frames = append(i.frames, pair(fromDist, true))
	steps := frames - 2
	for n := 1; n <= steps; n++ {
		t := float64(n) / float64(steps+1)
		i.frames = append(i.frames, pair(fromDist+(toDist-fromDist)*t, true))
	}
	i.frames = append(i.frames, pair(toDist, false))
}

// Wait queues n frames with no pointer data, advancing time-based
// recognizer windows without touching anything.
func (i *Injector) Wait(n int) {
	for ; n > 0; n-- {
		i.frames = append(i.frames, nil)
	}
}

// Next pops the oldest queued frame. ok is false when the queue is empty.
func (i *Injector) Next() (samples []Sample, ok bool) {
	if len(i.frames) == 0 {
		return nil, false
	}
	samples = i.frames[0]
	copy(i.frames, i.frames[1:])
	i.frames[len(i.frames)-1] = nil
	i.frames = i.frames[:len(i.frames)-1]
	return samples, true
}

// Pending returns the number of queued frames.
func (i *Injector) Pending() int {
	return len(i.frames)
}
