package flick

// Phase is the lifecycle state of a gesture recognizer within one touch
// sequence.
type Phase uint8

const (
	PhaseIdle      Phase = iota // not recognizing; watching for a qualifying start
	PhaseBegan                  // activation condition met this frame
	PhaseActive                 // recognized and emitting updates
	PhaseEnded                  // completed normally
	PhaseCancelled              // terminated without completing
)

// String returns the phase name for debugging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseBegan:
		return "Began"
	case PhaseActive:
		return "Active"
	case PhaseEnded:
		return "Ended"
	case PhaseCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// GestureState is the snapshot passed to every recognizer callback. Fields
// a recognizer does not measure keep their identity values: Scale is 1 and
// Rotation is 0 for a pan, Translation is zero for a pinch.
type GestureState struct {
	Phase Phase
	// Location is the current primary pointer position, or the centroid of
	// the pointer pair for two-pointer recognizers.
	Location Vec2
	// Start is Location at the moment the tracked pointer(s) went down.
	Start Vec2
	// Translation is the cumulative displacement since the pointer went
	// down, including any distance spent inside the dead zone.
	Translation Vec2
	// Velocity is a smoothed pointer velocity in units per second.
	Velocity Vec2
	// Scale is the ratio of the current pointer-pair distance to the
	// distance at recognition.
	Scale float64
	// ScaleVelocity is the smoothed rate of Scale change per second.
	ScaleVelocity float64
	// Rotation is the cumulative signed angle in radians swept by the
	// pointer pair since recognition. It is continuous: a full twist reads
	// 2*pi rather than wrapping.
	Rotation float64
	// RotationVelocity is the smoothed rate of Rotation change per second.
	RotationVelocity float64
	// Pointers is the number of pointers currently down.
	Pointers int
}

// Gesture is a single recognizer or a composition of recognizers. The
// concrete types are Pan, Pinch, Rotation, Tap, DoubleTap, LongPress, and
// the trees built by Simultaneous and Exclusive.
type Gesture interface {
	feed(f *frame)
	phase() Phase
	forceCancel()
	reset()
}

// pointerTrack is the engine's bookkeeping for one pointer across a touch
// sequence.
type pointerTrack struct {
	id           int
	down         bool
	justPressed  bool
	justReleased bool
	x, y         float64
	prevX, prevY float64
	startX       float64
	startY       float64
	heldFor      float64
}

// frame is one tick of pointer data offered to every recognizer in a tree.
type frame struct {
	dt        float64
	tracks    *[maxPointers]pointerTrack
	downCount int
}

// primary returns the lowest slot that is down, or the slot that released
// this frame when none is down, or -1. Recognizers latch the slot when they
// recognize so a later contact cannot hijack an in-progress gesture.
func (f *frame) primary() int {
	for i := range f.tracks {
		if f.tracks[i].down {
			return i
		}
	}
	for i := range f.tracks {
		if f.tracks[i].justReleased {
			return i
		}
	}
	return -1
}

// Detector owns pointer bookkeeping for one interactive surface and drives
// an attached gesture tree. Feed it the frame's samples and dt each tick;
// it tracks press, move, and release transitions per pointer, offers each
// frame to the tree, and resets recognizers to Idle when the last pointer
// lifts so the next touch sequence starts clean.
type Detector struct {
	root     Gesture
	tracks   [maxPointers]pointerTrack
	sequence bool
}

// NewDetector creates a detector driving the given gesture tree.
// Panics if root is nil.
func NewDetector(root Gesture) *Detector {
	if root == nil {
		panic("flick: cannot create detector with nil gesture")
	}
	return &Detector{root: root}
}

// Feed advances the detector by one frame. samples may be empty; frames
// without pointer data still tick time-based recognizers such as the
// double-tap interval window. Pointer IDs must be stable while a contact
// is down; unknown IDs are assigned free slots and samples beyond the
// tracking capacity are dropped.
func (d *Detector) Feed(dt float64, samples []Sample) {
	for i := range d.tracks {
		t := &d.tracks[i]
		t.justPressed = false
		t.justReleased = false
		t.prevX, t.prevY = t.x, t.y
		if t.down {
			t.heldFor += dt
		}
	}

	for _, s := range samples {
		slot := d.slotFor(s.ID)
		if slot < 0 {
			continue
		}
		t := &d.tracks[slot]
		switch {
		case s.Down && !t.down:
			*t = pointerTrack{
				id: s.ID, down: true, justPressed: true,
				x: s.X, y: s.Y, prevX: s.X, prevY: s.Y,
				startX: s.X, startY: s.Y,
			}
		case s.Down:
			t.x, t.y = s.X, s.Y
		case t.down:
			t.down = false
			t.justReleased = true
			t.x, t.y = s.X, s.Y
		}
	}

	down := 0
	for i := range d.tracks {
		if d.tracks[i].down {
			down++
		}
	}
	if down > 0 {
		d.sequence = true
	}

	f := frame{dt: dt, tracks: &d.tracks, downCount: down}
	d.root.feed(&f)

	// The release frame above carried final positions into the tree;
	// now the sequence is over and recognizers return to Idle.
	if d.sequence && down == 0 {
		d.root.reset()
		d.sequence = false
		for i := range d.tracks {
			d.tracks[i] = pointerTrack{}
		}
	}
}

// slotFor returns the slot tracking id, allocating a free slot for new
// contacts, or -1 when all slots are taken.
func (d *Detector) slotFor(id int) int {
	for i := range d.tracks {
		if d.tracks[i].down && d.tracks[i].id == id {
			return i
		}
	}
	for i := range d.tracks {
		if !d.tracks[i].down && !d.tracks[i].justReleased {
			return i
		}
	}
	return -1
}

// gestureCore is the state shared by every recognizer: the public snapshot,
// the enabled flag, and the per-sequence lockout after cancellation.
type gestureCore struct {
	st      GestureState
	enabled bool
	locked  bool
}

func newGestureCore() gestureCore {
	return gestureCore{enabled: true, st: GestureState{Scale: 1}}
}

func (c *gestureCore) phase() Phase { return c.st.Phase }

// emit snapshots the state and fires fn through the panic barrier.
func (c *gestureCore) emit(fn func(GestureState), name string) {
	if fn == nil {
		return
	}
	st := c.st
	safeCall(name, func() { fn(st) })
}

// resetSequence returns the core to Idle for the next touch sequence.
func (c *gestureCore) resetSequence() {
	c.st = GestureState{Scale: 1}
	c.locked = false
}

// velocityTracker smooths per-frame instantaneous velocity with an
// exponential moving average, seeded with the first sample so short flicks
// are not dragged toward zero by an empty history.
type velocityTracker struct {
	v      Vec2
	primed bool
}

const velocityEMAAlpha = 0.4

func (t *velocityTracker) sample(dx, dy, dt float64) {
	if dt <= 0 {
		return
	}
	inst := Vec2{X: dx / dt, Y: dy / dt}
	if !t.primed {
		t.v = inst
		t.primed = true
		return
	}
	t.v.X += velocityEMAAlpha * (inst.X - t.v.X)
	t.v.Y += velocityEMAAlpha * (inst.Y - t.v.Y)
}

func (t *velocityTracker) reset() {
	*t = velocityTracker{}
}

// scalarVelocityTracker is velocityTracker for one dimension, used for
// scale and rotation rates.
type scalarVelocityTracker struct {
	v      float64
	primed bool
}

func (t *scalarVelocityTracker) sample(delta, dt float64) {
	if dt <= 0 {
		return
	}
	inst := delta / dt
	if !t.primed {
		t.v = inst
		t.primed = true
		return
	}
	t.v += velocityEMAAlpha * (inst - t.v)
}

func (t *scalarVelocityTracker) reset() {
	*t = scalarVelocityTracker{}
}
