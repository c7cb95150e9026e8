package flick

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// InputSource polls Ebitengine mouse and touch state into pointer samples.
// The mouse occupies pointer 0 (left button only); touches occupy pointers
// 1 through 9, with each contact keeping its pointer ID for its lifetime.
// A lifted contact produces exactly one sample with Down false at its last
// known position.
//
// Poll must be called once per Update; the returned slice is reused across
// calls.
type InputSource struct {
	touchIDs  []ebiten.TouchID
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	lastX     [maxPointers]float64
	lastY     [maxPointers]float64
	mouseDown bool
	samples   []Sample
}

// NewInputSource creates an input source.
func NewInputSource() *InputSource {
	return &InputSource{}
}

// Poll reads the current mouse and touch state and returns this frame's
// samples.
func (s *InputSource) Poll() []Sample {
	s.samples = s.samples[:0]
	s.pollMouse()
	s.pollTouches()
	return s.samples
}

func (s *InputSource) pollMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if pressed {
		s.mouseDown = true
		s.lastX[0], s.lastY[0] = x, y
		s.samples = append(s.samples, Sample{ID: 0, X: x, Y: y, Down: true})
		return
	}
	if s.mouseDown {
		// One release sample at the final position.
		s.mouseDown = false
		s.samples = append(s.samples, Sample{ID: 0, X: x, Y: y, Down: false})
	}
}

func (s *InputSource) pollTouches() {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range s.touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		s.lastX[slot], s.lastY[slot] = x, y
		s.samples = append(s.samples, Sample{ID: slot, X: x, Y: y, Down: true})
	}

	// Contacts no longer reported have lifted; emit their release at the
	// last seen position and free the slot.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !active[i] {
			s.samples = append(s.samples, Sample{ID: i, X: s.lastX[i], Y: s.lastY[i], Down: false})
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *InputSource) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}
