package flick

import (
	"testing"
	"time"
)

func mustPressable(t *testing.T, cfg PressConfig) *Pressable {
	t.Helper()
	p, err := NewPressable(cfg)
	if err != nil {
		t.Fatalf("NewPressable: %v", err)
	}
	return p
}

// settlePressable steps the pressable until its scale spring rests.
func settlePressable(t *testing.T, p *Pressable) {
	t.Helper()
	for i := 0; i < 300; i++ {
		p.Update(frameDt, nil)
		if !p.scale.Animating() {
			return
		}
	}
	t.Fatal("scale still animating after 300 frames")
}

func TestPressConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  PressConfig
	}{
		{"negative scale", PressConfig{PressedScale: -0.5}},
		{"negative movement", PressConfig{MaxMovement: -1}},
		{"negative duration", PressConfig{LongPressDuration: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPressable(tt.cfg); err == nil {
				t.Errorf("NewPressable(%+v) accepted an invalid config", tt.cfg)
			}
		})
	}
}

func TestPressableDefaults(t *testing.T) {
	p := mustPressable(t, PressConfig{})
	if got := p.Style().Scale; got != 1 {
		t.Errorf("resting scale = %f, want 1", got)
	}
	if p.Pressed() || p.Disabled() {
		t.Error("fresh pressable should be neither pressed nor disabled")
	}
}

func TestPressableQuickTap(t *testing.T) {
	presses, longs := 0, 0
	p := mustPressable(t, PressConfig{
		Dispatcher:  SyncDispatcher{},
		OnPress:     func() { presses++ },
		OnLongPress: func() { longs++ },
	})

	p.Update(frameDt, touchDown(100, 100))
	if !p.Pressed() {
		t.Fatal("Pressed() = false with the pointer down")
	}
	p.Update(frameDt, touchUp(100, 100))

	if presses != 1 || longs != 0 {
		t.Errorf("presses=%d longs=%d after a quick tap, want 1 and 0", presses, longs)
	}
	if p.Pressed() {
		t.Error("Pressed() = true after release")
	}
	settlePressable(t, p)
	if got := p.Style().Scale; got != 1 {
		t.Errorf("scale = %f after settling, want 1", got)
	}
}

func TestPressableReducedMotionStillFiresPress(t *testing.T) {
	SetReducedMotion(true)
	defer SetReducedMotion(false)

	presses := 0
	p := mustPressable(t, PressConfig{
		Dispatcher: SyncDispatcher{},
		OnPress:    func() { presses++ },
	})

	p.Update(frameDt, touchDown(100, 100))
	if got := p.Style().Scale; got != defaultPressedScale {
		t.Errorf("scale = %f with the pointer down, want an instant %f", got, defaultPressedScale)
	}

	p.Update(frameDt, touchUp(100, 100))
	if presses != 1 {
		t.Errorf("presses = %d under reduced motion, want 1", presses)
	}
	if got := p.Style().Scale; got != 1 {
		t.Errorf("scale = %f after release, want an instant 1", got)
	}
	if p.scale.Animating() {
		t.Error("scale still animating under reduced motion")
	}
}

func TestPressableScaleDipsWhileHeld(t *testing.T) {
	presses := 0
	p := mustPressable(t, PressConfig{
		Dispatcher: SyncDispatcher{},
		OnPress:    func() { presses++ },
	})

	p.Update(frameDt, touchDown(100, 100))
	for i := 0; i < 10; i++ { // 167ms, still well short of the 500ms long press
		p.Update(frameDt, touchDown(100, 100))
	}
	if got := p.Style().Scale; got >= 0.995 || got < 0.95 {
		t.Errorf("scale = %f while held, want dipped toward %f", got, defaultPressedScale)
	}

	p.Update(frameDt, touchUp(100, 100))
	if presses != 1 {
		t.Errorf("presses = %d after release, want 1", presses)
	}
	settlePressable(t, p)
	if got := p.Style().Scale; got != 1 {
		t.Errorf("scale = %f after settling, want 1", got)
	}
}

func TestPressableLongPress(t *testing.T) {
	presses, longs := 0, 0
	h := &countingHaptics{}
	p := mustPressable(t, PressConfig{
		LongPressDuration: 100 * time.Millisecond,
		Haptics:           h,
		Dispatcher:        SyncDispatcher{},
		OnPress:           func() { presses++ },
		OnLongPress:       func() { longs++ },
	})

	p.Update(frameDt, touchDown(100, 100))
	for i := 0; i < 10; i++ {
		p.Update(frameDt, touchDown(100, 100))
	}
	if longs != 1 {
		t.Fatalf("longs = %d after holding past the duration, want 1", longs)
	}
	if h.pulses != 1 {
		t.Errorf("pulses = %d at long press recognition, want 1", h.pulses)
	}
	if !p.Pressed() {
		t.Error("Pressed() = false with the pointer still holding")
	}

	// The eventual release is not also a press. Exactly one action per touch.
	p.Update(frameDt, touchUp(100, 100))
	if presses != 0 || longs != 1 {
		t.Errorf("presses=%d longs=%d after release, want 0 and 1", presses, longs)
	}
	if p.Pressed() {
		t.Error("Pressed() = true after release")
	}
	settlePressable(t, p)
	if got := p.Style().Scale; got != 1 {
		t.Errorf("scale = %f after settling, want 1", got)
	}
}

func TestPressableMovementCancels(t *testing.T) {
	presses, longs := 0, 0
	p := mustPressable(t, PressConfig{
		Dispatcher:  SyncDispatcher{},
		OnPress:     func() { presses++ },
		OnLongPress: func() { longs++ },
	})

	p.Update(frameDt, touchDown(100, 100))
	p.Update(frameDt, touchMove(130, 100)) // 30px, past the 16px slop

	if p.Pressed() {
		t.Error("Pressed() = true after straying past the slop")
	}
	p.Update(frameDt, touchUp(130, 100))
	if presses != 0 || longs != 0 {
		t.Errorf("presses=%d longs=%d after a stray, want none", presses, longs)
	}
}

func TestPressableDisableMidPressReleases(t *testing.T) {
	presses := 0
	p := mustPressable(t, PressConfig{
		Dispatcher: SyncDispatcher{},
		OnPress:    func() { presses++ },
	})

	p.Update(frameDt, touchDown(100, 100))
	p.Update(frameDt, touchDown(100, 100))
	p.SetDisabled(true)
	if !p.Disabled() {
		t.Fatal("Disabled() = false after SetDisabled(true)")
	}
	if p.Pressed() {
		t.Error("Pressed() = true after disabling mid-press")
	}
	p.SetDisabled(true) // redundant disable is a no-op

	p.Update(frameDt, touchUp(100, 100))
	if presses != 0 {
		t.Errorf("presses = %d for a disabled release, want 0", presses)
	}
	settlePressable(t, p)
	if got := p.Style().Scale; got != 1 {
		t.Errorf("scale = %f after the release visual, want 1", got)
	}

	// Re-enabled, the next touch works normally.
	p.SetDisabled(false)
	p.Update(frameDt, touchDown(100, 100))
	p.Update(frameDt, touchUp(100, 100))
	if presses != 1 {
		t.Errorf("presses = %d after re-enabling, want 1", presses)
	}
}

func TestPressableDisposeStopsUpdates(t *testing.T) {
	presses := 0
	p := mustPressable(t, PressConfig{
		Dispatcher: SyncDispatcher{},
		OnPress:    func() { presses++ },
	})
	p.Dispose()

	p.Update(frameDt, touchDown(100, 100))
	p.Update(frameDt, touchUp(100, 100))
	if presses != 0 || p.Pressed() {
		t.Errorf("presses=%d pressed=%v after Dispose, want inert", presses, p.Pressed())
	}
	p.Dispose() // disposing twice is fine
}
