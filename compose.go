package flick

// Simultaneous composes recognizers that all see every frame and recognize
// independently: a pan and a pinch composed this way both track the same
// pointers at the same time. Compositions nest; a Simultaneous group can
// hold other groups. Panics if called with no members or a nil member.
func Simultaneous(members ...Gesture) Gesture {
	if len(members) == 0 {
		panic("flick: Simultaneous requires at least one member")
	}
	for _, m := range members {
		if m == nil {
			panic("flick: Simultaneous member must not be nil")
		}
	}
	return &simultaneousGroup{members: members}
}

type simultaneousGroup struct {
	members []Gesture
}

func (g *simultaneousGroup) feed(f *frame) {
	for _, m := range g.members {
		m.feed(f)
	}
}

// phase reports the most advanced member phase so nested groups can act as
// a single recognizer inside an Exclusive group.
func (g *simultaneousGroup) phase() Phase {
	best := PhaseIdle
	for _, m := range g.members {
		switch m.phase() {
		case PhaseActive:
			return PhaseActive
		case PhaseBegan:
			best = PhaseBegan
		case PhaseEnded:
			if best == PhaseIdle || best == PhaseCancelled {
				best = PhaseEnded
			}
		case PhaseCancelled:
			if best == PhaseIdle {
				best = PhaseCancelled
			}
		}
	}
	return best
}

func (g *simultaneousGroup) forceCancel() {
	for _, m := range g.members {
		m.forceCancel()
	}
}

func (g *simultaneousGroup) reset() {
	for _, m := range g.members {
		m.reset()
	}
}

// Exclusive composes recognizers of which at most one may recognize per
// touch sequence. The first member to leave Idle wins: every sibling still
// Idle is cancelled for the sequence and receives no further frames. When
// two members could recognize on the same frame the earlier one in the
// argument list wins, because members are offered the frame in order.
// Panics if called with no members or a nil member.
func Exclusive(members ...Gesture) Gesture {
	if len(members) == 0 {
		panic("flick: Exclusive requires at least one member")
	}
	for _, m := range members {
		if m == nil {
			panic("flick: Exclusive member must not be nil")
		}
	}
	return &exclusiveGroup{members: members, winner: -1}
}

type exclusiveGroup struct {
	members []Gesture
	winner  int
}

func (g *exclusiveGroup) feed(f *frame) {
	if g.winner >= 0 {
		g.members[g.winner].feed(f)
		return
	}
	for i, m := range g.members {
		m.feed(f)
		if recognized(m.phase()) {
			g.winner = i
			for j, other := range g.members {
				if j != i && other.phase() == PhaseIdle {
					other.forceCancel()
				}
			}
			return
		}
	}
}

// recognized reports whether a member has claimed the sequence. Ended is
// included because instantaneous recognizers pass through Began and Ended
// within a single frame.
func recognized(p Phase) bool {
	return p == PhaseBegan || p == PhaseActive || p == PhaseEnded
}

func (g *exclusiveGroup) phase() Phase {
	if g.winner >= 0 {
		return g.members[g.winner].phase()
	}
	return PhaseIdle
}

func (g *exclusiveGroup) forceCancel() {
	for _, m := range g.members {
		m.forceCancel()
	}
}

func (g *exclusiveGroup) reset() {
	g.winner = -1
	for _, m := range g.members {
		m.reset()
	}
}
