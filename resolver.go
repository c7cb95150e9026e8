package flick

import (
	"fmt"
	"math"
)

// Thresholds parameterizes release resolution. All values compare against
// the commit-ward translation: the gesture displacement mapped so that
// movement toward the committing edge is positive.
type Thresholds struct {
	// DismissDistance is the translation beyond which a slow release
	// commits. Must not be negative.
	DismissDistance float64
	// RevealWidth is the width of the resting revealed position, for
	// surfaces that have one (swipe rows with an action area). A release
	// past half of it settles revealed. Zero disables the reveal tier.
	RevealWidth float64
	// VelocityThreshold is the speed above which a release becomes a
	// fling regardless of distance. Must not be negative.
	VelocityThreshold float64
}

func (t Thresholds) validate() error {
	if t.DismissDistance < 0 || t.RevealWidth < 0 || t.VelocityThreshold < 0 {
		return fmt.Errorf("flick: thresholds must not be negative: %+v", t)
	}
	return nil
}

// Outcome is the decision for a gesture release.
type Outcome uint8

const (
	OutcomeSnapBack Outcome = iota // return to the neutral resting state
	OutcomeCommit                  // cross the threshold: dismiss, delete, close
	OutcomeReveal                  // settle at the revealed intermediate position
	OutcomeFling                   // coast on a clamped decay, then re-resolve
)

// String returns the outcome name for debugging.
func (o Outcome) String() string {
	switch o {
	case OutcomeSnapBack:
		return "SnapBack"
	case OutcomeCommit:
		return "Commit"
	case OutcomeReveal:
		return "Reveal"
	case OutcomeFling:
		return "Fling"
	default:
		return "Unknown"
	}
}

// Resolution is a resolved release: the outcome plus the numbers the
// caller needs to act on it. Amount is the reveal resting position for
// OutcomeReveal; Velocity is the release velocity for OutcomeFling.
type Resolution struct {
	Outcome  Outcome
	Amount   float64
	Velocity float64
}

// Resolve maps a release to an outcome. translation is the commit-ward
// displacement, velocity its rate in units per second. commitEnabled gates
// the commit tier so hosts can make a surface reveal-only.
//
// The tiers are ordered: a slow deliberate drag past DismissDistance
// commits; otherwise speed above VelocityThreshold flings, and the caller
// is expected to run a clamped Decay and re-resolve where it settles via
// ResolveSettled; otherwise a release past half the reveal width settles
// revealed; everything else snaps back.
func Resolve(translation, velocity float64, commitEnabled bool, t Thresholds) Resolution {
	if commitEnabled &&
		translation > t.DismissDistance &&
		math.Abs(velocity) <= t.VelocityThreshold {
		return Resolution{Outcome: OutcomeCommit}
	}
	if math.Abs(velocity) > t.VelocityThreshold {
		return Resolution{Outcome: OutcomeFling, Velocity: velocity}
	}
	if t.RevealWidth > 0 && translation > t.RevealWidth/2 {
		return Resolution{Outcome: OutcomeReveal, Amount: t.RevealWidth}
	}
	return Resolution{Outcome: OutcomeSnapBack}
}

// ResolveSettled maps the rest position of a finished fling to a final
// outcome. There is no fling tier: the coast is over and the position
// alone decides, using the same ordering as Resolve.
func ResolveSettled(translation float64, commitEnabled bool, t Thresholds) Resolution {
	if commitEnabled && translation > t.DismissDistance {
		return Resolution{Outcome: OutcomeCommit}
	}
	if t.RevealWidth > 0 && translation > t.RevealWidth/2 {
		return Resolution{Outcome: OutcomeReveal, Amount: t.RevealWidth}
	}
	return Resolution{Outcome: OutcomeSnapBack}
}
