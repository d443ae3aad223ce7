package wheel

import (
	"math"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/fortunaspin/fortuna/internal/domain"
)

// Selector draws a random wheel rotation and resolves the segment landing
// under the pointer. The drawn rotation is the true destination: the
// presentation layer animates toward it, but the destination alone
// determines the outcome.
type Selector struct {
	randFloat func() float64 // Injectable for testing
}

// NewSelector creates a selector using the default random source.
func NewSelector() *Selector {
	return &Selector{randFloat: rand.Float64}
}

// NewSelectorWithSource creates a selector with an injectable random source.
// The source must return values uniformly distributed in [0, 1).
func NewSelectorWithSource(randFloat func() float64) *Selector {
	return &Selector{randFloat: randFloat}
}

// Spin draws a destination rotation and resolves the winning segment.
// Each of the N segments has exactly 1/N selection probability; the number
// of full rotations never biases the outcome.
func (s *Selector) Spin(w domain.Wheel) (domain.SpinOutcome, error) {
	if w.SegmentCount() == 0 {
		return domain.SpinOutcome{}, domain.ErrEmptyWheel
	}

	spins := MinFullSpins + s.randFloat()*(MaxFullSpins-MinFullSpins)
	extra := s.randFloat() * domain.FullCircle
	rotation := spins*domain.FullCircle + extra

	return Resolve(w, rotation)
}

// Resolve maps a final rotation to its outcome. Pure function of the
// rotation and wheel layout; exported so replays and tests can verify
// index resolution independently of the random draw.
func Resolve(w domain.Wheel, rotation float64) (domain.SpinOutcome, error) {
	n := w.SegmentCount()
	if n == 0 {
		return domain.SpinOutcome{}, domain.ErrEmptyWheel
	}

	idx := ResolveIndex(rotation, n)
	seg := w.Segments[idx]

	outcome := domain.SpinOutcome{
		SegmentIndex: idx,
		Segment:      seg,
		Rotation:     rotation,
		IsWin:        !seg.IsLoss,
		Amount:       decimal.Zero,
	}
	if outcome.IsWin {
		outcome.Amount = seg.Value
		outcome.Points = domain.PointsForAmount(seg.Value)
	}
	return outcome, nil
}

// ResolveIndex maps a rotation to the segment index under the fixed pointer.
// The pointer sits at the top of the wheel; in wheel-local coordinates its
// angle is (2pi - rotation mod 2pi) mod 2pi, and the winning index is that
// angle divided by the segment width.
func ResolveIndex(rotation float64, n int) int {
	segmentAngle := domain.FullCircle / float64(n)

	normalized := math.Mod(rotation, domain.FullCircle)
	if normalized < 0 {
		normalized += domain.FullCircle
	}

	pointerAngle := math.Mod(domain.FullCircle-normalized, domain.FullCircle)

	return int(math.Floor(pointerAngle/segmentAngle)) % n
}
