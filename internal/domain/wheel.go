package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// FullCircle is one complete wheel revolution in radians.
const FullCircle = 2 * math.Pi

// PointsPerUSDC is the conversion rate from USDC winnings to points.
// Points are awarded as floor(amount * 1000).
const PointsPerUSDC = 1000

// Segment is one fixed slice of the wheel. Segments are equal-width and
// their order is immutable for the lifetime of a wheel configuration.
type Segment struct {
	Name   string          `json:"name"`
	Value  decimal.Decimal `json:"value"`
	IsLoss bool            `json:"is_loss"`
}

// Wheel is an ordered, fixed-length set of segments covering a full rotation.
type Wheel struct {
	Segments []Segment
}

// DefaultWheel returns the production five-segment layout:
// three USDC prizes and two loss slots.
func DefaultWheel() Wheel {
	return Wheel{Segments: []Segment{
		{Name: "0.01 USDC", Value: decimal.NewFromFloat(0.01)},
		{Name: "X", Value: decimal.Zero, IsLoss: true},
		{Name: "0.001 USDC", Value: decimal.NewFromFloat(0.001)},
		{Name: "X", Value: decimal.Zero, IsLoss: true},
		{Name: "0.02 USDC", Value: decimal.NewFromFloat(0.02)},
	}}
}

// SegmentCount returns the number of segments on the wheel.
func (w Wheel) SegmentCount() int {
	return len(w.Segments)
}

// SegmentAngle returns the angular width of one segment in radians.
func (w Wheel) SegmentAngle() float64 {
	return FullCircle / float64(len(w.Segments))
}

// SpinOutcome is the resolved result of a single spin. The rotation alone
// determines the outcome; presentation easing never alters it.
type SpinOutcome struct {
	SegmentIndex int             `json:"segment_index"`
	Segment      Segment         `json:"segment"`
	Rotation     float64         `json:"rotation"`
	IsWin        bool            `json:"is_win"`
	Amount       decimal.Decimal `json:"amount"`
	Points       int64           `json:"points"`
}

// PointsForAmount converts a USDC win amount to points: floor(amount * 1000).
func PointsForAmount(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(PointsPerUSDC)).Floor().IntPart()
}
