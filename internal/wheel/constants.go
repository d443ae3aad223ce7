package wheel

// Rotation draw bounds: the wheel always completes at least MinFullSpins
// revolutions and fewer than MaxFullSpins before settling.
const (
	MinFullSpins = 4.0
	MaxFullSpins = 7.0
)
