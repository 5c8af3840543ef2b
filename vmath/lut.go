package vmath

import (
	"math"
)

// FineSine covers 5/4 of the circle so FineCosine can alias into it a
// quarter turn ahead instead of wrapping per lookup
var (
	FineSine   [FineAngles + FineAngles/4]Fixed
	FineCosine []Fixed

	// FineTangent spans the half circle centered on zero; the half-step
	// offset in the generator keeps the asymptotes at ±90° finite
	FineTangent [FineAngles / 2]Fixed

	// TanToAngle maps a 0..1 slope ratio (slopeRange steps) to the BAM
	// angle of its arctangent, one octant's worth
	TanToAngle [slopeRange + 1]Angle
)

func init() {
	for i := range FineSine {
		rad := (float64(i) + 0.5) * 2 * math.Pi / FineAngles
		FineSine[i] = Fixed(math.Sin(rad) * float64(FracUnit))
	}
	FineCosine = FineSine[FineAngles/4:]

	for i := range FineTangent {
		rad := (float64(i) - FineAngles/4 + 0.5) * 2 * math.Pi / FineAngles
		FineTangent[i] = Fixed(math.Tan(rad) * float64(FracUnit))
	}

	for i := range TanToAngle {
		ratio := float64(i) / slopeRange
		TanToAngle[i] = Angle(math.Atan(ratio) / (2 * math.Pi) * 4294967296.0)
	}
}
