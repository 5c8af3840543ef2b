package vmath

// Angle is a binary angle measure: the full circle maps to the uint32
// range, so wraparound falls out of unsigned overflow
type Angle uint32

const (
	Ang45  = Angle(0x20000000)
	Ang90  = Angle(0x40000000)
	Ang180 = Angle(0x80000000)
	Ang270 = Angle(0xC0000000)

	// Fine angle resolution of the trig lookup tables
	FineAngles       = 8192
	FineMask         = FineAngles - 1
	AngleToFineShift = 19

	slopeRange = 2048
	slopeBits  = 11
	dBits      = FracBits - slopeBits
)

// Fine quantizes a BAM angle to a fine-table index
func (a Angle) Fine() int {
	return int(a>>AngleToFineShift) & FineMask
}

// slopeDiv maps a dy/dx ratio (dy <= dx) to a tantoangle index
func slopeDiv(num, den uint32) uint32 {
	if den < 512 {
		return slopeRange
	}
	ans := (num << 3) / (den >> 8)
	if ans <= slopeRange {
		return ans
	}
	return slopeRange
}

// PointToAngle2 returns the BAM angle of the ray from (x1,y1) to (x2,y2).
// Octant-folded arctangent over the TanToAngle table; exact enough that a
// round trip through FineSine/FineCosine reproduces the projection
func PointToAngle2(x1, y1, x2, y2 Fixed) Angle {
	x := x2 - x1
	y := y2 - y1

	if x == 0 && y == 0 {
		return 0
	}

	if x >= 0 {
		if y >= 0 {
			if x > y {
				return TanToAngle[slopeDiv(uint32(y), uint32(x))]
			}
			return Ang90 - 1 - TanToAngle[slopeDiv(uint32(x), uint32(y))]
		}
		y = -y
		if x > y {
			return -TanToAngle[slopeDiv(uint32(y), uint32(x))]
		}
		return Ang270 + TanToAngle[slopeDiv(uint32(x), uint32(y))]
	}
	x = -x
	if y >= 0 {
		if x > y {
			return Ang180 - 1 - TanToAngle[slopeDiv(uint32(y), uint32(x))]
		}
		return Ang90 + TanToAngle[slopeDiv(uint32(x), uint32(y))]
	}
	y = -y
	if x > y {
		return Ang180 + TanToAngle[slopeDiv(uint32(y), uint32(x))]
	}
	return Ang270 - 1 - TanToAngle[slopeDiv(uint32(x), uint32(y))]
}

// PointToDist returns the distance from (x1,y1) to (x2,y2) by folding the
// delta into the first octant and dividing by the fine sine of its angle
func PointToDist(x1, y1, x2, y2 Fixed) Fixed {
	dx := Abs(x2 - x1)
	dy := Abs(y2 - y1)

	if dy > dx {
		dx, dy = dy, dx
	}
	if dx == 0 {
		return 0
	}

	// dy <= dx so the ratio stays within the guard of Div
	angle := (TanToAngle[Div(dy, dx)>>dBits] + Ang90).Fine()
	return Div(dx, FineSine[angle])
}
