package render

import (
	"github.com/lixenwraith/wadview/vmath"
	"github.com/lixenwraith/wadview/wad"
)

// Lighting table dimensions
const (
	LightLevels     = 16
	LightSegShift   = 4
	MaxLightScale   = 48
	LightScaleShift = 12
	MaxLightZ       = 128
	LightZShift     = 20

	// Count of diminishing light remap tables in COLORMAP
	numLightMaps = 32
	distMap      = 2
)

// DefaultFOV is a 90 degree horizontal field of view in fine angles
const DefaultFOV = vmath.FineAngles / 4

// Projection holds every table derived from screen resolution and field of
// view: the angle/column mappings, the light scale tables, and the plane
// mapping slopes. Computed once per resolution change, read-only during a
// frame, passed explicitly rather than kept as ambient globals
type Projection struct {
	Width, Height int

	CenterX, CenterY         int
	CenterXFrac, CenterYFrac vmath.Fixed

	// Distance from the eye to the projection plane
	FocalLen vmath.Fixed

	// Half horizontal FOV; view-relative angles beyond it are off screen
	ClipAngle vmath.Angle

	// ViewAngleToX maps a fine view-relative angle (offset by Ang90) to
	// the leftmost screen column whose ray has that angle or greater;
	// XToViewAngle is the inverse, per-column ray angle
	ViewAngleToX [vmath.FineAngles / 2]int
	XToViewAngle []vmath.Angle

	// ScaleLight/ZLight hold colormap indices by light row and projected
	// scale / world distance
	ScaleLight [LightLevels][MaxLightScale]int
	ZLight     [LightLevels][MaxLightZ]int

	// Plane mapping tables: YSlope by screen row, DistScale by column
	YSlope    []vmath.Fixed
	DistScale []vmath.Fixed
}

// NewProjection builds the tables for a screen of width x height with the
// given horizontal field of view in fine angles (DefaultFOV for 90)
func NewProjection(width, height, fov int) *Projection {
	p := &Projection{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
	p.CenterXFrac = vmath.FromInt(p.CenterX)
	p.CenterYFrac = vmath.FromInt(p.CenterY)

	// The FOV spans the screen width on the projection plane
	p.FocalLen = vmath.Div(p.CenterXFrac, vmath.FineTangent[vmath.FineAngles/4+fov/2])

	for i := range p.ViewAngleToX {
		var t int
		switch {
		case vmath.FineTangent[i] > 2*vmath.FracUnit:
			t = -1
		case vmath.FineTangent[i] < -2*vmath.FracUnit:
			t = width + 1
		default:
			tf := vmath.Mul(vmath.FineTangent[i], p.FocalLen)
			t = (p.CenterXFrac - tf + vmath.FracUnit - 1).Int()
			t = vmath.Clamp(t, -1, width+1)
		}
		p.ViewAngleToX[i] = t
	}

	// Scan for the smallest fine angle mapping to each column
	p.XToViewAngle = make([]vmath.Angle, width+1)
	for x := 0; x <= width; x++ {
		i := 0
		for p.ViewAngleToX[i] > x {
			i++
		}
		p.XToViewAngle[x] = vmath.Angle(i)<<vmath.AngleToFineShift - vmath.Ang90
	}

	// Snap the off-screen markers to the screen edges so table lookups
	// land on real columns
	for i, t := range p.ViewAngleToX {
		if t == -1 {
			p.ViewAngleToX[i] = 0
		} else if t == width+1 {
			p.ViewAngleToX[i] = width
		}
	}

	p.ClipAngle = p.XToViewAngle[0]

	p.buildLightTables()
	p.buildPlaneTables()
	return p
}

func (p *Projection) buildLightTables() {
	for i := 0; i < LightLevels; i++ {
		startMap := (LightLevels - 1 - i) * 2 * numLightMaps / LightLevels

		for j := 0; j < MaxLightScale; j++ {
			level := vmath.Clamp(startMap-j/distMap, 0, numLightMaps-1)
			p.ScaleLight[i][j] = level
		}

		for j := 0; j < MaxLightZ; j++ {
			scale := vmath.Div(vmath.FromInt(p.Width/2), vmath.Fixed(j+1)<<LightZShift)
			level := vmath.Clamp(startMap-int(scale>>LightScaleShift)/distMap, 0, numLightMaps-1)
			p.ZLight[i][j] = level
		}
	}
}

func (p *Projection) buildPlaneTables() {
	p.YSlope = make([]vmath.Fixed, p.Height)
	for y := range p.YSlope {
		dy := vmath.Abs(vmath.FromInt(y-p.CenterY) + vmath.FracUnit/2)
		p.YSlope[y] = vmath.Div(vmath.FromInt(p.Width/2), dy)
	}

	p.DistScale = make([]vmath.Fixed, p.Width)
	for x := range p.DistScale {
		cos := vmath.Abs(vmath.FineCosine[p.XToViewAngle[x].Fine()])
		p.DistScale[x] = vmath.Div(vmath.FracUnit, cos)
	}
}

// WallLightRow picks the scalelight row for a sector light level plus the
// current extralight bias, with the classic fake contrast nudge for axis
// aligned walls
func (p *Projection) WallLightRow(lightLevel, extraLight, contrast int) []int {
	row := vmath.Clamp(lightLevel>>LightSegShift+extraLight+contrast, 0, LightLevels-1)
	return p.ScaleLight[row][:]
}

// colormapCount keeps fixed colormap overrides inside the COLORMAP lump
const colormapCount = wad.NumColorMaps
