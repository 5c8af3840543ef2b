package render

import (
	"github.com/lixenwraith/wadview/level"
	"github.com/lixenwraith/wadview/vmath"
	"github.com/lixenwraith/wadview/wad"
)

// Vertical stepping precision of the scan loop. World heights are carried
// with HeightBits fractional bits throughout; mixing shifted and unshifted
// values is what produces seams, so the shift happens exactly once here
const (
	HeightBits  = 12
	HeightUnit  = 1 << HeightBits
	heightShift = vmath.FracBits - HeightBits
)

// Projected scale clamp. The bounds are load-bearing: they cap how tall or
// short a wall column can ever be drawn, so pathological near/far geometry
// stays bounded instead of degenerate
const (
	minScale = vmath.Fixed(256)
	maxScale = 64 * vmath.FracUnit
)

// wallContext carries one clipped wall range from the orchestrator into
// the scan-conversion loop. Immutable apart from the stepping accumulators
// the loop itself advances
type wallContext struct {
	x1, x2 int

	scale     vmath.Fixed
	scaleStep vmath.Fixed

	// Perpendicular distance to the wall line and the angles recovering
	// per-column texture u without re-deriving distance
	distance    vmath.Fixed
	normalAngle vmath.Angle
	centerAngle vmath.Angle
	offset      vmath.Fixed

	lights      []int
	segTextured bool

	drawMid, drawTop, drawBottom       bool
	midTex, topTex, bottomTex          *wad.Texture
	midTexMid, topTexMid, bottomTexMid vmath.Fixed
	markFloor, markCeiling             bool

	// HeightBits-shifted column extents and their per-column steps
	topFrac, topStep       vmath.Fixed
	bottomFrac, bottomStep vmath.Fixed
	pixHigh, pixHighStep   vmath.Fixed
	pixLow, pixLowStep     vmath.Fixed
	hasHigh, hasLow        bool
}

// scaleFromGlobalAngle computes the projected scale of a wall column seen
// along visAngle. When the denominator is too small relative to the
// numerator the division would overflow, so the max scale substitutes
func (r *Renderer) scaleFromGlobalAngle(visAngle, normalAngle vmath.Angle, distance vmath.Fixed) vmath.Fixed {
	angleA := vmath.Ang90 + (visAngle - r.viewAngle)
	angleB := vmath.Ang90 + (visAngle - normalAngle)

	// both sines are positive
	sineA := vmath.FineSine[angleA.Fine()]
	sineB := vmath.FineSine[angleB.Fine()]

	num := vmath.Mul(r.proj.FocalLen, sineB)
	den := vmath.Mul(distance, sineA)

	if den <= num>>vmath.FracBits {
		return maxScale
	}
	return vmath.Clamp(vmath.Div(num, den), minScale, maxScale)
}

// segFrontSide resolves the sidedef a seg renders, nil when any reference
// is malformed
func (r *Renderer) segFrontSide(seg *level.Seg) *level.Side {
	if seg.Line < 0 || seg.Line >= len(r.lvl.Lines) {
		return nil
	}
	line := &r.lvl.Lines[seg.Line]
	idx := line.FrontSide
	if seg.Side == 1 {
		idx = line.BackSide
	}
	if idx < 0 || idx >= len(r.lvl.Sides) {
		return nil
	}
	return &r.lvl.Sides[idx]
}

// addLine projects one seg, clips it to the field of view, classifies
// which wall pieces are visible, and dispatches the scan-conversion loop.
// Malformed references abort with zero side effects; the BSP walk just
// moves on to the next seg
func (r *Renderer) addLine(segIndex int) {
	lvl := r.lvl
	if segIndex < 0 || segIndex >= len(lvl.Segs) {
		return
	}
	seg := &lvl.Segs[segIndex]
	if seg.V1 < 0 || seg.V1 >= len(lvl.Vertexes) || seg.V2 < 0 || seg.V2 >= len(lvl.Vertexes) {
		return
	}
	v1 := lvl.Vertexes[seg.V1]
	v2 := lvl.Vertexes[seg.V2]

	angle1 := vmath.PointToAngle2(r.viewX, r.viewY, v1.X, v1.Y)
	angle2 := vmath.PointToAngle2(r.viewX, r.viewY, v2.X, v2.Y)

	// A span of half the circle or more means the seg faces away
	span := angle1 - angle2
	if span >= vmath.Ang180 {
		return
	}

	// World angle to v1, kept for the texture offset basis
	segAngle1 := angle1

	clip := r.proj.ClipAngle
	angle1 -= r.viewAngle
	angle2 -= r.viewAngle

	// Clip each endpoint to the half-FOV with the same modular test used
	// for the back-face cull: when the overflow past 2*clipangle exceeds
	// the original span the seg is entirely outside that edge
	tspan := angle1 + clip
	if tspan > 2*clip {
		tspan -= 2 * clip
		if tspan >= span {
			return
		}
		angle1 = clip
	}
	tspan = clip - angle2
	if tspan > 2*clip {
		tspan -= 2 * clip
		if tspan >= span {
			return
		}
		angle2 = -clip
	}

	// The right column comes from the table entry minus one: the tables
	// are half-open, the rasterized range is closed
	x1 := r.proj.ViewAngleToX[(angle1+vmath.Ang90)>>vmath.AngleToFineShift]
	x2 := r.proj.ViewAngleToX[(angle2+vmath.Ang90)>>vmath.AngleToFineShift] - 1
	if x1 > x2 {
		return
	}
	x1 = max(x1, 0)
	x2 = min(x2, r.proj.Width-1)
	if x1 > x2 {
		return
	}

	if seg.Line >= len(lvl.Lines) {
		return
	}
	line := &lvl.Lines[seg.Line]
	side := r.segFrontSide(seg)
	if side == nil || side.Sector < 0 || side.Sector >= len(lvl.Sectors) {
		return
	}
	front := &lvl.Sectors[side.Sector]

	// The back sector exists only for two-sided lines whose far sidedef
	// reference survived decoding
	var back *level.Sector
	if line.TwoSided() {
		backIdx := line.BackSide
		if seg.Side == 1 {
			backIdx = line.FrontSide
		}
		if backIdx >= 0 && backIdx < len(lvl.Sides) {
			if s := lvl.Sides[backIdx].Sector; s >= 0 && s < len(lvl.Sectors) {
				back = &lvl.Sectors[s]
			}
		}
	}

	worldTop := front.CeilingHeight - r.viewZ
	worldBottom := front.FloorHeight - r.viewZ

	// Visibility classification. A missing back sector or a closed-door
	// portal (back ceiling at or below front floor, or back floor at or
	// above front ceiling) renders solid
	solid := back == nil ||
		back.CeilingHeight <= front.FloorHeight ||
		back.FloorHeight >= front.CeilingHeight

	ctx := wallContext{x1: x1, x2: x2, normalAngle: seg.Angle + vmath.Ang90}

	var worldHigh, worldLow vmath.Fixed
	if solid {
		ctx.drawMid = true
		ctx.midTex = r.atlas.Wall(side.MidTexture)
		if line.DontPegBottom() {
			// Texture hangs from its bottom edge at the floor
			ctx.midTexMid = front.FloorHeight + texHeight(ctx.midTex) - r.viewZ
		} else {
			ctx.midTexMid = worldTop
		}
		ctx.midTexMid += side.RowOffset
		ctx.markCeiling = true
		ctx.markFloor = true
	} else {
		worldHigh = back.CeilingHeight - r.viewZ
		worldLow = back.FloorHeight - r.viewZ

		// A height step, a different flat, or a different light level
		// all expose fresh plane area through the portal
		ctx.markCeiling = worldHigh != worldTop ||
			back.CeilingFlat != front.CeilingFlat ||
			back.LightLevel != front.LightLevel
		ctx.markFloor = worldLow != worldBottom ||
			back.FloorFlat != front.FloorFlat ||
			back.LightLevel != front.LightLevel

		if worldHigh < worldTop {
			ctx.drawTop = true
			ctx.topTex = r.atlas.Wall(side.TopTexture)
			if line.DontPegTop() {
				ctx.topTexMid = worldTop
			} else {
				ctx.topTexMid = back.CeilingHeight + texHeight(ctx.topTex) - r.viewZ
			}
			ctx.topTexMid += side.RowOffset
		}
		if worldLow > worldBottom {
			ctx.drawBottom = true
			ctx.bottomTex = r.atlas.Wall(side.BottomTexture)
			if line.DontPegBottom() {
				ctx.bottomTexMid = worldTop
			} else {
				ctx.bottomTexMid = worldLow
			}
			ctx.bottomTexMid += side.RowOffset
		}

		// A portal with identical planes on both sides and no mid
		// texture has no visual effect at all; it must not perturb the
		// occlusion list or the planes
		if !ctx.drawTop && !ctx.drawBottom &&
			!ctx.markCeiling && !ctx.markFloor && side.MidTexture == "" {
			return
		}
	}

	// Perpendicular distance to the seg's supporting line
	offsetAngle := ctx.normalAngle - segAngle1
	if offsetAngle > vmath.Ang180 {
		offsetAngle = -offsetAngle
	}
	if offsetAngle > vmath.Ang90 {
		offsetAngle = vmath.Ang90
	}
	distAngle := vmath.Ang90 - offsetAngle
	hyp := vmath.PointToDist(r.viewX, r.viewY, v1.X, v1.Y)
	ctx.distance = vmath.Mul(hyp, vmath.FineSine[distAngle.Fine()])
	if ctx.distance < vmath.FracUnit {
		ctx.distance = vmath.FracUnit
	}

	ctx.scale = r.scaleFromGlobalAngle(r.viewAngle+r.proj.XToViewAngle[x1], ctx.normalAngle, ctx.distance)
	if x2 > x1 {
		scale2 := r.scaleFromGlobalAngle(r.viewAngle+r.proj.XToViewAngle[x2], ctx.normalAngle, ctx.distance)
		ctx.scaleStep = (scale2 - ctx.scale) / vmath.Fixed(x2-x1)
	}

	ctx.segTextured = ctx.drawMid || ctx.drawTop || ctx.drawBottom
	if ctx.segTextured {
		// World-space u origin of the texture, sign-corrected by which
		// side of the normal the near endpoint falls on
		ctx.offset = vmath.Mul(hyp, vmath.FineSine[offsetAngle.Fine()])
		if ctx.normalAngle-segAngle1 < vmath.Ang180 {
			ctx.offset = -ctx.offset
		}
		ctx.offset += side.TextureOffset + seg.Offset
		ctx.centerAngle = vmath.Ang90 + r.viewAngle - ctx.normalAngle

		// Classic fake contrast: darken horizontal walls, brighten
		// vertical ones
		contrast := 0
		if v1.Y == v2.Y {
			contrast = -1
		} else if v1.X == v2.X {
			contrast = 1
		}
		ctx.lights = r.proj.WallLightRow(front.LightLevel, r.ExtraLight, contrast)
	}

	// Planes behind the view plane are never visible regardless of what
	// the portal exposed
	if front.FloorHeight >= r.viewZ {
		ctx.markFloor = false
	}
	if front.CeilingHeight <= r.viewZ {
		ctx.markCeiling = false
	}

	if ctx.markCeiling {
		if r.ceilingPlane == nil {
			ctx.markCeiling = false
		} else {
			r.ceilingPlane = r.planes.check(r.ceilingPlane, x1, x2)
		}
	}
	if ctx.markFloor {
		if r.floorPlane == nil {
			ctx.markFloor = false
		} else {
			r.floorPlane = r.planes.check(r.floorPlane, x1, x2)
		}
	}

	// Seed the incremental stepping. The single >>heightShift here is the
	// only place world heights change representation
	centerY := r.proj.CenterYFrac >> heightShift
	wt := worldTop >> heightShift
	ctx.topStep = -vmath.Mul(ctx.scaleStep, wt)
	ctx.topFrac = centerY - vmath.Mul(wt, ctx.scale)
	wb := worldBottom >> heightShift
	ctx.bottomStep = -vmath.Mul(ctx.scaleStep, wb)
	ctx.bottomFrac = centerY - vmath.Mul(wb, ctx.scale)

	if !solid {
		if worldHigh < worldTop {
			wh := worldHigh >> heightShift
			ctx.hasHigh = true
			ctx.pixHighStep = -vmath.Mul(ctx.scaleStep, wh)
			ctx.pixHigh = centerY - vmath.Mul(wh, ctx.scale)
		}
		if worldLow > worldBottom {
			wl := worldLow >> heightShift
			ctx.hasLow = true
			ctx.pixLowStep = -vmath.Mul(ctx.scaleStep, wl)
			ctx.pixLow = centerY - vmath.Mul(wl, ctx.scale)
		}
	}

	r.renderSegLoop(&ctx)

	if solid {
		r.solid.Add(x1, x2)
	}
}

// texHeight returns a texture's height in fixed point, zero when missing
func texHeight(t *wad.Texture) vmath.Fixed {
	if t == nil {
		return 0
	}
	return vmath.FromInt(t.Height)
}
