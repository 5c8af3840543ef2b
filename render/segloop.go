package render

import (
	"github.com/lixenwraith/wadview/vmath"
)

// renderSegLoop walks the wall range column by column. Off-screen and
// occluded columns are skipped, but every accumulator still advances each
// iteration so later columns land on the right fractions
func (r *Renderer) renderSegLoop(ctx *wallContext) {
	for x := ctx.x1; x <= ctx.x2; x++ {
		if x >= 0 && x < r.proj.Width && !r.solid.Occluded(x) {
			r.renderSegColumn(ctx, x)
		}

		ctx.scale += ctx.scaleStep
		ctx.topFrac += ctx.topStep
		ctx.bottomFrac += ctx.bottomStep
		if ctx.hasHigh {
			ctx.pixHigh += ctx.pixHighStep
		}
		if ctx.hasLow {
			ctx.pixLow += ctx.pixLowStep
		}
	}
}

// renderSegColumn draws one column of the wall range: plane span marking,
// light resolution, texture u recovery, then the mid or upper/lower
// pieces with the clip arrays updated behind them
func (r *Renderer) renderSegColumn(ctx *wallContext, x int) {
	// Open vertical extent, clamped by what nearer walls already closed
	yl := int((ctx.topFrac + HeightUnit - 1) >> HeightBits)
	if yl <= r.ceilingClip[x] {
		yl = r.ceilingClip[x] + 1
	}
	yh := int(ctx.bottomFrac >> HeightBits)
	if yh >= r.floorClip[x] {
		yh = r.floorClip[x] - 1
	}

	if ctx.markCeiling && r.ceilingPlane != nil {
		top := r.ceilingClip[x] + 1
		bottom := yl - 1
		if bottom >= r.floorClip[x] {
			bottom = r.floorClip[x] - 1
		}
		if top <= bottom {
			r.planes.setColumn(r.ceilingPlane, x, top, bottom)
		}
	}
	if ctx.markFloor && r.floorPlane != nil {
		top := yh + 1
		bottom := r.floorClip[x] - 1
		if top <= r.ceilingClip[x] {
			top = r.ceilingClip[x] + 1
		}
		if top <= bottom {
			r.planes.setColumn(r.floorPlane, x, top, bottom)
		}
	}

	var texColumn int
	var invScale vmath.Fixed
	colormap := 0
	if ctx.segTextured {
		// Perspective-correct texture u from the tangent of the column
		// ray, no per-column distance computation
		fine := int((ctx.centerAngle+r.proj.XToViewAngle[x])>>vmath.AngleToFineShift) & (vmath.FineAngles/2 - 1)
		texColumn = int((ctx.offset - vmath.Mul(vmath.FineTangent[fine], ctx.distance)) >> vmath.FracBits)

		idx := vmath.Clamp(int(ctx.scale>>LightScaleShift), 0, MaxLightScale-1)
		colormap = ctx.lights[idx]
		invScale = vmath.Fixed(uint32(0xffffffff) / uint32(ctx.scale))
	}

	if ctx.drawMid {
		// Single piece, then the column is fully closed to everything
		// farther away
		if yl <= yh {
			r.drawWallSlice(x, yl, yh, ctx.midTex, texColumn, ctx.midTexMid, invScale, colormap)
		}
		r.ceilingClip[x] = r.proj.Height
		r.floorClip[x] = -1
		return
	}

	if ctx.drawTop {
		mid := int(ctx.pixHigh >> HeightBits)
		if mid >= r.floorClip[x] {
			mid = r.floorClip[x] - 1
		}
		if mid >= yl {
			r.drawWallSlice(x, yl, mid, ctx.topTex, texColumn, ctx.topTexMid, invScale, colormap)
			r.ceilingClip[x] = mid
		} else {
			r.ceilingClip[x] = yl - 1
		}
	} else if ctx.markCeiling {
		// No upper piece but the loop still passed through: close a
		// zero-height seam
		r.ceilingClip[x] = yl - 1
	}

	if ctx.drawBottom {
		mid := int((ctx.pixLow + HeightUnit - 1) >> HeightBits)
		if mid <= r.ceilingClip[x] {
			mid = r.ceilingClip[x] + 1
		}
		if mid <= yh {
			r.drawWallSlice(x, mid, yh, ctx.bottomTex, texColumn, ctx.bottomTexMid, invScale, colormap)
			r.floorClip[x] = mid
		} else {
			r.floorClip[x] = yh + 1
		}
	} else if ctx.markFloor {
		r.floorClip[x] = yh + 1
	}
}
