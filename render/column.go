package render

import (
	"github.com/lixenwraith/wadview/vmath"
	"github.com/lixenwraith/wadview/wad"
)

// drawWallSlice rasterizes rows [yl,yh] of one screen column from a
// texture column, stepping texture v by the inverse projected scale. A
// nil texture degrades to a solid fill so geometry never disappears over
// a content error
func (r *Renderer) drawWallSlice(x, yl, yh int, tex *wad.Texture, texColumn int, texMid, invScale vmath.Fixed, colormap int) {
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 {
		r.drawSolidColumn(x, yl, yh, colormap)
		return
	}

	col := tex.Columns[wrap(texColumn, tex.Width)]
	frac := texMid + vmath.Fixed(yl-r.proj.CenterY)*invScale
	for y := yl; y <= yh; y++ {
		texY := wrap(int(frac>>vmath.FracBits), tex.Height)
		r.drawColumn(x, y, col[texY], colormap)
		frac += invScale
	}
}

// drawSolidColumn is the missing-texture fallback fill
func (r *Renderer) drawSolidColumn(x, yl, yh, colormap int) {
	for y := yl; y <= yh; y++ {
		r.drawColumn(x, y, fallbackPaletteIndex, colormap)
	}
}

// wrap reduces v modulo n into [0,n), never negative
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
