package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wadview/wad"
)

// PresentHalfBlocks pushes the last rendered frame onto a tcell screen.
// Each terminal cell carries two vertically stacked pixels via the upper
// half block, doubling the effective vertical resolution
func PresentHalfBlocks(s tcell.Screen, r *Renderer, pal *[256]wad.RGB) {
	w, h := r.Size()
	fb := r.Framebuffer()

	for cy := 0; cy < h/2; cy++ {
		for x := 0; x < w; x++ {
			top := pal[fb[2*cy*w+x]]
			bottom := pal[fb[(2*cy+1)*w+x]]
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			s.SetContent(x, cy, '▀', nil, style)
		}
	}
}
