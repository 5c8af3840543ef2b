package render

import (
	"github.com/lixenwraith/wadview/level"
	"github.com/lixenwraith/wadview/vmath"
	"github.com/lixenwraith/wadview/wad"
)

// NoFixedColorMap disables the colormap override
const NoFixedColorMap = -1

// Palette index used whenever a texture or flat fails to resolve;
// mid grey in the stock palette so broken content stays visible
const fallbackPaletteIndex = 101

// Renderer draws software frames of one level into a palette-index
// framebuffer. Projection tables and map data are shared read-only across
// frames; everything else is per-frame state reset by RenderFrame.
//
// Single-threaded by design: the occlusion list and clip arrays are
// read-then-write per column, and correctness depends on strict
// front-to-back seg order within a frame
type Renderer struct {
	lvl   *level.Level
	atlas *wad.Atlas
	maps  [wad.NumColorMaps][]byte
	proj  *Projection

	fb []byte // palette indices, Width*Height row-major

	// Per-frame view parameters
	viewX, viewY, viewZ vmath.Fixed
	viewAngle           vmath.Angle
	viewSin, viewCos    vmath.Fixed

	// ExtraLight biases the light row; FixedColorMap, when not
	// NoFixedColorMap, overrides every colormap lookup (full bright,
	// invulnerability)
	ExtraLight    int
	FixedColorMap int

	// Per-column occluded extents: a column is open in
	// (ceilingClip[x], floorClip[x]) exclusive
	ceilingClip []int
	floorClip   []int

	solid  SolidSegs
	planes planeSet

	// Planes of the subsector currently being rendered
	floorPlane, ceilingPlane *Plane
}

// NewRenderer creates a renderer for one level. The archive supplies the
// colormaps; the atlas supplies textures and flats
func NewRenderer(lvl *level.Level, atlas *wad.Atlas, archive *wad.Archive, proj *Projection) *Renderer {
	r := &Renderer{
		lvl:           lvl,
		atlas:         atlas,
		maps:          archive.ColorMaps,
		proj:          proj,
		FixedColorMap: NoFixedColorMap,
	}
	r.SetProjection(proj)
	return r
}

// SetProjection swaps in new tables after a resolution change
func (r *Renderer) SetProjection(proj *Projection) {
	r.proj = proj
	r.fb = make([]byte, proj.Width*proj.Height)
	r.ceilingClip = make([]int, proj.Width)
	r.floorClip = make([]int, proj.Width)
}

// Framebuffer exposes the palette-index pixels of the last rendered frame
func (r *Renderer) Framebuffer() []byte {
	return r.fb
}

// Size returns the framebuffer dimensions
func (r *Renderer) Size() (w, h int) {
	return r.proj.Width, r.proj.Height
}

// RenderFrame draws one complete frame from the given eye position and
// facing. Resets all per-frame state, walks the BSP front to back, then
// fills the accumulated floor and ceiling planes
func (r *Renderer) RenderFrame(x, y, z vmath.Fixed, angle vmath.Angle) {
	r.viewX, r.viewY, r.viewZ = x, y, z
	r.viewAngle = angle
	r.viewSin = vmath.FineSine[angle.Fine()]
	r.viewCos = vmath.FineCosine[angle.Fine()]

	for i := range r.ceilingClip {
		r.ceilingClip[i] = -1
		r.floorClip[i] = r.proj.Height
	}
	r.solid.Reset()
	r.planes.reset(r.proj.Width)
	clear(r.fb)

	if len(r.lvl.Nodes) == 0 {
		r.renderSubsector(0)
	} else {
		r.renderBSPNode(len(r.lvl.Nodes) - 1)
	}

	r.drawPlanes()
}

// drawColumn is the single-pixel framebuffer primitive: palette index
// remapped through one colormap, no blending
func (r *Renderer) drawColumn(x, y int, palette byte, colormap int) {
	if y < 0 || y >= r.proj.Height {
		return
	}
	if r.FixedColorMap != NoFixedColorMap {
		colormap = r.FixedColorMap
	}
	if colormap < 0 || colormap >= colormapCount {
		colormap = 0
	}
	r.fb[y*r.proj.Width+x] = r.maps[colormap][palette]
}
