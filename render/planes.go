package render

import (
	"github.com/lixenwraith/wadview/vmath"
)

const planeUnset = 0x7FFFFFFF

// Plane accumulates the open (undrawn) floor or ceiling spans a group of
// walls exposed: per-column [top,bottom] extents for one combination of
// height, flat, and light level
type Plane struct {
	Height vmath.Fixed
	Flat   string
	Light  int

	minX, maxX  int
	top, bottom []int
}

// planeSet owns the planes of one frame
type planeSet struct {
	planes []*Plane
	width  int
}

func (ps *planeSet) reset(width int) {
	ps.width = width
	ps.planes = ps.planes[:0]
}

func (ps *planeSet) newPlane(height vmath.Fixed, flat string, light int) *Plane {
	p := &Plane{
		Height: height,
		Flat:   flat,
		Light:  light,
		minX:   ps.width,
		maxX:   -1,
		top:    make([]int, ps.width),
		bottom: make([]int, ps.width),
	}
	for i := range p.top {
		p.top[i] = planeUnset
	}
	ps.planes = append(ps.planes, p)
	return p
}

// find returns the plane for a height/flat/light combination, creating it
// on first use
func (ps *planeSet) find(height vmath.Fixed, flat string, light int) *Plane {
	for _, p := range ps.planes {
		if p.Height == height && p.Flat == flat && p.Light == light {
			return p
		}
	}
	return ps.newPlane(height, flat, light)
}

// check returns a plane able to accept columns [x1,x2]: p itself when the
// range is still unset there, otherwise a fresh plane with the same
// parameters. Keeps one column from carrying spans of two different walls
func (ps *planeSet) check(p *Plane, x1, x2 int) *Plane {
	x1 = vmath.Clamp(x1, 0, ps.width-1)
	x2 = vmath.Clamp(x2, 0, ps.width-1)
	for x := x1; x <= x2; x++ {
		if p.top[x] != planeUnset {
			return ps.newPlane(p.Height, p.Flat, p.Light)
		}
	}
	return p
}

// setColumn records the open span of column x. Callers never pass an
// empty or inverted range; out-of-range columns are dropped
func (ps *planeSet) setColumn(p *Plane, x, top, bottom int) {
	if x < 0 || x >= ps.width || top > bottom {
		return
	}
	p.top[x] = top
	p.bottom[x] = bottom
	if x < p.minX {
		p.minX = x
	}
	if x > p.maxX {
		p.maxX = x
	}
}

// drawPlanes fills every accumulated span with its flat, mapped through
// the slope tables and lit by distance. Runs after the whole BSP walk so
// the spans are final
func (r *Renderer) drawPlanes() {
	for _, p := range r.planes.planes {
		if p.maxX < p.minX {
			continue
		}

		flat := r.atlas.FlatByName(p.Flat)
		planeHeight := vmath.Abs(p.Height - r.viewZ)
		lightRow := vmath.Clamp(p.Light>>LightSegShift+r.ExtraLight, 0, LightLevels-1)
		zLight := r.proj.ZLight[lightRow][:]

		for x := p.minX; x <= p.maxX; x++ {
			if p.top[x] == planeUnset {
				continue
			}
			fine := (r.viewAngle + r.proj.XToViewAngle[x]).Fine()

			for y := p.top[x]; y <= p.bottom[x]; y++ {
				if y < 0 || y >= r.proj.Height {
					continue
				}
				distance := vmath.Mul(planeHeight, r.proj.YSlope[y])
				length := vmath.Mul(distance, r.proj.DistScale[x])
				colormap := zLight[vmath.Clamp(int(distance>>LightZShift), 0, MaxLightZ-1)]

				if flat == nil {
					r.drawColumn(x, y, fallbackPaletteIndex, colormap)
					continue
				}
				xFrac := r.viewX + vmath.Mul(vmath.FineCosine[fine], length)
				yFrac := -r.viewY - vmath.Mul(vmath.FineSine[fine], length)
				tx := int(xFrac>>vmath.FracBits) & 63
				ty := int(yFrac>>vmath.FracBits) & 63
				r.drawColumn(x, y, flat.Pixels[ty*64+tx], colormap)
			}
		}
	}
}
