package render

import (
	"github.com/lixenwraith/wadview/level"
	"github.com/lixenwraith/wadview/vmath"
)

// pointOnSide returns 0 when (x,y) is on the front side of the node's
// partition line, 1 on the back side. Axis-aligned partitions short
// circuit before the cross product
func pointOnSide(x, y vmath.Fixed, node *level.Node) int {
	if node.DX == 0 {
		if x <= node.X {
			if node.DY > 0 {
				return 1
			}
			return 0
		}
		if node.DY < 0 {
			return 1
		}
		return 0
	}
	if node.DY == 0 {
		if y <= node.Y {
			if node.DX < 0 {
				return 1
			}
			return 0
		}
		if node.DX > 0 {
			return 1
		}
		return 0
	}

	dx := x - node.X
	dy := y - node.Y
	left := vmath.Mul(node.DY>>vmath.FracBits, dx)
	right := vmath.Mul(dy, node.DX>>vmath.FracBits)
	if right < left {
		return 0
	}
	return 1
}

// renderBSPNode walks the tree, nearer child first. The front-to-back
// order is a correctness invariant: nearer opaque walls must populate the
// occlusion list before farther walls test against it
func (r *Renderer) renderBSPNode(num int) {
	for num&level.NodeIsSubsector == 0 {
		if num < 0 || num >= len(r.lvl.Nodes) {
			return
		}
		node := &r.lvl.Nodes[num]
		side := pointOnSide(r.viewX, r.viewY, node)
		r.renderBSPNode(int(node.Children[side]))
		num = int(node.Children[side^1])
	}
	r.renderSubsector(num &^ level.NodeIsSubsector)
}

// renderSubsector opens the subsector's floor and ceiling planes, then
// feeds its segs to the wall pipeline
func (r *Renderer) renderSubsector(num int) {
	if num >= len(r.lvl.Subsectors) {
		return
	}
	sub := &r.lvl.Subsectors[num]
	sector := r.subsectorSector(sub)
	if sector == nil {
		return
	}

	// A plane on the wrong side of the eye can never be seen
	light := sector.LightLevel
	if sector.FloorHeight < r.viewZ {
		r.floorPlane = r.planes.find(sector.FloorHeight, sector.FloorFlat, light)
	} else {
		r.floorPlane = nil
	}
	if sector.CeilingHeight > r.viewZ {
		r.ceilingPlane = r.planes.find(sector.CeilingHeight, sector.CeilingFlat, light)
	} else {
		r.ceilingPlane = nil
	}

	for i := 0; i < sub.NumSegs; i++ {
		r.addLine(sub.FirstSeg + i)
	}
}

// subsectorSector resolves the sector a subsector belongs to via its
// first seg; nil when any reference is malformed
func (r *Renderer) subsectorSector(sub *level.Subsector) *level.Sector {
	if sub.FirstSeg < 0 || sub.FirstSeg >= len(r.lvl.Segs) {
		return nil
	}
	seg := &r.lvl.Segs[sub.FirstSeg]
	side := r.segFrontSide(seg)
	if side == nil || side.Sector < 0 || side.Sector >= len(r.lvl.Sectors) {
		return nil
	}
	return &r.lvl.Sectors[side.Sector]
}

// PointInSubsector descends the BSP to the leaf containing (x,y)
func PointInSubsector(lvl *level.Level, x, y vmath.Fixed) *level.Subsector {
	if len(lvl.Subsectors) == 0 {
		return nil
	}
	if len(lvl.Nodes) == 0 {
		return &lvl.Subsectors[0]
	}

	num := len(lvl.Nodes) - 1
	for num&level.NodeIsSubsector == 0 {
		node := &lvl.Nodes[num]
		num = int(node.Children[pointOnSide(x, y, node)])
	}
	i := num &^ level.NodeIsSubsector
	if i >= len(lvl.Subsectors) {
		return nil
	}
	return &lvl.Subsectors[i]
}

// SectorAt resolves the sector containing (x,y), or nil on malformed maps
func SectorAt(lvl *level.Level, x, y vmath.Fixed) *level.Sector {
	sub := PointInSubsector(lvl, x, y)
	if sub == nil || sub.FirstSeg < 0 || sub.FirstSeg >= len(lvl.Segs) {
		return nil
	}
	seg := &lvl.Segs[sub.FirstSeg]
	if seg.Line < 0 || seg.Line >= len(lvl.Lines) {
		return nil
	}
	line := &lvl.Lines[seg.Line]
	sideIdx := line.FrontSide
	if seg.Side == 1 {
		sideIdx = line.BackSide
	}
	if sideIdx < 0 || sideIdx >= len(lvl.Sides) {
		return nil
	}
	sector := lvl.Sides[sideIdx].Sector
	if sector < 0 || sector >= len(lvl.Sectors) {
		return nil
	}
	return &lvl.Sectors[sector]
}
