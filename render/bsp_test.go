package render

import (
	"testing"

	"github.com/lixenwraith/wadview/level"
	"github.com/lixenwraith/wadview/vmath"
)

func TestPointOnSide(t *testing.T) {
	// Front (side 0) is to the right of the partition direction
	north := level.Node{DX: 0, DY: vmath.FromInt(64)}
	if got := pointOnSide(vmath.FromInt(10), 0, &north); got != 0 {
		t.Errorf("east of northward partition = side %d, want 0", got)
	}
	if got := pointOnSide(vmath.FromInt(-10), 0, &north); got != 1 {
		t.Errorf("west of northward partition = side %d, want 1", got)
	}

	east := level.Node{DX: vmath.FromInt(64), DY: 0}
	if got := pointOnSide(0, vmath.FromInt(-10), &east); got != 0 {
		t.Errorf("south of eastward partition = side %d, want 0", got)
	}
	if got := pointOnSide(0, vmath.FromInt(10), &east); got != 1 {
		t.Errorf("north of eastward partition = side %d, want 1", got)
	}

	diag := level.Node{DX: vmath.FromInt(64), DY: vmath.FromInt(64)}
	if got := pointOnSide(vmath.FromInt(10), vmath.FromInt(-10), &diag); got != 0 {
		t.Errorf("right of diagonal partition = side %d, want 0", got)
	}
	if got := pointOnSide(vmath.FromInt(-10), vmath.FromInt(10), &diag); got != 1 {
		t.Errorf("left of diagonal partition = side %d, want 1", got)
	}
}

func TestPointInSubsector(t *testing.T) {
	// One node splitting along the y axis: subsector 0 east, 1 west
	lvl := &level.Level{
		Nodes: []level.Node{{
			DX: 0, DY: vmath.FromInt(64),
			Children: [2]uint16{level.NodeIsSubsector | 0, level.NodeIsSubsector | 1},
		}},
		Subsectors: []level.Subsector{{}, {}},
	}

	if sub := PointInSubsector(lvl, vmath.FromInt(100), 0); sub != &lvl.Subsectors[0] {
		t.Error("eastern point did not land in subsector 0")
	}
	if sub := PointInSubsector(lvl, vmath.FromInt(-100), 0); sub != &lvl.Subsectors[1] {
		t.Error("western point did not land in subsector 1")
	}
}

func TestSectorAtDanglingSideReference(t *testing.T) {
	lvl := &level.Level{
		Subsectors: []level.Subsector{{NumSegs: 1, FirstSeg: 0}},
		Segs:       []level.Seg{{V1: 0, V2: 0, Line: 0, Side: 0}},
		Lines:      []level.Line{{FrontSide: -3, BackSide: level.NoSide}},
		Sides:      []level.Side{{Sector: 0}},
		Sectors:    []level.Sector{{}},
	}
	if sector := SectorAt(lvl, 0, 0); sector != nil {
		t.Error("negative side reference must resolve to nil, not panic")
	}
}

func TestPointInSubsectorDegenerateMap(t *testing.T) {
	lvl := &level.Level{Subsectors: []level.Subsector{{}}}
	if sub := PointInSubsector(lvl, 0, 0); sub != &lvl.Subsectors[0] {
		t.Error("no-node map must fall back to subsector 0")
	}
	if sub := PointInSubsector(&level.Level{}, 0, 0); sub != nil {
		t.Error("empty map must yield nil")
	}
}
