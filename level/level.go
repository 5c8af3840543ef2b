// Package level holds the decoded, render-ready form of one map: fixed-point
// vertices, segs with full-width BAM angles, and line/side/sector records with
// the WAD sentinels ("-" textures, 0xFFFF side indices) already resolved so
// downstream code never pattern-matches on magic values.
package level

import (
	"github.com/lixenwraith/wadview/vmath"
)

// Linedef flag bits
const (
	LineTwoSided      = 0x0004
	LineDontPegTop    = 0x0008
	LineDontPegBottom = 0x0010
)

// NoSide marks an absent sidedef reference after decoding
const NoSide = -1

// Child flag bit on BSP node children marking a subsector leaf
const NodeIsSubsector = 0x8000

// Vertex is a world-space map point
type Vertex struct {
	X, Y vmath.Fixed
}

// Seg is one piece of a linedef bounding a subsector, the atomic unit of
// wall rendering. Angle is the full 32-bit BAM rescaled from the 16-bit
// unit stored in the WAD
type Seg struct {
	V1, V2 int
	Line   int
	Side   int // 0 front, 1 back
	Angle  vmath.Angle
	Offset vmath.Fixed
}

// Line carries the flags and side references of one linedef.
// FrontSide/BackSide are NoSide when absent; a 0xFFFF back reference is
// decoded to NoSide even when the two-sided flag is set
type Line struct {
	V1, V2    int
	Flags     int
	FrontSide int
	BackSide  int
}

func (l *Line) TwoSided() bool      { return l.Flags&LineTwoSided != 0 }
func (l *Line) DontPegTop() bool    { return l.Flags&LineDontPegTop != 0 }
func (l *Line) DontPegBottom() bool { return l.Flags&LineDontPegBottom != 0 }

// Side holds one sidedef's texture bindings. Empty texture names mean the
// "-" no-texture sentinel from the WAD
type Side struct {
	TextureOffset vmath.Fixed
	RowOffset     vmath.Fixed
	TopTexture    string
	BottomTexture string
	MidTexture    string
	Sector        int
}

// Sector holds floor/ceiling heights in fixed point, flat names, and the
// 0-255 light level
type Sector struct {
	FloorHeight   vmath.Fixed
	CeilingHeight vmath.Fixed
	FloorFlat     string
	CeilingFlat   string
	LightLevel    int
}

// Subsector references a contiguous run of segs
type Subsector struct {
	NumSegs  int
	FirstSeg int
}

// Node is one BSP partition: a splitter line, the bounding boxes of both
// children, and child indices carrying the NodeIsSubsector flag bit
type Node struct {
	X, Y     vmath.Fixed
	DX, DY   vmath.Fixed
	BBox     [2][4]vmath.Fixed // top, bottom, left, right per child
	Children [2]uint16
}

// Thing is a map placement (only player starts matter to the viewer)
type Thing struct {
	X, Y  vmath.Fixed
	Angle vmath.Angle
	Type  int
}

// Level is one fully decoded map, read-only after loading
type Level struct {
	Name       string
	Vertexes   []Vertex
	Lines      []Line
	Sides      []Side
	Sectors    []Sector
	Segs       []Seg
	Subsectors []Subsector
	Nodes      []Node
	Things     []Thing
}

// PlayerStart returns the player-1 start thing, or false if the map has none
func (l *Level) PlayerStart() (Thing, bool) {
	for _, t := range l.Things {
		if t.Type == 1 {
			return t, true
		}
	}
	return Thing{}, false
}
