package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/lixenwraith/wadview/level"
	"github.com/lixenwraith/wadview/vmath"
)

// Map lumps follow the map marker in this fixed order
const (
	lumpThings = 1 + iota
	lumpLinedefs
	lumpSidedefs
	lumpVertexes
	lumpSegs
	lumpSSectors
	lumpNodes
	lumpSectors
)

const noSidedef = 0xFFFF

type binThing struct {
	X, Y  int16
	Angle int16
	Type  int16
	Flags int16
}

type binLinedef struct {
	V1, V2  int16
	Flags   int16
	Special int16
	Tag     int16
	Sides   [2]uint16
}

type binSidedef struct {
	XOffset int16
	YOffset int16
	Top     string8
	Bottom  string8
	Mid     string8
	Sector  int16
}

type binVertex struct {
	X, Y int16
}

type binSeg struct {
	V1, V2  int16
	Angle   int16
	Linedef int16
	Side    int16
	Offset  int16
}

type binSubsector struct {
	NumSegs  int16
	FirstSeg int16
}

type binNode struct {
	X, Y     int16
	DX, DY   int16
	BBox     [2][4]int16
	Children [2]uint16
}

type binSector struct {
	FloorHeight   int16
	CeilingHeight int16
	FloorFlat     string8
	CeilingFlat   string8
	LightLevel    int16
	Special       int16
	Tag           int16
}

// readMapLump decodes the map lump at marker+offset into dst, a slice of
// one of the bin record types above
func (a *Archive) readMapLump(marker, offset int, dst any) error {
	data, err := a.readLumpAt(marker + offset)
	if err != nil {
		return err
	}
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, dst)
}

func (a *Archive) mapLumpCount(marker, offset, recordSize int) (int, error) {
	i := marker + offset
	if i >= len(a.lumps) {
		return 0, fmt.Errorf("map lump %d out of range", i)
	}
	return a.lumps[i].size / recordSize, nil
}

// ReadLevel decodes one map (by marker name, e.g. "E1M1" or "MAP01") into
// the render-ready level model. Sentinel values are resolved here: "-"
// textures become empty names and 0xFFFF side references become NoSide
func (a *Archive) ReadLevel(name string) (*level.Level, error) {
	marker, ok := a.lumpNum(name)
	if !ok {
		return nil, fmt.Errorf("map %v not found", name)
	}

	l := &level.Level{Name: a.lumps[marker].name}

	if err := a.readThings(marker, l); err != nil {
		return nil, fmt.Errorf("%v THINGS: %w", name, err)
	}
	if err := a.readVertexes(marker, l); err != nil {
		return nil, fmt.Errorf("%v VERTEXES: %w", name, err)
	}
	if err := a.readLinedefs(marker, l); err != nil {
		return nil, fmt.Errorf("%v LINEDEFS: %w", name, err)
	}
	if err := a.readSidedefs(marker, l); err != nil {
		return nil, fmt.Errorf("%v SIDEDEFS: %w", name, err)
	}
	if err := a.readSectors(marker, l); err != nil {
		return nil, fmt.Errorf("%v SECTORS: %w", name, err)
	}
	if err := a.readSegs(marker, l); err != nil {
		return nil, fmt.Errorf("%v SEGS: %w", name, err)
	}
	if err := a.readSubsectors(marker, l); err != nil {
		return nil, fmt.Errorf("%v SSECTORS: %w", name, err)
	}
	if err := a.readNodes(marker, l); err != nil {
		return nil, fmt.Errorf("%v NODES: %w", name, err)
	}
	return l, nil
}

func (a *Archive) readThings(marker int, l *level.Level) error {
	n, err := a.mapLumpCount(marker, lumpThings, 10)
	if err != nil {
		return err
	}
	bin := make([]binThing, n)
	if err := a.readMapLump(marker, lumpThings, bin); err != nil {
		return err
	}
	l.Things = make([]level.Thing, n)
	for i, t := range bin {
		l.Things[i] = level.Thing{
			X:     vmath.FromInt(int(t.X)),
			Y:     vmath.FromInt(int(t.Y)),
			Angle: vmath.Angle(t.Angle/45) * vmath.Ang45,
			Type:  int(t.Type),
		}
	}
	return nil
}

func (a *Archive) readVertexes(marker int, l *level.Level) error {
	n, err := a.mapLumpCount(marker, lumpVertexes, 4)
	if err != nil {
		return err
	}
	bin := make([]binVertex, n)
	if err := a.readMapLump(marker, lumpVertexes, bin); err != nil {
		return err
	}
	l.Vertexes = make([]level.Vertex, n)
	for i, v := range bin {
		l.Vertexes[i] = level.Vertex{
			X: vmath.FromInt(int(v.X)),
			Y: vmath.FromInt(int(v.Y)),
		}
	}
	return nil
}

func (a *Archive) readLinedefs(marker int, l *level.Level) error {
	n, err := a.mapLumpCount(marker, lumpLinedefs, 14)
	if err != nil {
		return err
	}
	bin := make([]binLinedef, n)
	if err := a.readMapLump(marker, lumpLinedefs, bin); err != nil {
		return err
	}
	l.Lines = make([]level.Line, n)
	for i, ld := range bin {
		l.Lines[i] = level.Line{
			V1:        int(uint16(ld.V1)),
			V2:        int(uint16(ld.V2)),
			Flags:     int(uint16(ld.Flags)),
			FrontSide: decodeSideRef(ld.Sides[0]),
			BackSide:  decodeSideRef(ld.Sides[1]),
		}
	}
	return nil
}

// decodeSideRef resolves the 0xFFFF no-sidedef sentinel
func decodeSideRef(ref uint16) int {
	if ref == noSidedef {
		return level.NoSide
	}
	return int(ref)
}

func (a *Archive) readSidedefs(marker int, l *level.Level) error {
	n, err := a.mapLumpCount(marker, lumpSidedefs, 30)
	if err != nil {
		return err
	}
	bin := make([]binSidedef, n)
	if err := a.readMapLump(marker, lumpSidedefs, bin); err != nil {
		return err
	}
	l.Sides = make([]level.Side, n)
	for i, sd := range bin {
		l.Sides[i] = level.Side{
			TextureOffset: vmath.FromInt(int(sd.XOffset)),
			RowOffset:     vmath.FromInt(int(sd.YOffset)),
			TopTexture:    decodeTextureName(sd.Top),
			BottomTexture: decodeTextureName(sd.Bottom),
			MidTexture:    decodeTextureName(sd.Mid),
			Sector:        int(uint16(sd.Sector)),
		}
	}
	return nil
}

// decodeTextureName resolves the "-" no-texture sentinel to an empty name
func decodeTextureName(s string8) string {
	name := s.String()
	if name == "-" {
		return ""
	}
	return name
}

func (a *Archive) readSectors(marker int, l *level.Level) error {
	n, err := a.mapLumpCount(marker, lumpSectors, 26)
	if err != nil {
		return err
	}
	bin := make([]binSector, n)
	if err := a.readMapLump(marker, lumpSectors, bin); err != nil {
		return err
	}
	l.Sectors = make([]level.Sector, n)
	for i, s := range bin {
		l.Sectors[i] = level.Sector{
			FloorHeight:   vmath.FromInt(int(s.FloorHeight)),
			CeilingHeight: vmath.FromInt(int(s.CeilingHeight)),
			FloorFlat:     s.FloorFlat.String(),
			CeilingFlat:   s.CeilingFlat.String(),
			LightLevel:    int(s.LightLevel),
		}
	}
	return nil
}

func (a *Archive) readSegs(marker int, l *level.Level) error {
	n, err := a.mapLumpCount(marker, lumpSegs, 12)
	if err != nil {
		return err
	}
	bin := make([]binSeg, n)
	if err := a.readMapLump(marker, lumpSegs, bin); err != nil {
		return err
	}
	l.Segs = make([]level.Seg, n)
	for i, s := range bin {
		l.Segs[i] = level.Seg{
			V1:   int(uint16(s.V1)),
			V2:   int(uint16(s.V2)),
			Line: int(uint16(s.Linedef)),
			Side: int(s.Side),
			// The WAD stores the angle in 16-bit BAM units; rescale to
			// the full 32-bit circle
			Angle:  vmath.Angle(uint32(uint16(s.Angle)) << 16),
			Offset: vmath.FromInt(int(s.Offset)),
		}
	}
	return nil
}

func (a *Archive) readSubsectors(marker int, l *level.Level) error {
	n, err := a.mapLumpCount(marker, lumpSSectors, 4)
	if err != nil {
		return err
	}
	bin := make([]binSubsector, n)
	if err := a.readMapLump(marker, lumpSSectors, bin); err != nil {
		return err
	}
	l.Subsectors = make([]level.Subsector, n)
	for i, ss := range bin {
		l.Subsectors[i] = level.Subsector{
			NumSegs:  int(uint16(ss.NumSegs)),
			FirstSeg: int(uint16(ss.FirstSeg)),
		}
	}
	return nil
}

func (a *Archive) readNodes(marker int, l *level.Level) error {
	n, err := a.mapLumpCount(marker, lumpNodes, 28)
	if err != nil {
		return err
	}
	bin := make([]binNode, n)
	if err := a.readMapLump(marker, lumpNodes, bin); err != nil {
		return err
	}
	l.Nodes = make([]level.Node, n)
	for i, nd := range bin {
		node := level.Node{
			X:        vmath.FromInt(int(nd.X)),
			Y:        vmath.FromInt(int(nd.Y)),
			DX:       vmath.FromInt(int(nd.DX)),
			DY:       vmath.FromInt(int(nd.DY)),
			Children: nd.Children,
		}
		for c := 0; c < 2; c++ {
			for b := 0; b < 4; b++ {
				node.BBox[c][b] = vmath.FromInt(int(nd.BBox[c][b]))
			}
		}
		l.Nodes[i] = node
	}
	return nil
}
