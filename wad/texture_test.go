package wad

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestAtlasWallSentinel(t *testing.T) {
	a := NewAtlas([]*Texture{{Name: "WALL1", Width: 1, Height: 1, Columns: [][]byte{{7}}}}, nil)

	if a.Wall("-") != nil {
		t.Error("\"-\" must short-circuit to nil without lookup")
	}
	if a.Wall("") != nil {
		t.Error("empty name must resolve to nil")
	}
	if a.Wall("UNKNOWN") != nil {
		t.Error("unknown name must resolve to nil, not panic")
	}
	if a.Wall("WALL1") == nil {
		t.Error("known texture lost")
	}
}

// buildPatch assembles a 2x4 picture lump: column 0 fully covered by one
// post, column 1 covered rows 1-2
func buildPatch() []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, int16(2)) // width
	binary.Write(&b, binary.LittleEndian, int16(4)) // height
	binary.Write(&b, binary.LittleEndian, int16(0)) // left offset
	binary.Write(&b, binary.LittleEndian, int16(0)) // top offset
	binary.Write(&b, binary.LittleEndian, int32(16))
	binary.Write(&b, binary.LittleEndian, int32(25))
	b.Write([]byte{0, 4, 0, 10, 11, 12, 13, 0, 255}) // column 0 post
	b.Write([]byte{1, 2, 0, 20, 21, 0, 255})         // column 1 post
	return b.Bytes()
}

func buildTexture1() []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, int32(1)) // texture count
	binary.Write(&b, binary.LittleEndian, int32(8)) // offset of first record
	n := name8("WALL1")
	b.Write(n[:])
	binary.Write(&b, binary.LittleEndian, int32(0)) // masked
	binary.Write(&b, binary.LittleEndian, int16(2)) // width
	binary.Write(&b, binary.LittleEndian, int16(4)) // height
	binary.Write(&b, binary.LittleEndian, int32(0)) // column directory
	binary.Write(&b, binary.LittleEndian, int16(1)) // patch count
	binary.Write(&b, binary.LittleEndian, binTexturePatchRecord{})
	return b.Bytes()
}

type binTexturePatchRecord struct {
	XOffset, YOffset int16
	PatchNum         int16
	StepDir          int16
	ColorMap         int16
}

func TestLoadAtlas(t *testing.T) {
	flat := make([]byte, 4096)
	for i := range flat {
		flat[i] = 5
	}
	lumps := append(baseLumps(),
		lumpSpec{"PNAMES", bin(t, int32(1), name8("PATCH1"))},
		lumpSpec{"PATCH1", buildPatch()},
		lumpSpec{"TEXTURE1", buildTexture1()},
		lumpSpec{"F_START", nil},
		lumpSpec{"FLOOR4_8", flat},
		lumpSpec{"F_END", nil},
	)
	a, err := Open(writeWAD(t, lumps))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	atlas, err := a.LoadAtlas()
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	tex := atlas.Wall("WALL1")
	if tex == nil {
		t.Fatal("WALL1 not composited")
	}
	if tex.Width != 2 || tex.Height != 4 {
		t.Fatalf("texture size %dx%d, want 2x4", tex.Width, tex.Height)
	}
	if want := []byte{10, 11, 12, 13}; !bytes.Equal(tex.Columns[0], want) {
		t.Errorf("column 0 = %v, want %v", tex.Columns[0], want)
	}
	if want := []byte{0, 20, 21, 0}; !bytes.Equal(tex.Columns[1], want) {
		t.Errorf("column 1 = %v, want %v", tex.Columns[1], want)
	}

	f := atlas.FlatByName("FLOOR4_8")
	if f == nil || len(f.Pixels) != 4096 || f.Pixels[100] != 5 {
		t.Error("flat not loaded intact")
	}
	if atlas.FlatByName("NOPE") != nil {
		t.Error("unknown flat must be nil")
	}
}
