package wad

import (
	"encoding/binary"
	"fmt"
)

// Texture is a composite wall texture expanded to per-column palette
// indices: Columns[x][y] for x in [0,Width), y in [0,Height)
type Texture struct {
	Name          string
	Width, Height int
	Columns       [][]byte
}

// Flat is a 64x64 floor/ceiling tile of raw palette indices
type Flat struct {
	Name   string
	Pixels []byte // 4096 bytes, row-major
}

// Atlas holds every wall texture and flat of an archive, expanded once at
// load time and shared read-only across frames
type Atlas struct {
	textures map[string]*Texture
	flats    map[string]*Flat
}

// NewAtlas builds an atlas from already-expanded textures and flats,
// for generated content and tests
func NewAtlas(textures []*Texture, flats []*Flat) *Atlas {
	a := &Atlas{
		textures: make(map[string]*Texture, len(textures)),
		flats:    make(map[string]*Flat, len(flats)),
	}
	for _, t := range textures {
		a.textures[t.Name] = t
	}
	for _, f := range flats {
		a.flats[f.Name] = f
	}
	return a
}

// Wall returns the named composite texture, or nil for the no-texture
// sentinel (empty or "-") and for unknown names. Callers fall back to a
// solid fill on nil
func (a *Atlas) Wall(name string) *Texture {
	if name == "" || name == "-" {
		return nil
	}
	return a.textures[name]
}

// FlatByName returns the named flat, or nil when missing
func (a *Atlas) FlatByName(name string) *Flat {
	return a.flats[name]
}

type picture struct {
	width, height int
	columns       [][]byte
}

type binTextureHeader struct {
	Name       string8
	Width      int16
	Height     int16
	NumPatches int16
}

// LoadAtlas expands PNAMES/TEXTURE1/TEXTURE2 into composite wall textures
// and gathers the flats between F_START and F_END
func (a *Archive) LoadAtlas() (*Atlas, error) {
	patchNames, err := a.readPatchNames()
	if err != nil {
		return nil, fmt.Errorf("read PNAMES: %w", err)
	}

	patches := make([]*picture, len(patchNames))
	for i, name := range patchNames {
		data, err := a.ReadLump(name)
		if err != nil {
			// Some PNAMES entries reference lumps absent from the
			// archive; composition skips them
			continue
		}
		patches[i] = decodePicture(data)
	}

	atlas := &Atlas{
		textures: make(map[string]*Texture),
		flats:    make(map[string]*Flat),
	}
	for _, lump := range []string{"TEXTURE1", "TEXTURE2"} {
		data, err := a.ReadLump(lump)
		if err != nil {
			continue // TEXTURE2 only exists in registered IWADs
		}
		if err := decodeTextures(data, patches, atlas.textures); err != nil {
			return nil, fmt.Errorf("decode %v: %w", lump, err)
		}
	}

	if err := a.readFlats(atlas.flats); err != nil {
		return nil, fmt.Errorf("read flats: %w", err)
	}
	return atlas, nil
}

func (a *Archive) readPatchNames() ([]string, error) {
	data, err := a.ReadLump("PNAMES")
	if err != nil {
		return nil, err
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("PNAMES too short")
	}
	count := int(binary.LittleEndian.Uint32(data))
	if len(data) < 4+count*8 {
		return nil, fmt.Errorf("PNAMES truncated: %d entries in %d bytes", count, len(data))
	}
	names := make([]string, count)
	for i := range names {
		var s string8
		copy(s[:], data[4+i*8:])
		names[i] = s.String()
	}
	return names, nil
}

// decodePicture expands a patch lump's post runs into full columns.
// Unset rows keep palette index 0; walls never rely on transparency
func decodePicture(data []byte) *picture {
	if len(data) < 8 {
		return nil
	}
	width := int(int16(binary.LittleEndian.Uint16(data[0:])))
	height := int(int16(binary.LittleEndian.Uint16(data[2:])))
	if width <= 0 || height <= 0 || len(data) < 8+width*4 {
		return nil
	}

	pic := &picture{width: width, height: height, columns: make([][]byte, width)}
	for x := range pic.columns {
		pic.columns[x] = make([]byte, height)
		off := int(binary.LittleEndian.Uint32(data[8+x*4:]))
		for off+1 < len(data) {
			topDelta := int(data[off])
			if topDelta == 255 {
				break
			}
			count := int(data[off+1])
			off += 3 // post header plus pad byte
			for i := 0; i < count; i++ {
				if off >= len(data) {
					return pic
				}
				if y := topDelta + i; y < height {
					pic.columns[x][y] = data[off]
				}
				off++
			}
			off++ // trailing pad byte
		}
	}
	return pic
}

func decodeTextures(data []byte, patches []*picture, out map[string]*Texture) error {
	if len(data) < 4 {
		return fmt.Errorf("texture lump too short")
	}
	count := int(binary.LittleEndian.Uint32(data))
	if len(data) < 4+count*4 {
		return fmt.Errorf("texture lump truncated")
	}

	for i := 0; i < count; i++ {
		off := int(binary.LittleEndian.Uint32(data[4+i*4:]))
		if off < 0 || off+22 > len(data) {
			return fmt.Errorf("texture %d offset out of range", i)
		}

		var hdr binTextureHeader
		copy(hdr.Name[:], data[off:])
		hdr.Width = int16(binary.LittleEndian.Uint16(data[off+12:]))
		hdr.Height = int16(binary.LittleEndian.Uint16(data[off+14:]))
		hdr.NumPatches = int16(binary.LittleEndian.Uint16(data[off+20:]))

		tex := &Texture{
			Name:    hdr.Name.String(),
			Width:   int(hdr.Width),
			Height:  int(hdr.Height),
			Columns: make([][]byte, hdr.Width),
		}
		for x := range tex.Columns {
			tex.Columns[x] = make([]byte, hdr.Height)
		}

		// Stamp each referenced patch into the composite
		for p := 0; p < int(hdr.NumPatches); p++ {
			po := off + 22 + p*10
			if po+10 > len(data) {
				break
			}
			xOffset := int(int16(binary.LittleEndian.Uint16(data[po:])))
			yOffset := int(int16(binary.LittleEndian.Uint16(data[po+2:])))
			patchNum := int(int16(binary.LittleEndian.Uint16(data[po+4:])))
			if patchNum < 0 || patchNum >= len(patches) || patches[patchNum] == nil {
				continue
			}
			stampPatch(tex, patches[patchNum], xOffset, yOffset)
		}
		out[tex.Name] = tex
	}
	return nil
}

func stampPatch(tex *Texture, pic *picture, xOffset, yOffset int) {
	srcY := 0
	if yOffset < 0 {
		srcY = -yOffset
		yOffset = 0
	}
	for x := 0; x < pic.width; x++ {
		tx := xOffset + x
		if tx < 0 || tx >= tex.Width {
			continue
		}
		copy(tex.Columns[tx][yOffset:], pic.columns[x][min(srcY, pic.height):])
	}
}

func (a *Archive) readFlats(out map[string]*Flat) error {
	start, ok := a.lumpNum("F_START")
	if !ok {
		return fmt.Errorf("F_START not found")
	}
	end, ok := a.lumpNum("F_END")
	if !ok {
		return fmt.Errorf("F_END not found")
	}
	for i := start + 1; i < end; i++ {
		if a.lumps[i].size != 4096 {
			continue // section marker (F1_START etc)
		}
		data, err := a.readLumpAt(i)
		if err != nil {
			return err
		}
		out[a.lumps[i].name] = &Flat{Name: a.lumps[i].name, Pixels: data}
	}
	return nil
}
