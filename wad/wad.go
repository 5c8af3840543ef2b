// Package wad reads DOOM data archives: the lump directory, the palette and
// light-remap tables, composite wall textures, flats, and map geometry lumps.
// Format reference: The Unofficial DOOM Specs,
// http://www.gamers.org/dhs/helpdocs/dmsp1666.html
package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

// NumColorMaps is the count of light-remap tables in the COLORMAP lump
// (32 diminishing levels, one invulnerability map, one unused)
const NumColorMaps = 34

// RGB is one PLAYPAL entry
type RGB struct {
	R, G, B uint8
}

type lumpInfo struct {
	name    string
	filepos int
	size    int
}

// Archive is an open WAD file with its lump directory indexed by name
type Archive struct {
	file      *os.File
	lumps     []lumpInfo
	lumpIndex map[string]int

	Palette   [256]RGB
	ColorMaps [NumColorMaps][]byte
}

type binHeader struct {
	Magic        [4]byte
	NumLumps     int32
	InfoTableOfs int32
}

type binLumpInfo struct {
	Filepos int32
	Size    int32
	Name    string8
}

// string8 is the fixed-width, NUL-padded lump name encoding
type string8 [8]byte

func (s string8) String() string {
	i := bytes.IndexByte(s[:], 0)
	if i < 0 {
		i = len(s)
	}
	return strings.ToUpper(string(s[:i]))
}

// Open reads the directory, palette, and colormaps of a WAD file.
// The file stays open for lump reads until Close
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	a := &Archive{file: f, lumpIndex: make(map[string]int)}
	if err := a.readDirectory(); err != nil {
		f.Close()
		return nil, fmt.Errorf("read directory: %w", err)
	}
	if err := a.readPalette(); err != nil {
		f.Close()
		return nil, fmt.Errorf("read palette: %w", err)
	}
	if err := a.readColorMaps(); err != nil {
		f.Close()
		return nil, fmt.Errorf("read colormaps: %w", err)
	}
	return a, nil
}

// Close releases the underlying file
func (a *Archive) Close() error {
	return a.file.Close()
}

func (a *Archive) readDirectory() error {
	var header binHeader
	if _, err := a.file.Seek(0, 0); err != nil {
		return err
	}
	if err := binary.Read(a.file, binary.LittleEndian, &header); err != nil {
		return err
	}
	magic := string(header.Magic[:])
	if magic != "IWAD" && magic != "PWAD" {
		return fmt.Errorf("bad magic %q", magic)
	}

	if _, err := a.file.Seek(int64(header.InfoTableOfs), 0); err != nil {
		return err
	}
	infos := make([]binLumpInfo, header.NumLumps)
	if err := binary.Read(a.file, binary.LittleEndian, infos); err != nil {
		return err
	}

	a.lumps = make([]lumpInfo, len(infos))
	for i, info := range infos {
		name := info.Name.String()
		a.lumps[i] = lumpInfo{name: name, filepos: int(info.Filepos), size: int(info.Size)}
		// First occurrence wins, matching engine lump search order for maps
		if _, ok := a.lumpIndex[name]; !ok {
			a.lumpIndex[name] = i
		}
	}
	return nil
}

// lumpNum returns the directory index of a named lump
func (a *Archive) lumpNum(name string) (int, bool) {
	i, ok := a.lumpIndex[strings.ToUpper(name)]
	return i, ok
}

// readLumpAt reads the full contents of lump i
func (a *Archive) readLumpAt(i int) ([]byte, error) {
	if i < 0 || i >= len(a.lumps) {
		return nil, fmt.Errorf("lump %d out of range", i)
	}
	info := a.lumps[i]
	data := make([]byte, info.size)
	if _, err := a.file.ReadAt(data, int64(info.filepos)); err != nil {
		return nil, fmt.Errorf("lump %v: %w", info.name, err)
	}
	return data, nil
}

// ReadLump reads a lump by name
func (a *Archive) ReadLump(name string) ([]byte, error) {
	i, ok := a.lumpNum(name)
	if !ok {
		return nil, fmt.Errorf("%v lump not found", name)
	}
	return a.readLumpAt(i)
}

func (a *Archive) readPalette() error {
	data, err := a.ReadLump("PLAYPAL")
	if err != nil {
		return err
	}
	if len(data) < 768 {
		return fmt.Errorf("PLAYPAL too short: %d bytes", len(data))
	}
	for i := range a.Palette {
		a.Palette[i] = RGB{R: data[i*3], G: data[i*3+1], B: data[i*3+2]}
	}
	return nil
}

func (a *Archive) readColorMaps() error {
	data, err := a.ReadLump("COLORMAP")
	if err != nil {
		return err
	}
	if len(data) < NumColorMaps*256 {
		return fmt.Errorf("COLORMAP too short: %d bytes", len(data))
	}
	for i := range a.ColorMaps {
		a.ColorMaps[i] = data[i*256 : (i+1)*256]
	}
	return nil
}
