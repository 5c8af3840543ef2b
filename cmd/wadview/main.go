// wadview renders a DOOM map as a first-person view in the terminal.
// WASD moves, arrow keys turn, +/- adjusts the light boost, q or escape
// quits.
package main

import (
	"flag"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wadview/level"
	"github.com/lixenwraith/wadview/render"
	"github.com/lixenwraith/wadview/vmath"
	"github.com/lixenwraith/wadview/wad"
)

const (
	eyeHeight = 41 * vmath.FracUnit
	moveStep  = 16 * vmath.FracUnit
	turnStep  = vmath.Ang90 / 16
)

func main() {
	wadPath := flag.String("wad", "doom1.wad", "path to an IWAD or PWAD file")
	mapName := flag.String("map", "E1M1", "map marker lump (E1M1, MAP01, ...)")
	fovDeg := flag.Int("fov", 90, "horizontal field of view in degrees")
	flag.Parse()

	fov := vmath.Clamp(*fovDeg, 30, 160) * vmath.FineAngles / 360

	archive, err := wad.Open(*wadPath)
	if err != nil {
		log.Fatalf("open %v: %v", *wadPath, err)
	}
	defer archive.Close()

	atlas, err := archive.LoadAtlas()
	if err != nil {
		log.Fatalf("load textures: %v", err)
	}

	lvl, err := archive.ReadLevel(*mapName)
	if err != nil {
		log.Fatalf("load map: %v", err)
	}
	start, ok := lvl.PlayerStart()
	if !ok {
		log.Fatalf("map %v has no player start", *mapName)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init terminal: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	w, h := screen.Size()
	r := render.NewRenderer(lvl, atlas, archive, render.NewProjection(w, 2*h, fov))

	v := viewer{lvl: lvl, fov: fov, x: start.X, y: start.Y, angle: start.Angle}
	v.run(screen, r, archive)
}

type viewer struct {
	lvl   *level.Level
	fov   int
	x, y  vmath.Fixed
	angle vmath.Angle
	light int
}

// viewZ keeps the eye a fixed height above the floor of whatever sector
// the viewer stands in
func (v *viewer) viewZ() vmath.Fixed {
	if sector := render.SectorAt(v.lvl, v.x, v.y); sector != nil {
		return sector.FloorHeight + eyeHeight
	}
	return eyeHeight
}

func (v *viewer) move(dist vmath.Fixed, angle vmath.Angle) {
	v.x += vmath.Mul(dist, vmath.FineCosine[angle.Fine()])
	v.y += vmath.Mul(dist, vmath.FineSine[angle.Fine()])
}

func (v *viewer) run(screen tcell.Screen, r *render.Renderer, archive *wad.Archive) {
	for {
		r.ExtraLight = v.light
		r.RenderFrame(v.x, v.y, v.viewZ(), v.angle)
		render.PresentHalfBlocks(screen, r, &archive.Palette)
		screen.Show()

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			r.SetProjection(render.NewProjection(w, 2*h, v.fov))
			screen.Sync()

		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyLeft:
				v.angle += turnStep
			case tcell.KeyRight:
				v.angle -= turnStep
			case tcell.KeyUp:
				v.move(moveStep, v.angle)
			case tcell.KeyDown:
				v.move(-moveStep, v.angle)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q':
					return
				case 'w':
					v.move(moveStep, v.angle)
				case 's':
					v.move(-moveStep, v.angle)
				case 'a':
					v.move(moveStep, v.angle+vmath.Ang90)
				case 'd':
					v.move(moveStep, v.angle-vmath.Ang90)
				case '+':
					v.light = min(v.light+1, render.LightLevels-1)
				case '-':
					v.light = max(v.light-1, 0)
				}
			}
		}
	}
}
