//go:build raylib

package gui

import (
	"log"
	"strconv"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/controller"
	"github.com/san-kum/lifesim/internal/coords"
	"github.com/san-kum/lifesim/internal/engine"
	"github.com/san-kum/lifesim/internal/geometry"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColGrid    = rl.NewColor(18, 18, 18, 255)
	ColAlive   = rl.NewColor(120, 220, 120, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColError   = rl.NewColor(230, 80, 80, 255)
)

var keyActions = map[int32]action{
	rl.KeySpace:        actPlayPause,
	rl.KeyN:            actStep,
	rl.KeyEqual:        actFaster,
	rl.KeyKpAdd:        actFaster,
	rl.KeyMinus:        actSlower,
	rl.KeyKpSubtract:   actSlower,
	rl.KeyZero:         actNormal,
	rl.KeyR:            actRandomize,
	rl.KeyRightBracket: actDenser,
	rl.KeyLeftBracket:  actSparser,
	rl.KeyC:            actClear,
	rl.KeyI:            actInsertion,
	rl.KeyH:            actHFlip,
	rl.KeyV:            actVFlip,
	rl.KeyX:            actInvert,
	rl.KeyG:            actGeometry,
	rl.KeyQ:            actQuit,
}

func Available() bool { return true }

type App struct {
	ctl      *controller.Controller
	surface  *raster
	patterns []string

	editing bool
	field   int
	values  [3][]rune
	notice  string
}

func initWindow(g geometry.Geometry, fps int) error {
	w, h := windowSize(g)
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h), "lifesim")
	if !rl.IsWindowReady() {
		return unavailable("window did not open")
	}
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
	return nil
}

// Run opens a window sized to the grid surface and blocks until it closes.
func Run(cfg *config.Config, factory engine.Factory, logger *log.Logger) error {
	if err := initWindow(cfg.Geometry, cfg.TPS); err != nil {
		return err
	}
	defer rl.CloseWindow()

	opts := cfg.ControllerOptions()
	opts.Logger = logger
	a := &App{surface: &raster{}}
	a.ctl = controller.New(opts, factory, a.surface)
	if pl, ok := a.ctl.Engine().(engine.PatternLister); ok {
		a.patterns = pl.Patterns()
	}

	for !rl.WindowShouldClose() {
		if !a.Update() {
			break
		}
		a.Draw()
	}
	return nil
}

// Update handles one frame of input and scheduling. It returns false on quit.
func (a *App) Update() bool {
	if a.editing {
		a.updateForm()
	} else {
		for key, act := range keyActions {
			if !rl.IsKeyPressed(key) {
				continue
			}
			switch act {
			case actQuit:
				return false
			case actGeometry:
				a.openForm()
			default:
				apply(a.ctl, act, a.patterns)
			}
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			a.click(rl.GetMousePosition())
		}
	}
	a.ctl.Frame(time.Now(), a.ctl.Epoch())
	return true
}

func (a *App) click(pos rl.Vector2) {
	rect := gridRect(rl.GetScreenWidth(), rl.GetScreenHeight())
	p := coords.Point{X: float64(pos.X), Y: float64(pos.Y)}
	if !rect.Contains(p) {
		return
	}
	a.ctl.Click(p, rect, coords.BackingFor(a.ctl.Snapshot().Geometry))
}

func (a *App) openForm() {
	g := a.ctl.Snapshot().Geometry
	a.editing = true
	a.field = 0
	a.values = [3][]rune{
		[]rune(strconv.Itoa(g.Width)), []rune(strconv.Itoa(g.Height)), []rune(strconv.Itoa(g.CellSize)),
	}
}

func (a *App) updateForm() {
	for c := rl.GetCharPressed(); c > 0; c = rl.GetCharPressed() {
		if (c >= '0' && c <= '9') || c == '.' {
			a.values[a.field] = append(a.values[a.field], c)
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		a.editing = false
	case rl.IsKeyPressed(rl.KeyTab):
		a.field = (a.field + 1) % len(a.values)
	case rl.IsKeyPressed(rl.KeyBackspace):
		if v := a.values[a.field]; len(v) > 0 {
			a.values[a.field] = v[:len(v)-1]
		}
	case rl.IsKeyPressed(rl.KeyEnter):
		a.editing = false
		req := geometry.ParseRequest(string(a.values[0]), string(a.values[1]), string(a.values[2]))
		g, ok := a.ctl.Resize(req)
		if !ok {
			a.notice = "rejected: surface exceeds the area budget"
			return
		}
		a.notice = "resized to " + g.String()
		w, h := windowSize(g)
		rl.SetWindowSize(w, h)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(ColBg)

	rect := gridRect(rl.GetScreenWidth(), rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, int32(rect.Width), int32(rect.Height), ColGrid)

	g := a.surface.geom
	for i, c := range a.surface.cells {
		if c != engine.Alive {
			continue
		}
		x, y, w, h := cellBox(i/g.Width, i%g.Width, g, rect)
		rl.DrawRectangleV(rl.NewVector2(x, y), rl.NewVector2(w, h), ColAlive)
	}
	a.DrawHUD(int32(rect.Height))
}

func (a *App) DrawHUD(top int32) {
	status, fps := hudLines(a.ctl.Snapshot())
	rl.DrawText(status, 8, top+6, 14, ColText)
	rl.DrawText(fps, 8, top+24, 14, ColText)

	switch {
	case a.editing:
		labels := [3]string{"width", "height", "cell"}
		x := int32(8)
		for i, label := range labels {
			col := ColTextDim
			if i == a.field {
				col = ColText
			}
			s := label + " " + string(a.values[i])
			rl.DrawText(s, x, top+42, 14, col)
			x += rl.MeasureText(s, 14) + 16
		}
	case a.notice != "":
		rl.DrawText(a.notice, 8, top+42, 14, ColError)
	default:
		rl.DrawText("space play  n step  +/-/0 speed  r random  [] density  c clear  i insert  h/v/x flip  g size  q quit",
			8, top+42, 12, ColTextDim)
	}
}
