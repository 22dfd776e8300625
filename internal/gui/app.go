// Package gui runs the windowed cloth session with mouse grab and cut.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/clothsim/internal/camera"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/geom"
	"github.com/san-kum/clothsim/internal/interact"
	"github.com/san-kum/clothsim/internal/solver"
)

const (
	windowW = 1400
	windowH = 900
)

var (
	ColBg      = rl.NewColor(10, 10, 15, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColGrab    = rl.NewColor(255, 220, 60, 255)
)

type App struct {
	Cfg     *config.Config
	Mesh    *cloth.Mesh
	Sim     *solver.Solver
	Ctl     *interact.Controller
	Cam     camera.Camera
	Time    float64
	Dt      float64
	Running bool
}

// NewApp builds a windowed session from a validated config.
func NewApp(cfg *config.Config) (*App, error) {
	mesh, err := cfg.Mesh()
	if err != nil {
		return nil, err
	}
	sim, err := solver.New(mesh, cfg.Solver())
	if err != nil {
		return nil, err
	}
	cam := cfg.Camera()

	ctl := interact.New(mesh, cam)
	ctl.PickupRadius = cfg.PickupRadius

	return &App{
		Cfg:     cfg,
		Mesh:    mesh,
		Sim:     sim,
		Ctl:     ctl,
		Cam:     cam,
		Dt:      1.0 / float64(cfg.FPS),
		Running: true,
	}, nil
}

// Run opens the window and blocks until the session ends.
func Run(cfg *config.Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}

	rl.InitWindow(windowW, windowH, "clothsim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)

	for !rl.WindowShouldClose() {
		if app.Update() {
			break
		}
		app.Draw()
	}
	return nil
}

// Update consumes one frame of input and, when running, advances the
// physics one tick. It returns true when the session should end.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}

	mouse := rl.GetMousePosition()
	a.Ctl.Handle(interact.Frame{
		Pointer:      geom.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)},
		Viewport:     geom.Vec2{X: windowW, Y: windowH},
		GrabPressed:  rl.IsMouseButtonPressed(rl.MouseLeftButton),
		GrabReleased: rl.IsMouseButtonReleased(rl.MouseLeftButton),
		Cutting:      rl.IsMouseButtonDown(rl.MouseRightButton),
	})

	if a.Running {
		a.Sim.Step(a.Time)
		a.Time += a.Dt
	}
	return false
}

func (a *App) reset() {
	mesh, err := a.Cfg.Mesh()
	if err != nil {
		return
	}
	sim, err := solver.New(mesh, a.Cfg.Solver())
	if err != nil {
		return
	}
	a.Mesh = mesh
	a.Sim = sim
	a.Ctl.Reset(mesh)
	a.Time = 0
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawCloth()
	a.drawHUD()

	rl.EndDrawing()
}

// drawCloth renders one line per active constraint, green channel fading
// with depth so the far side of a billowing cloth reads darker.
func (a *App) drawCloth() {
	viewport := geom.Vec2{X: windowW, Y: windowH}

	for i := range a.Mesh.Constraints {
		link := &a.Mesh.Constraints[i]
		pa := a.Mesh.Particles[link.A]
		pb := a.Mesh.Particles[link.B]
		sa := a.Cam.Project(pa.Pos, viewport)
		sb := a.Cam.Project(pb.Pos, viewport)

		intensity := (a.Cam.Intensity(pa.Pos.Z) + a.Cam.Intensity(pb.Pos.Z)) / 2
		col := rl.NewColor(50, uint8(255*(1-intensity)), 255, 255)
		rl.DrawLineV(
			rl.NewVector2(float32(sa.X), float32(sa.Y)),
			rl.NewVector2(float32(sb.X), float32(sb.Y)),
			col,
		)
	}

	if idx, ok := a.Ctl.Grabbed(); ok {
		s := a.Cam.Project(a.Mesh.Particles[idx].Pos, viewport)
		rl.DrawCircleV(rl.NewVector2(float32(s.X), float32(s.Y)), 6, ColGrab)
	}
}

func (a *App) drawHUD() {
	rl.DrawText("clothsim", 30, 30, 24, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %dx%d", a.Cfg.Rows, a.Cfg.Cols), 160, 36, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	rl.DrawText(status, windowW-130, 30, 16, col)

	rl.DrawText(fmt.Sprintf("links %d", len(a.Mesh.Constraints)), 30, windowH-60, 14, ColText)
	rl.DrawText("LMB DRAG  RMB CUT  [SPACE] PAUSE  [R] RESET  [Q] QUIT", windowW-560, windowH-40, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, windowH-40, 14, ColTextDim)
}
