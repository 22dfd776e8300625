package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/clothsim/internal/camera"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/geom"
	"github.com/san-kum/clothsim/internal/interact"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/solver"
)

const (
	width           = 100
	height          = 30
	historyCapacity = 600

	// pointer input and projection run in a fixed virtual viewport; the
	// braille canvas is a scaled-down view of it
	virtualW = 1400.0
	virtualH = 900.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the interactive terminal session: one cloth, one solver,
// one pointer controller, redrawn at the configured frame rate.
type Model struct {
	cfg  *config.Config
	mesh *cloth.Mesh
	sim  *solver.Solver
	ctl  *interact.Controller
	cam  camera.Camera

	canvas  *Canvas
	running bool
	tick    int
	dt      float64

	rightHeld bool

	stretch        metrics.MeanStretch
	active         metrics.ActiveConstraints
	torn           metrics.TornConstraints
	stretchHistory []float64
}

// NewModel builds the session from a validated config.
func NewModel(cfg *config.Config) (Model, error) {
	mesh, err := cfg.Mesh()
	if err != nil {
		return Model{}, err
	}
	sim, err := solver.New(mesh, cfg.Solver())
	if err != nil {
		return Model{}, err
	}
	cam := cfg.Camera()

	ctl := interact.New(mesh, cam)
	ctl.PickupRadius = cfg.PickupRadius

	m := Model{
		cfg:            cfg,
		mesh:           mesh,
		sim:            sim,
		ctl:            ctl,
		cam:            cam,
		canvas:         NewCanvas(width, height),
		running:        true,
		dt:             1.0 / float64(cfg.FPS),
		stretchHistory: make([]float64, 0, historyCapacity),
	}
	m.torn.Observe(mesh, 0)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// handleMouse maps a terminal mouse event onto one pointer frame. Cell
// coordinates are lifted to the virtual viewport so picking and cutting
// use the same projection as rendering.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	frame := interact.Frame{
		Pointer:  m.cellToVirtual(msg.X, msg.Y),
		Viewport: geom.Vec2{X: virtualW, Y: virtualH},
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			frame.GrabPressed = true
		case tea.MouseButtonRight:
			m.rightHeld = true
		}
	case tea.MouseActionRelease:
		switch msg.Button {
		case tea.MouseButtonLeft:
			frame.GrabReleased = true
		case tea.MouseButtonRight:
			m.rightHeld = false
		}
	}
	frame.Cutting = m.rightHeld

	m.ctl.Handle(frame)
}

// cellToVirtual maps a character cell to the center of its patch of the
// virtual viewport.
func (m *Model) cellToVirtual(col, row int) geom.Vec2 {
	return geom.Vec2{
		X: (float64(col) + 0.5) * virtualW / float64(width),
		Y: (float64(row) + 0.5) * virtualH / float64(height),
	}
}

// step advances the physics one tick and refreshes the metric panel.
func (m *Model) step() {
	elapsed := float64(m.tick) * m.dt
	m.sim.Step(elapsed)
	m.tick++

	m.stretch.Observe(m.mesh, elapsed)
	m.active.Observe(m.mesh, elapsed)
	m.torn.Observe(m.mesh, elapsed)

	m.stretchHistory = append(m.stretchHistory, m.stretch.Value())
	if len(m.stretchHistory) > historyCapacity {
		m.stretchHistory = m.stretchHistory[1:]
	}
}

// reset rebuilds the cloth from the config and drops all session state.
func (m *Model) reset() {
	mesh, err := m.cfg.Mesh()
	if err != nil {
		return
	}
	sim, err := solver.New(mesh, m.cfg.Solver())
	if err != nil {
		return
	}
	m.mesh = mesh
	m.sim = sim
	m.ctl.Reset(mesh)
	m.tick = 0
	m.stretchHistory = m.stretchHistory[:0]
	m.torn.Reset()
	m.torn.Observe(mesh, 0)
}

// shadeOf buckets a depth intensity into a canvas shade level, nearest
// cloth brightest.
func shadeOf(intensity float64) uint8 {
	level := int((1 - intensity) * float64(ShadeLevels-1))
	if level < 0 {
		level = 0
	}
	if level > ShadeLevels-1 {
		level = ShadeLevels - 1
	}
	return uint8(level)
}

// draw projects every constraint into the virtual viewport and rasters
// it onto the braille canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	viewport := geom.Vec2{X: virtualW, Y: virtualH}
	cw, ch := float64(m.canvas.Width*2), float64(m.canvas.Height*4)

	for i := range m.mesh.Constraints {
		link := &m.mesh.Constraints[i]
		pa := m.mesh.Particles[link.A]
		pb := m.mesh.Particles[link.B]
		a := m.cam.Project(pa.Pos, viewport)
		b := m.cam.Project(pb.Pos, viewport)

		level := shadeOf((m.cam.Intensity(pa.Pos.Z) + m.cam.Intensity(pb.Pos.Z)) / 2)
		m.canvas.DrawLineShaded(
			int(a.X*cw/virtualW), int(a.Y*ch/virtualH),
			int(b.X*cw/virtualW), int(b.Y*ch/virtualH),
			level,
		)
	}

	if idx, ok := m.ctl.Grabbed(); ok {
		s := m.cam.Project(m.mesh.Particles[idx].Pos, viewport)
		gx, gy := int(s.X*cw/virtualW), int(s.Y*ch/virtualH)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				m.canvas.Set(gx+dx, gy+dy)
			}
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(headerStyle.Render("CLOTH") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.stretchHistory) > 1 {
		chart := asciigraph.Plot(m.stretchHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Mean stretch"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", float64(m.tick)*m.dt)) + "\n")
	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%dx%d", m.cfg.Rows, m.cfg.Cols)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(m.mesh.Particles))) + "\n")
	s.WriteString(labelStyle.Render("Links") + valueStyle.Render(fmt.Sprintf("%.0f", m.active.Value())) + "\n")
	s.WriteString(labelStyle.Render("Torn") + valueStyle.Render(fmt.Sprintf("%.0f", m.torn.Value())) + "\n")
	s.WriteString(labelStyle.Render("Stretch") + valueStyle.Render(fmt.Sprintf("%.3f", m.stretch.Value())) + "\n")
	if idx, ok := m.ctl.Grabbed(); ok {
		s.WriteString(labelStyle.Render("Held") + valueStyle.Render(fmt.Sprintf("#%d", idx)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nLeft-drag:Grab  Right-drag:Cut\nSP:Pause R:Reset Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
