package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pinchlab/internal/interact"
	"pinchlab/internal/vecmath"
	"pinchlab/internal/world"
)

const (
	canvasCols = 100
	canvasRows = 36
	handStep   = 14
	twistStep  = 0.15
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives the live view: one keyboard-controlled hand interacting
// with the world at a fixed frame rate.
type Model struct {
	world    *world.World
	renderer *Renderer

	hand    vecmath.Vec3
	grab    bool
	pinch   bool
	twist   float64
	running bool
	fps     int
}

func NewModel(w *world.World, fps int) Model {
	return Model{
		world:    w,
		renderer: NewRenderer(canvasCols, canvasRows, w),
		hand:     vecmath.Vec3{X: w.Width / 2, Y: w.Height / 2},
		running:  true,
		fps:      fps,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.running {
			m.world.Update([]interact.Input{{
				Actor: 0,
				Pos:   m.hand,
				Grab:  m.grab,
				Pinch: m.pinch,
				Twist: m.twist,
			}})
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "up", "k":
			m.hand.Y -= handStep
		case "down", "j":
			m.hand.Y += handStep
		case "left", "h":
			m.hand.X -= handStep
		case "right", "l":
			m.hand.X += handStep
		case "w":
			m.hand.Z += 40
		case "s":
			m.hand.Z -= 40
		case "g":
			m.grab = !m.grab
		case "p":
			m.pinch = !m.pinch
		case "[":
			m.twist -= twistStep
		case "]":
			m.twist += twistStep
		case "c":
			m.world.Crumple(m.hand.XY(), 12)
		case "f":
			m.world.Fold(m.hand.XY(), vecmath.Vec2{X: 8}, 6)
		case "b":
			m.world.SpawnBody("cube", vecmath.Vec3{X: m.hand.X, Y: m.hand.Y, Z: m.hand.Z})
		case "r":
			m.world.Reset()
		}
	}
	return m, nil
}

func (m Model) View() string {
	frame := m.renderer.Draw(m.world, m.hand)

	status := labelStyle.Render("tick ") + valueStyle.Render(fmt.Sprintf("%d", m.world.Tick)) +
		labelStyle.Render("  objects ") + valueStyle.Render(fmt.Sprintf("%d soft / %d rigid", len(m.world.Soft), len(m.world.Bodies)))
	if m.grab {
		status += "  " + activeStyle.Render("GRAB")
	}
	if m.pinch {
		status += "  " + activeStyle.Render("PINCH")
	}
	if !m.running {
		status += "  " + activeStyle.Render("PAUSED")
	}

	help := helpStyle.Render("arrows/hjkl move · w/s depth · g grab · p pinch · [/] twist · c crumple · f fold · b spawn cube · r reset · space pause · q quit")

	return headerStyle.Render("pinchlab") + "\n" + frame + status + "\n" + help + "\n"
}
