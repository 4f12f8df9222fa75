package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const (
	graphWidth  = 64
	graphHeight = 8
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(0, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	limitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Trajectory holds a solved closed-loop response sampled on the time grid.
type Trajectory struct {
	Times    []float64
	Setpoint []float64
	PV       []float64
	Output   []float64
	Lower    float64
	Upper    float64
}

// Model plays a solved trajectory back in the terminal at a fixed frame rate.
type Model struct {
	traj    Trajectory
	title   string
	idx     int
	running bool
	fps     int
}

// NewModel prepares a playback session for the given trajectory.
func NewModel(traj Trajectory, title string, fps int) Model {
	if fps <= 0 {
		fps = 20
	}
	return Model{
		traj:    traj,
		title:   title,
		idx:     1,
		running: true,
		fps:     fps,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the playback cursor.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.idx = 1
			m.running = true
		case "[":
			if m.idx > 1 {
				m.idx--
			}
			m.running = false
		case "]":
			if m.idx < len(m.traj.Times)-1 {
				m.idx++
			}
			m.running = false
		}
	case TickMsg:
		if m.running && m.idx < len(m.traj.Times)-1 {
			m.idx++
		}
		return m, m.tick()
	}
	return m, nil
}

// View renders the traces up to the playback cursor plus a stats panel.
func (m Model) View() string {
	if len(m.traj.Times) < 2 {
		return "no trajectory data\n"
	}
	end := m.idx + 1
	t := m.traj.Times[m.idx]

	pvChart := asciigraph.PlotMany(
		[][]float64{m.traj.Setpoint[:end], m.traj.PV[:end]},
		asciigraph.Height(graphHeight), asciigraph.Width(graphWidth),
		asciigraph.Caption("setpoint / process variable"),
	)
	outChart := asciigraph.Plot(m.traj.Output[:end],
		asciigraph.Height(graphHeight), asciigraph.Width(graphWidth),
		asciigraph.Caption("controller output"),
	)

	var s strings.Builder
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f s", t)) + "\n")
	s.WriteString(labelStyle.Render("Setpoint") + valueStyle.Render(fmt.Sprintf("%.4f", m.traj.Setpoint[m.idx])) + "\n")
	s.WriteString(labelStyle.Render("PV") + valueStyle.Render(fmt.Sprintf("%.4f", m.traj.PV[m.idx])) + "\n")
	s.WriteString(labelStyle.Render("Error") + valueStyle.Render(fmt.Sprintf("%+.4f", m.traj.Setpoint[m.idx]-m.traj.PV[m.idx])) + "\n")
	out := m.traj.Output[m.idx]
	outLine := valueStyle.Render(fmt.Sprintf("%.4f", out))
	if out >= m.traj.Upper-1e-3 {
		outLine = limitStyle.Render(fmt.Sprintf("%.4f (high limit)", out))
	} else if out <= m.traj.Lower+1e-3 {
		outLine = limitStyle.Render(fmt.Sprintf("%.4f (low limit)", out))
	}
	s.WriteString(labelStyle.Render("Output") + outLine + "\n")
	status := "PLAYING"
	if !m.running {
		status = "PAUSED"
	}
	if m.idx == len(m.traj.Times)-1 {
		status = "DONE"
	}
	s.WriteString(labelStyle.Render("Status") + valueStyle.Render(status) + "\n")

	charts := graphStyle.Render(pvChart) + "\n\n" + graphStyle.Render(outChart)
	body := lipgloss.JoinHorizontal(lipgloss.Top, charts, statsStyle.Render(s.String()))

	return headerStyle.Render(strings.ToUpper(m.title)) + "\n" +
		body +
		helpStyle.Render("\nSP:Pause R:Restart [ ]:Scrub Q:Quit") + "\n"
}
