// Package monitor shows a running sweep in the terminal.
package monitor

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pendsweep/internal/report"
	"github.com/san-kum/pendsweep/internal/sweep"
)

const historyCapacity = 240

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type Model struct {
	sink   *Sink
	cancel context.CancelFunc
	total  int

	frame    sweep.Frame
	seen     bool
	harmonic []float64
	real     []float64
	trials   []*sweep.TrialResult

	summary  sweep.Summary
	err      error
	finished bool
	quitting bool
}

// NewModel builds a model reading from sink. cancel is called when the user
// quits.
func NewModel(sink *Sink, total int, cancel context.CancelFunc) Model {
	return Model{
		sink:     sink,
		cancel:   cancel,
		total:    total,
		harmonic: make([]float64, 0, historyCapacity),
		real:     make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return m.sink.wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil

	case FrameMsg:
		f := sweep.Frame(msg)
		if !m.seen || f.Trial != m.frame.Trial {
			m.harmonic = m.harmonic[:0]
			m.real = m.real[:0]
		}
		m.frame, m.seen = f, true
		m.harmonic = push(m.harmonic, f.Harmonic[0])
		m.real = push(m.real, f.Real[0])
		return m, m.sink.wait()

	case TrialMsg:
		m.trials = append(m.trials, msg.Result)
		return m, m.sink.wait()

	case DoneMsg:
		m.summary, m.err, m.finished = msg.Summary, msg.Err, true
		return m, tea.Quit
	}

	return m, nil
}

func push(buf []float64, v float64) []float64 {
	if len(buf) == historyCapacity {
		copy(buf, buf[1:])
		buf = buf[:len(buf)-1]
	}
	return append(buf, v)
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("PENDULUM SWEEP") + "\n")

	if m.seen {
		s.WriteString(labelStyle.Render("Trial") + valueStyle.Render(fmt.Sprintf("%d/%d  θ₀ = %.1f°", m.frame.Trial+1, m.total, m.frame.Amplitude*180/math.Pi)) + "\n")
		s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.frame.Time)) + "\n")
		s.WriteString(labelStyle.Render("Harmonic") + valueStyle.Render(fmt.Sprintf("%+.4f rad", m.frame.Harmonic[0])) + "\n")
		s.WriteString(labelStyle.Render("Real") + valueStyle.Render(fmt.Sprintf("%+.4f rad", m.frame.Real[0])) + "\n")

		if len(m.real) > 1 && finite(m.real) {
			chart := asciigraph.PlotMany([][]float64{m.harmonic, m.real},
				asciigraph.Height(6),
				asciigraph.Width(50),
				asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Red))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	} else {
		s.WriteString(valueStyle.Render("waiting for first step...") + "\n")
	}

	if len(m.trials) > 0 {
		s.WriteString("\nCOMPLETED\n")
		for _, r := range m.trials {
			line := fmt.Sprintf("%6.1f°  ", r.AmplitudeDeg())
			if r.Determined() {
				line += fmt.Sprintf("T_h %.4f  T_r %.4f  %+.3f%%", r.HarmonicPeriod, r.RealPeriod, r.PercentDiff())
			} else {
				line += "undetermined"
			}
			s.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}

	switch {
	case m.err != nil:
		s.WriteString("\n" + errStyle.Render("stopped: "+m.err.Error()) + "\n")
	case m.finished:
		s.WriteString("\n" + doneStyle.Render("sweep complete") + "\n")
		s.WriteString(report.SummaryTable(m.summary) + "\n")
	case m.quitting:
		s.WriteString("\n" + valueStyle.Render("stopping after current trial...") + "\n")
	default:
		s.WriteString(helpStyle.Render("q: stop after current trial"))
	}

	return s.String()
}

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
