package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/vibra/internal/analysis"
	"github.com/olivier-w/vibra/internal/decode"
	"github.com/olivier-w/vibra/internal/player"
	"github.com/olivier-w/vibra/internal/ui"
)

type startupStage uint8

const (
	stageDecoding startupStage = iota
	stageAnalyzing
)

type startupStageMsg startupStage

type startupResolvedMsg struct {
	model ui.Model
	err   error
}

// startupModel shows a spinner while the track is decoded and analyzed,
// then hands control to the playback model.
type startupModel struct {
	path      string
	bars      int
	smoothing float64
	spinner   spinner.Model
	stage     startupStage
	stageCh   chan startupStage
	err       error
	width     int
	height    int
}

func newStartupModel(path string, bars int, smoothing float64) startupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	return startupModel{
		path:      path,
		bars:      bars,
		smoothing: smoothing,
		spinner:   s,
		stage:     stageDecoding,
		stageCh:   make(chan startupStage, 4),
	}
}

func (m startupModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForStage(),
		openTrackCmd(m.path, m.bars, m.smoothing, m.stageCh),
	)
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startupStageMsg:
		m.stage = startupStage(msg)
		return m, m.waitForStage()

	case startupResolvedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}

		cmds := []tea.Cmd{msg.model.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return msg.model, tea.Batch(cmds...)

	case tea.KeyMsg:
		if startupIsQuit(msg) {
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}

	return m, nil
}

func (m startupModel) waitForStage() tea.Cmd {
	if m.stageCh == nil {
		return nil
	}
	stageCh := m.stageCh
	return func() tea.Msg {
		stage, ok := <-stageCh
		if !ok {
			return nil
		}
		return startupStageMsg(stage)
	}
}

func (m startupModel) View() string {
	label := "Decoding..."
	if m.stage == stageAnalyzing {
		label = "Analyzing..."
	}

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(startupHeaderStyle.Render("vibra"))
	b.WriteString("\n\n  ")
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(startupStatusStyle.Render(label))
	b.WriteString("\n\n  ")
	b.WriteString(startupHelpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

func openTrackCmd(path string, bars int, smoothing float64, stageCh chan startupStage) tea.Cmd {
	return func() tea.Msg {
		defer close(stageCh)

		meta := player.ReadMetadata(path)

		track, err := decode.Load(path)
		if err != nil {
			return startupResolvedMsg{err: fmt.Errorf("decoding audio: %w", err)}
		}

		select {
		case stageCh <- stageAnalyzing:
		default:
		}

		pipe := analysis.New(bars)
		pipe.Process(track.Samples(), track.Channels, track.SampleRate)

		p, err := player.New(track)
		if err != nil {
			return startupResolvedMsg{err: fmt.Errorf("creating player: %w", err)}
		}

		return startupResolvedMsg{model: ui.New(p, pipe, meta, smoothing)}
	}
}

func startupIsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

var (
	startupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#0066AA", Dark: "#00A0FF"})
	startupStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
	startupHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
)
