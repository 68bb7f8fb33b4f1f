package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/olivier-w/vibra/internal/analysis"
	"github.com/olivier-w/vibra/internal/player"
	"github.com/olivier-w/vibra/internal/util"
	"github.com/olivier-w/vibra/internal/visualizer"
)

// Model is the Bubbletea model for the vibra TUI.
type Model struct {
	player    *player.Player
	pipeline  *analysis.Pipeline
	viz       *visualizer.Bars
	metadata  player.Metadata
	smoothing float64

	levels   []float64
	elapsed  time.Duration
	duration time.Duration
	volume   float64
	paused   bool
	width    int
	height   int
	quitting bool
	playback progress.Model
}

// New creates a new Model driving playback and the spectrum display.
func New(p *player.Player, pipe *analysis.Pipeline, meta player.Metadata, smoothing float64) Model {
	return Model{
		player:    p,
		pipeline:  pipe,
		viz:       visualizer.NewBars(),
		metadata:  meta,
		smoothing: clampSmoothing(smoothing),
		duration:  p.Duration(),
		volume:    p.Volume(),
		playback:  newPlaybackBar(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), checkDone(m.player), tea.SetWindowTitle(windowTitle(m.metadata.Title, false)))
}

func checkDone(p *player.Player) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return playbackEndedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			m.player.Close()
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		switch msg.String() {
		case " ":
			m.player.TogglePause()
			m.paused = m.player.Paused()
			return m, tea.SetWindowTitle(windowTitle(m.metadata.Title, m.paused))
		case "left", "h":
			m.player.Seek(-5 * time.Second)
		case "right", "l":
			m.player.Seek(5 * time.Second)
		case "up", "k":
			m.player.AdjustVolume(0.05)
			m.volume = m.player.Volume()
		case "down", "j":
			m.player.AdjustVolume(-0.05)
			m.volume = m.player.Volume()
		case "r":
			m.player.Restart()
			m.elapsed = 0
		case "b":
			m.pipeline.SetBarCount(nextBarCount(m.pipeline.BarCount()))
		case "[":
			m.smoothing = clampSmoothing(m.smoothing - 0.05)
		case "]":
			m.smoothing = clampSmoothing(m.smoothing + 0.05)
		}
		return m, nil

	case tickMsg:
		m.elapsed = m.player.Position()
		m.volume = m.player.Volume()
		m.paused = m.player.Paused()
		frame := m.pipeline.FrameAt(m.elapsed)
		m.levels = m.pipeline.Smoothed(frame, m.smoothing)
		return m, tickCmd()

	case playbackEndedMsg:
		m.elapsed = m.duration
		m.quitting = true
		m.player.Close()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playback.Width = msg.Width - 18
		if m.playback.Width < 20 {
			m.playback.Width = 20
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 30 {
		w = 50
	}

	header := headerStyle.Render("vibra")

	title := titleStyle.Render(m.metadata.Title)

	subtitle := ""
	if m.metadata.Artist != "" && m.metadata.Album != "" {
		subtitle = artistStyle.Render(fmt.Sprintf("%s - %s", m.metadata.Artist, m.metadata.Album))
	} else if m.metadata.Artist != "" {
		subtitle = artistStyle.Render(m.metadata.Artist)
	} else if m.metadata.Album != "" {
		subtitle = artistStyle.Render(m.metadata.Album)
	}

	spectrum := m.viz.Render(m.levels, w-4, m.vizHeight())

	elapsedStr := timeStyle.Render(util.FormatDuration(m.elapsed))
	durationStr := timeStyle.Render(util.FormatDuration(m.duration))
	bar := m.playback.ViewAs(playbackRatio(m.elapsed.Seconds(), m.duration.Seconds()))
	progressLine := fmt.Sprintf("%s %s %s", elapsedStr, bar, durationStr)

	statusIcon := "▶"
	statusText := "playing"
	if m.paused {
		statusIcon = "❚❚"
		statusText = "paused"
	}
	leftText := fmt.Sprintf("%s  %s  %d bars  smooth %.2f", statusIcon, statusText, m.pipeline.BarCount(), m.smoothing)
	volStr := renderVolumePercent(m.volume)
	statusLeft := statusStyle.Render(leftText)
	statusRight := statusStyle.Render(volStr)
	gap := w - len(leftText) - len(volStr) - 4
	if gap < 2 {
		gap = 2
	}
	statusLine := fmt.Sprintf("%s%s%s", statusLeft, strings.Repeat(" ", gap), statusRight)

	help := helpStyle.Render(helpText())

	lines := "\n"
	lines += "  " + header + "\n"
	lines += "\n"
	lines += "  " + title + "\n"
	if subtitle != "" {
		lines += "  " + subtitle + "\n"
	}
	lines += "\n"
	if spectrum != "" {
		for line := range strings.SplitSeq(spectrum, "\n") {
			lines += "  " + line + "\n"
		}
		lines += "\n"
	}
	lines += "  " + progressLine + "\n"
	lines += "\n"
	lines += "  " + statusLine + "\n"
	lines += "\n"
	lines += "  " + help + "\n"

	return lines
}

func (m Model) vizHeight() int {
	h := m.height - 12
	if m.height == 0 {
		return 8
	}
	if h < 4 {
		h = 4
	}
	if h > 16 {
		h = 16
	}
	return h
}

func nextBarCount(n int) int {
	switch n {
	case 16:
		return 32
	case 32:
		return 64
	default:
		return 16
	}
}

func clampSmoothing(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

func windowTitle(title string, paused bool) string {
	if paused {
		return "⏸ " + title + " — vibra"
	}
	return "▶ " + title + " — vibra"
}
