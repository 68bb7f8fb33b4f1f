package visualizer

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

type colorProfile uint8

const (
	colorNone colorProfile = iota
	colorANSI256
	colorTrueColor
)

// detectProfile picks a color profile from the environment. NO_COLOR
// disables color entirely.
func detectProfile() colorProfile {
	if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
		return colorNone
	}
	term := strings.ToLower(os.Getenv("TERM"))
	colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
	switch {
	case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
		return colorTrueColor
	case term == "", term == "dumb":
		return colorNone
	default:
		return colorANSI256
	}
}

type rgb struct {
	R, G, B uint8
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b rgb, t float64) rgb {
	t = clamp01(t)
	return rgb{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// heat maps a bar amplitude to a cold-to-hot gradient.
func heat(t float64) rgb {
	t = clamp01(t)
	switch {
	case t < 0.25:
		return lerp(rgb{24, 28, 84}, rgb{0, 160, 255}, t/0.25)
	case t < 0.5:
		return lerp(rgb{0, 160, 255}, rgb{40, 255, 150}, (t-0.25)/0.25)
	case t < 0.75:
		return lerp(rgb{40, 255, 150}, rgb{255, 220, 80}, (t-0.5)/0.25)
	default:
		return lerp(rgb{255, 220, 80}, rgb{255, 72, 56}, (t-0.75)/0.25)
	}
}

var seqCache sync.Map

// fgSequence returns the escape sequence selecting c as foreground.
func fgSequence(profile colorProfile, c rgb) string {
	key := uint32(profile)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	var seq string
	switch profile {
	case colorTrueColor:
		seq = fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
	case colorANSI256:
		r := int(c.R) * 5 / 255
		g := int(c.G) * 5 / 255
		b := int(c.B) * 5 / 255
		seq = fmt.Sprintf("\x1b[38;5;%dm", 16+36*r+6*g+b)
	default:
		seq = ""
	}

	seqCache.Store(key, seq)
	return seq
}

// colorWriter tracks the active foreground so repeated cells don't
// re-emit identical escape sequences.
type colorWriter struct {
	profile colorProfile
	current uint32
}

func newColorWriter(profile colorProfile) colorWriter {
	return colorWriter{profile: profile, current: ^uint32(0)}
}

func (w *colorWriter) set(sb *strings.Builder, c rgb) {
	if w.profile == colorNone {
		return
	}
	key := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if key == w.current {
		return
	}
	sb.WriteString(fgSequence(w.profile, c))
	w.current = key
}

func (w *colorWriter) reset(sb *strings.Builder) {
	if w.profile == colorNone || w.current == ^uint32(0) {
		return
	}
	sb.WriteString("\x1b[0m")
	w.current = ^uint32(0)
}
