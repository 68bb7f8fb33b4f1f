package visualizer

import (
	"math"
	"strings"
)

var barChars = []rune(" ▁▂▃▄▅▆▇█")

const capChar = '▔'

// Bars renders smoothed bar frames as a field of vertical block
// columns with falling peak caps. It holds only presentation state;
// all signal analysis happens upstream.
type Bars struct {
	profile colorProfile
	caps    springField
}

// NewBars creates a bar-field renderer with color detected from the
// environment.
func NewBars() *Bars {
	return &Bars{
		profile: detectProfile(),
		caps:    newSpringField(30, 6.0, 0.9),
	}
}

func newBarsWithProfile(profile colorProfile) *Bars {
	return &Bars{
		profile: profile,
		caps:    newSpringField(30, 6.0, 0.9),
	}
}

// Render draws one frame of bar values in [0,1] into a width x height
// character field, top row first.
func (b *Bars) Render(bars []float64, width, height int) string {
	if len(bars) == 0 || width < 1 || height < 1 {
		return ""
	}

	// Column width so the bars span the available width.
	colWidth := (width - 2) / len(bars)
	if colWidth < 1 {
		colWidth = 1
	}
	gap := 1
	if colWidth <= 1 {
		gap = 0
	}

	levels := make([]float64, len(bars))
	capRows := make([]int, len(bars))
	b.caps.resize(len(bars))
	for i, v := range bars {
		levels[i] = clamp01(v) * float64(height)
		capRows[i] = int(math.Ceil(b.caps.step(i, levels[i])))
	}

	capColor := heat(1)
	rows := make([]string, height)
	for row := range height {
		var sb strings.Builder
		writer := newColorWriter(b.profile)
		rowFromBottom := float64(height - 1 - row)

		for i, level := range levels {
			if i > 0 && gap > 0 {
				sb.WriteByte(' ')
			}

			ch := barChars[0]
			switch {
			case level > rowFromBottom+1:
				ch = barChars[len(barChars)-1]
			case level > rowFromBottom:
				frac := level - rowFromBottom
				ch = barChars[int(frac*float64(len(barChars)-1))]
			}

			isCap := ch == barChars[0] && capRows[i] == height-row && capRows[i] > int(math.Ceil(level))
			if isCap {
				writer.set(&sb, capColor)
				ch = capChar
			} else if ch != barChars[0] {
				writer.set(&sb, heat(bars[i]))
			}
			for range colWidth - gap {
				sb.WriteRune(ch)
			}
		}
		writer.reset(&sb)
		rows[row] = sb.String()
	}

	return strings.Join(rows, "\n")
}
