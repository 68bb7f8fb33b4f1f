package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
)

func newPlaybackBar() progress.Model {
	return progress.New(
		progress.WithScaledGradient("#00A0FF", "#28FF96"),
		progress.WithoutPercentage(),
	)
}

func playbackRatio(elapsed, total float64) float64 {
	var ratio float64
	if total > 0 {
		ratio = elapsed / total
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100))
}
