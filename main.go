package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/vibra/cmd"
	"github.com/olivier-w/vibra/internal/media"
)

func main() {
	opts, err := cmd.ParseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if opts == nil {
		return
	}

	path := opts.Path

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is a directory\n", path)
		os.Exit(1)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !media.IsSupportedExt(ext) {
		fmt.Fprintf(os.Stderr, "Error: unsupported format %s (supported: %s)\n", ext, media.SupportedExtsList())
		os.Exit(1)
	}

	program := tea.NewProgram(newStartupModel(path, opts.Bars, opts.Smoothing), tea.WithAltScreen())

	finalModel, err := program.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if sm, ok := finalModel.(startupModel); ok && sm.err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", sm.err)
		os.Exit(1)
	}
}
