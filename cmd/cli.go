package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	DefaultBars      = 64
	DefaultSmoothing = 0.25
)

// Options holds the parsed command line configuration.
type Options struct {
	Path      string
	Bars      int
	Smoothing float64
}

// ParseArgs parses os.Args into Options. A nil Options with a nil error
// means help was requested and the program should exit cleanly.
func ParseArgs() (*Options, error) {
	return parseArgs(os.Args[1:])
}

func parseArgs(args []string) (*Options, error) {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:           "vibra <file>",
		Short:         "Terminal music player with a spectrum visualizer",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Bars < 1 {
				return fmt.Errorf("bars must be at least 1, got %d", opts.Bars)
			}
			if opts.Smoothing < 0 || opts.Smoothing > 1 {
				return fmt.Errorf("smoothing must be in [0, 1], got %g", opts.Smoothing)
			}
			opts.Path = args[0]
			return nil
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.Flags().IntVarP(&opts.Bars, "bars", "b", DefaultBars,
		"Number of frequency bars (16, 32 and 64 use tuned frequency ranges)")
	rootCmd.Flags().Float64VarP(&opts.Smoothing, "smoothing", "s", DefaultSmoothing,
		"Temporal smoothing factor between 0 (frozen) and 1 (instant)")

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	if opts.Path == "" {
		return nil, nil
	}
	return opts, nil
}
