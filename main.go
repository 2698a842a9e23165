package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/PixPMusic/gopher-pad/internal/behavior"
	"github.com/PixPMusic/gopher-pad/internal/loop"
	"github.com/PixPMusic/gopher-pad/internal/midi"
	"github.com/PixPMusic/gopher-pad/internal/services"
)

var (
	// Global flags
	verbose     bool
	profileName string
	deviceName  string

	logger = zap.NewNop()

	// newDriver opens the system MIDI driver
	newDriver = func() (drivers.Driver, error) {
		drv, err := rtmididrv.New()
		if err != nil {
			return nil, err
		}
		return drv, nil
	}
)

var rootCmd = &cobra.Command{
	Use:   "gopher-pad",
	Short: "Run small applications on a Launchpad grid controller",
	Long: `gopher-pad drives a Novation Launchpad style 8x8 / 9x8 pad.

It reads button presses, hands them to the selected application and
re-sends the complete LED state of the pad on every loop iteration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// lifeCmd runs Conway's Game of Life
var lifeCmd = &cobra.Command{
	Use:   "life",
	Short: "Play Conway's Game of Life on the pad",
	Long: `Pads toggle cells. The first control button starts the simulation,
the second one quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolveProfile(midi.ProfileMK2)
		if err != nil {
			return err
		}
		return runPad(cmd.Context(), p, behavior.NewLife(p.Width, p.Height))
	},
}

// mediaCmd runs the volume and player panel
var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Control system volume and media players from the pad",
	Long: `The two left columns show and set the left/right volume.
Control row: volume up, volume down, previous, next, play/pause, mute,
loop mode, quit. Requires amixer and playerctl.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolveProfile(midi.ProfileMK2Side)
		if err != nil {
			return err
		}
		runner := services.ExecRunner{}
		b := behavior.NewMedia(p.Width, p.Height,
			services.NewAmixer(runner, logger),
			services.NewPlayerctl(runner, logger),
		)
		return runPad(cmd.Context(), p, b)
	},
}

// portsCmd lists MIDI ports so the exact device name can be found
var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input and output ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		drv, err := newDriver()
		if err != nil {
			return fmt.Errorf("failed to initialize midi: %w: %v", midi.ErrDriverInit, err)
		}
		defer drv.Close()

		ins, outs, err := midi.ListPorts(drv)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Inputs:")
		for _, name := range ins {
			fmt.Fprintf(out, "  %s\n", name)
		}
		fmt.Fprintln(out, "Outputs:")
		for _, name := range outs {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Device profile (default depends on the command)")
	rootCmd.PersistentFlags().StringVar(&deviceName, "device", "", "Override the MIDI port name of the profile")

	rootCmd.AddCommand(lifeCmd, mediaCmd, portsCmd)
}

// resolveProfile applies the --profile and --device flags
func resolveProfile(fallback string) (midi.Profile, error) {
	name := profileName
	if name == "" {
		name = fallback
	}
	p, err := midi.GetProfile(name)
	if err != nil {
		return midi.Profile{}, err
	}
	if deviceName != "" {
		p.DeviceName = deviceName
	}
	return p, nil
}

// runPad opens the MIDI driver and plays b on the pad
func runPad(ctx context.Context, p midi.Profile, b behavior.Behavior) error {
	drv, err := newDriver()
	if err != nil {
		return fmt.Errorf("failed to initialize midi: %w: %v", midi.ErrDriverInit, err)
	}
	defer drv.Close()

	return playPad(ctx, drv, p, b)
}

// playPad connects to the pad and runs b until it quits or the process is
// interrupted. A connection error returns before the loop starts.
func playPad(ctx context.Context, drv drivers.Driver, p midi.Profile, b behavior.Behavior) error {
	t, err := midi.Connect(drv, p, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize midi: %w", err)
	}
	defer t.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = loop.New(t, p, b, logger).Run(ctx)
	t.Clear()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err == nil {
		fmt.Println("Thanks for playing!")
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
