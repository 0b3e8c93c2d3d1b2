// playdemo opens a window with a small scene of actors reacting to contacts
// and clicks.
//
// Usage:
//
//	playdemo [--config world.yaml] [--debug] [--verbose] [--profile cpu|mem]
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/oliverbestmann/play"
	"github.com/oliverbestmann/play/playbiten"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagDebug   bool
	flagVerbose bool
	flagProfile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "playdemo",
	Short: "Bouncing actors with contact callbacks",
	Long: `Runs a small scene: a ball bounces between the walls and a paddle,
clicking the paddle changes its size, clicking anywhere else spawns a box.

Examples:
  playdemo
  playdemo --config world.yaml --debug`,
	SilenceUsage: true,
	RunE:         runDemo,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML world config")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Draw the physics shapes")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&flagProfile, "profile", "", "Write a cpu or mem profile")
}

func runDemo(_ *cobra.Command, _ []string) error {
	switch flagProfile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile).Stop()
	default:
		return fmt.Errorf("unknown profile %q", flagProfile)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "playdemo",
	})

	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	slog.SetDefault(slog.New(logger))

	config := play.DefaultConfig()
	if flagConfig != "" {
		loaded, err := play.LoadConfig(flagConfig)
		if err != nil {
			return err
		}

		config = loaded
	}

	world, err := play.NewWorld(play.WithConfig(config), play.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	defer world.Close()

	if err := buildScene(world); err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	return playbiten.Run(world, playbiten.WindowConfig{
		Title: "play demo",
		Debug: flagDebug,
	})
}
