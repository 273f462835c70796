package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rCiDK/test-script-helper/clip"
	"github.com/rCiDK/test-script-helper/config"
	"github.com/rCiDK/test-script-helper/engine"
	"github.com/rCiDK/test-script-helper/logging"
	"github.com/rCiDK/test-script-helper/report"
	"github.com/rCiDK/test-script-helper/ui"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var overrides config.Overrides

	rootCmd := &cobra.Command{
		Use:   "testscribe",
		Short: "Record manual test steps with screenshots into spreadsheet reports",
		Long: `testscribe walks a tester through a numbered range of test cases.
For each case, type the steps, paste one screenshot per step from the
clipboard, mark PASS or FAIL, and a "<name> - <number> - <verdict>.xlsx"
report is written to the export location.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			return run(config.Load(cwd, overrides))
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&overrides.ConfigPath, "config", "c", "", "path to a YAML config file")
	flags.StringVarP(&overrides.ExportDir, "export-dir", "o", "", "directory reports are written to")
	flags.IntVar(&overrides.ImageWidth, "image-width", 0, "width screenshots are scaled to (default 1000)")
	flags.StringVar(&overrides.LogFile, "log-file", "", "log file path")
	flags.BoolVarP(&overrides.Verbose, "verbose", "v", false, "debug logging")

	return rootCmd
}

func run(cfg config.Config) error {
	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	e := engine.New(
		report.NewWriter(logger),
		clip.NewSystem(),
		engine.WithLogger(logger),
		engine.WithImageWidth(cfg.ImageWidth),
	)
	defer e.Close()

	logger.Info("Starting", zap.String("version", version), zap.String("export_dir", cfg.ExportDir))

	p := tea.NewProgram(ui.NewModel(e, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		logger.Error("Program exited with error", zap.Error(err))
		return err
	}

	if m, ok := final.(ui.Model); ok && m.Farewell() != "" {
		fmt.Println(m.Farewell())
	}
	return nil
}

// main is the entry point of the application.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}
