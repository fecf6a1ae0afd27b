// Package cmd wires the snova command line: the root command runs the
// TUI, subcommands inspect definitions without entering it.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/snova-cli/snova/internal/app"
	"github.com/snova-cli/snova/internal/config"
	"github.com/snova-cli/snova/internal/defs"
	"github.com/snova-cli/snova/internal/log"
	"github.com/snova-cli/snova/internal/paths"
	"github.com/snova-cli/snova/internal/registry"
	"github.com/snova-cli/snova/internal/tracing"
	"github.com/snova-cli/snova/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user-level config file, so a
// project can carry its own snova setup.
const localConfigPath = ".snova/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	defsFile  string
	noWatch   bool
	debugFlag bool

	cfg     config.Config
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "snova",
	Short: "Rebuild a shell command you only half remember",
	Long: `snova walks you through rebuilding a command from a library of
command templates. Pick the command you are after, answer a short
series of questions about its blanks and flags, and the finished
command is printed for you to run.

Templates come from a builtin set plus your own definitions file
(default: ~/.config/snova/commands.yaml). Edits to that file are
picked up while the picker is open.

Examples:
  # Open the picker
  snova

  # Use a different definitions file
  snova --defs ./team-commands.yaml

  # Run the finished command directly
  $(snova)`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/snova/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&defsFile, "defs", "",
		"command definitions file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (also enabled by SNOVA_DEBUG)")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false,
		"do not reload when the definitions file changes")
}

func initConfig() {
	cfgPath = cfgFile
	if cfgPath == "" {
		// Config lookup order:
		// 1. .snova/config.yaml (current directory)
		// 2. ~/.config/snova/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			cfgPath = localConfigPath
		} else {
			cfgPath = config.DefaultConfigPath()
		}
	}

	// First run: write a commented starter config at the user-level
	// path. An explicit --config pointing at a missing file stays
	// missing and the defaults apply.
	if cfgFile == "" && cfgPath != "" && cfgPath == config.DefaultConfigPath() {
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			_ = config.WriteDefaultConfig(cfgPath)
		}
	}

	loaded, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snova: %v (continuing with defaults)\n", err)
		loaded = config.Defaults()
	}
	cfg = loaded

	if defsFile != "" {
		cfg.DefsPath = paths.ExpandHome(defsFile)
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.Colors,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "snova: %v (continuing with the default theme)\n", err)
	}
}

// initLogging turns on the debug log when asked for. The returned
// cleanup is a no-op when logging stays off.
func initLogging(prefix string) (func(), error) {
	if os.Getenv("SNOVA_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}

	logPath := os.Getenv("SNOVA_LOG")
	if logPath == "" {
		logPath = "snova-debug.log"
	}

	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "snova starting", "debug", true, "logPath", logPath)
	return cleanup, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	cleanup, err := initLogging("snova")
	if err != nil {
		return err
	}
	defer cleanup()

	if noWatch {
		cfg.AutoReload = false
	}

	provider, err := tracing.NewProvider(tracing.FromAppConfig(cfg.Tracing))
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	var tracer *tracing.SessionTracer
	if provider.Enabled() {
		tracer = tracing.NewSessionTracer(provider)
	}

	reg := registry.New()
	result := defs.Load(reg, cfg.DefsPath)

	model := app.NewWithConfig(cfg, cfgPath, reg, result.Problems, tracer)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, runErr := p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}

	// The accepted command prints after the alternate screen is gone,
	// so it lands in the scrollback. The label goes to stderr to keep
	// stdout clean for $(snova) and pipes.
	if m, ok := finalModel.(app.Model); ok {
		if command := m.FinalCommand(); command != "" {
			errOut := termenv.NewOutput(cmd.ErrOrStderr())
			fmt.Fprintln(cmd.ErrOrStderr(), errOut.String("Your command:").Bold())
			fmt.Fprintln(cmd.OutOrStdout(), command)
		}
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
