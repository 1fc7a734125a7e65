// Package cli provides the command-line interface for RedWARP.
// Without a subcommand it launches the desktop form; the subcommands allow
// generating a profile from the terminal or from scripts.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/config"
	"github.com/yllada/redwarp/notify"
	"github.com/yllada/redwarp/tui"
	"github.com/yllada/redwarp/warp"
	"golang.org/x/term"
)

// BuildInfo carries the version variables injected at build time.
type BuildInfo struct {
	Version   string
	BuildTime string
	Commit    string
}

// GUIFunc launches the desktop form and returns its exit code.
type GUIFunc func(cfg *config.Config, version string) int

// sender delivers a desktop notification. *notify.Notifier satisfies it.
type sender interface {
	Send(n notify.Notification) error
}

// app holds the state shared by all commands.
type app struct {
	info BuildInfo
	gui  GUIFunc

	verbose    bool
	configPath string
	cfg        *config.Config
	exitCode   int

	newGenerator func(paths warp.Paths) tui.Generator
	notifier     sender
}

func newApp(info BuildInfo, gui GUIFunc) *app {
	return &app{
		info: info,
		gui:  gui,
		newGenerator: func(paths warp.Paths) tui.Generator {
			return warp.NewDriver(paths, nil)
		},
		notifier: notify.New(),
	}
}

// Execute runs the command line and returns the process exit code.
func Execute(info BuildInfo, gui GUIFunc) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(info, gui)
	defer common.CloseLogger()

	if err := a.rootCommand().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		return 1
	}
	return a.exitCode
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "redwarp",
		Short: "Generate Cloudflare WARP profiles with AmneziaWG obfuscation",
		Long: `RedWARP registers a Cloudflare WARP account with wgcf and rewrites the
generated WireGuard profile: endpoint, MTU, DNS, optional IPv6 removal and
AmneziaWG obfuscation parameters.

Run without a subcommand to open the desktop form.`,
		Version:           a.info.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runGUI,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Configuration file (default ~/.config/redwarp/config.yaml)")

	root.AddCommand(
		a.generateCommand(),
		a.tuiCommand(),
		a.presetsCommand(),
		a.versionCommand(),
	)
	return root
}

// setup initializes logging and loads the configuration before any command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := common.LevelInfo
	if a.verbose {
		level = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       level,
		EnableFile:  true,
		Console:     consoleFor(cmd),
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not initialize file logging: %v\n", err)
	}

	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		if a.cfg == nil {
			return err
		}
		common.LogWarn("Using defaults, configuration not saved: %v", err)
	}
	return nil
}

// consoleFor picks the log console of a command. The terminal form owns the
// screen, so its log lines only go to the file.
func consoleFor(cmd *cobra.Command) io.Writer {
	switch cmd.Name() {
	case "tui":
		return io.Discard
	case "generate":
		return cmd.ErrOrStderr()
	default:
		return os.Stdout
	}
}

func (a *app) runGUI(cmd *cobra.Command, _ []string) error {
	if a.gui == nil {
		return fmt.Errorf("this build has no desktop interface; use \"redwarp generate\" or \"redwarp tui\"")
	}
	common.LogInfo("Starting %s v%s", common.AppName, a.info.Version)
	a.exitCode = a.gui(a.cfg, a.info.Version)
	if a.exitCode != 0 {
		common.LogWarn("Application exited with code %d", a.exitCode)
	}
	return nil
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s v%s\n", common.AppName, a.info.Version)
			if a.info.BuildTime != "" && a.info.BuildTime != "unknown" {
				fmt.Fprintf(out, "  Build:  %s\n", a.info.BuildTime)
				fmt.Fprintf(out, "  Commit: %s\n", a.info.Commit)
			}
		},
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
