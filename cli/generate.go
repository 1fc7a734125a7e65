package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/config"
	"github.com/yllada/redwarp/notify"
	"github.com/yllada/redwarp/warp"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// generateFlags holds the values of the generate command flags.
type generateFlags struct {
	endpoint    string
	mtu         string
	ipv6        bool
	obfuscation bool
	randomize   bool
	dns4        string
	dns6        string
	dns4Custom  string
	dns6Custom  string
	wgcf        string
	workDir     string
	output      string
	notify      bool
	save        bool
}

func (a *app) generateCommand() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Register with wgcf and write the rewritten profile",
		Long: `Register a new WARP account with wgcf, generate its profile and rewrite it.
Flags that are not given fall back to the saved configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.endpoint, "endpoint", "e", "", "Peer endpoint (host:port)")
	flags.StringVarP(&f.mtu, "mtu", "m", "", "Interface MTU")
	flags.BoolVar(&f.ipv6, "ipv6", true, "Keep IPv6 addresses, routes and resolvers")
	flags.BoolVar(&f.obfuscation, "obfuscation", true, "Insert AmneziaWG obfuscation parameters")
	flags.BoolVar(&f.randomize, "randomize", false, "Randomize obfuscation parameters")
	flags.StringVar(&f.dns4, "dns4", "", "IPv4 DNS preset (see \"redwarp presets\")")
	flags.StringVar(&f.dns6, "dns6", "", "IPv6 DNS preset (see \"redwarp presets\")")
	flags.StringVar(&f.dns4Custom, "dns4-custom", "", "IPv4 resolvers for the custom preset")
	flags.StringVar(&f.dns6Custom, "dns6-custom", "", "IPv6 resolvers for the custom preset")
	flags.StringVar(&f.wgcf, "wgcf", "", "Path to the wgcf executable")
	flags.StringVarP(&f.workDir, "workdir", "w", "", "Working directory for wgcf and the profile")
	flags.StringVarP(&f.output, "output", "o", "", "Output file name")
	flags.BoolVar(&f.notify, "notify", false, "Send a desktop notification when done")
	flags.BoolVar(&f.save, "save", false, "Save these settings as the new defaults")

	return cmd
}

// applyFlags returns a copy of cfg with every changed flag applied.
func applyFlags(cfg *config.Config, f generateFlags, changed func(name string) bool) *config.Config {
	merged := *cfg

	if changed("endpoint") {
		merged.Endpoint = f.endpoint
	}
	if changed("mtu") {
		merged.MTU = f.mtu
	}
	if changed("ipv6") {
		merged.IPv6 = f.ipv6
	}
	if changed("obfuscation") {
		merged.Obfuscation = f.obfuscation
	}
	if changed("randomize") {
		merged.Randomize = f.randomize
	}
	if changed("dns4") {
		merged.DNS.IPv4Preset = f.dns4
	}
	if changed("dns6") {
		merged.DNS.IPv6Preset = f.dns6
	}
	// Custom resolvers without a preset imply the custom preset.
	if changed("dns4-custom") {
		merged.DNS.IPv4Custom = f.dns4Custom
		if !changed("dns4") {
			merged.DNS.IPv4Preset = warp.PresetCustom
		}
	}
	if changed("dns6-custom") {
		merged.DNS.IPv6Custom = f.dns6Custom
		if !changed("dns6") {
			merged.DNS.IPv6Preset = warp.PresetCustom
		}
	}
	if changed("wgcf") {
		merged.WGCFPath = f.wgcf
	}
	if changed("workdir") {
		merged.WorkDir = f.workDir
	}
	if changed("output") {
		merged.OutputName = f.output
	}
	if changed("notify") {
		merged.ShowNotifications = f.notify
	}
	return &merged
}

// buildOptions turns the merged configuration into validated run inputs.
func buildOptions(cfg *config.Config) (warp.Options, warp.Paths, error) {
	opts, err := cfg.Options()
	if err != nil {
		return warp.Options{}, warp.Paths{}, err
	}
	if err := opts.Validate(); err != nil {
		return warp.Options{}, warp.Paths{}, err
	}
	return opts, cfg.Paths(), nil
}

func (a *app) runGenerate(cmd *cobra.Command, f generateFlags) error {
	merged := applyFlags(a.cfg, f, cmd.Flags().Changed)

	opts, paths, err := buildOptions(merged)
	if err != nil {
		return err
	}

	if f.save {
		if err := merged.Save(); err != nil {
			return err
		}
		common.LogInfo("Saved defaults to %s", merged.Path())
	}

	res, err := a.newGenerator(paths).Generate(cmd.Context(), opts)
	if merged.ShowNotifications {
		a.sendNotification(res, err)
	}
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), res)
	return nil
}

func (a *app) sendNotification(res *warp.Result, err error) {
	if a.notifier == nil {
		return
	}
	if nerr := a.notifier.Send(notify.ForResult(res, err)); nerr != nil {
		common.LogWarn("Could not send notification: %v", nerr)
	}
}

// printResult writes the success verdict, coloured on a terminal.
func printResult(w io.Writer, res *warp.Result) {
	verdict := "✓ " + res.Message()
	detail := "  " + res.OutputPath
	if p := res.Obfuscation; p != nil {
		detail += fmt.Sprintf("\n  Jc=%d Jmin=%d Jmax=%d H=%d/%d/%d/%d", p.Jc, p.Jmin, p.Jmax, p.H1, p.H2, p.H3, p.H4)
	}

	if isTerminal(w) {
		verdict = successStyle.Render(verdict)
		detail = dimStyle.Render(detail)
	}
	fmt.Fprintln(w, verdict)
	fmt.Fprintln(w, detail)
}

// printError writes a failure verdict, coloured on a terminal.
func printError(w io.Writer, err error) {
	msg := "Error: " + err.Error()
	if isTerminal(w) {
		msg = errorStyle.Render(msg)
	}
	fmt.Fprintln(w, msg)
}
