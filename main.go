// Package main provides the entry point for RedWARP.
// RedWARP registers a Cloudflare WARP account through wgcf and rewrites the
// generated WireGuard profile for AmneziaWG clients.
//
// Features:
//   - Endpoint, MTU and DNS substitution with resolver presets
//   - Optional removal of IPv6 addresses and routes
//   - Fixed or randomized AmneziaWG obfuscation parameters
//   - GTK4 desktop form with tray quick-generate
//   - Terminal form and scriptable command line
//
// Usage:
//
//	redwarp [command] [flags]
//
// Environment:
//
//	The wgcf executable must be available, by default at bin/wgcf_<arch>.
package main

import (
	"os"

	"github.com/yllada/redwarp/cli"
	"github.com/yllada/redwarp/config"
	"github.com/yllada/redwarp/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

func main() {
	info := cli.BuildInfo{Version: appVersion, BuildTime: buildTime, Commit: commitSHA}
	os.Exit(cli.Execute(info, runGUI))
}

// runGUI starts the GTK application.
func runGUI(cfg *config.Config, version string) int {
	app := ui.NewApplication(cfg, version)
	return app.Run(os.Args[:1])
}
