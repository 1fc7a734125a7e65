// Package common provides shared constants, types, and utilities
// used across the RedWARP application.
package common

import (
	"path/filepath"
	"runtime"
)

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "io.github.yllada.RedWARP"
	// AppName is the display name of the application.
	AppName = "RedWARP"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "redwarp"
)

// File names used by the application.
const (
	ConfigFileName = "config.yaml"
	LogFileName    = "redwarp.log"
)

// File names produced and consumed by the wgcf generator.
const (
	// TemplateFileName is the profile wgcf writes on "generate".
	TemplateFileName = "wgcf-profile.conf"
	// AccountFileName is the account state wgcf writes on "register".
	AccountFileName = "wgcf-account.toml"
	// OutputFileName is the default name of the rewritten profile.
	OutputFileName = "RedWARP.conf"
	// TempSuffix is appended to the template name during the rewrite pass.
	TempSuffix = ".new"
)

// Form defaults.
const (
	DefaultEndpoint = "162.159.193.5:4500"
	DefaultMTU      = "1420"
)

// UI constants.
const (
	// DefaultWindowWidth is the default form window width.
	DefaultWindowWidth = 460
	// DefaultWindowHeight is the default form window height.
	DefaultWindowHeight = 560
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
)

// Theme values.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultBinaryPath returns the bundled wgcf location for the running platform.
func DefaultBinaryPath() string {
	name := "wgcf_" + runtime.GOARCH
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join("bin", name)
}
