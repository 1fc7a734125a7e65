// Package ui provides the graphical user interface for RedWARP.
//
// This package implements the GTK4 and libadwaita front-end:
//
//   - FormWindow: the generation form (endpoint, MTU, IPv6, obfuscation, DNS)
//   - PreferencesDialog: wgcf location, output file, notifications and theme
//   - TrayIndicator: tray icon with generate-from-defaults
//   - Desktop notifications after each run
//
// # Running Generations
//
// Application.Generate runs the warp driver on a background goroutine and
// hands the result back on the GTK main thread through glib.IdleAdd. Only
// one run is in flight at a time; a second request returns false and the
// caller reports it instead of queueing.
//
// # Theme Support
//
// The color scheme follows the system unless the user forces light or dark
// in the preferences. Custom CSS in styles.go uses theme-aware colors.
//
// # File Organization
//
//   - app.go: Application lifecycle and generation dispatch
//   - main_window.go: Form layout, menu and result dialogs
//   - preferences.go: Settings dialog
//   - tray.go: System tray indicator
//   - icons.go: Tray icon generation
//   - styles.go: CSS styling
//   - notifications.go: Desktop notification integration
package ui
