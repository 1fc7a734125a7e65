package ui

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/config"
	"github.com/yllada/redwarp/notify"
	"github.com/yllada/redwarp/warp"
)

// Application represents the main application
type Application struct {
	app      *adw.Application
	window   *FormWindow
	config   *config.Config
	version  string
	tray     *TrayIndicator
	notifier *notify.Notifier

	ctx    context.Context
	cancel context.CancelFunc

	// mu guards busy; at most one generation runs at a time.
	mu   sync.Mutex
	busy bool
}

// NewApplication creates a new application
func NewApplication(cfg *config.Config, version string) *Application {
	app := adw.NewApplication(common.AppID, gio.ApplicationFlagsNone)

	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())
	application := &Application{
		app:      app,
		config:   cfg,
		version:  version,
		notifier: notify.New(),
		ctx:      ctx,
		cancel:   cancel,
	}

	app.ConnectActivate(application.onActivate)
	app.ConnectShutdown(func() {
		// Kills a wgcf child that is still running.
		application.cancel()
	})

	return application
}

// Run runs the application
func (a *Application) Run(args []string) int {
	return a.app.Run(args)
}

// onActivate is called when the application is activated
func (a *Application) onActivate() {
	if a.window != nil {
		a.showWindow()
		return
	}

	a.ApplyTheme(a.config.Theme)
	a.setupAppIcon()
	LoadStyles()

	a.window = NewFormWindow(a)
	a.window.Show()

	a.tray = NewTrayIndicator(a)
	go a.tray.Run()
}

// setupAppIcon sets up the application icon
func (a *Application) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	iconTheme := gtk.IconThemeGetForDisplay(display)
	if iconTheme == nil {
		return
	}

	// GTK4 looks for theme subdirectories (like "hicolor") inside these paths
	if execPath, err := os.Executable(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(filepath.Dir(execPath), "assets", "icons"))
	}
	if cwd, err := os.Getwd(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(cwd, "assets", "icons"))
	}

	gtk.WindowSetDefaultIconName("redwarp")
}

// GetConfig returns the configuration
func (a *Application) GetConfig() *config.Config {
	return a.config
}

// ApplyTheme applies the specified theme to the application.
// Supported values: "auto" (system default), "light", "dark"
func (a *Application) ApplyTheme(theme string) {
	manager := adw.StyleManagerGetDefault()
	if manager == nil {
		return
	}

	switch theme {
	case common.ThemeLight:
		manager.SetColorScheme(adw.ColorSchemeForceLight)
	case common.ThemeDark:
		manager.SetColorScheme(adw.ColorSchemeForceDark)
	default:
		manager.SetColorScheme(adw.ColorSchemeDefault)
	}
}

// GetVersion returns the application version
func (a *Application) GetVersion() string {
	return a.version
}

// showWindow shows the main window
func (a *Application) showWindow() {
	if a.window != nil {
		a.window.window.Present()
	}
}

// Quit closes the application
func (a *Application) Quit() {
	a.app.Quit()
}

// Busy reports whether a generation is running.
func (a *Application) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

// Generate runs the driver with opts in the background. done is called on
// the GTK main thread. It returns false when another run is in flight.
func (a *Application) Generate(opts warp.Options, done func(*warp.Result, error)) bool {
	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return false
	}
	a.busy = true
	a.mu.Unlock()

	paths := a.config.Paths()
	notifyEnabled := a.config.ShowNotifications
	if a.tray != nil {
		a.tray.SetBusy()
	}

	go func() {
		res, err := warp.NewDriver(paths, nil).Generate(a.ctx, opts)

		a.mu.Lock()
		a.busy = false
		a.mu.Unlock()

		if notifyEnabled {
			a.notifyResult(res, err)
		}
		if a.tray != nil {
			a.tray.SetResult(err == nil)
		}
		common.GetLogger().CheckRotation()

		glib.IdleAdd(func() {
			if done != nil {
				done(res, err)
			}
		})
	}()
	return true
}
