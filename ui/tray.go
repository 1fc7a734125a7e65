package ui

import (
	"fmt"
	"path/filepath"

	"fyne.io/systray"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/warp"
)

// Pre-generated icons for performance.
var trayIcons = map[TrayState][]byte{
	StateIdle:   GenerateIcon(StateIdle),
	StateBusy:   GenerateIcon(StateBusy),
	StateDone:   GenerateIcon(StateDone),
	StateFailed: GenerateIcon(StateFailed),
}

// TrayIndicator manages the system tray icon and menu.
// It can generate a profile from the saved defaults without opening the window.
type TrayIndicator struct {
	app          *Application
	statusItem   *systray.MenuItem
	generateItem *systray.MenuItem
}

// NewTrayIndicator creates a new system tray indicator.
func NewTrayIndicator(app *Application) *TrayIndicator {
	return &TrayIndicator{app: app}
}

// Run starts the system tray indicator.
// This should be called from a goroutine as it blocks.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the systray is ready.
func (t *TrayIndicator) onReady() {
	systray.SetIcon(trayIcons[StateIdle])
	systray.SetTitle(common.AppName)
	systray.SetTooltip(common.AppName + " - Ready")

	t.statusItem = systray.AddMenuItem("○  Ready", "Last generation")
	t.statusItem.Disable()

	systray.AddSeparator()

	t.generateItem = systray.AddMenuItem("Generate with Saved Settings", "Run wgcf with the saved defaults")
	go func() {
		for range t.generateItem.ClickedCh {
			t.quickGenerate()
		}
	}()

	showItem := systray.AddMenuItem("Open "+common.AppName, "Show main window")
	go func() {
		for range showItem.ClickedCh {
			glib.IdleAdd(t.app.showWindow)
		}
	}()

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Close "+common.AppName)
	go func() {
		for range quitItem.ClickedCh {
			glib.IdleAdd(t.app.Quit)
			systray.Quit()
		}
	}()
}

// onExit is called when the systray is about to exit.
func (t *TrayIndicator) onExit() {
	t.app.cancel()
	common.LogInfo("Tray indicator cleanup completed")
}

// quickGenerate runs the driver with the saved defaults.
func (t *TrayIndicator) quickGenerate() {
	if t.app.Busy() {
		common.LogInfo("Tray: %v", common.ErrBusy)
		return
	}

	opts, err := t.app.config.Options()
	if err == nil {
		err = opts.Validate()
	}
	if err != nil {
		common.LogWarn("Tray: saved settings are invalid: %v", err)
		if t.app.config.ShowNotifications {
			t.app.notifyResult(nil, err)
		}
		t.SetResult(false)
		return
	}

	started := t.app.Generate(opts, func(res *warp.Result, err error) {
		if t.app.window == nil {
			return
		}
		if err != nil {
			t.app.window.SetStatus("Generation failed: " + err.Error())
			return
		}
		t.app.window.SetStatus("Saved " + res.OutputPath)
	})
	if !started {
		common.LogInfo("Tray: %v", common.ErrBusy)
	}
}

// SetBusy shows that a generation is running.
func (t *TrayIndicator) SetBusy() {
	systray.SetIcon(trayIcons[StateBusy])
	systray.SetTooltip(common.AppName + " - Running wgcf...")
	if t.statusItem != nil {
		t.statusItem.SetTitle("⟳  Generating...")
	}
	if t.generateItem != nil {
		t.generateItem.Disable()
	}
}

// SetResult shows the outcome of the last generation.
func (t *TrayIndicator) SetResult(ok bool) {
	output := filepath.Base(t.app.config.Paths().OutputPath())
	if ok {
		systray.SetIcon(trayIcons[StateDone])
		systray.SetTooltip(fmt.Sprintf("%s - %s saved", common.AppName, output))
		if t.statusItem != nil {
			t.statusItem.SetTitle("●  Saved " + output)
		}
	} else {
		systray.SetIcon(trayIcons[StateFailed])
		systray.SetTooltip(common.AppName + " - Generation failed")
		if t.statusItem != nil {
			t.statusItem.SetTitle("✕  Generation failed")
		}
	}
	if t.generateItem != nil {
		t.generateItem.Enable()
	}
}
