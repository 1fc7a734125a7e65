package ui

import (
	"strings"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/config"
)

// PreferencesDialog edits the settings that are not part of the form:
// where wgcf lives, where the profile goes and how the app behaves.
type PreferencesDialog struct {
	window     *gtk.Window
	formWindow *FormWindow
	config     *config.Config

	wgcfEntry      *gtk.Entry
	workDirEntry   *gtk.Entry
	outputEntry    *gtk.Entry
	minimizeSwitch *gtk.Switch
	notifySwitch   *gtk.Switch
	themeDropDown  *gtk.DropDown
	themeIDs       []string
}

// NewPreferencesDialog creates a new preferences dialog.
func NewPreferencesDialog(formWindow *FormWindow) *PreferencesDialog {
	pd := &PreferencesDialog{
		formWindow: formWindow,
		config:     formWindow.app.config,
		themeIDs:   []string{common.ThemeAuto, common.ThemeLight, common.ThemeDark},
	}

	pd.build()
	return pd
}

func (pd *PreferencesDialog) build() {
	pd.window = gtk.NewWindow()
	pd.window.SetTitle("Preferences")
	pd.window.SetTransientFor(&pd.formWindow.window.Window)
	pd.window.SetModal(true)
	pd.window.SetDefaultSize(500, 600)
	pd.window.SetResizable(false)

	rootBox := gtk.NewBox(gtk.OrientationVertical, 0)

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetVExpand(true)
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 20)
	mainBox.SetMarginTop(24)
	mainBox.SetMarginBottom(16)
	mainBox.SetMarginStart(24)
	mainBox.SetMarginEnd(24)

	// Generator
	genCard := createCard()
	pd.wgcfEntry = gtk.NewEntry()
	pd.wgcfEntry.SetText(pd.config.WGCFPath)
	pd.wgcfEntry.SetPlaceholderText(common.DefaultBinaryPath())
	genCard.Append(createSettingRow(
		"wgcf Executable",
		"Relative paths start at the working directory",
		pd.wgcfEntry,
	))
	genCard.Append(createSeparator())
	pd.workDirEntry = gtk.NewEntry()
	pd.workDirEntry.SetText(pd.config.WorkDir)
	pd.workDirEntry.SetPlaceholderText(".")
	genCard.Append(createSettingRow(
		"Working Directory",
		"wgcf runs here and the profile is written here",
		pd.workDirEntry,
	))
	genCard.Append(createSeparator())
	pd.outputEntry = gtk.NewEntry()
	pd.outputEntry.SetText(pd.config.OutputName)
	pd.outputEntry.SetPlaceholderText(common.OutputFileName)
	genCard.Append(createSettingRow(
		"Output File",
		"File name of the finished profile",
		pd.outputEntry,
	))
	mainBox.Append(createSection("Generator", genCard))

	// Behaviour
	behaviourCard := createCard()
	pd.minimizeSwitch = newSwitch()
	pd.minimizeSwitch.SetActive(pd.config.MinimizeToTray)
	behaviourCard.Append(createSettingRow(
		"Minimize to Tray",
		"Keep running in the system tray when the window is closed",
		pd.minimizeSwitch,
	))
	behaviourCard.Append(createSeparator())
	pd.notifySwitch = newSwitch()
	pd.notifySwitch.SetActive(pd.config.ShowNotifications)
	behaviourCard.Append(createSettingRow(
		"Notifications",
		"Show a notification when a profile is generated or a run fails",
		pd.notifySwitch,
	))
	mainBox.Append(createSection("Behaviour", behaviourCard))

	// Appearance
	appearCard := createCard()
	pd.themeDropDown = gtk.NewDropDown(gtk.NewStringList([]string{"System Default", "Light", "Dark"}), nil)
	pd.themeDropDown.SetSelected(pd.findThemeIndex(pd.config.Theme))
	pd.themeDropDown.SetVAlign(gtk.AlignCenter)
	pd.themeDropDown.AddCSSClass("flat")
	appearCard.Append(createSettingRow(
		"Theme",
		"Choose the visual appearance of the application",
		pd.themeDropDown,
	))
	mainBox.Append(createSection("Appearance", appearCard))

	scrolled.SetChild(mainBox)
	rootBox.Append(scrolled)

	buttonBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBar.SetHAlign(gtk.AlignEnd)
	buttonBar.SetMarginTop(16)
	buttonBar.SetMarginBottom(20)
	buttonBar.SetMarginStart(24)
	buttonBar.SetMarginEnd(24)
	buttonBar.AddCSSClass("dialog-action-area")

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.AddCSSClass("dialog-button")
	cancelBtn.ConnectClicked(func() {
		pd.window.Close()
	})
	buttonBar.Append(cancelBtn)

	saveBtn := gtk.NewButtonWithLabel("Save")
	saveBtn.AddCSSClass("suggested-action")
	saveBtn.AddCSSClass("dialog-button")
	saveBtn.ConnectClicked(func() {
		if pd.savePreferences() {
			pd.window.Close()
		}
	})
	buttonBar.Append(saveBtn)

	rootBox.Append(buttonBar)
	pd.window.SetChild(rootBox)
}

// findThemeIndex returns the index of a theme ID, or 0 if not found.
func (pd *PreferencesDialog) findThemeIndex(themeID string) uint {
	for i, id := range pd.themeIDs {
		if id == themeID {
			return uint(i)
		}
	}
	return 0
}

// savePreferences writes the dialog values to the config file and applies
// them. It returns false when the dialog should stay open.
func (pd *PreferencesDialog) savePreferences() bool {
	output := strings.TrimSpace(pd.outputEntry.Text())
	if strings.ContainsAny(output, `/\`) {
		pd.formWindow.showError("Invalid Output File", "Enter a file name without a directory.")
		return false
	}

	pd.config.WGCFPath = strings.TrimSpace(pd.wgcfEntry.Text())
	pd.config.WorkDir = strings.TrimSpace(pd.workDirEntry.Text())
	pd.config.OutputName = output
	pd.config.MinimizeToTray = pd.minimizeSwitch.Active()
	pd.config.ShowNotifications = pd.notifySwitch.Active()

	themeIdx := pd.themeDropDown.Selected()
	if int(themeIdx) < len(pd.themeIDs) {
		pd.config.Theme = pd.themeIDs[themeIdx]
	}

	if err := pd.config.Save(); err != nil {
		pd.formWindow.showError("Error", "Could not save preferences: "+err.Error())
		return false
	}

	pd.formWindow.app.ApplyTheme(pd.config.Theme)
	pd.formWindow.window.SetHideOnClose(pd.config.MinimizeToTray)
	pd.formWindow.SetStatus("Preferences saved")
	return true
}

// Show displays the preferences dialog.
func (pd *PreferencesDialog) Show() {
	pd.window.Show()
}

// createSettingRow creates a row with title, description, and widget.
func createSettingRow(title string, description string, widget gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 12)
	row.SetMarginTop(14)
	row.SetMarginBottom(14)
	row.SetMarginStart(16)
	row.SetMarginEnd(16)

	textBox := gtk.NewBox(gtk.OrientationVertical, 4)
	textBox.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.SetXAlign(0)
	titleLabel.AddCSSClass("field-title")
	textBox.Append(titleLabel)

	descLabel := gtk.NewLabel(description)
	descLabel.SetXAlign(0)
	descLabel.AddCSSClass("dim-label")
	descLabel.AddCSSClass("caption")
	descLabel.SetWrap(true)
	descLabel.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
	textBox.Append(descLabel)

	row.Append(textBox)
	row.Append(widget)

	return row
}
