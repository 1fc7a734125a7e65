package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/warp"
)

// FormWindow is the main window: the generation form.
type FormWindow struct {
	app       *Application
	window    *gtk.ApplicationWindow
	headerBar *gtk.HeaderBar

	endpointEntry     *gtk.Entry
	mtuEntry          *gtk.Entry
	ipv6Switch        *gtk.Switch
	obfuscationSwitch *gtk.Switch
	randomizeSwitch   *gtk.Switch
	dns4DropDown      *gtk.DropDown
	dns4CustomEntry   *gtk.Entry
	dns6DropDown      *gtk.DropDown
	dns6CustomEntry   *gtk.Entry

	generateButton *gtk.Button
	spinner        *gtk.Spinner
	statusLabel    *gtk.Label
}

// NewFormWindow creates the form window populated from the saved defaults.
func NewFormWindow(app *Application) *FormWindow {
	mw := &FormWindow{
		app: app,
	}

	mw.window = gtk.NewApplicationWindow(&app.app.Application)
	mw.window.SetTitle(common.AppName)
	mw.window.SetDefaultSize(common.DefaultWindowWidth, common.DefaultWindowHeight)
	mw.window.SetResizable(false)
	mw.window.SetIconName("redwarp")

	// Closing the window keeps the tray running when configured.
	mw.window.SetHideOnClose(app.config.MinimizeToTray)

	mw.createLayout()
	mw.loadFromConfig()
	mw.updateSensitivity()

	return mw
}

// createLayout creates the window layout.
func (mw *FormWindow) createLayout() {
	mw.headerBar = gtk.NewHeaderBar()

	menuButton := gtk.NewMenuButton()
	menuButton.SetIconName("open-menu-symbolic")
	menuButton.SetTooltipText("Menu")
	menuButton.SetMenuModel(mw.createMenu())
	mw.headerBar.PackEnd(menuButton)

	mw.window.SetTitlebar(mw.headerBar)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)

	formBox := gtk.NewBox(gtk.OrientationVertical, 16)
	formBox.SetMarginTop(20)
	formBox.SetMarginBottom(12)
	formBox.SetMarginStart(20)
	formBox.SetMarginEnd(20)

	// Connection
	connCard := createCard()
	mw.endpointEntry = gtk.NewEntry()
	mw.endpointEntry.SetPlaceholderText(common.DefaultEndpoint)
	connCard.Append(createFieldRow("Endpoint", mw.endpointEntry))
	connCard.Append(createSeparator())
	mw.mtuEntry = gtk.NewEntry()
	mw.mtuEntry.SetPlaceholderText(common.DefaultMTU)
	mw.mtuEntry.SetWidthChars(6)
	connCard.Append(createFieldRow("MTU", mw.mtuEntry))
	connCard.Append(createSeparator())
	mw.ipv6Switch = newSwitch()
	connCard.Append(createFieldRow("IPv6", mw.ipv6Switch))
	formBox.Append(createSection("Connection", connCard))

	// Obfuscation
	obfsCard := createCard()
	mw.obfuscationSwitch = newSwitch()
	obfsCard.Append(createFieldRow("AmneziaWG parameters", mw.obfuscationSwitch))
	obfsCard.Append(createSeparator())
	mw.randomizeSwitch = newSwitch()
	obfsCard.Append(createFieldRow("Randomize values", mw.randomizeSwitch))
	formBox.Append(createSection("Obfuscation", obfsCard))

	// DNS
	dnsCard := createCard()
	mw.dns4DropDown = newPresetDropDown()
	dnsCard.Append(createFieldRow("IPv4 DNS", mw.dns4DropDown))
	mw.dns4CustomEntry = gtk.NewEntry()
	mw.dns4CustomEntry.SetPlaceholderText("1.1.1.1, 1.0.0.1")
	dnsCard.Append(createFieldRow("Custom IPv4", mw.dns4CustomEntry))
	dnsCard.Append(createSeparator())
	mw.dns6DropDown = newPresetDropDown()
	dnsCard.Append(createFieldRow("IPv6 DNS", mw.dns6DropDown))
	mw.dns6CustomEntry = gtk.NewEntry()
	mw.dns6CustomEntry.SetPlaceholderText("2606:4700:4700::1111, 2606:4700:4700::1001")
	dnsCard.Append(createFieldRow("Custom IPv6", mw.dns6CustomEntry))
	formBox.Append(createSection("DNS", dnsCard))

	// Generate
	actionBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	actionBox.SetHAlign(gtk.AlignCenter)
	actionBox.SetMarginTop(8)
	mw.spinner = gtk.NewSpinner()
	actionBox.Append(mw.spinner)
	mw.generateButton = gtk.NewButtonWithLabel("Generate")
	mw.generateButton.AddCSSClass("suggested-action")
	mw.generateButton.AddCSSClass("generate-button")
	mw.generateButton.ConnectClicked(mw.onGenerate)
	actionBox.Append(mw.generateButton)
	formBox.Append(actionBox)

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetVExpand(true)
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scrolled.SetChild(formBox)
	mainBox.Append(scrolled)

	mainBox.Append(mw.createStatusBar())
	mw.window.SetChild(mainBox)

	for _, sw := range []*gtk.Switch{mw.ipv6Switch, mw.obfuscationSwitch} {
		sw.NotifyProperty("active", mw.updateSensitivity)
	}
	for _, dd := range []*gtk.DropDown{mw.dns4DropDown, mw.dns6DropDown} {
		dd.NotifyProperty("selected", mw.updateSensitivity)
	}
}

// createMenu creates the application menu.
func (mw *FormWindow) createMenu() *gio.Menu {
	menu := gio.NewMenu()

	formSection := gio.NewMenu()
	formSection.Append("Save as Defaults", "app.save-defaults")
	formSection.Append("Reset Form", "app.reset")
	menu.AppendSection("", &formSection.MenuModel)

	settingsSection := gio.NewMenu()
	settingsSection.Append("Preferences", "app.preferences")
	menu.AppendSection("", &settingsSection.MenuModel)

	appSection := gio.NewMenu()
	appSection.Append("About", "app.about")
	appSection.Append("Quit", "app.quit")
	menu.AppendSection("", &appSection.MenuModel)

	mw.setupActions()

	return menu
}

// setupActions configures menu actions.
func (mw *FormWindow) setupActions() {
	actions := []struct {
		name   string
		accels []string
		fn     func()
	}{
		{"generate", []string{"<Control>Return"}, mw.onGenerate},
		{"save-defaults", []string{"<Control>s"}, mw.onSaveDefaults},
		{"reset", nil, mw.onReset},
		{"preferences", []string{"<Control>comma"}, mw.onPreferences},
		{"about", nil, mw.onAbout},
		{"quit", []string{"<Control>q"}, mw.app.Quit},
	}

	for _, a := range actions {
		fn := a.fn
		action := gio.NewSimpleAction(a.name, nil)
		action.ConnectActivate(func(_ *glib.Variant) {
			fn()
		})
		mw.app.app.AddAction(action)
		if len(a.accels) > 0 {
			mw.app.app.SetAccelsForAction("app."+a.name, a.accels)
		}
	}
}

// createStatusBar creates the status bar.
func (mw *FormWindow) createStatusBar() *gtk.Box {
	statusBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	statusBar.AddCSSClass("status-bar")

	mw.statusLabel = gtk.NewLabel("Ready")
	mw.statusLabel.SetXAlign(0)
	mw.statusLabel.SetHExpand(true)
	mw.statusLabel.SetEllipsize(3) // PANGO_ELLIPSIZE_END
	statusBar.Append(mw.statusLabel)

	return statusBar
}

// loadFromConfig fills the form with the saved defaults.
func (mw *FormWindow) loadFromConfig() {
	cfg := mw.app.config

	mw.endpointEntry.SetText(cfg.Endpoint)
	mw.mtuEntry.SetText(cfg.MTU)
	mw.ipv6Switch.SetActive(cfg.IPv6)
	mw.obfuscationSwitch.SetActive(cfg.Obfuscation)
	mw.randomizeSwitch.SetActive(cfg.Randomize)
	mw.dns4DropDown.SetSelected(uint(warp.PresetIndex(cfg.DNS.IPv4Preset)))
	mw.dns6DropDown.SetSelected(uint(warp.PresetIndex(cfg.DNS.IPv6Preset)))
	mw.dns4CustomEntry.SetText(cfg.DNS.IPv4Custom)
	mw.dns6CustomEntry.SetText(cfg.DNS.IPv6Custom)
}

// updateSensitivity applies the dependencies between form fields.
func (mw *FormWindow) updateSensitivity() {
	ipv6 := mw.ipv6Switch.Active()

	mw.randomizeSwitch.SetSensitive(mw.obfuscationSwitch.Active())
	mw.dns4CustomEntry.SetSensitive(selectedPreset(mw.dns4DropDown) == warp.PresetCustom)
	mw.dns6DropDown.SetSensitive(ipv6)
	mw.dns6CustomEntry.SetSensitive(ipv6 && selectedPreset(mw.dns6DropDown) == warp.PresetCustom)
}

// options builds generation options from the form.
func (mw *FormWindow) options() (warp.Options, error) {
	v4, err := warp.ResolveDNS(warp.FamilyIPv4, selectedPreset(mw.dns4DropDown), mw.dns4CustomEntry.Text())
	if err != nil {
		return warp.Options{}, err
	}
	v6, err := warp.ResolveDNS(warp.FamilyIPv6, selectedPreset(mw.dns6DropDown), mw.dns6CustomEntry.Text())
	if err != nil {
		return warp.Options{}, err
	}

	opts := warp.Options{
		Endpoint:             strings.TrimSpace(mw.endpointEntry.Text()),
		MTU:                  strings.TrimSpace(mw.mtuEntry.Text()),
		IPv6:                 mw.ipv6Switch.Active(),
		Obfuscation:          mw.obfuscationSwitch.Active(),
		RandomizeObfuscation: mw.obfuscationSwitch.Active() && mw.randomizeSwitch.Active(),
		DNSv4:                v4,
		DNSv6:                v6,
	}
	return opts, opts.Validate()
}

// Show displays the window.
func (mw *FormWindow) Show() {
	mw.window.Show()
}

// SetStatus updates the status text.
func (mw *FormWindow) SetStatus(text string) {
	if mw.statusLabel != nil {
		mw.statusLabel.SetText(text)
	}
}

// setBusy reflects a running generation in the form.
func (mw *FormWindow) setBusy(busy bool) {
	mw.generateButton.SetSensitive(!busy)
	if busy {
		mw.spinner.Start()
		mw.SetStatus("Running wgcf...")
	} else {
		mw.spinner.Stop()
	}
}

// Event handlers

func (mw *FormWindow) onGenerate() {
	opts, err := mw.options()
	if err != nil {
		mw.showResult(nil, err)
		return
	}

	if !mw.app.Generate(opts, mw.onGenerated) {
		mw.SetStatus("A generation is already running")
		return
	}
	mw.setBusy(true)
}

// onGenerated runs on the main thread after a run finished.
func (mw *FormWindow) onGenerated(res *warp.Result, err error) {
	mw.setBusy(false)
	mw.showResult(res, err)
}

// showResult presents the outcome of a run in a modal dialog.
func (mw *FormWindow) showResult(res *warp.Result, err error) {
	var heading, body string
	switch {
	case err != nil:
		heading, body = failureText(err)
		mw.SetStatus("Generation failed")
	default:
		heading = "Profile Ready"
		body = res.Message()
		if res.Obfuscation != nil {
			p := res.Obfuscation
			body += fmt.Sprintf("\n\nJc = %d, Jmin = %d, Jmax = %d", p.Jc, p.Jmin, p.Jmax)
		}
		mw.SetStatus("Saved " + res.OutputPath)
	}

	dialog := adw.NewMessageDialog(&mw.window.Window, heading, body)
	dialog.AddResponse("ok", "OK")
	dialog.SetDefaultResponse("ok")
	dialog.SetCloseResponse("ok")
	dialog.Present()
}

// failureText returns the dialog heading and body for a failed run.
func failureText(err error) (string, string) {
	var werr *warp.Error
	if !errors.As(err, &werr) {
		return "Invalid Settings", err.Error()
	}

	switch werr.Kind {
	case warp.MissingBinary:
		return "wgcf Not Found", fmt.Sprintf("%s\n\n%s", werr.Detail, werr.Subject)
	case warp.ExternalCommandFailed:
		return "wgcf Failed", fmt.Sprintf("%s %s", werr.Subject, werr.Detail)
	case warp.MissingTemplate:
		return "No Profile Generated", fmt.Sprintf("%s: %s", werr.Detail, filepath.Base(werr.Subject))
	case warp.VerificationFailed:
		return "Verification Failed", fmt.Sprintf("The profile could not be verified: %s", werr.Detail)
	default:
		return "Generation Failed", err.Error()
	}
}

func (mw *FormWindow) onSaveDefaults() {
	if _, err := mw.options(); err != nil {
		mw.showError("Defaults Not Saved", err.Error())
		return
	}
	cfg := mw.app.config

	cfg.Endpoint = strings.TrimSpace(mw.endpointEntry.Text())
	cfg.MTU = strings.TrimSpace(mw.mtuEntry.Text())
	cfg.IPv6 = mw.ipv6Switch.Active()
	cfg.Obfuscation = mw.obfuscationSwitch.Active()
	cfg.Randomize = mw.randomizeSwitch.Active()
	cfg.DNS.IPv4Preset = selectedPreset(mw.dns4DropDown)
	cfg.DNS.IPv6Preset = selectedPreset(mw.dns6DropDown)
	cfg.DNS.IPv4Custom = strings.TrimSpace(mw.dns4CustomEntry.Text())
	cfg.DNS.IPv6Custom = strings.TrimSpace(mw.dns6CustomEntry.Text())

	if err := cfg.Save(); err != nil {
		mw.showError("Error", "Could not save defaults: "+err.Error())
		return
	}
	mw.SetStatus("Defaults saved")
	mw.app.notifySaved()
}

func (mw *FormWindow) onReset() {
	mw.loadFromConfig()
	mw.updateSensitivity()
	mw.SetStatus("Form reset to saved defaults")
}

func (mw *FormWindow) onPreferences() {
	prefsDialog := NewPreferencesDialog(mw)
	prefsDialog.Show()
}

func (mw *FormWindow) onAbout() {
	about := gtk.NewAboutDialog()
	about.SetTransientFor(&mw.window.Window)
	about.SetModal(true)

	about.SetProgramName(common.AppName)
	about.SetLogoIconName("redwarp")
	about.SetVersion(mw.app.version)
	about.SetComments("Cloudflare WARP profiles for AmneziaWG.\nRegisters with wgcf and rewrites the generated profile.")

	about.SetWebsite("https://github.com/yllada/redwarp")
	about.SetWebsiteLabel("GitHub Repository")

	about.SetCopyright("© 2026 Yadian Llada Lopez")
	about.SetLicenseType(gtk.LicenseMITX11)
	about.SetAuthors([]string{"Yadian Llada Lopez <yadian@y3lcorp.com>"})

	about.Show()
}

// showError displays an error dialog.
func (mw *FormWindow) showError(title, message string) {
	dialog := adw.NewMessageDialog(&mw.window.Window, title, message)
	dialog.AddResponse("close", "Close")
	dialog.SetCloseResponse("close")
	dialog.Present()
}

// Widget helpers

func newSwitch() *gtk.Switch {
	sw := gtk.NewSwitch()
	sw.SetVAlign(gtk.AlignCenter)
	return sw
}

func newPresetDropDown() *gtk.DropDown {
	var labels []string
	for _, p := range warp.DNSPresets() {
		labels = append(labels, p.Label)
	}
	dd := gtk.NewDropDown(gtk.NewStringList(labels), nil)
	dd.SetVAlign(gtk.AlignCenter)
	return dd
}

// selectedPreset returns the preset ID chosen in dd.
func selectedPreset(dd *gtk.DropDown) string {
	presets := warp.DNSPresets()
	idx := int(dd.Selected())
	if idx < 0 || idx >= len(presets) {
		return presets[0].ID
	}
	return presets[idx].ID
}

// createSection wraps a card with a heading.
func createSection(title string, card *gtk.Box) *gtk.Box {
	section := gtk.NewBox(gtk.OrientationVertical, 8)

	label := gtk.NewLabel(title)
	label.SetXAlign(0)
	label.AddCSSClass("heading")
	label.AddCSSClass("dim-label")
	section.Append(label)
	section.Append(card)

	return section
}

// createCard creates a styled card container.
func createCard() *gtk.Box {
	card := gtk.NewBox(gtk.OrientationVertical, 0)
	card.AddCSSClass("card")
	card.AddCSSClass("form-card")
	return card
}

// createFieldRow creates a row with a label and its input widget.
func createFieldRow(title string, widget gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 12)
	row.SetMarginTop(10)
	row.SetMarginBottom(10)
	row.SetMarginStart(16)
	row.SetMarginEnd(16)

	label := gtk.NewLabel(title)
	label.SetXAlign(0)
	label.SetHExpand(true)
	label.AddCSSClass("field-title")
	row.Append(label)
	row.Append(widget)

	return row
}

// createSeparator creates a styled separator for cards.
func createSeparator() *gtk.Separator {
	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	sep.SetMarginStart(16)
	sep.SetMarginEnd(16)
	return sep
}
