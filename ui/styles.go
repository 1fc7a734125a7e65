package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// appCSS uses theme-aware colors so it works in dark and light mode.
const appCSS = `
/* Form cards */
.form-card {
    border-radius: 12px;
    border: 1px solid alpha(currentColor, 0.15);
}

.field-title {
    font-weight: 500;
}

/* Disabled rows fade with their widget */
.form-card entry:disabled,
.form-card dropdown:disabled {
    opacity: 0.5;
}

/* Generate button */
button.generate-button {
    background-color: #c01c28;
    color: white;
    font-weight: 600;
    min-width: 160px;
    min-height: 38px;
    border-radius: 19px;
}

button.generate-button:hover {
    background-color: #a51d2d;
}

button.generate-button:disabled {
    background-color: alpha(#c01c28, 0.4);
}

/* Switches follow the brand color */
switch:checked {
    background-color: #c01c28;
}

/* Status Bar */
.status-bar {
    border-top: 1px solid alpha(currentColor, 0.15);
    padding: 6px 12px;
    opacity: 0.8;
}

/* Entry fields */
entry {
    border-radius: 6px;
    min-height: 34px;
}

/* Preferences */
.dialog-action-area {
    border-top: 1px solid alpha(currentColor, 0.1);
    padding-top: 12px;
}

button.dialog-button {
    min-width: 90px;
}

button.flat {
    background-color: transparent;
}

button.flat:hover {
    background-color: alpha(currentColor, 0.1);
}
`

// LoadStyles loads the custom CSS styles for the application.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
