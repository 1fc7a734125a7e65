package ui

import (
	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/notify"
	"github.com/yllada/redwarp/warp"
)

// notifyResult shows a desktop notification for a finished run.
// Delivery failures are logged and otherwise ignored.
func (a *Application) notifyResult(res *warp.Result, err error) {
	if a.notifier == nil {
		return
	}
	if nerr := a.notifier.Send(notify.ForResult(res, err)); nerr != nil {
		common.LogWarn("Error showing notification: %v", nerr)
	}
}

// notifySaved confirms that the form values became the new defaults.
func (a *Application) notifySaved() {
	if a.notifier == nil || !a.config.ShowNotifications {
		return
	}
	note := notify.Notification{
		Title:   common.AppName,
		Message: "Current settings saved as defaults",
		Type:    notify.Info,
		Icon:    "document-save",
	}
	if err := a.notifier.Send(note); err != nil {
		common.LogWarn("Error showing notification: %v", err)
	}
}
