// Package notify sends desktop notifications over the freedesktop
// notification D-Bus interface.
package notify

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/warp"
)

// D-Bus coordinates of the notification daemon.
const (
	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall = busName + ".Notify"
)

// expireTimeout is how long a notification stays visible, in milliseconds.
const expireTimeout int32 = 5000

// Type represents the type of notification
type Type int

const (
	Info Type = iota
	Success
	Warning
	Error
)

// Urgency levels understood by org.freedesktop.Notifications.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// Notification represents a system notification
type Notification struct {
	Title   string
	Message string
	Type    Type
	Icon    string
}

// icon returns the themed icon name for n.
func (n Notification) icon() string {
	if n.Icon != "" {
		return n.Icon
	}
	switch n.Type {
	case Warning:
		return "dialog-warning"
	case Error:
		return "dialog-error"
	default:
		return "network-vpn"
	}
}

// urgency maps the notification type to a D-Bus urgency hint.
func (n Notification) urgency() byte {
	switch n.Type {
	case Error:
		return UrgencyCritical
	case Warning:
		return UrgencyNormal
	default:
		return UrgencyLow
	}
}

// caller is the subset of dbus.BusObject used to deliver notifications.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Notifier delivers notifications to the session bus. The connection is
// opened on first use.
type Notifier struct {
	AppName string

	mu  sync.Mutex
	obj caller
}

// New creates a notifier for the application.
func New() *Notifier {
	return &Notifier{AppName: common.AppName}
}

func (n *Notifier) object() (caller, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.obj != nil {
		return n.obj, nil
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	n.obj = conn.Object(busName, objectPath)
	return n.obj, nil
}

// Send delivers a notification.
func (n *Notifier) Send(note Notification) error {
	obj, err := n.object()
	if err != nil {
		return err
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(note.urgency()),
	}
	call := obj.Call(notifyCall, 0,
		n.AppName,
		uint32(0),
		note.icon(),
		note.Title,
		note.Message,
		[]string{},
		hints,
		expireTimeout,
	)
	if call.Err != nil {
		return fmt.Errorf("sending notification: %w", call.Err)
	}
	return nil
}

// Notify sends an informational notification.
func (n *Notifier) Notify(title, message string) error {
	return n.Send(Notification{Title: title, Message: message, Type: Info})
}

// NotifyWithIcon sends an informational notification with a custom icon.
func (n *Notifier) NotifyWithIcon(title, message, icon string) error {
	return n.Send(Notification{Title: title, Message: message, Type: Info, Icon: icon})
}

var _ common.Notifier = (*Notifier)(nil)

// ForResult describes the outcome of a generation run.
func ForResult(res *warp.Result, err error) Notification {
	if err != nil {
		title := "Generation failed"
		if kind := warp.KindOf(err); kind != 0 {
			title = "Generation failed: " + kind.String()
		}
		var werr *warp.Error
		msg := err.Error()
		if errors.As(err, &werr) {
			msg = werr.Detail
			if werr.Subject != "" {
				msg += " (" + filepath.Base(werr.Subject) + ")"
			}
		}
		return Notification{Title: title, Message: msg, Type: Error}
	}
	return Notification{
		Title:   common.AppName,
		Message: res.Message(),
		Type:    Success,
		Icon:    "network-vpn",
	}
}
