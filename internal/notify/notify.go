// Package notify sends desktop notifications over the D-Bus session bus.
package notify

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/monorkin/gplus-log-compiler/internal/compiler"
)

const (
	dbusName      = "org.freedesktop.Notifications"
	dbusPath      = "/org/freedesktop/Notifications"
	dbusInterface = "org.freedesktop.Notifications"

	APP_NAME       = "gplus-log-compiler"
	EXPIRE_TIMEOUT = int32(10000)
)

type Notification struct {
	Summary string
	Body    string
}

func ReportsWritten(cores int, reports []compiler.Report) Notification {
	lines := make([]string, 0, len(reports))
	for _, report := range reports {
		lines = append(lines, fmt.Sprintf("%s: %d cores in %s", report.Name, report.Cores, report.Path))
	}

	return Notification{
		Summary: fmt.Sprintf("G+ tracking compiled (%d cores)", cores),
		Body:    strings.Join(lines, "\n"),
	}
}

// Notifier talks to the freedesktop notification daemon
type Notifier struct {
	conn *dbus.Conn
}

func NewNotifier() (*Notifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	return &Notifier{conn: conn}, nil
}

// Send shows the notification and returns the id the daemon assigned to it.
func (n *Notifier) Send(notification Notification) (uint32, error) {
	object := n.conn.Object(dbusName, dbus.ObjectPath(dbusPath))

	call := object.Call(
		dbusInterface+".Notify",
		0,
		APP_NAME,
		uint32(0),
		"",
		notification.Summary,
		notification.Body,
		[]string{},
		map[string]dbus.Variant{},
		EXPIRE_TIMEOUT,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("failed to send notification: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("failed to read notification id: %w", err)
	}

	return id, nil
}

// Close closes the DBUS connection
func (n *Notifier) Close() error {
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
