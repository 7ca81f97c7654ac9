// Package platform delivers desktop notifications through the host's
// notification service.
package platform

import "errors"

const appName = "PrintCanvas"

// ErrUnsupported is returned where the host has no notification service.
var ErrUnsupported = errors.New("desktop notifications are not supported on this platform")

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
}
