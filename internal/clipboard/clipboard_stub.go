//go:build !((cgo && (linux || freebsd || openbsd || netbsd || dragonfly || darwin)) || windows)

package clipboard

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("clipboard is not available in this build (requires cgo on unix)")

func WriteImage(image.Image) error { return errUnsupported }

func ReadImage() ([]byte, error) { return nil, errUnsupported }

func WriteText(string) error { return errUnsupported }
