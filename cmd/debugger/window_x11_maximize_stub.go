//go:build !linux || wayland

package main

import (
	"fyne.io/fyne/v2"
)

// applyX11MaximizeHint is a no-op off X11
func applyX11MaximizeHint(fyne.Window) error {
	return nil
}
