// Package core holds the platform independent pieces of the viewer: input enums,
// window events, the message bus and the frame clock.
package core

import "image"

// Window is the surface the viewer renders into.
type Window interface {
	Size() (width, height int)
	FramebufferSize() (width, height int)
	SetVsync(enable bool)
	Fullscreen() bool
	SetFullscreen(enable bool)
	Close()
	Show()
	Iconify()
	Focused() bool
	Iconified() bool
	Visible() bool
	Closed() bool
	SetIcon(img image.Image)
}
