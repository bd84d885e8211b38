package camera

import (
	"time"

	"github.com/pkg/errors"

	"github.com/braheezy/glviewer/internal/core"
)

// Control moves a camera from window input.
type Control interface {
	Camera() *Camera
	// Update advances time based movement.
	Update(dt time.Duration)
	// Ignore suspends input handling, e.g. while the GUI holds the mouse.
	Ignore(ignore bool)
	// Close disconnects the control from the message bus.
	Close()
}

// Control kinds accepted by NewControl.
const (
	KindOrbit = "orbit"
	KindFly   = "fly"
)

// NewControl builds the control named by kind.
func NewControl(kind string, cam *Camera, bus *core.Bus, keys core.Keyboard) (Control, error) {
	switch kind {
	case KindOrbit, "":
		return NewOrbitControl(cam, bus), nil
	case KindFly:
		return NewFlyControl(cam, bus, keys), nil
	}
	return nil, errors.Errorf("unknown camera control %q", kind)
}

// base is the part every control shares.
type base struct {
	cam    *Camera
	bus    *core.Bus
	ignore bool
	ids    []core.ListenerID
}

func (b *base) Camera() *Camera    { return b.cam }
func (b *base) Ignore(ignore bool) { b.ignore = ignore }

func (b *base) Close() {
	for _, id := range b.ids {
		b.bus.Disconnect(id)
	}
	b.ids = nil
}
