package input

import (
	"errors"
	"os"
	"time"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	evdev "github.com/holoplot/go-evdev"
	"go.uber.org/atomic"
)

// PowerButtonConfig describes how the power key is read on a device.
type PowerButtonConfig struct {
	DevicePath    string
	ButtonCode    evdev.EvCode
	ShortPressMax time.Duration
}

// DefaultPowerButtonConfig returns the evdev settings used by NextUI devices.
// TG5050 exposes the power key on event2, every other board on event1.
func DefaultPowerButtonConfig(platform string) PowerButtonConfig {
	path := "/dev/input/event1"
	if platform == "TG5050" {
		path = "/dev/input/event2"
	}
	return PowerButtonConfig{
		DevicePath:    path,
		ButtonCode:    evdev.KEY_POWER,
		ShortPressMax: 2 * time.Second,
	}
}

// PowerButton watches the power key and raises a quit request the frame
// loop polls. It runs its own goroutine because evdev reads block.
type PowerButton struct {
	config    PowerButtonConfig
	device    *evdev.InputDevice
	requested *atomic.Bool
	pressedAt time.Time
}

// OpenPowerButton opens the configured input device. A missing device is not
// an error on desktop builds; callers check for a nil PowerButton.
func OpenPowerButton(config PowerButtonConfig) (*PowerButton, error) {
	device, err := evdev.Open(config.DevicePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	return &PowerButton{
		config:    config,
		device:    device,
		requested: atomic.NewBool(false),
	}, nil
}

// Start begins reading events in the background.
func (p *PowerButton) Start() {
	go p.run()
}

func (p *PowerButton) run() {
	logger := internal.GetInternalLogger()
	for {
		event, err := p.device.ReadOne()
		if err != nil {
			logger.Debug("Power button reader stopped", "error", err)
			return
		}
		p.handle(event.Type, event.Code, event.Value, time.Now())
	}
}

func (p *PowerButton) handle(evType evdev.EvType, code evdev.EvCode, value int32, now time.Time) {
	if evType != evdev.EV_KEY || code != p.config.ButtonCode {
		return
	}

	switch value {
	case 1:
		p.pressedAt = now
	case 0:
		if p.pressedAt.IsZero() {
			return
		}
		held := now.Sub(p.pressedAt)
		p.pressedAt = time.Time{}
		if held <= p.config.ShortPressMax {
			p.requested.Store(true)
		}
	}
}

// Requested reports and clears a pending quit request.
func (p *PowerButton) Requested() bool {
	if p == nil {
		return false
	}
	return p.requested.CompareAndSwap(true, false)
}

func (p *PowerButton) Close() error {
	if p == nil || p.device == nil {
		return nil
	}
	return p.device.Close()
}
