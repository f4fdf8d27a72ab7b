package internal

import (
	"errors"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/holoplot/go-evdev"
)

// PowerButtonConfig describes the evdev device carrying the power key and
// what to run for short and long presses.
type PowerButtonConfig struct {
	ButtonCode      int
	DevicePath      string
	ShortPressMax   time.Duration
	CoolDownTime    time.Duration
	SuspendScript   string
	ShutdownCommand string
}

type powerAction int

const (
	powerNone powerAction = iota
	powerSuspend
	powerShutdown
)

// powerTracker classifies press/release pairs. Releases arriving within
// the cool down of the previous action are ignored so a wake-up press does
// not immediately suspend again.
type powerTracker struct {
	cfg        PowerButtonConfig
	pressedAt  time.Time
	pressed    bool
	lastAction time.Time
}

func (t *powerTracker) press(now time.Time) {
	t.pressed = true
	t.pressedAt = now
}

func (t *powerTracker) release(now time.Time) powerAction {
	if !t.pressed {
		return powerNone
	}
	t.pressed = false

	if !t.lastAction.IsZero() && now.Sub(t.lastAction) < t.cfg.CoolDownTime {
		return powerNone
	}
	t.lastAction = now

	if now.Sub(t.pressedAt) <= t.cfg.ShortPressMax {
		return powerSuspend
	}
	return powerShutdown
}

// PowerButton watches the power key on an evdev device until Stop.
type PowerButton struct {
	cfg     PowerButtonConfig
	dev     *evdev.InputDevice
	tracker powerTracker
	done    chan struct{}
	once    sync.Once
}

// StartPowerButton opens the device and starts the watcher goroutine.
func StartPowerButton(cfg PowerButtonConfig) (*PowerButton, error) {
	dev, err := evdev.Open(cfg.DevicePath)
	if err != nil {
		return nil, err
	}

	pb := &PowerButton{
		cfg:     cfg,
		dev:     dev,
		tracker: powerTracker{cfg: cfg},
		done:    make(chan struct{}),
	}
	go pb.run()
	return pb, nil
}

func (pb *PowerButton) run() {
	defer close(pb.done)
	logger := GetInternalLogger()

	for {
		ev, err := pb.dev.ReadOne()
		if err != nil {
			if !errors.Is(err, os.ErrClosed) {
				logger.Debug("power button reader stopped", "error", err)
			}
			return
		}
		if ev.Type != evdev.EV_KEY || ev.Code != evdev.EvCode(pb.cfg.ButtonCode) {
			continue
		}

		now := time.Now()
		switch ev.Value {
		case 1:
			pb.tracker.press(now)
		case 0:
			pb.perform(pb.tracker.release(now))
		}
	}
}

func (pb *PowerButton) perform(action powerAction) {
	var cmd string
	switch action {
	case powerSuspend:
		cmd = pb.cfg.SuspendScript
	case powerShutdown:
		cmd = pb.cfg.ShutdownCommand
	default:
		return
	}
	if cmd == "" {
		return
	}

	GetInternalLogger().Info("power button", "action", cmd)
	if err := exec.Command(cmd).Run(); err != nil {
		GetInternalLogger().Error("power command failed", "command", cmd, "error", err)
	}
}

// Stop closes the device, which unblocks the reader, and waits for it.
func (pb *PowerButton) Stop() {
	pb.once.Do(func() {
		pb.dev.Close()
		<-pb.done
	})
}
