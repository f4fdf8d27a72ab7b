package internal

import (
	"time"

	"github.com/BrandonKowalski/doomdex/pkg/ui/constants"
)

// Direction represents a cardinal direction for navigation.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

// DirectionalInput turns a held d-pad direction into repeated steps: the
// first repeat after repeatDelay, then one every repeatInterval.
type DirectionalInput struct {
	held           Direction
	heldSince      time.Time
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
	now            func() time.Time
}

// NewDirectionalInput uses 300ms before the first repeat and 50ms after.
func NewDirectionalInput() DirectionalInput {
	return NewDirectionalInputWithTiming(300*time.Millisecond, 50*time.Millisecond)
}

func NewDirectionalInputWithTiming(delay, interval time.Duration) DirectionalInput {
	return DirectionalInput{
		repeatDelay:    delay,
		repeatInterval: interval,
		now:            time.Now,
	}
}

func directionOf(button constants.VirtualButton) Direction {
	switch button {
	case constants.VirtualButtonUp:
		return DirectionUp
	case constants.VirtualButtonDown:
		return DirectionDown
	case constants.VirtualButtonLeft:
		return DirectionLeft
	case constants.VirtualButtonRight:
		return DirectionRight
	}
	return DirectionNone
}

// SetHeld records a press or release. It returns false for buttons that
// are not directions.
func (d *DirectionalInput) SetHeld(button constants.VirtualButton, held bool) bool {
	dir := directionOf(button)
	if dir == DirectionNone {
		return false
	}

	switch {
	case held:
		d.held = dir
		d.heldSince = d.now()
		d.lastRepeatTime = d.heldSince
		d.hasRepeated = false
	case d.held == dir:
		d.Reset()
	}
	return true
}

// HeldDirection returns the direction currently held, if any.
func (d *DirectionalInput) HeldDirection() Direction {
	return d.held
}

// Update returns the direction to step this frame, or DirectionNone.
// Call it once per frame.
func (d *DirectionalInput) Update() Direction {
	if d.held == DirectionNone {
		return DirectionNone
	}

	threshold := d.repeatInterval
	if !d.hasRepeated {
		threshold = d.repeatDelay
	}

	now := d.now()
	if now.Sub(d.lastRepeatTime) < threshold {
		return DirectionNone
	}
	d.lastRepeatTime = now
	d.hasRepeated = true
	return d.held
}

// Reset forgets any held direction.
func (d *DirectionalInput) Reset() {
	d.held = DirectionNone
	d.hasRepeated = false
}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return ""
	}
}
