package internal

import (
	"sync"

	"github.com/BrandonKowalski/doomdex/pkg/ui/constants"
	"github.com/veandco/go-sdl2/sdl"
)

// Event is a physical input translated to a virtual button.
type Event struct {
	Button  constants.VirtualButton
	Pressed bool
}

const axisThreshold = 16000

var keyboardMapping = map[sdl.Keycode]constants.VirtualButton{
	sdl.K_UP:        constants.VirtualButtonUp,
	sdl.K_DOWN:      constants.VirtualButtonDown,
	sdl.K_LEFT:      constants.VirtualButtonLeft,
	sdl.K_RIGHT:     constants.VirtualButtonRight,
	sdl.K_a:         constants.VirtualButtonA,
	sdl.K_RETURN:    constants.VirtualButtonA,
	sdl.K_b:         constants.VirtualButtonB,
	sdl.K_BACKSPACE: constants.VirtualButtonB,
	sdl.K_x:         constants.VirtualButtonX,
	sdl.K_y:         constants.VirtualButtonY,
	sdl.K_q:         constants.VirtualButtonL1,
	sdl.K_e:         constants.VirtualButtonR1,
	sdl.K_SPACE:     constants.VirtualButtonStart,
	sdl.K_TAB:       constants.VirtualButtonSelect,
	sdl.K_ESCAPE:    constants.VirtualButtonMenu,
	sdl.K_h:         constants.VirtualButtonMenu,
}

var controllerMapping = map[sdl.GameControllerButton]constants.VirtualButton{
	sdl.CONTROLLER_BUTTON_DPAD_UP:       constants.VirtualButtonUp,
	sdl.CONTROLLER_BUTTON_DPAD_DOWN:     constants.VirtualButtonDown,
	sdl.CONTROLLER_BUTTON_DPAD_LEFT:     constants.VirtualButtonLeft,
	sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    constants.VirtualButtonRight,
	sdl.CONTROLLER_BUTTON_A:             constants.VirtualButtonB,
	sdl.CONTROLLER_BUTTON_B:             constants.VirtualButtonA,
	sdl.CONTROLLER_BUTTON_X:             constants.VirtualButtonY,
	sdl.CONTROLLER_BUTTON_Y:             constants.VirtualButtonX,
	sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  constants.VirtualButtonL1,
	sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: constants.VirtualButtonR1,
	sdl.CONTROLLER_BUTTON_START:         constants.VirtualButtonStart,
	sdl.CONTROLLER_BUTTON_BACK:          constants.VirtualButtonSelect,
	sdl.CONTROLLER_BUTTON_GUIDE:         constants.VirtualButtonMenu,
}

var faceFlip = map[constants.VirtualButton]constants.VirtualButton{
	constants.VirtualButtonA: constants.VirtualButtonB,
	constants.VirtualButtonB: constants.VirtualButtonA,
	constants.VirtualButtonX: constants.VirtualButtonY,
	constants.VirtualButtonY: constants.VirtualButtonX,
}

// InputProcessor turns SDL keyboard and game controller events into
// virtual button events. Controller face buttons follow the Nintendo layout
// (east confirms) unless flipped.
type InputProcessor struct {
	mu          sync.Mutex
	flip        bool
	controllers map[sdl.JoystickID]*sdl.GameController
	axisHeld    map[sdl.GameControllerAxis]constants.VirtualButton
}

var (
	processor       *InputProcessor
	flipFaceButtons bool
)

// SetFlipFaceButtons selects direct face button mapping (A=A, B=B).
// Call before Init.
func SetFlipFaceButtons(flip bool) {
	flipFaceButtons = flip
}

func NewInputProcessor(flip bool) *InputProcessor {
	return &InputProcessor{
		flip:        flip,
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
		axisHeld:    make(map[sdl.GameControllerAxis]constants.VirtualButton),
	}
}

// InitInputProcessor creates the shared processor and opens every attached
// game controller. SDL must be initialized.
func InitInputProcessor() {
	processor = NewInputProcessor(flipFaceButtons)
	for i := 0; i < sdl.NumJoysticks(); i++ {
		processor.openController(i)
	}
}

func GetInputProcessor() *InputProcessor {
	return processor
}

// CloseAllControllers releases every open game controller.
func CloseAllControllers() {
	if processor == nil {
		return
	}
	processor.mu.Lock()
	defer processor.mu.Unlock()
	for id, gc := range processor.controllers {
		gc.Close()
		delete(processor.controllers, id)
	}
}

// ProcessSDLEvent translates event, returning nil when it carries no
// virtual button (unmapped keys, key repeats, axis noise, hotplug).
func (p *InputProcessor) ProcessSDLEvent(event sdl.Event) *Event {
	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return nil
		}
		button, ok := keyboardMapping[e.Keysym.Sym]
		if !ok {
			return nil
		}
		return &Event{Button: button, Pressed: e.Type == sdl.KEYDOWN}

	case *sdl.ControllerButtonEvent:
		button := p.controllerButton(sdl.GameControllerButton(e.Button))
		if button == constants.VirtualButtonUnassigned {
			return nil
		}
		return &Event{Button: button, Pressed: e.State == sdl.PRESSED}

	case *sdl.ControllerAxisEvent:
		return p.axisEvent(sdl.GameControllerAxis(e.Axis), e.Value)

	case *sdl.ControllerDeviceEvent:
		switch e.Type {
		case sdl.CONTROLLERDEVICEADDED:
			p.openController(int(e.Which))
		case sdl.CONTROLLERDEVICEREMOVED:
			p.closeController(e.Which)
		}
	}
	return nil
}

func (p *InputProcessor) controllerButton(b sdl.GameControllerButton) constants.VirtualButton {
	button, ok := controllerMapping[b]
	if !ok {
		return constants.VirtualButtonUnassigned
	}
	if p.flip {
		if flipped, ok := faceFlip[button]; ok {
			return flipped
		}
	}
	return button
}

func (p *InputProcessor) axisEvent(axis sdl.GameControllerAxis, value int16) *Event {
	var negative, positive constants.VirtualButton
	switch axis {
	case sdl.CONTROLLER_AXIS_LEFTX:
		negative, positive = constants.VirtualButtonLeft, constants.VirtualButtonRight
	case sdl.CONTROLLER_AXIS_LEFTY:
		negative, positive = constants.VirtualButtonUp, constants.VirtualButtonDown
	default:
		return nil
	}

	want := constants.VirtualButtonUnassigned
	switch {
	case value <= -axisThreshold:
		want = negative
	case value >= axisThreshold:
		want = positive
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	held := p.axisHeld[axis]
	if want == held {
		return nil
	}
	if held != constants.VirtualButtonUnassigned {
		// Release first; the next motion event presses the new direction.
		delete(p.axisHeld, axis)
		return &Event{Button: held, Pressed: false}
	}
	p.axisHeld[axis] = want
	return &Event{Button: want, Pressed: true}
}

func (p *InputProcessor) openController(index int) {
	if !sdl.IsGameController(index) {
		return
	}
	gc := sdl.GameControllerOpen(index)
	if gc == nil {
		GetInternalLogger().Warn("failed to open controller", "index", index, "error", sdl.GetError())
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	id := gc.Joystick().InstanceID()
	if _, ok := p.controllers[id]; ok {
		gc.Close()
		return
	}
	p.controllers[id] = gc
	GetInternalLogger().Debug("controller attached", "name", gc.Name())
}

func (p *InputProcessor) closeController(id sdl.JoystickID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gc, ok := p.controllers[id]; ok {
		gc.Close()
		delete(p.controllers, id)
	}
}
