// Package input implements the two standard NES controller shift
// registers.
package input

// Button represents NES controller buttons
type Button uint8

// Button order is fixed: LSB->MSB is A, B, Select, Start,
// Up, Down, Left, Right, matching the order the shift register reads
// them back out in.
const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Short aliases for callers wiring up a platform event loop.
const (
	A      = ButtonA
	B      = ButtonB
	Select = ButtonSelect
	Start  = ButtonStart
	Up     = ButtonUp
	Down   = ButtonDown
	Left   = ButtonLeft
	Right  = ButtonRight
)

// Controller is one NES controller: an 8-bit shift register driven by
// writes to $4016 bit 0 (strobe) and read one bit at a time.
type Controller struct {
	buttons uint8

	shiftRegister uint8
	strobe        bool

	// buttonSnapshot is the button state latched when strobe last went
	// high or low; the shift register is reloaded from it.
	buttonSnapshot uint8
	bitPosition    uint8
}

// New creates a new Controller instance
func New() *Controller {
	return &Controller{}
}

// SetButton sets the state of a single button.
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
}

// SetButtons sets all eight button states at once, in the fixed A, B,
// Select, Start, Up, Down, Left, Right order.
func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = 0
	order := [8]Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}
	for i, pressed := range buttons {
		if pressed {
			c.buttons |= uint8(order[i])
		}
	}
}

// IsPressed returns true if the button is currently pressed
func (c *Controller) IsPressed(button Button) bool {
	return (c.buttons & uint8(button)) != 0
}

// Write handles writes to the controller register ($4016). While strobe
// is held high the shift register continuously reloads from the live
// button state; the falling edge latches the final snapshot that Read
// will then shift out one bit per call.
func (c *Controller) Write(value uint8) {
	wasStrobe := c.strobe
	c.strobe = (value & 1) != 0

	if c.strobe {
		c.buttonSnapshot = c.buttons
		c.shiftRegister = c.buttons
		c.bitPosition = 0
	} else if wasStrobe {
		c.buttonSnapshot = c.buttons
		c.shiftRegister = c.buttonSnapshot
		c.bitPosition = 0
	}
}

// Read handles reads from the controller register ($4016/$4017): one bit
// per call in bit 0, LSB first, 1 after the eighth read (open-bus high on
// hardware, conventionally modeled as a fixed 1 by most emulators). Bit 6
// is always set as the open-bus stand-in.
func (c *Controller) Read() uint8 {
	if c.strobe {
		c.bitPosition = 0
		return c.buttonSnapshot&1 | 0x40
	}

	if c.bitPosition >= 8 {
		c.bitPosition++
		return 0x41
	}

	result := c.shiftRegister & 1
	c.shiftRegister >>= 1
	c.bitPosition++
	return result | 0x40
}

// Reset resets the controller state
func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftRegister = 0
	c.strobe = false
	c.buttonSnapshot = 0
	c.bitPosition = 0
}

// InputState represents the state of all input devices
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState creates a new input state with two controllers
func NewInputState() *InputState {
	return &InputState{
		Controller1: New(),
		Controller2: New(),
	}
}

// Reset resets all input devices
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// SetButtons1 sets all button states for controller 1 (array approach)
func (is *InputState) SetButtons1(buttons [8]bool) {
	is.Controller1.SetButtons(buttons)
}

// SetButtons2 sets all button states for controller 2 (array approach)
func (is *InputState) SetButtons2(buttons [8]bool) {
	is.Controller2.SetButtons(buttons)
}

// Read reads from controller ports
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Read()
	case 0x4017:
		// Bit 6 set is the conventional open-bus stand-in NES hardware
		// exhibits on this port.
		return is.Controller2.Read() | 0x40
	default:
		return 0
	}
}

// Write writes to controller ports. Both controllers receive the strobe
// signal.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}
