package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// PinNone marks an optional line as not connected.
const PinNone GPIOPin = ^GPIOPin(0)

// Valid reports whether the pin refers to a real line.
func (p GPIOPin) Valid() bool {
	return p != PinNone
}

// Pull selects the input bias resistor of a pin
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "pullup"
	case PullDown:
		return "pulldown"
	default:
		return "none"
	}
}

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureInput configures a pin as a digital input with the given bias
	ConfigureInput(pin GPIOPin, pull Pull) error

	// ConfigureOutput configures a pin as a digital output
	// Returns error if pin is invalid
	ConfigureOutput(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// ReadPin reads the current pin state.
	// Reading an unconfigured pin returns false.
	ReadPin(pin GPIOPin) bool
}

// Global singleton used by core code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// GPIO returns the configured driver, or nil if none has been registered.
func GPIO() GPIODriver {
	return gpioDriver
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
