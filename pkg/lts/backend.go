package lts

import "time"

// DeviceInfo describes a connected controller as reported by the backend.
type DeviceInfo struct {
	SerialNumber string
	Name         string
	Description  string
}

// Backend is the vendor motion SDK surface used to enumerate and open
// LTS controllers. Implementations wrap a real SDK or simulate one;
// see SimBackend.
type Backend interface {
	// BuildDeviceList forces the backend to refresh its device enumeration.
	BuildDeviceList() error

	// DeviceList returns the serial numbers of all connected devices,
	// in the order the backend reports them.
	DeviceList() ([]string, error)

	// Open creates a device object for the given serial number and opens
	// the connection to it.
	Open(serial string) (Device, error)
}

// Device is an opaque vendor device object for a single controller.
// All motion semantics (homing algorithm, acceleration ramps, encoder
// feedback) live behind this interface.
type Device interface {
	// WaitForSettingsInitialized blocks until the device's internal
	// settings are initialized, or the timeout elapses.
	WaitForSettingsInitialized(timeout time.Duration) error

	// LoadMotorConfiguration loads and applies the motor configuration
	// for the connected stage.
	LoadMotorConfiguration() error

	// Info returns the controller's device information.
	Info() (DeviceInfo, error)

	// SettingsName returns the name of the stage the motor configuration
	// was loaded for, e.g. "LTS150 150mm Stage".
	SettingsName() (string, error)

	// StartPolling starts the backend's internal status polling loop.
	StartPolling(interval time.Duration) error

	// StopPolling stops the backend's internal status polling loop.
	StopPolling()

	// Enable energizes the motor drive.
	Enable() error

	// Disable de-energizes the motor drive.
	Disable() error

	// Disconnect closes the connection to the device.
	Disconnect() error

	// Home performs the homing motion, blocking until it completes or
	// the timeout elapses. A timeout does not stop the physical motion.
	Home(timeout time.Duration) error

	// MoveTo moves to an absolute position in mm, blocking until the
	// move completes or the timeout elapses.
	MoveTo(position float64, timeout time.Duration) error

	// SetVelocityParams sets the velocity (mm/s) and acceleration
	// (mm/s²) used for subsequent moves.
	SetVelocityParams(velocity, acceleration float64) error

	// VelocityParams returns the current velocity and acceleration.
	VelocityParams() (velocity, acceleration float64, err error)

	// Position returns the current position in mm.
	Position() (float64, error)
}
