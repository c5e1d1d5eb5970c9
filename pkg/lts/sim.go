package lts

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// SimBackend is an in-memory Backend for development and testing. It
// models enough of the controller's behavior to exercise the stage
// handle without hardware: moves must be preceded by homing, and moves
// outside the travel range fail. Error fields can be set to inject
// failures.
type SimBackend struct {
	// Serials lists the serial numbers the backend reports.
	Serials []string

	// Travel is the stage's travel range in mm. Moves beyond it fail.
	Travel float64

	// ListError, when set, is returned by BuildDeviceList and DeviceList.
	ListError error

	// OpenError, when set, is returned by Open.
	OpenError error

	mu      sync.Mutex
	devices map[string]*SimDevice
}

// NewSimBackend creates a simulated backend reporting the given serial
// numbers, with the 150mm travel of an LTS150. With no arguments a
// single stage "45000001" is simulated.
func NewSimBackend(serials ...string) *SimBackend {
	if len(serials) == 0 {
		serials = []string{"45000001"}
	}
	return &SimBackend{
		Serials: serials,
		Travel:  150,
		devices: make(map[string]*SimDevice),
	}
}

func (b *SimBackend) BuildDeviceList() error { return b.ListError }

func (b *SimBackend) DeviceList() ([]string, error) {
	if b.ListError != nil {
		return nil, b.ListError
	}
	return slices.Clone(b.Serials), nil
}

func (b *SimBackend) Open(serial string) (Device, error) {
	if b.OpenError != nil {
		return nil, b.OpenError
	}
	if !slices.Contains(b.Serials, serial) {
		return nil, fmt.Errorf("device %s not found", serial)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	dev, ok := b.devices[serial]
	if !ok {
		dev = &SimDevice{
			serial:       serial,
			travel:       b.Travel,
			velocity:     DefaultVelocity,
			acceleration: DefaultAcceleration,
		}
		b.devices[serial] = dev
	}
	return dev, nil
}

// SimDevice is the device object handed out by SimBackend. Error fields
// can be set to inject failures into individual operations.
type SimDevice struct {
	// SettingsErr, when set, is returned by WaitForSettingsInitialized.
	SettingsErr error

	// HomeErr, when set, is returned by Home.
	HomeErr error

	// MoveErr, when set, is returned by MoveTo.
	MoveErr error

	mu           sync.Mutex
	serial       string
	travel       float64
	homed        bool
	enabled      bool
	polling      bool
	position     float64
	velocity     float64
	acceleration float64
}

func (d *SimDevice) WaitForSettingsInitialized(timeout time.Duration) error {
	return d.SettingsErr
}

func (d *SimDevice) LoadMotorConfiguration() error { return nil }

func (d *SimDevice) Info() (DeviceInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DeviceInfo{
		SerialNumber: d.serial,
		Name:         "LTS150",
		Description:  "Long Travel Stage (simulated)",
	}, nil
}

func (d *SimDevice) SettingsName() (string, error) {
	return "LTS150 150mm Stage", nil
}

func (d *SimDevice) StartPolling(interval time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.polling = true
	return nil
}

func (d *SimDevice) StopPolling() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.polling = false
}

func (d *SimDevice) Enable() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = true
	return nil
}

func (d *SimDevice) Disable() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = false
	return nil
}

func (d *SimDevice) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.polling = false
	d.enabled = false
	return nil
}

func (d *SimDevice) Home(timeout time.Duration) error {
	if d.HomeErr != nil {
		return d.HomeErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.enabled {
		return errors.New("device not enabled")
	}
	d.position = 0
	d.homed = true
	return nil
}

func (d *SimDevice) MoveTo(position float64, timeout time.Duration) error {
	if d.MoveErr != nil {
		return d.MoveErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.enabled {
		return errors.New("device not enabled")
	}
	if !d.homed {
		return errors.New("device not homed")
	}
	if position < 0 || position > d.travel {
		return fmt.Errorf("position %.3f outside travel range 0-%.0f mm", position, d.travel)
	}
	d.position = position
	return nil
}

func (d *SimDevice) SetVelocityParams(velocity, acceleration float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.velocity = velocity
	d.acceleration = acceleration
	return nil
}

func (d *SimDevice) VelocityParams() (float64, float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.velocity, d.acceleration, nil
}

func (d *SimDevice) Position() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.position, nil
}
