package lts

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Stage represents a handle to a single LTS-family motorized stage.
// It is either fully connected (device open, polling started) or fully
// disconnected; no partial state persists across an operation.
//
// A Stage owns its device exclusively. Driving the same physical stage
// from two handles is unsupported.
type Stage struct {
	backend Backend

	pollingInterval time.Duration
	settingsTimeout time.Duration
	moveTimeout     time.Duration
	logger          *slog.Logger

	mu        sync.Mutex
	device    Device
	connected bool

	// cached status, refreshed after every backend operation
	serial         string
	controllerName string
	description    string
	stageName      string
	position       float64
	velocity       float64
	acceleration   float64
}

// NewStage creates a disconnected stage handle driving the given backend.
// Options can be provided to configure timeouts and logging.
func NewStage(backend Backend, opts ...StageOption) (*Stage, error) {
	if backend == nil {
		return nil, errors.New("backend must not be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return &Stage{
		backend:         backend,
		pollingInterval: cfg.pollingInterval,
		settingsTimeout: cfg.settingsTimeout,
		moveTimeout:     cfg.moveTimeout,
		logger:          cfg.logger,
	}, nil
}

// Connect opens the device with the given serial number and initializes
// it: waits for settings, loads the motor configuration, starts the
// backend polling loop and refreshes the cached status.
//
// The serial number must carry the LTS family prefix "45"; this is
// checked before any backend call. On any initialization failure the
// device is torn down again so the handle stays fully disconnected.
func (s *Stage) Connect(serial string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return ErrAlreadyConnected
	}
	if !strings.HasPrefix(serial, SerialPrefix) {
		return fmt.Errorf("%w: %s", ErrUnsupportedDevice, serial)
	}

	dev, err := s.backend.Open(serial)
	if err != nil {
		return &ConnectError{Serial: serial, Err: err}
	}

	if err := s.initDevice(dev, serial); err != nil {
		// Roll back to fully disconnected.
		dev.StopPolling()
		dev.Disconnect()
		s.device = nil
		s.connected = false
		return &ConnectError{Serial: serial, Err: err}
	}

	if s.logger != nil {
		s.logger.Debug("stage connected", "serial", serial, "stage", s.stageName)
	}
	return nil
}

func (s *Stage) initDevice(dev Device, serial string) error {
	if err := dev.WaitForSettingsInitialized(s.settingsTimeout); err != nil {
		return fmt.Errorf("settings not initialized within %v: %w", s.settingsTimeout, err)
	}
	if err := dev.LoadMotorConfiguration(); err != nil {
		return fmt.Errorf("load motor configuration: %w", err)
	}
	if err := dev.StartPolling(s.pollingInterval); err != nil {
		return fmt.Errorf("start polling: %w", err)
	}

	// The backend leaves the drive in an inconsistent enabled state
	// right after connecting; cycling it once clears that.
	if err := dev.Disable(); err != nil {
		return fmt.Errorf("disable device: %w", err)
	}
	if err := dev.Enable(); err != nil {
		return fmt.Errorf("enable device: %w", err)
	}

	s.device = dev
	s.connected = true
	s.serial = serial

	if err := s.refreshLocked(); err != nil {
		s.device = nil
		s.connected = false
		return err
	}
	return nil
}

// Disconnect stops the backend polling loop and closes the connection.
// The connected flag is cleared unconditionally once teardown has been
// issued, even if the backend reports an error during it.
func (s *Stage) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return ErrNotConnected
	}
	return s.disconnectLocked()
}

func (s *Stage) disconnectLocked() error {
	s.device.StopPolling()
	err := s.device.Disconnect()

	serial := s.serial
	s.device = nil
	s.connected = false

	if err != nil {
		return fmt.Errorf("disconnect stage %s: %w", serial, err)
	}
	if s.logger != nil {
		s.logger.Debug("stage disconnected", "serial", serial)
	}
	return nil
}

// Close disconnects the stage if it is connected. It is safe to call
// multiple times and on a never-connected handle.
func (s *Stage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}
	return s.disconnectLocked()
}

// Home performs the stage's homing motion and blocks until it completes
// or the move timeout elapses. Homing establishes the absolute zero
// reference and must precede meaningful absolute moves; the hardware
// itself enforces this.
func (s *Stage) Home() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return ErrNotConnected
	}
	if err := s.device.Home(s.moveTimeout); err != nil {
		return fmt.Errorf("home stage %s: %w", s.serial, err)
	}
	return s.refreshLocked()
}

// MoveToPosition moves the stage to an absolute position in mm and
// blocks until the move completes or the move timeout elapses. Up to
// two extra values may be given: a velocity and an acceleration, which
// are applied via SetVelocity before the move. A timeout failure does
// not guarantee the physical motion has stopped.
//
// The cached position is available from Position at any time.
func (s *Stage) MoveToPosition(position float64, extra ...float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return ErrNotConnected
	}
	return s.moveToLocked(position, extra)
}

func (s *Stage) moveToLocked(position float64, extra []float64) error {
	if len(extra) > 2 {
		return fmt.Errorf("%w: got %d extra values, want at most 2 (velocity, acceleration)",
			ErrInvalidVelocityParams, len(extra))
	}
	if len(extra) > 0 {
		if err := s.setVelocityLocked(extra); err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Debug("moving stage", "serial", s.serial, "target", position)
	}
	if err := s.device.MoveTo(position, s.moveTimeout); err != nil {
		return &MoveError{Serial: s.serial, Target: position, Err: err}
	}
	return s.refreshLocked()
}

// SetVelocity sets the stage's velocity and acceleration. Called with no
// values it resets both to the defaults (20 mm/s, 20 mm/s²); one value
// sets the velocity, two set velocity and acceleration. Values above the
// safety ceiling of 50 are clamped with a warning rather than rejected.
// The resulting parameters are pushed to the backend and the cached
// status is refreshed.
func (s *Stage) SetVelocity(params ...float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return ErrNotConnected
	}
	return s.setVelocityLocked(params)
}

func (s *Stage) setVelocityLocked(params []float64) error {
	var velocity, acceleration float64
	switch len(params) {
	case 0:
		velocity, acceleration = DefaultVelocity, DefaultAcceleration
	case 1:
		velocity, acceleration = params[0], s.acceleration
	case 2:
		velocity, acceleration = params[0], params[1]
	default:
		return fmt.Errorf("%w: got %d values, want at most 2", ErrInvalidVelocityParams, len(params))
	}

	if velocity <= 0 || acceleration <= 0 {
		return fmt.Errorf("%w: velocity %.3f and acceleration %.3f must be positive",
			ErrInvalidVelocityParams, velocity, acceleration)
	}

	if velocity > MaxVelocity {
		if s.logger != nil {
			s.logger.Warn("velocity above safety ceiling, clamping",
				"serial", s.serial, "requested", velocity, "max", MaxVelocity)
		}
		velocity = MaxVelocity
	}
	if acceleration > MaxAcceleration {
		if s.logger != nil {
			s.logger.Warn("acceleration above safety ceiling, clamping",
				"serial", s.serial, "requested", acceleration, "max", MaxAcceleration)
		}
		acceleration = MaxAcceleration
	}

	if err := s.device.SetVelocityParams(velocity, acceleration); err != nil {
		return fmt.Errorf("set velocity params on stage %s: %w", s.serial, err)
	}
	return s.refreshLocked()
}

// RunSequence applies an ordered list of move steps via MoveToPosition,
// refreshing the cached status after every step. The whole sequence is
// validated before the first move; a malformed sequence fails without
// any motion.
func (s *Stage) RunSequence(seq Sequence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return ErrNotConnected
	}
	if err := seq.Validate(); err != nil {
		return err
	}

	for i, step := range seq {
		if err := s.moveToLocked(step.Position, step.params()); err != nil {
			return fmt.Errorf("sequence step %d: %w", i, err)
		}
	}
	return nil
}

// RefreshStatus pulls every observable field from the backend and
// overwrites the cached copies. On a disconnected handle it is a no-op
// and the cached values stay stale.
func (s *Stage) RefreshStatus() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked()
}

func (s *Stage) refreshLocked() error {
	if !s.connected || s.device == nil {
		return nil
	}

	info, err := s.device.Info()
	if err != nil {
		return fmt.Errorf("device info: %w", err)
	}
	stageName, err := s.device.SettingsName()
	if err != nil {
		return fmt.Errorf("settings name: %w", err)
	}
	position, err := s.device.Position()
	if err != nil {
		return fmt.Errorf("read position: %w", err)
	}
	velocity, acceleration, err := s.device.VelocityParams()
	if err != nil {
		return fmt.Errorf("read velocity params: %w", err)
	}

	s.serial = info.SerialNumber
	s.controllerName = info.Name
	s.description = info.Description
	s.stageName = stageName
	s.position = position
	s.velocity = velocity
	s.acceleration = acceleration
	return nil
}

// Connected reports whether the handle currently owns an open device.
func (s *Stage) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Serial returns the cached serial number.
func (s *Stage) Serial() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serial
}

// ControllerName returns the cached controller name.
func (s *Stage) ControllerName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controllerName
}

// Description returns the cached controller description.
func (s *Stage) Description() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.description
}

// StageName returns the cached stage name from the motor configuration.
func (s *Stage) StageName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stageName
}

// Position returns the cached position in mm. It is stale until the
// next refresh after a backend operation.
func (s *Stage) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Velocity returns the cached velocity in mm/s.
func (s *Stage) Velocity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.velocity
}

// Acceleration returns the cached acceleration in mm/s².
func (s *Stage) Acceleration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acceleration
}
