package lts

import "time"

// Defaults and limits for LTS-family controllers.
const (
	// SerialPrefix identifies LTS-family controllers. Thorlabs serial
	// numbers encode the product family in the leading digits.
	SerialPrefix = "45"

	// DefaultVelocity is the velocity (mm/s) applied by SetVelocity
	// when called with no arguments.
	DefaultVelocity = 20.0

	// DefaultAcceleration is the acceleration (mm/s²) applied by
	// SetVelocity when called with no arguments.
	DefaultAcceleration = 20.0

	// MaxVelocity is the safety ceiling for velocity (mm/s). Requests
	// above it are clamped, not rejected.
	MaxVelocity = 50.0

	// MaxAcceleration is the safety ceiling for acceleration (mm/s²).
	MaxAcceleration = 50.0

	// DefaultPollingInterval is the interval of the backend's internal
	// status polling loop.
	DefaultPollingInterval = 250 * time.Millisecond

	// DefaultSettingsTimeout bounds the wait for the backend's settings
	// initialization during Connect.
	DefaultSettingsTimeout = 7 * time.Second

	// DefaultMoveTimeout bounds blocking Home and MoveToPosition calls.
	// Homing a 300mm stage from the far end takes well over a minute.
	DefaultMoveTimeout = 100 * time.Second
)
