// Package lts drives Thorlabs LTS-family long-travel motorized stages
// through a vendor motion backend.
//
// # Basic Usage
//
//	backend := lts.NewSimBackend("45123456")
//	stage, err := lts.NewStage(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stage.Close()
//
//	if err := stage.Connect("45123456"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := stage.Home(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := stage.MoveToPosition(75.0); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration
//
// The stage handle can be configured using functional options:
//
//	stage, err := lts.NewStage(backend,
//	    lts.WithMoveTimeout(2*time.Minute),
//	    lts.WithPollingInterval(100*time.Millisecond),
//	    lts.WithLogger(slog.Default()),
//	)
//
// # Backends
//
// All device communication goes through the Backend and Device interfaces,
// which mirror the Kinesis SDK surface the LTS controllers ship with. The
// SDK itself is closed and has no Go binding, so this package ships
// SimBackend, an in-memory implementation for development and testing, and
// leaves hardware backends to implementations of the two interfaces.
//
// Velocity is expressed in mm/s, acceleration in mm/s², position in mm.
// Requests above the safety ceiling of 50 are clamped, not rejected.
package lts
