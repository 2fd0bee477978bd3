package main

import (
	"github.com/btcsuite/btclog"
	"github.com/davecgh/go-spew/spew"
	"github.com/lightningnetwork/lnd/rc5"
	"github.com/lightningnetwork/lnd/rc5/build"
	"github.com/lightningnetwork/lnd/rc5/rc5cfg"
)

// Loggers per subsystem. A single backend logger is created and all subsystem
// loggers created from it will write to the backend. When adding new
// subsystems, add the subsystem logger variable here and to the
// subsystemLoggers map.
var (
	logWriter = &build.LogWriter{}

	// backendLog is the logging backend used to create all subsystem
	// loggers.
	backendLog = btclog.NewBackend(logWriter)

	// logRotator is the optional file output. It must be closed on exit.
	logRotator = build.NewRotatingLogWriter()

	cliLog = build.NewSubLogger("RCLI", backendLog.Logger)
	rc5Log = build.NewSubLogger(rc5.Subsystem, backendLog.Logger)
)

// Initialize package-global logger variables.
func init() {
	rc5.UseLogger(rc5Log)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = build.SubLoggers{
	"RCLI":        cliLog,
	rc5.Subsystem: rc5Log,
}

// initLogging attaches the rotating log file unless disabled and applies the
// configured debug levels. The returned function closes the log file.
func initLogging(cfg *rc5cfg.Config) (func(), error) {
	if err := build.ParseAndSetDebugLevels(
		cfg.DebugLevel, subsystemLoggers,
	); err != nil {
		return nil, err
	}

	cleanup := func() {}
	if !cfg.NoFileLog {
		err := logRotator.InitLogRotator(
			cfg.RotatorConfig(), cfg.LogFile(),
		)
		if err != nil {
			return nil, err
		}

		logWriter.RotatorPipe = logRotator
		cleanup = func() {
			logWriter.RotatorPipe = nil
			_ = logRotator.Close()
		}
	}

	cliLog.Debugf("Loaded config: %v", newLogClosure(func() string {
		return spew.Sdump(cfg)
	}))

	return cleanup, nil
}

// logClosure is used to provide a closure over expensive logging operations so
// don't have to be performed when the logging level doesn't warrant it.
type logClosure func() string

// String invokes the underlying function and returns the result.
func (c logClosure) String() string {
	return c()
}

// newLogClosure returns a new closure over a function that returns a string
// which itself provides a Stringer interface so that it can be used with the
// logging system.
func newLogClosure(c func() string) logClosure {
	return logClosure(c)
}
