//go:build dev

package build

// Deployment specifies a development build.
const Deployment = Development

// LogLevel is the level sub-loggers are set to when logging to stdout in
// development builds.
const LogLevel = "debug"
