//go:build !dev

package build

// Deployment specifies a production build.
const Deployment = Production

// LogLevel is the level sub-loggers are set to in development builds. It is
// unused in production builds.
const LogLevel = "info"
