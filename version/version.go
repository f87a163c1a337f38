package version

// Version is the current repolens release. Overridden at build time via
// -ldflags "-X repolens/version.Version=...".
var Version = "0.3.0"
