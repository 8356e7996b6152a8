package version

// AppVersion is overridden at build time with -ldflags "-X commas/internal/version.AppVersion=...".
var AppVersion = "0.3.0"
