package env

// Populated at build time through -ldflags "-X".
var (
	AppName    = "carver"
	Version    = "dev"
	CommitHash = "none"
	BuildTime  = "unknown"
)
