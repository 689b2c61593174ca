package constants

const (
	ExternalName = "News Pulse"
	Version      = "1.0.0"
)
