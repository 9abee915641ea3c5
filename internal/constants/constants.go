package constants

import "time"

// Attribution values stamped on tasks when the caller does not supply one
const (
	DefaultActor      = "Company Admin"
	UpdateActor       = "System Update"
	StatusUpdateActor = "System Status Update"
)

// Client defaults
const (
	DefaultServerURL    = "http://localhost:9090"
	APIBasePath         = "/api"
	RequestTimeout      = 10 * time.Second
	DefaultAppName      = "Task Management System"
	AppVersion          = "1.0.0"
	HeaderRequestID     = "X-Request-ID"
	ContextKeyRequestID = "request_id"
)

// Column limits mirrored from the tasks table
const (
	MaxDescriptionLength = 1000
	MaxRemarksLength     = 500
)
