package constants

import "time"

// Session / context keys
const (
	ContextKeyUserID = "user_id"
	SessionName      = "hospital_session"
)

// File storage limits
const (
	// UploadURLTTL is how long a generated upload URL stays valid.
	UploadURLTTL = 15 * time.Minute

	// MaxUploadSize caps a single uploaded file at 10MB.
	MaxUploadSize = 10 << 20
)

// Chat proxy limits
const (
	MaxChatMessages = 50
)
