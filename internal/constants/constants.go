package constants

// Session
const (
	SessionCookieName = "tracker_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
	ContextKeyProject = "project"
	ContextKeyTask    = "task"
)

// Validation bounds
const (
	MinPasswordLength    = 6
	MinUsernameLength    = 3
	MaxUsernameLength    = 150
	MaxEmailLength       = 150
	MaxNameLength        = 150
	MaxPhoneLength       = 20
	MaxTitleLength       = 150
	MaxDescriptionLength = 500
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
