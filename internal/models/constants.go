package models

const (
	// DateLayout is the date format used in storage and in the API.
	DateLayout = "2006-01-02"

	// DateTimeLayout is the storage format of fecha_hora.
	DateTimeLayout = "2006-01-02 15:04:05"

	// APIDateTimeLayout is the fecha_hora format accepted in query parameters.
	APIDateTimeLayout = "2006-01-02T15:04"

	// DefaultActivityFeedSize how many recent events the activity feed keeps
	DefaultActivityFeedSize = 100

	// DefaultActivityTTL lifetime of the activity feed in Redis
	DefaultActivityTTL = 7 * 24 * 60 * 60 // 7 days in seconds
)
