package constants

const (
	// AppName is used for the keyring service name and backup file prefix.
	AppName = "tally"

	// DateFormat is the canonical date-key layout (local calendar day, no time component).
	DateFormat = "2006-01-02"

	// StreakScanCap bounds the backward current-streak walk. A completion map
	// with more than a year of unbroken days is either real dedication or
	// corrupted data; either way the scan must terminate.
	StreakScanCap = 366

	// Mood scores are recorded on a 1-5 scale.
	MoodMin = 1
	MoodMax = 5

	// MaxBackups is the maximum number of store backups to keep.
	MaxBackups = 14

	// DefaultKeyringUser is the keyring account name for remembered credentials.
	DefaultKeyringUser = "remembered-login"
)
