package loadgen

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Report constants.
const (
	PercentageMultiplier = 100
	reportFilePermission = 0o600
	directoryPermission  = 0o750
)

// DefaultEmailDomain is used when Config.EmailDomain is empty.
const DefaultEmailDomain = "load.mergington.edu"
