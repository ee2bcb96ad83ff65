package rankcheck

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	maxReported          = 20
)

// HTTP status code constants.
const (
	StatusOK = 200
)
