package spacedrep

// InitialEasiness is the easiness factor assigned to a topic on first sight.
const InitialEasiness = 2.5

// MinEasiness is the floor for the easiness factor.
const MinEasiness = 1.3

// PassQuality is the lowest quality counted as a successful recall.
const PassQuality = 3

// FirstInterval and SecondInterval are the fixed intervals, in days, for the
// first two consecutive successful reviews. Later intervals grow by the
// easiness factor.
const (
	FirstInterval  = 1
	SecondInterval = 6
)

// FailInterval is the interval after a failed review.
const FailInterval = 1

// SecondsPerDay converts intervals to epoch offsets.
const SecondsPerDay = 86400
