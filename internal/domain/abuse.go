package domain

import "time"

// CancellationCounter tracks cancellations attributed to a user.
// CancellationsCount only grows and IsSuspect only flips to true.
type CancellationCounter struct {
	UserID             string
	CancellationsCount int64
	IsSuspect          bool
	UpdatedAt          time.Time
}
