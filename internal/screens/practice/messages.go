package practice

import "github.com/abhisek/drill/internal/session"

// savedMsg reports the outcome of a background checkpoint write.
type savedMsg struct {
	Err error
}

// sessionEndMsg carries the summary once the end event is written.
type sessionEndMsg struct {
	Summary session.SessionSummary
}
