package model

const (
	SessionStatusScheduled = "scheduled"
	SessionStatusOngoing   = "ongoing"
	SessionStatusClosed    = "closed"
	SessionStatusCancelled = "cancelled"
)

type SessionEvent string

const (
	SessionEventRecord SessionEvent = "record"
	SessionEventClose  SessionEvent = "close"
	SessionEventCancel SessionEvent = "cancel"
)

var sessionTransitions = map[string]map[SessionEvent]string{
	SessionStatusScheduled: {
		SessionEventRecord: SessionStatusOngoing,
		SessionEventClose:  SessionStatusClosed,
		SessionEventCancel: SessionStatusCancelled,
	},
	SessionStatusOngoing: {
		SessionEventRecord: SessionStatusOngoing,
		SessionEventClose:  SessionStatusClosed,
		SessionEventCancel: SessionStatusCancelled,
	},
}

// NextSessionStatus is the session lifecycle. Closed and cancelled are
// terminal; there is no reopen.
func NextSessionStatus(from string, ev SessionEvent) (string, bool) {
	to, ok := sessionTransitions[from][ev]
	return to, ok
}
