// Package telemetry provides ecosystem statistics, bookmarks, generation
// reports and CSV output.
package telemetry

// EventType identifies a countable simulation event.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventKill
	EventHuntAttempt
	EventSignal
	EventMating
	EventFeeding
	numEventTypes
)

// String returns the event name.
func (e EventType) String() string {
	switch e {
	case EventBirth:
		return "birth"
	case EventDeath:
		return "death"
	case EventKill:
		return "kill"
	case EventHuntAttempt:
		return "hunt_attempt"
	case EventSignal:
		return "signal"
	case EventMating:
		return "mating"
	case EventFeeding:
		return "feeding"
	default:
		return "unknown"
	}
}
