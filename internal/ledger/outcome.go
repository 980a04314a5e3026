package ledger

import "strings"

// Outcome is the tagged result of one logging attempt. It replaces the
// magic-number convention of signalling end-of-session with a sentinel
// total: an attempt either records an entry, skips without touching
// state, or ends the session.
type Outcome int

const (
	// OutcomeRecorded means a transaction was validated and appended.
	OutcomeRecorded Outcome = iota
	// OutcomeSkipped means the attempt was abandoned without changes.
	OutcomeSkipped
	// OutcomeEnded means the user asked to finish the session.
	OutcomeEnded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRecorded:
		return "recorded"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// endSignals are the reserved tokens that finish the logging loop.
var endSignals = map[string]struct{}{
	"q":    {},
	"quit": {},
	"done": {},
}

// IsEndSignal reports whether the input (trimmed, case-insensitive) is a
// reserved end-of-session token. Anything else, numeric or not, is a
// candidate amount.
func IsEndSignal(s string) bool {
	_, ok := endSignals[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
