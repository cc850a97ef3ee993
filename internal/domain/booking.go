package domain

// Action is a status transition the moderation panel can offer for a booking.
type Action string

const (
	ActionApprove Action = "approve"
	ActionArchive Action = "archive"
)

// Approve returns a copy of b with status confirmed. Approving an already
// confirmed booking is a no-op copy; re-activating an archived booking is
// permitted.
func Approve(b BookingRequest) BookingRequest {
	b.Status = StatusConfirmed
	return b
}

// Archive returns a copy of b with status archived.
func Archive(b BookingRequest) BookingRequest {
	b.Status = StatusArchived
	return b
}

// Transitions returns the actions the panel offers for a booking in the given
// status: approve is hidden when already confirmed, archive when already
// archived.
func Transitions(s Status) []Action {
	var out []Action
	if s != StatusConfirmed {
		out = append(out, ActionApprove)
	}
	if s != StatusArchived {
		out = append(out, ActionArchive)
	}
	return out
}

// Apply runs the named transition on b. Unknown actions return b unchanged
// and ok=false.
func Apply(b BookingRequest, a Action) (BookingRequest, bool) {
	switch a {
	case ActionApprove:
		return Approve(b), true
	case ActionArchive:
		return Archive(b), true
	}
	return b, false
}
