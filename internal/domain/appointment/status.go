package appointment

import "github.com/salutech-dev/medbook-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
	StatusDeleted   Status = "deleted"
)

// TerminalStatuses lists the states that free the booked slot. Appointments
// in any other state keep occupying it.
func TerminalStatuses() []string {
	return []string{
		string(StatusCancelled),
		string(StatusRejected),
		string(StatusDeleted),
	}
}

// ===============================
// Validations
// ===============================

// CanConfirm: only a pending appointment can be confirmed
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReject: only a pending appointment can be rejected
func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: pending and confirmed appointments can be cancelled
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: only a confirmed appointment can be completed
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus is the state every new booking starts in
func InitialStatus() Status {
	return StatusPending
}
