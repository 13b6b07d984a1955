package asset

import "strings"

type Status string

const (
	StatusAvailable     Status = "AVAILABLE"
	StatusCheckedOut    Status = "CHECKED_OUT"
	StatusInMaintenance Status = "IN_MAINTENANCE"
	StatusRetired       Status = "RETIRED"
	StatusMissing       Status = "MISSING"
	StatusReserved      Status = "RESERVED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusCheckedOut, StatusInMaintenance, StatusRetired, StatusMissing, StatusReserved:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Action is a requested lifecycle transition.
type Action string

const (
	ActionCheckOut Action = "CHECK_OUT"
	ActionCheckIn  Action = "CHECK_IN"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	return a == ActionCheckOut || a == ActionCheckIn
}

func NewAction(s string) (Action, error) {
	action := Action(strings.ToUpper(strings.TrimSpace(s)))
	if !action.IsValid() {
		return "", ErrInvalidAction
	}
	return action, nil
}
