package asset

import "fmt"

// Decision is the outcome of evaluating an action against an asset's status.
type Decision struct {
	Allowed bool
	From    Status
	Next    Status
	Reason  string
}

// StateMachine is the single authority on lifecycle transitions.
// Both command processing and dry-run validation go through it.
type StateMachine interface {
	Decide(current Status, action Action, hasActiveCheckout bool) Decision
}

type defaultStateMachine struct{}

func NewStateMachine() StateMachine {
	return defaultStateMachine{}
}

func (defaultStateMachine) Decide(current Status, action Action, hasActiveCheckout bool) Decision {
	return Decide(current, action, hasActiveCheckout)
}

// Decide has no side effects; repeated calls with the same input return the same Decision.
func Decide(current Status, action Action, hasActiveCheckout bool) Decision {
	d := Decision{From: current, Next: current}

	switch action {
	case ActionCheckOut:
		if current == StatusAvailable {
			d.Allowed = true
			d.Next = StatusCheckedOut
			return d
		}
		d.Reason = checkOutRejection(current)
	case ActionCheckIn:
		switch {
		case current != StatusCheckedOut:
			d.Reason = fmt.Sprintf("asset is not checked out (current status: %s)", current)
		case !hasActiveCheckout:
			d.Reason = "no active checkout exists for asset"
		default:
			d.Allowed = true
			d.Next = StatusAvailable
		}
	default:
		d.Reason = fmt.Sprintf("unsupported action %q", action)
	}
	return d
}

func checkOutRejection(current Status) string {
	switch current {
	case StatusCheckedOut:
		return "asset is already checked out"
	case StatusInMaintenance:
		return "asset is in maintenance and cannot be checked out"
	case StatusRetired:
		return "asset is retired and cannot be checked out"
	case StatusMissing:
		return "asset is missing and cannot be checked out"
	case StatusReserved:
		return "asset is reserved and cannot be checked out"
	default:
		return fmt.Sprintf("asset in status %q cannot be checked out", current)
	}
}
