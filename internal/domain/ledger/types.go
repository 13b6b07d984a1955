package ledger

type Type string

const (
	TypeCheckOut Type = "CHECK_OUT"
	TypeCheckIn  Type = "CHECK_IN"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	return t == TypeCheckOut || t == TypeCheckIn
}

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// NoteSeparator joins appended notes onto existing ones.
const NoteSeparator = "\n\n"

// TransferDateLayout is the date format used in custody transfer audit notes.
const TransferDateLayout = "2006-01-02"
