package shop

type StatusCode int

const (
	StatusFailedPrecondition StatusCode = iota + 1
)

// Error message constants for the ordering domain.
const (
	ErrMsgNoSelection = "no item selected"
	ErrMsgNoOrder     = "no order in progress"
)

func (s StatusCode) String() string {
	switch s {
	case StatusFailedPrecondition:
		return "FAILED_PRECONDITION"
	default:
		return "UNKNOWN"
	}
}

// Error is returned by state operations whose preconditions do not hold.
// The state passed in is left untouched.
type Error struct {
	Code    StatusCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on code and message so sentinel values work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func NewFailedPrecondition(message string) *Error {
	return &Error{Code: StatusFailedPrecondition, Message: message}
}

var (
	ErrNoSelection = NewFailedPrecondition(ErrMsgNoSelection)
	ErrNoOrder     = NewFailedPrecondition(ErrMsgNoOrder)
)
