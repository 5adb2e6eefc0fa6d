package reg

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindPermission ErrKind = iota // operation not allowed by the register's capabilities
	ErrKindRange                     // value does not fit the register's bit width
	ErrKindSchema                    // invalid declaration (bad mask, empty group, ...)
	ErrKindNotFound                  // missing field, index or path
	ErrKindTransport                 // propagated device access failure
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by this package.
var (
	// ErrNotWritable indicates a write on a register without write permission.
	ErrNotWritable = &Error{Kind: ErrKindPermission, Msg: "register is not writable"}
	// ErrNotReadable indicates a read on a register without read permission.
	ErrNotReadable = &Error{Kind: ErrKindPermission, Msg: "register is not readable"}
	// ErrValueTooWide indicates a write value wider than the register's mask.
	ErrValueTooWide = &Error{Kind: ErrKindRange, Msg: "value does not fit the register mask"}
	// ErrNotFound indicates a missing field, array index or path.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "no such node"}
)

func schemaErr(msg string) error {
	return &Error{Kind: ErrKindSchema, Msg: msg}
}
