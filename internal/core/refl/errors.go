package refl

import "fmt"

// ParseError reports a serialization failure, text or binary. Exactly one of
// the position forms is meaningful: text errors carry Row/Col, binary errors
// carry Offset. A failure that is not yet a *ParseError is wrapped with the
// reader's current position; a nested failure that already is a *ParseError
// is passed up unchanged, keeping its own position and message, so no
// context from the enclosing values is added to it.
type ParseError struct {
	Offset  int
	Row     int
	Col     int
	Binary  bool
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	var where string
	if e.Binary {
		where = fmt.Sprintf("offset %d", e.Offset)
	} else {
		where = fmt.Sprintf("%d:%d", e.Row, e.Col)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// wrapText attaches in's position to cause, unless cause is already a *ParseError
// (whose own, more specific position should win).
func wrapText(in *TextReader, message string, cause error) *ParseError {
	if pe, ok := cause.(*ParseError); ok {
		return pe
	}
	row, col := in.position()
	return &ParseError{Row: row, Col: col, Message: message, Cause: cause}
}

func wrapBinary(in *BinaryReader, message string, cause error) *ParseError {
	if pe, ok := cause.(*ParseError); ok {
		return pe
	}
	return &ParseError{Binary: true, Offset: in.pos, Message: message, Cause: cause}
}

// PolyError reports a misuse of the polymorphic registry: registration after
// finalization, a duplicate name for one base, or too many derived classes.
// These are the "Registry" class of error in the error-handling design —
// hard failures the process cannot recover from, so the registry panics with
// a PolyError. The poly codec also returns a PolyError from ToString and
// ToBinary when a handle holds an instance of an unregistered type.
type PolyError struct {
	Base    string
	Message string
}

func (e *PolyError) Error() string {
	return fmt.Sprintf("poly[%s]: %s", e.Base, e.Message)
}
