package keyword

import "fmt"

// ShapeError reports bulk-loading input that is not a mapping of clean names
// to keyword lists, or not a list of keywords. It is returned before any
// keyword is applied.
type ShapeError struct {
	Op     string // loader that rejected the input
	Reason string
	Err    error // decoder detail, may be nil
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
