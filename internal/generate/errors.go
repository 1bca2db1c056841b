package generate

import "fmt"

// InputError reports that the caller supplied no usable content. No work
// is performed before it is returned.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// TransportError reports that a capability call (text completion, vision
// extraction) failed outright: network, auth, rate limit, or a malformed
// HTTP response. It aborts the current generation operation; malformed
// generated content, by contrast, is recovered with fallback records and
// never surfaces as an error.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }
