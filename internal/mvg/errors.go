package mvg

import "fmt"

// TransportError reports a failed network exchange: the request never
// completed, or the upstream answered with a non-2xx status. The call
// is not retried.
type TransportError struct {
	Op     string
	URL    string
	Status int // 0 when no response was received at all
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("mvg: %s: unexpected status %d from %s", e.Op, e.Status, e.URL)
	}
	return fmt.Sprintf("mvg: %s: request to %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that could not be parsed into the
// expected shape. The wrapped error is the json package's original
// error and carries the offending field or byte offset, which is the
// first signal that the undocumented upstream API changed shape.
type DecodeError struct {
	Op  string
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("mvg: %s: decoding response from %s: %v", e.Op, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
