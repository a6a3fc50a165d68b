package efood

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrRequest  = errors.New("efood request failed")
)

// RequestError is any failure talking to the remote API: transport, non-2xx
// status or an undecodable body. StatusCode is 0 for transport failures.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("efood %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("efood %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRequest) match every RequestError.
func (e *RequestError) Is(target error) bool { return target == ErrRequest }
