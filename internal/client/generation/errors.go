package generation

import (
	"errors"
	"fmt"
)

// Op names used in OpError.
const (
	OpExtractProfile = "extract profile"
	OpGenerateCV     = "generate CV"
	OpReviseCV       = "revise CV"
)

var ErrEmptyInput = errors.New("input must not be empty")

// OpError tags a gateway failure with the protocol operation that hit it.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
