package convert

import (
	"errors"
	"fmt"
)

// Kind classifies conversion failures.
type Kind string

const (
	// KindIO marks a failure to read the input or to create, write or close
	// the output.
	KindIO Kind = "io"

	// KindDecode marks input bytes that no registered decoder accepts, or
	// that decode to an image without pixels.
	KindDecode Kind = "decode"

	// KindFrameOutOfRange marks a frame selection beyond the frames of an
	// animated image. The wrapped error is a *FrameOutOfRangeError.
	KindFrameOutOfRange Kind = "frame"

	// KindOperation marks a pipeline step that failed or is not supported.
	KindOperation Kind = "operation"

	// KindEncode marks an output format that rejected the buffer, typically
	// because of its color model.
	KindEncode Kind = "encode"
)

// Error is the structured error returned by every stage of a conversion.
//
// Fields:
//   - Kind: the failure class, see the Kind constants.
//   - Op: the stage or operation that failed, e.g. "decode" or
//     "operation 2 (blur 1)".
//   - Err: the underlying cause, available through errors.Is and errors.As.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error formats the error as "[kind] op: cause".
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// wrap returns nil for a nil err.
func wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// IsKind reports whether err is a conversion error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

// FrameOutOfRangeError reports a frame selection beyond the last frame of an
// animated image. Index is zero-based.
type FrameOutOfRangeError struct {
	Index int
	Count int
}

// Error reports the frame as a 1-based number, the way it is selected on the
// command line.
func (e *FrameOutOfRangeError) Error() string {
	if e.Count == 0 {
		return "unable to extract a frame from the image: no frames found"
	}
	return fmt.Sprintf("unable to extract frame %d from the image: it has %d frame(s)",
		e.Index+1, e.Count)
}

var (
	// ErrUnsupportedOperation is wrapped by errors for operation kinds that
	// the pipeline does not implement.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrIncompatibleColorModel is wrapped by encode errors raised when a
	// target only accepts a color model the buffer does not have.
	ErrIncompatibleColorModel = errors.New("color model not supported by target format")
)
