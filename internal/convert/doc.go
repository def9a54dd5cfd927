// Package convert implements the image conversion chain used by sic.
//
// A conversion is a single synchronous pass through four stages:
//
//	Load -> Apply (operations) -> Adjust (color model) -> Write
//
// Each stage hands a DecodedImage to the next one by value and never touches
// it again, so no stage observes a buffer that another stage is working on.
//
// # Loading
//
// Input is always read to completion before decoding. Content starting with a
// GIF signature is decoded frame by frame and a single composited frame is
// selected with a FrameSelector. Anything else goes through the registered
// image decoders, detected from content and never from a file extension.
//
// # Operations
//
// Operations form a closed set (Resize, Blur, FlipHorizontal, FlipVertical)
// and are applied strictly in the order given. An operation type outside the
// set aborts the conversion with an OperationError kind.
//
// # Color Adjustment
//
// Some targets only accept a particular color model. When adjustment is
// enabled the buffer is remapped according to AdjustmentFor before encoding.
// When it is disabled, an incompatible buffer is reported by the encoder.
//
// # Writing
//
// A file target is created (or truncated) and encoded into directly. If the
// encoder fails after the file was created, the partial file stays on disk.
// A stream target receives the image in one write, only after encoding has
// fully succeeded.
//
// # Error Handling
//
// Every failure is an *Error carrying a Kind (IO, Decode, FrameOutOfRange,
// Operation, Encode). The first failure stops the conversion and is returned
// unchanged. Use IsKind to classify it.
package convert
