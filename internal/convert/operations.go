package convert

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Operation is one transform of the pipeline. The set of operations is
// closed: only the types in this file implement it.
type Operation interface {
	fmt.Stringer
	operation()
}

// Resize rescales the image to exactly Width x Height pixels. The aspect
// ratio is not preserved.
type Resize struct {
	Width  int
	Height int
}

// Blur applies a Gaussian blur with standard deviation Sigma.
type Blur struct {
	Sigma uint
}

// FlipHorizontal mirrors the image left to right.
type FlipHorizontal struct{}

// FlipVertical mirrors the image top to bottom.
type FlipVertical struct{}

func (Resize) operation()         {}
func (Blur) operation()           {}
func (FlipHorizontal) operation() {}
func (FlipVertical) operation()   {}

func (o Resize) String() string       { return fmt.Sprintf("resize %d %d", o.Width, o.Height) }
func (o Blur) String() string         { return fmt.Sprintf("blur %d", o.Sigma) }
func (FlipHorizontal) String() string { return "fliph" }
func (FlipVertical) String() string   { return "flipv" }

// Apply runs ops on img in order. Each step receives the previous step's
// result; img itself is never modified. The first failing operation aborts
// the pipeline.
//
// Returns:
//   - The transformed image, tagged from the buffer the last step produced.
//   - A KindOperation error naming the 1-based step that failed. Operation
//     types this package does not implement wrap ErrUnsupportedOperation.
func Apply(img DecodedImage, ops []Operation) (DecodedImage, error) {
	current := img
	for i, op := range ops {
		next, err := applyOne(current.Pixels, op)
		if err != nil {
			return DecodedImage{}, wrap(KindOperation, fmt.Sprintf("operation %d (%v)", i+1, op), err)
		}
		current = NewDecodedImage(next)
	}
	return current, nil
}

func applyOne(img image.Image, op Operation) (image.Image, error) {
	switch o := op.(type) {
	case Resize:
		if o.Width <= 0 || o.Height <= 0 {
			return nil, fmt.Errorf("resize requires positive dimensions, got %dx%d", o.Width, o.Height)
		}
		return imaging.Resize(img, o.Width, o.Height, imaging.Lanczos), nil
	case Blur:
		return imaging.Blur(img, float64(o.Sigma)), nil
	case FlipHorizontal:
		return imaging.FlipH(img), nil
	case FlipVertical:
		return imaging.FlipV(img), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedOperation, op)
	}
}
