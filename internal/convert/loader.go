package convert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"

	"github.com/disintegration/imaging"

	// Register additional decoders with the image registry used by the
	// generic path.
	_ "github.com/ironsheep/sic/internal/codec/ico"
	_ "github.com/spakin/netpbm"
	_ "golang.org/x/image/webp"
)

// FrameSelector picks the frame of an animated image that is loaded.
// The zero value selects the first frame.
type FrameSelector struct {
	kind  frameKind
	index int
}

type frameKind int

const (
	frameFirst frameKind = iota
	frameLast
	frameNth
)

// FirstFrame selects frame 0.
func FirstFrame() FrameSelector { return FrameSelector{kind: frameFirst} }

// LastFrame selects the final frame.
func LastFrame() FrameSelector { return FrameSelector{kind: frameLast} }

// NthFrame selects the zero-based frame index.
func NthFrame(index int) FrameSelector { return FrameSelector{kind: frameNth, index: index} }

// String returns "first", "last" or "nth(i)" with the zero-based index.
func (s FrameSelector) String() string {
	switch s.kind {
	case frameLast:
		return "last"
	case frameNth:
		return fmt.Sprintf("nth(%d)", s.index)
	default:
		return "first"
	}
}

// resolve maps the selector to a frame index for an image with count frames.
func (s FrameSelector) resolve(count int) (int, error) {
	var index int
	switch s.kind {
	case frameFirst:
		index = 0
	case frameNth:
		index = s.index
	case frameLast:
		if count == 0 {
			return 0, &FrameOutOfRangeError{Index: 0, Count: 0}
		}
		index = count - 1
	}

	if index < 0 || index >= count {
		return 0, &FrameOutOfRangeError{Index: index, Count: count}
	}
	return index, nil
}

// ReadInput reads r to completion.
func ReadInput(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, wrap(KindIO, "read input", err)
	}
	return data, nil
}

// Load decodes data into a single image.
//
// Animated (GIF) content is decoded frame by frame and sel picks the frame;
// every other input is decoded by the registered decoders and sel is ignored.
// The format is detected from the content, never from a file name.
//
// Parameters:
//   - data: the complete encoded input.
//   - sel: the frame to keep when data is animated.
//
// Returns:
//   - The decoded image. Animated frames are composited and tagged RGBA.
//   - A KindDecode error for content no decoder accepts, or a
//     KindFrameOutOfRange error wrapping *FrameOutOfRangeError.
func Load(data []byte, sel FrameSelector) (DecodedImage, error) {
	if isAnimatedContainer(data) {
		return loadAnimated(data, sel)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return DecodedImage{}, wrap(KindDecode, "decode", err)
	}
	if img.Bounds().Empty() {
		return DecodedImage{}, wrap(KindDecode, "decode", errors.New("image has no pixels"))
	}
	return NewDecodedImage(img), nil
}

func isAnimatedContainer(data []byte) bool {
	return bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a"))
}

func loadAnimated(data []byte, sel FrameSelector) (DecodedImage, error) {
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return DecodedImage{}, wrap(KindDecode, "decode gif", err)
	}

	index, err := sel.resolve(len(anim.Image))
	if err != nil {
		return DecodedImage{}, wrap(KindFrameOutOfRange, "select frame", err)
	}

	frame := compositeFrame(anim, index)
	if frame.Bounds().Empty() {
		return DecodedImage{}, wrap(KindDecode, "decode gif", errors.New("frame has no pixels"))
	}
	return DecodedImage{Pixels: frame, Model: RGBA}, nil
}

// compositeFrame renders frames 0..index onto the logical screen, applying the
// disposal method of each frame before drawing the next one, and returns a
// copy of the screen after frame index was drawn.
func compositeFrame(anim *gif.GIF, index int) *image.NRGBA {
	bounds := image.Rect(0, 0, anim.Config.Width, anim.Config.Height)
	if bounds.Empty() {
		for _, fr := range anim.Image {
			bounds = bounds.Union(fr.Bounds())
		}
	}

	canvas := image.NewNRGBA(bounds)
	var previous *image.NRGBA

	for i := 0; i <= index; i++ {
		fr := anim.Image[i]
		disposal := byte(gif.DisposalNone)
		if i < len(anim.Disposal) {
			disposal = anim.Disposal[i]
		}

		if disposal == gif.DisposalPrevious {
			previous = imaging.Clone(canvas)
		}

		draw.Draw(canvas, fr.Bounds(), fr, fr.Bounds().Min, draw.Over)

		if i == index {
			break
		}

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, fr.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if previous != nil {
				draw.Draw(canvas, canvas.Bounds(), previous, image.Point{}, draw.Src)
			}
		}
	}

	return imaging.Clone(canvas)
}
