package convert

import (
	"fmt"
	"image"
	"image/color"
)

// ColorModel tags the channel layout of a DecodedImage.
type ColorModel int

const (
	// Gray is a single luminance channel.
	Gray ColorModel = iota

	// RGB is three color channels without alpha.
	RGB

	// RGBA is three color channels plus alpha.
	RGBA

	// Indexed is a palette with one index per pixel.
	Indexed
)

// String returns the lowercase model name, e.g. "rgba".
func (m ColorModel) String() string {
	switch m {
	case Gray:
		return "gray"
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	case Indexed:
		return "indexed"
	default:
		return fmt.Sprintf("ColorModel(%d)", int(m))
	}
}

// DecodedImage is an in-memory pixel buffer with its color model tag.
//
// A DecodedImage has exactly one owner. Stages receive it by value and return
// a new one; they never modify the Pixels they were handed.
type DecodedImage struct {
	Pixels image.Image
	Model  ColorModel
}

// NewDecodedImage wraps img, deriving the color model from its concrete type.
func NewDecodedImage(img image.Image) DecodedImage {
	return DecodedImage{Pixels: img, Model: ModelOf(img)}
}

// Width returns the buffer width in pixels.
func (d DecodedImage) Width() int { return d.Pixels.Bounds().Dx() }

// Height returns the buffer height in pixels.
func (d DecodedImage) Height() int { return d.Pixels.Bounds().Dy() }

// ModelOf classifies the concrete buffer type of img.
//
// Types that carry luminance only map to Gray, palette images to Indexed and
// opaque color encodings (YCbCr, CMYK) to RGB. Buffers of other packages
// (e.g. the netpbm types) are classified by probing their color model.
func ModelOf(img image.Image) ColorModel {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return Gray
	case *image.Paletted:
		return Indexed
	case *image.YCbCr, *image.CMYK:
		return RGB
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return RGBA
	}
	return probeModel(img.ColorModel())
}

func probeModel(m color.Model) ColorModel {
	r, g, b, _ := m.Convert(color.NRGBA{R: 0xff, A: 0xff}).RGBA()
	if r == g && g == b {
		return Gray
	}
	if _, _, _, a := m.Convert(color.NRGBA{}).RGBA(); a == 0xffff {
		return RGB
	}
	return RGBA
}
