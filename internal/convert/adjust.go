package convert

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
)

// Adjustment is the color model transform a target format requires.
type Adjustment int

const (
	// NoAdjustment leaves the buffer as decoded.
	NoAdjustment Adjustment = iota

	// ToGray replaces the buffer with a single-channel luminance copy.
	ToGray

	// ToRGB replaces the buffer with an opaque copy without alpha.
	ToRGB
)

// String returns "none", "gray" or "rgb".
func (a Adjustment) String() string {
	switch a {
	case ToGray:
		return "gray"
	case ToRGB:
		return "rgb"
	default:
		return "none"
	}
}

// pnmAdjustments lists the portable-map subtypes that only accept a specific
// color model. Subtypes not listed accept any buffer.
var pnmAdjustments = map[PNMSubtype]Adjustment{
	Bitmap:  ToGray,
	Graymap: ToGray,
	Pixmap:  ToRGB,
}

// AdjustmentFor returns the transform required before encoding to f.
//
// Bilevel output is produced from the grayscale buffer by the encoder's own
// thresholding, so images made of pure black and white regions may still
// come out imperfect.
func AdjustmentFor(f Format) Adjustment {
	if f.Family != PNM {
		return NoAdjustment
	}
	return pnmAdjustments[f.Subtype]
}

// Adjust returns the buffer to encode for target f. When enabled is false, or
// f needs no transform, img is returned as is. Otherwise a new buffer is
// produced and img is left untouched.
func Adjust(img DecodedImage, f Format, enabled bool) DecodedImage {
	if !enabled {
		return img
	}

	switch AdjustmentFor(f) {
	case ToGray:
		return DecodedImage{Pixels: toGray(img.Pixels), Model: Gray}
	case ToRGB:
		return DecodedImage{Pixels: dropAlpha(img.Pixels), Model: RGB}
	default:
		return img
	}
}

// toGray converts src to luminance with bild and keeps one channel. bild
// returns RGBA with R == G == B, so the red channel carries the luminance.
func toGray(src image.Image) *image.Gray {
	lum := effect.Grayscale(src)
	b := lum.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := lum.Pix[y*lum.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = row[x*4]
		}
	}
	return dst
}

// dropAlpha copies the non-premultiplied color channels of src into an opaque
// buffer.
func dropAlpha(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}
