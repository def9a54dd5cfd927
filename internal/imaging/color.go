package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in several representations.
type ColorResult struct {
	Hex string   `json:"hex"` // "#rrggbb", lowercase, alpha excluded
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

func newColorResult(c colorful.Color) ColorResult {
	r, g, b := c.RGB255()
	h, s, l := c.Hsl()
	return ColorResult{
		Hex: c.Hex(),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

var errEmptyImage = errors.New("image has no pixels")

// MeanColor returns the average color of img, weighting every pixel by its
// opacity. Fully transparent images average to black.
func MeanColor(img image.Image) (*ColorResult, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, errEmptyImage
	}

	var r, g, b, a float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			w := float64(c.A)
			r += float64(c.R) * w
			g += float64(c.G) * w
			b += float64(c.B) * w
			a += w
		}
	}

	mean := colorful.Color{}
	if a > 0 {
		mean = colorful.Color{R: r / a / 255, G: g / a / 255, B: b / a / 255}
	}
	res := newColorResult(mean.Clamped())
	return &res, nil
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Color      ColorResult `json:"color"`      // quantized color
	Percentage float64     `json:"percentage"` // 0-100
}

// DominantColors returns up to count of the most frequent colors of img,
// most common first.
//
// Components are quantized to multiples of 16 before counting so that
// near-identical colors are grouped:
//
//	quantized = (original / 16) * 16
func DominantColors(img image.Image, count int) ([]ColorFrequency, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, errEmptyImage
	}

	counts := make(map[[3]uint8]int)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			counts[[3]uint8{c.R / 16 * 16, c.G / 16 * 16, c.B / 16 * 16}]++
			total++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for key, n := range counts {
		c := colorful.Color{R: float64(key[0]) / 255, G: float64(key[1]) / 255, B: float64(key[2]) / 255}
		colors = append(colors, ColorFrequency{
			Color:      newColorResult(c),
			Percentage: float64(n) / float64(total) * 100,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Color.Hex < colors[j].Color.Hex
	})

	if count >= 0 && len(colors) > count {
		colors = colors[:count]
	}
	return colors, nil
}
