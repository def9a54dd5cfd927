package convert

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/sic/internal/codec/ico"
	"github.com/ironsheep/sic/internal/codec/pnm"
)

// frameColors are the colors of the eight frames of the animated fixtures.
var frameColors = []color.NRGBA{
	{254, 0, 0, 255},     // red
	{254, 165, 0, 255},   // orange
	{255, 255, 0, 255},   // yellow
	{0, 128, 1, 255},     // green
	{0, 0, 254, 255},     // blue
	{75, 0, 129, 255},    // indigo
	{238, 130, 239, 255}, // violet
	{0, 0, 0, 255},       // black
}

const probe = 10 // pixel probed in frame tests

// animatedGIF encodes one 20x20 frame per entry of frameColors. loop selects
// an infinitely looping animation; otherwise the animation plays once.
func animatedGIF(t *testing.T, loop bool) []byte {
	t.Helper()

	anim := &gif.GIF{LoopCount: -1}
	if loop {
		anim.LoopCount = 0
	}
	for _, c := range frameColors {
		fr := image.NewPaletted(image.Rect(0, 0, 20, 20), color.Palette{c})
		anim.Image = append(anim.Image, fr)
		anim.Delay = append(anim.Delay, 10)
		anim.Disposal = append(anim.Disposal, gif.DisposalNone)
	}

	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, anim))
	return buf.Bytes()
}

// patternImage creates an image with different colors in each quadrant.
func patternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.NRGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.NRGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = color.NRGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.NRGBA{0, 0, 255, 255}
			default:
				c = color.NRGBA{255, 255, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// inputFormats encodes img in every container the loader accepts.
func inputFormats(t *testing.T, img image.Image) map[string][]byte {
	t.Helper()
	out := make(map[string][]byte)

	for name, f := range map[string]imaging.Format{
		"bmp":  imaging.BMP,
		"gif":  imaging.GIF,
		"jpeg": imaging.JPEG,
		"png":  imaging.PNG,
		"tiff": imaging.TIFF,
	} {
		var buf bytes.Buffer
		require.NoError(t, imaging.Encode(&buf, img, f), name)
		out[name] = buf.Bytes()
	}

	// Icons cannot hold images larger than ico.MaxSize.
	if b := img.Bounds(); b.Dx() <= ico.MaxSize && b.Dy() <= ico.MaxSize {
		var icoBuf bytes.Buffer
		require.NoError(t, ico.Encode(&icoBuf, img))
		out["ico"] = icoBuf.Bytes()
	}

	for name, kind := range map[string]pnm.Kind{"pbm": pnm.PBM, "pgm": pnm.PGM, "ppm": pnm.PPM, "pam": pnm.PAM} {
		var buf bytes.Buffer
		require.NoError(t, pnm.Encode(&buf, img, kind, false), name)
		out[name] = buf.Bytes()
	}
	return out
}

// pngBytes encodes img as PNG.
func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

// outputFormats lists one format per supported target.
var outputFormats = []Format{
	{Family: BMP},
	{Family: GIF},
	{Family: ICO},
	JPEGFormat(80),
	{Family: PNG},
	{Family: TIFF},
	PNMFormat(Bitmap, Binary),
	PNMFormat(Bitmap, ASCII),
	PNMFormat(Graymap, Binary),
	PNMFormat(Graymap, ASCII),
	PNMFormat(Pixmap, Binary),
	PNMFormat(Pixmap, ASCII),
	PNMFormat(ArbitraryMap, Binary),
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	b := img.Bounds()
	return color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
}
