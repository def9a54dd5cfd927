package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

func TestDescribe(t *testing.T) {
	img := createInMemoryImage(200, 150, color.RGBA{255, 128, 64, 255})
	data := encodePNG(t, img)

	info := Describe(img, data)

	if info.Width != 200 {
		t.Errorf("Width: got %d, want 200", info.Width)
	}
	if info.Height != 150 {
		t.Errorf("Height: got %d, want 150", info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.MIME != "image/png" {
		t.Errorf("MIME: got %s, want image/png", info.MIME)
	}
	if info.SizeBytes != len(data) {
		t.Errorf("SizeBytes: got %d, want %d", info.SizeBytes, len(data))
	}
	if !info.HasAlpha || info.ColorType != "rgba" {
		t.Errorf("ColorType: got %s (alpha=%v), want rgba with alpha", info.ColorType, info.HasAlpha)
	}
	if info.Mean == nil || info.Mean.Hex != "#ff8040" {
		t.Errorf("Mean: got %+v, want #ff8040", info.Mean)
	}
	if info.Dominant != nil {
		t.Error("Describe should not compute dominant colors")
	}
}

func TestDescribe_FormatFromContent(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})

	var gifData bytes.Buffer
	if err := gif.Encode(&gifData, img, nil); err != nil {
		t.Fatalf("failed to encode gif: %v", err)
	}

	tests := []struct {
		name   string
		data   []byte
		format string
	}{
		{"png", encodePNG(t, img), "png"},
		{"gif", gifData.Bytes(), "gif"},
		{"garbage", []byte("not an image at all"), "unknown"},
		{"empty", nil, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Describe(img, tt.data)
			if info.Format != tt.format {
				t.Errorf("Format: got %s, want %s", info.Format, tt.format)
			}
		})
	}
}

func TestDescribe_ColorTypes(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)
	tests := []struct {
		name      string
		img       image.Image
		colorType string
		depth     string
		alpha     bool
	}{
		{"gray", image.NewGray(rect), "gray", "8-bit", false},
		{"gray16", image.NewGray16(rect), "gray", "16-bit", false},
		{"paletted", image.NewPaletted(rect, color.Palette{color.Black}), "indexed", "8-bit", false},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio444), "rgb", "8-bit", false},
		{"nrgba", image.NewNRGBA(rect), "rgba", "8-bit", true},
		{"rgba64", image.NewRGBA64(rect), "rgba", "16-bit", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Describe(tt.img, nil)
			if info.ColorType != tt.colorType {
				t.Errorf("ColorType: got %s, want %s", info.ColorType, tt.colorType)
			}
			if info.ColorDepth != tt.depth {
				t.Errorf("ColorDepth: got %s, want %s", info.ColorDepth, tt.depth)
			}
			if info.HasAlpha != tt.alpha {
				t.Errorf("HasAlpha: got %v, want %v", info.HasAlpha, tt.alpha)
			}
		})
	}
}

func TestDescribeWithPalette(t *testing.T) {
	img := createPatternImage(20, 20)
	info := DescribeWithPalette(img, encodePNG(t, img), 3)

	if len(info.Dominant) != 3 {
		t.Fatalf("expected 3 dominant colors, got %d", len(info.Dominant))
	}
	for _, c := range info.Dominant {
		if c.Percentage != 25 {
			t.Errorf("%s: got %f%%, want 25%%", c.Color.Hex, c.Percentage)
		}
	}
}
