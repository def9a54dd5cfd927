package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestMeanColor_Uniform(t *testing.T) {
	tests := []struct {
		name    string
		color   color.RGBA
		wantHex string
	}{
		{"pure red", color.RGBA{255, 0, 0, 255}, "#ff0000"},
		{"pure green", color.RGBA{0, 255, 0, 255}, "#00ff00"},
		{"pure blue", color.RGBA{0, 0, 255, 255}, "#0000ff"},
		{"white", color.RGBA{255, 255, 255, 255}, "#ffffff"},
		{"black", color.RGBA{0, 0, 0, 255}, "#000000"},
		{"gray", color.RGBA{128, 128, 128, 255}, "#808080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(10, 10, tt.color)
			result, err := MeanColor(img)
			if err != nil {
				t.Fatalf("MeanColor failed: %v", err)
			}
			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.RGB.R != tt.color.R || result.RGB.G != tt.color.G || result.RGB.B != tt.color.B {
				t.Errorf("RGB: got %+v, want %v", result.RGB, tt.color)
			}
		})
	}
}

func TestMeanColor_Pattern(t *testing.T) {
	// Red, green, blue and white quadrants average to (128,128,128) rounded.
	result, err := MeanColor(createPatternImage(100, 100))
	if err != nil {
		t.Fatalf("MeanColor failed: %v", err)
	}

	for name, v := range map[string]uint8{"R": result.RGB.R, "G": result.RGB.G, "B": result.RGB.B} {
		if v < 126 || v > 129 {
			t.Errorf("%s: got %d, want ~127", name, v)
		}
	}
}

func TestMeanColor_IgnoresTransparentPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 255, 255})
	img.SetNRGBA(1, 0, color.NRGBA{255, 0, 0, 0})

	result, err := MeanColor(img)
	if err != nil {
		t.Fatalf("MeanColor failed: %v", err)
	}
	if result.Hex != "#0000ff" {
		t.Errorf("Hex: got %s, want #0000ff", result.Hex)
	}
}

func TestMeanColor_Empty(t *testing.T) {
	if _, err := MeanColor(image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("MeanColor should fail for an empty image")
	}
}

func TestMeanColor_HSL(t *testing.T) {
	tests := []struct {
		name                string
		c                   color.RGBA
		wantH, wantS, wantL int
	}{
		{"red", color.RGBA{255, 0, 0, 255}, 0, 100, 50},
		{"green", color.RGBA{0, 255, 0, 255}, 120, 100, 50},
		{"blue", color.RGBA{0, 0, 255, 255}, 240, 100, 50},
		{"white", color.RGBA{255, 255, 255, 255}, 0, 0, 100},
		{"black", color.RGBA{0, 0, 0, 255}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MeanColor(createInMemoryImage(4, 4, tt.c))
			if err != nil {
				t.Fatalf("MeanColor failed: %v", err)
			}
			hsl := result.HSL

			// Allow some tolerance for rounding
			if abs(hsl.H-tt.wantH) > 1 {
				t.Errorf("H: got %d, want %d", hsl.H, tt.wantH)
			}
			if abs(hsl.S-tt.wantS) > 1 {
				t.Errorf("S: got %d, want %d", hsl.S, tt.wantS)
			}
			if abs(hsl.L-tt.wantL) > 1 {
				t.Errorf("L: got %d, want %d", hsl.L, tt.wantL)
			}
		})
	}
}

func TestDominantColors(t *testing.T) {
	// Create an image with mostly red, some green
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 80 {
				img.Set(x, y, color.RGBA{255, 0, 0, 255}) // 80% red
			} else {
				img.Set(x, y, color.RGBA{0, 255, 0, 255}) // 20% green
			}
		}
	}

	colors, err := DominantColors(img, 5)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}

	if len(colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(colors))
	}

	// Quantized red is #f00000 (255/16*16 = 240 -> f0)
	if colors[0].Color.Hex != "#f00000" {
		t.Errorf("dominant color: got %s, want #f00000", colors[0].Color.Hex)
	}
	if colors[0].Percentage != 80 {
		t.Errorf("dominant percentage: got %f, want 80", colors[0].Percentage)
	}
}

func TestDominantColors_Limit(t *testing.T) {
	colors, err := DominantColors(createPatternImage(100, 100), 2)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(colors) != 2 {
		t.Errorf("expected 2 colors, got %d", len(colors))
	}
}

func TestDominantColors_SingleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{128, 128, 128, 255})

	colors, err := DominantColors(img, 3)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}

	// Should have exactly 1 color since image is uniform
	if len(colors) != 1 {
		t.Fatalf("expected 1 color for uniform image, got %d", len(colors))
	}

	// That color should be 100%
	if colors[0].Percentage != 100 {
		t.Errorf("expected 100%% for single color, got %f%%", colors[0].Percentage)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
