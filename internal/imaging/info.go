package imaging

import (
	"image"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ImageInfo contains metadata about a decoded image and the bytes it was
// decoded from.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the container format detected from the encoded bytes, e.g.
	// "png", "jpg", "gif", or "unknown". Detection is based on content, not on
	// a file name.
	Format string `json:"format"`

	// MIME is the detected media type of the encoded bytes.
	MIME string `json:"mime"`

	// ColorType describes the in-memory buffer: "gray", "rgb", "rgba" or
	// "indexed".
	ColorType string `json:"color_type"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the buffer has an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the length of the encoded data.
	SizeBytes int `json:"size_bytes"`

	// Mean is the average color, nil for an empty image.
	Mean *ColorResult `json:"mean_color,omitempty"`

	// Dominant lists the most frequent quantized colors. Filled by
	// DescribeWithPalette only.
	Dominant []ColorFrequency `json:"dominant_colors,omitempty"`
}

// Describe inspects img and the encoded data it came from.
func Describe(img image.Image, data []byte) *ImageInfo {
	bounds := img.Bounds()
	mt := mimetype.Detect(data)

	format := strings.TrimPrefix(mt.Extension(), ".")
	if format == "" || !strings.HasPrefix(mt.String(), "image/") {
		format = "unknown"
	}

	info := &ImageInfo{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     format,
		MIME:       mt.String(),
		ColorType:  "rgb",
		ColorDepth: "8-bit",
		SizeBytes:  len(data),
	}

	switch img.(type) {
	case *image.Gray:
		info.ColorType = "gray"
	case *image.Gray16:
		info.ColorType = "gray"
		info.ColorDepth = "16-bit"
	case *image.Paletted:
		info.ColorType = "indexed"
	case *image.RGBA, *image.NRGBA:
		info.ColorType = "rgba"
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.ColorType = "rgba"
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	}

	if mean, err := MeanColor(img); err == nil {
		info.Mean = mean
	}
	return info
}

// DescribeWithPalette is Describe plus the count most frequent colors.
func DescribeWithPalette(img image.Image, data []byte, count int) *ImageInfo {
	info := Describe(img, data)
	if colors, err := DominantColors(img, count); err == nil {
		info.Dominant = colors
	}
	return info
}
