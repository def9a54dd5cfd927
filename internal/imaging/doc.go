// Package imaging inspects decoded images for sic's --info output and debug
// logging.
//
// It reports dimensions, the container format detected from the encoded
// bytes, the in-memory color type and a summary of the image's colors. It
// never modifies the image it is given.
//
// # Color Representation
//
// Colors are returned in multiple formats:
//   - Hex: 6-character lowercase format "#rrggbb" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// Conversions between these spaces are done with go-colorful.
//
// # Performance Considerations
//
// MeanColor and DominantColors visit every pixel. Callers on a hot path
// should only compute them when the result is actually used.
package imaging
