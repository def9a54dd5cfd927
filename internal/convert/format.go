package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Family is an output container or codec category.
type Family int

const (
	// BMP is the Windows bitmap container.
	BMP Family = iota

	// GIF is the indexed, animatable container. Only one frame is written.
	GIF

	// ICO is the Windows icon container, limited to 256x256 pixels.
	ICO

	// JPEG is the lossy photographic format; Format.Quality applies.
	JPEG

	// PNG is the lossless compressed format.
	PNG

	// PNM is the portable-map family; Format.Subtype and Format.Encoding
	// apply.
	PNM

	// TIFF is the tagged image file format.
	TIFF
)

var familyNames = map[Family]string{
	BMP:  "bmp",
	GIF:  "gif",
	ICO:  "ico",
	JPEG: "jpeg",
	PNG:  "png",
	PNM:  "pnm",
	TIFF: "tiff",
}

// String returns the lowercase family name, e.g. "png".
func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// PNMSubtype selects the member of the portable-map family.
type PNMSubtype int

const (
	Bitmap       PNMSubtype = iota // PBM, bilevel
	Graymap                        // PGM
	Pixmap                         // PPM
	ArbitraryMap                   // PAM
)

func (s PNMSubtype) String() string {
	switch s {
	case Bitmap:
		return "pbm"
	case Graymap:
		return "pgm"
	case Pixmap:
		return "ppm"
	case ArbitraryMap:
		return "pam"
	default:
		return fmt.Sprintf("PNMSubtype(%d)", int(s))
	}
}

// SampleEncoding selects plain text or raw binary portable-map samples.
type SampleEncoding int

const (
	// Binary writes raw samples (P4, P5, P6, P7). It is the default.
	Binary SampleEncoding = iota

	// ASCII writes samples as decimal text (P1, P2, P3). PAM has no ASCII
	// form.
	ASCII
)

func (e SampleEncoding) String() string {
	if e == ASCII {
		return "ascii"
	}
	return "binary"
}

// DefaultJPEGQuality is used when no quality was requested.
const DefaultJPEGQuality = 80

// Format describes the encoding of the output image. Quality applies to
// JPEG, Subtype and Encoding to PNM; other families ignore them.
//
// The parameters are expected to be valid already; the writer does not clamp
// or correct them.
type Format struct {
	Family   Family
	Quality  int
	Subtype  PNMSubtype
	Encoding SampleEncoding
}

// JPEGFormat returns a JPEG format with the given quality (1-100).
func JPEGFormat(quality int) Format { return Format{Family: JPEG, Quality: quality} }

// PNMFormat returns a portable-map format.
func PNMFormat(sub PNMSubtype, enc SampleEncoding) Format {
	return Format{Family: PNM, Subtype: sub, Encoding: enc}
}

func (f Format) String() string {
	switch f.Family {
	case JPEG:
		return fmt.Sprintf("jpeg(quality=%d)", f.Quality)
	case PNM:
		return fmt.Sprintf("%s(%s)", f.Subtype, f.Encoding)
	default:
		return f.Family.String()
	}
}

// ErrUnknownFormat is returned when a format name or extension is not
// recognised.
var ErrUnknownFormat = errors.New("unknown image format")

// FormatByName maps a format name or file extension (with or without the
// leading dot, case-insensitive) to an output format with default
// parameters.
func FormatByName(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "bmp":
		return Format{Family: BMP}, nil
	case "gif":
		return Format{Family: GIF}, nil
	case "ico":
		return Format{Family: ICO}, nil
	case "jpg", "jpeg":
		return JPEGFormat(DefaultJPEGQuality), nil
	case "png":
		return Format{Family: PNG}, nil
	case "tif", "tiff":
		return Format{Family: TIFF}, nil
	case "pbm":
		return PNMFormat(Bitmap, Binary), nil
	case "pgm":
		return PNMFormat(Graymap, Binary), nil
	case "ppm":
		return PNMFormat(Pixmap, Binary), nil
	case "pam":
		return PNMFormat(ArbitraryMap, Binary), nil
	default:
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

var mimeFamilies = map[string]Family{
	"image/bmp":                     BMP,
	"image/gif":                     GIF,
	"image/x-icon":                  ICO,
	"image/vnd.microsoft.icon":      ICO,
	"image/jpeg":                    JPEG,
	"image/png":                     PNG,
	"image/tiff":                    TIFF,
	"image/x-portable-bitmap":       PNM,
	"image/x-portable-graymap":      PNM,
	"image/x-portable-pixmap":       PNM,
	"image/x-portable-arbitrarymap": PNM,
}

// DetectFormat identifies the family of encoded image data from its content.
func DetectFormat(data []byte) (Family, error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if fam, ok := mimeFamilies[m.String()]; ok {
			return fam, nil
		}
	}
	if hasNetpbmSignature(data) {
		return PNM, nil
	}
	return 0, fmt.Errorf("%w: detected %s", ErrUnknownFormat, mt.String())
}

// hasNetpbmSignature matches the "P1".."P7" magic followed by whitespace,
// which covers headers the MIME sniffer does not recognise (e.g. a PAM
// header with a different field order).
func hasNetpbmSignature(data []byte) bool {
	if len(data) < 3 || data[0] != 'P' || data[1] < '1' || data[1] > '7' {
		return false
	}
	switch data[2] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
