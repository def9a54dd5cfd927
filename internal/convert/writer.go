package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/sic/internal/codec/ico"
	"github.com/ironsheep/sic/internal/codec/pnm"
)

// ExportTarget is the destination of the encoded image: a FileTarget or a
// StreamTarget.
type ExportTarget interface {
	exportTarget()
}

// FileTarget writes the image to a file, creating or truncating it.
type FileTarget struct {
	Path string
}

// StreamTarget writes the encoded image to W in a single Write call.
type StreamTarget struct {
	W io.Writer
}

func (FileTarget) exportTarget()   {}
func (StreamTarget) exportTarget() {}

// Stdout returns a stream target for the process's standard output.
func Stdout() StreamTarget { return StreamTarget{W: os.Stdout} }

// Write encodes img as f and delivers it to target.
//
// A FileTarget is encoded into directly; when encoding fails after the file
// was created, the partial file is left in place. A StreamTarget receives
// nothing unless encoding succeeded.
//
// Parameters:
//   - img: the buffer to encode, normally the result of Adjust.
//   - f: the output format; its parameters are used as given.
//   - target: a FileTarget or StreamTarget.
//
// Returns:
//   - A KindIO error for file system and stream failures.
//   - A KindEncode error when the format rejects img.
func Write(img DecodedImage, f Format, target ExportTarget) error {
	switch t := target.(type) {
	case FileTarget:
		return writeFile(img, f, t.Path)
	case StreamTarget:
		return writeStream(img, f, t.W)
	default:
		return wrap(KindIO, "write", fmt.Errorf("unsupported export target %T", target))
	}
}

func writeFile(img DecodedImage, f Format, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return wrap(KindIO, "create output", err)
	}

	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return wrap(KindIO, "close output", err)
	}
	return nil
}

func writeStream(img DecodedImage, f Format, w io.Writer) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return wrap(KindIO, "write output", err)
	}
	return nil
}

// pnmAccepts lists the color models each portable-map subtype can encode.
// Subtypes not listed accept every model.
var pnmAccepts = map[PNMSubtype][]ColorModel{
	Bitmap:  {Gray},
	Graymap: {Gray},
	Pixmap:  {RGB},
}

var pnmKinds = map[PNMSubtype]pnm.Kind{
	Bitmap:       pnm.PBM,
	Graymap:      pnm.PGM,
	Pixmap:       pnm.PPM,
	ArbitraryMap: pnm.PAM,
}

var imagingFormats = map[Family]imaging.Format{
	BMP:  imaging.BMP,
	GIF:  imaging.GIF,
	JPEG: imaging.JPEG,
	PNG:  imaging.PNG,
	TIFF: imaging.TIFF,
}

// Encode writes img to w in format f. Failures are reported with KindEncode,
// except write failures of w that the codec passes through.
func Encode(w io.Writer, img DecodedImage, f Format) error {
	op := "encode " + f.String()

	switch f.Family {
	case ICO:
		return wrap(KindEncode, op, ico.Encode(w, img.Pixels))
	case PNM:
		if err := checkModel(img.Model, pnmAccepts[f.Subtype]); err != nil {
			return wrap(KindEncode, op, err)
		}
		kind, ok := pnmKinds[f.Subtype]
		if !ok {
			return wrap(KindEncode, op, fmt.Errorf("unknown portable-map subtype %v", f.Subtype))
		}
		return wrap(KindEncode, op, pnm.Encode(w, img.Pixels, kind, f.Encoding == ASCII))
	}

	format, ok := imagingFormats[f.Family]
	if !ok {
		return wrap(KindEncode, op, fmt.Errorf("unsupported output format %v", f.Family))
	}

	var opts []imaging.EncodeOption
	if f.Family == JPEG {
		opts = append(opts, imaging.JPEGQuality(f.Quality))
	}
	return wrap(KindEncode, op, imaging.Encode(w, img.Pixels, format, opts...))
}

func checkModel(model ColorModel, accepted []ColorModel) error {
	if len(accepted) == 0 {
		return nil
	}
	for _, m := range accepted {
		if m == model {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrIncompatibleColorModel, model)
}
