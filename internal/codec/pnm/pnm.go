// Package pnm encodes the portable-map image family (PBM, PGM, PPM, PAM).
//
// It is a thin layer over github.com/spakin/netpbm that chooses encoder
// options for a requested subtype. Importing netpbm also registers its
// decoders with the image package.
package pnm

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/spakin/netpbm"
)

// Kind selects the member of the family.
type Kind int

const (
	PBM Kind = iota // bilevel, P1 or P4
	PGM             // grayscale, P2 or P5
	PPM             // color, P3 or P6
	PAM             // arbitrary tuples, P7 only
)

// ErrPlainPAM is returned when ASCII samples are requested for PAM, which
// only has a binary form.
var ErrPlainPAM = errors.New("pnm: arbitrary maps have no ascii sample encoding")

// Encode writes img as the given portable-map kind. plain selects ASCII
// samples instead of binary ones.
func Encode(w io.Writer, img image.Image, kind Kind, plain bool) error {
	opts := &netpbm.EncodeOptions{
		MaxValue: 255,
		Plain:    plain,
	}

	switch kind {
	case PBM:
		opts.Format = netpbm.PBM
		opts.MaxValue = 1
	case PGM:
		opts.Format = netpbm.PGM
	case PPM:
		opts.Format = netpbm.PPM
	case PAM:
		if plain {
			return ErrPlainPAM
		}
		opts.Format = netpbm.PAM
		opts.TupleType = tupleType(img)
	default:
		return fmt.Errorf("pnm: unknown kind %d", int(kind))
	}

	if err := netpbm.Encode(w, img, opts); err != nil {
		return fmt.Errorf("pnm: %w", err)
	}
	return nil
}

func tupleType(img image.Image) string {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return "GRAYSCALE"
	case interface{ Opaque() bool }:
		if m.Opaque() {
			return "RGB"
		}
	}
	return "RGB_ALPHA"
}
