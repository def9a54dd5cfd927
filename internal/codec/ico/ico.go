// Package ico reads and writes Windows icon (.ico) containers.
//
// Decoding supports entries stored either as embedded PNG data or as
// BMP/DIB data; the largest entry is returned. BMP entries are decoded
// without their transparency mask. Encoding always writes a single
// PNG-compressed entry, which limits the image to 256x256 pixels.
//
// Importing the package registers the decoder with the image package.
package ico

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

const (
	headerSize = 6
	entrySize  = 16

	// MaxSize is the largest width or height an icon entry can describe.
	MaxSize = 256
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

var (
	// ErrInvalidIcon is returned when the icon header or directory is
	// malformed or points outside the data.
	ErrInvalidIcon = errors.New("ico: invalid icon data")

	// ErrTooLarge is returned by Encode for images wider or taller than
	// MaxSize pixels.
	ErrTooLarge = fmt.Errorf("ico: image exceeds %dx%d", MaxSize, MaxSize)
)

func init() {
	image.RegisterFormat("ico", "\x00\x00\x01\x00", Decode, DecodeConfig)
}

type entry struct {
	width, height int
	size, offset  uint32
}

func readEntries(data []byte) ([]entry, error) {
	if len(data) < headerSize {
		return nil, ErrInvalidIcon
	}
	if binary.LittleEndian.Uint16(data[0:]) != 0 || binary.LittleEndian.Uint16(data[2:]) != 1 {
		return nil, ErrInvalidIcon
	}
	count := int(binary.LittleEndian.Uint16(data[4:]))
	if count == 0 || len(data) < headerSize+count*entrySize {
		return nil, ErrInvalidIcon
	}

	entries := make([]entry, count)
	for i := range entries {
		e := data[headerSize+i*entrySize:]
		entries[i] = entry{
			width:  dimension(e[0]),
			height: dimension(e[1]),
			size:   binary.LittleEndian.Uint32(e[8:]),
			offset: binary.LittleEndian.Uint32(e[12:]),
		}
		end := uint64(entries[i].offset) + uint64(entries[i].size)
		if end > uint64(len(data)) {
			return nil, ErrInvalidIcon
		}
	}
	return entries, nil
}

// A zero byte in the directory stands for 256 pixels.
func dimension(b byte) int {
	if b == 0 {
		return MaxSize
	}
	return int(b)
}

func largest(entries []entry) entry {
	best := entries[0]
	for _, e := range entries[1:] {
		if e.width*e.height > best.width*best.height {
			best = e
		}
	}
	return best
}

// Decode reads an icon and returns its largest image.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	entries, err := readEntries(data)
	if err != nil {
		return nil, err
	}

	e := largest(entries)
	payload := data[e.offset : e.offset+e.size]
	if bytes.HasPrefix(payload, pngMagic) {
		return png.Decode(bytes.NewReader(payload))
	}
	return decodeDIB(payload)
}

// DecodeConfig returns the dimensions of the largest image in an icon.
func DecodeConfig(r io.Reader) (image.Config, error) {
	img, err := Decode(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: img.ColorModel(),
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
	}, nil
}

// decodeDIB decodes a headerless bitmap as stored in icons. The stored
// height covers the color bitmap and the AND mask, so it is halved before
// the data is handed to the BMP decoder behind a synthesised file header.
func decodeDIB(dib []byte) (image.Image, error) {
	if len(dib) < 40 {
		return nil, ErrInvalidIcon
	}
	infoSize := binary.LittleEndian.Uint32(dib[0:])
	if infoSize < 40 || int(infoSize) > len(dib) {
		return nil, ErrInvalidIcon
	}

	info := make([]byte, len(dib))
	copy(info, dib)
	height := int32(binary.LittleEndian.Uint32(info[8:])) / 2
	binary.LittleEndian.PutUint32(info[8:], uint32(height))

	bpp := binary.LittleEndian.Uint16(info[14:])
	colors := binary.LittleEndian.Uint32(info[32:])
	if colors == 0 && bpp <= 8 {
		colors = 1 << bpp
	}
	pixelOffset := 14 + infoSize + 4*colors

	var file bytes.Buffer
	file.WriteString("BM")
	_ = binary.Write(&file, binary.LittleEndian, uint32(14+len(info)))
	_ = binary.Write(&file, binary.LittleEndian, uint32(0))
	_ = binary.Write(&file, binary.LittleEndian, pixelOffset)
	file.Write(info)

	img, err := bmp.Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("ico: bitmap entry: %w", err)
	}
	return img, nil
}

// Encode writes img as an icon holding one PNG-compressed entry.
//
// The pixels are stored as truecolor PNG, with alpha only when the image has
// translucent pixels, and the directory entry declares the matching bit depth.
//
// Parameters:
//   - w: destination of the icon bytes, written in a single call.
//   - img: the image to store; at most MaxSize pixels in each dimension.
//
// Returns:
//   - ErrTooLarge when img does not fit in an icon entry.
//   - An error for an empty image or a PNG encoding failure.
func Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > MaxSize || b.Dy() > MaxSize {
		return fmt.Errorf("%w: got %dx%d", ErrTooLarge, b.Dx(), b.Dy())
	}
	if b.Empty() {
		return errors.New("ico: empty image")
	}

	// The payload is always truecolor so the directory entry describes it.
	// png writes opaque NRGBA as 24-bit RGB and the rest as 32-bit RGBA.
	pixels := imaging.Clone(img)
	bpp := uint16(32)
	if pixels.Opaque() {
		bpp = 24
	}

	var payload bytes.Buffer
	if err := png.Encode(&payload, pixels); err != nil {
		return fmt.Errorf("ico: %w", err)
	}

	var out bytes.Buffer
	out.Grow(headerSize + entrySize + payload.Len())
	_ = binary.Write(&out, binary.LittleEndian, [3]uint16{0, 1, 1})
	out.WriteByte(byte(b.Dx() % MaxSize))
	out.WriteByte(byte(b.Dy() % MaxSize))
	out.WriteByte(0) // palette size
	out.WriteByte(0) // reserved
	_ = binary.Write(&out, binary.LittleEndian, uint16(1))  // color planes
	_ = binary.Write(&out, binary.LittleEndian, bpp)        // bits per pixel
	_ = binary.Write(&out, binary.LittleEndian, uint32(payload.Len()))
	_ = binary.Write(&out, binary.LittleEndian, uint32(headerSize+entrySize))
	out.Write(payload.Bytes())

	_, err := w.Write(out.Bytes())
	return err
}
