// Package tga reads and writes Truevision TGA images.
//
// Encode always writes uncompressed 24-bit truecolor with a top-left origin
// and the TGA 2.0 footer. The decoder accepts uncompressed and run-length
// encoded truecolor (24 or 32 bits) and grayscale (8 bits) images and is
// registered with the image package under the name "tga".
package tga

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Image types.
const (
	TypeTrueColor    = 2
	TypeGray         = 3
	TypeTrueColorRLE = 10
	TypeGrayRLE      = 11
)

const (
	headerSize = 18

	// descTopLeft is the image descriptor bit selecting a top-left origin.
	descTopLeft = 0x20
	// descAlphaBits masks the attribute (alpha) bit count.
	descAlphaBits = 0x0f
)

// Signature terminates every file written by Encode.
const Signature = "TRUEVISION-XFILE.\x00"

var (
	// ErrUnsupported is returned for valid TGA files this package cannot decode.
	ErrUnsupported = errors.New("tga: unsupported format")
	// ErrFormat is returned for malformed input.
	ErrFormat = errors.New("tga: invalid format")
)

func init() {
	for _, magic := range []string{"?\x00\x02", "?\x00\x03", "?\x00\x0a", "?\x00\x0b"} {
		image.RegisterFormat("tga", magic, Decode, DecodeConfig)
	}
}

// header is the fixed 18-byte TGA header, little-endian on disk.
type header struct {
	IDLength        uint8
	ColorMapType    uint8
	ImageType       uint8
	ColorMapOrigin  uint16
	ColorMapLength  uint16
	ColorMapDepth   uint8
	XOrigin         uint16
	YOrigin         uint16
	Width           uint16
	Height          uint16
	BitsPerPixel    uint8
	ImageDescriptor uint8
}

// footer is the TGA 2.0 file footer.
type footer struct {
	ExtensionOffset uint32
	DeveloperOffset uint32
	Signature       [18]byte
}

// Encode writes img as an uncompressed 24-bit TGA with a top-left origin.
// Pixel rows are written top to bottom in blue-green-red byte order.
func Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > 0xffff || b.Dy() > 0xffff {
		return fmt.Errorf("tga: image %dx%d too large", b.Dx(), b.Dy())
	}

	bw := bufio.NewWriter(w)
	h := header{
		ImageType:       TypeTrueColor,
		Width:           uint16(b.Dx()),
		Height:          uint16(b.Dy()),
		BitsPerPixel:    24,
		ImageDescriptor: descTopLeft,
	}
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return err
	}

	row := make([]byte, 3*b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			i := 3 * (x - b.Min.X)
			row[i], row[i+1], row[i+2] = c.B, c.G, c.R
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}

	var f footer
	copy(f.Signature[:], Signature)
	if err := binary.Write(bw, binary.LittleEndian, &f); err != nil {
		return err
	}
	return bw.Flush()
}

func readHeader(r io.Reader) (header, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return h, fmt.Errorf("%w: short header", ErrFormat)
		}
		return h, err
	}
	if h.ColorMapType != 0 {
		return h, fmt.Errorf("%w: color-mapped images", ErrUnsupported)
	}
	switch h.ImageType {
	case TypeTrueColor, TypeTrueColorRLE:
		if h.BitsPerPixel != 24 && h.BitsPerPixel != 32 {
			return h, fmt.Errorf("%w: %d bits per pixel", ErrUnsupported, h.BitsPerPixel)
		}
	case TypeGray, TypeGrayRLE:
		if h.BitsPerPixel != 8 {
			return h, fmt.Errorf("%w: %d bit grayscale", ErrUnsupported, h.BitsPerPixel)
		}
	default:
		return h, fmt.Errorf("%w: image type %d", ErrUnsupported, h.ImageType)
	}
	return h, nil
}

// DecodeConfig returns the dimensions of a TGA image without decoding the
// pixels. Decoded images are always NRGBA.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: int(h.Width), Height: int(h.Height)}, nil
}

// Decode reads a TGA image. The result always has its origin at the top
// left, whatever the file's descriptor says.
func Decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if _, err := br.Discard(int(h.IDLength)); err != nil {
		return nil, fmt.Errorf("%w: truncated image id", ErrFormat)
	}

	w, ht := int(h.Width), int(h.Height)
	bpp := int(h.BitsPerPixel) / 8
	raw := make([]byte, w*ht*bpp)
	switch h.ImageType {
	case TypeTrueColor, TypeGray:
		_, err = io.ReadFull(br, raw)
	default:
		err = readRLE(br, raw, bpp)
	}
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated pixel data", ErrFormat)
		}
		return nil, err
	}

	alpha := bpp == 4 && h.ImageDescriptor&descAlphaBits != 0
	img := image.NewNRGBA(image.Rect(0, 0, w, ht))
	for y := range ht {
		// Rows are stored bottom-up unless the top-left bit is set.
		dy := ht - 1 - y
		if h.ImageDescriptor&descTopLeft != 0 {
			dy = y
		}
		src := raw[y*w*bpp : (y+1)*w*bpp]
		dst := img.Pix[dy*img.Stride : dy*img.Stride+4*w]
		for x := range w {
			s := src[x*bpp : (x+1)*bpp]
			d := dst[4*x : 4*x+4]
			switch bpp {
			case 1:
				d[0], d[1], d[2], d[3] = s[0], s[0], s[0], 0xff
			default:
				d[0], d[1], d[2], d[3] = s[2], s[1], s[0], 0xff
				if alpha {
					d[3] = s[3]
				}
			}
		}
	}
	return img, nil
}

// readRLE expands run-length encoded packets into dst.
func readRLE(r *bufio.Reader, dst []byte, bpp int) error {
	pixel := make([]byte, bpp)
	for n := 0; n < len(dst); {
		p, err := r.ReadByte()
		if err != nil {
			return err
		}
		count := int(p&0x7f) + 1
		if n+count*bpp > len(dst) {
			return fmt.Errorf("%w: run past end of image", ErrFormat)
		}
		if p&0x80 != 0 {
			if _, err := io.ReadFull(r, pixel); err != nil {
				return err
			}
			for range count {
				n += copy(dst[n:], pixel)
			}
			continue
		}
		if _, err := io.ReadFull(r, dst[n:n+count*bpp]); err != nil {
			return err
		}
		n += count * bpp
	}
	return nil
}
