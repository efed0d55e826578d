/*
Package imagefile reads and writes carrier images.

Any format registered with the image package can be read, which includes
PNG, GIF, JPEG, BMP and TIFF. Only lossless formats that store 8 bits per
channel without a palette can be written, since anything else would destroy
the least significant bits of each channel.
*/
package imagefile

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const (
	// PNG is the Portable Network Graphics format
	PNG = "png"
	// BMP is the Windows Bitmap format
	BMP = "bmp"
	// TIFF is the Tagged Image File Format
	TIFF = "tiff"
)

var (
	errUnknownExtension = errors.New("imagefile: unknown file extension")

	// ErrLossyFormat is returned when asked to write a format that cannot
	// preserve channel values exactly
	ErrLossyFormat = errors.New("imagefile: format does not preserve channel values")

	// ErrDecode wraps any error returned while decoding an image
	ErrDecode = errors.New("imagefile: unable to decode image")
)

var extensions = map[string]string{
	".png":  PNG,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".gif":  "gif",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
}

// FormatFromPath returns the format name implied by the extension of path.
func FormatFromPath(path string) (string, error) {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", errUnknownExtension, filepath.Ext(path))
}

// Decode reads an image from r, returning it along with the format name.
// Any error wraps both ErrDecode and the underlying decoder error.
func Decode(r io.Reader) (image.Image, string, error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return m, format, nil
}

// Writable returns an error wrapping ErrLossyFormat if format cannot be
// written.
func Writable(format string) error {
	switch format {
	case PNG, BMP, TIFF:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrLossyFormat, format)
}

// Encode writes m to w in the given format.
func Encode(w io.Writer, m image.Image, format string) error {
	switch format {
	case PNG:
		e := png.Encoder{CompressionLevel: png.BestCompression}
		return e.Encode(w, m)
	case BMP:
		return bmp.Encode(w, m)
	case TIFF:
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	}
	return Writable(format)
}

// Read decodes the image file at path.
func Read(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	m, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return m, format, nil
}

// Write encodes m to the file at path using the format implied by its
// extension. The image is encoded to a temporary file in the same directory
// which then replaces path, so an existing file is left alone on failure.
func Write(path string, m image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := Writable(format); err != nil {
		return err
	}

	f, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := Encode(f, m, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := f.Chmod(0644); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), path)
}
