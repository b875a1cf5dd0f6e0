package colorwheel

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/colorwheel/utils"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned when the source bytes are not a decodable image.
var ErrUnsupportedImage = errors.New("unsupported image format")

// jpegQuality is used when the source photo is re-encoded as JPEG.
const jpegQuality = 92

var formatMIME = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

// Source is a decoded source photo together with the format it was encoded in.
type Source struct {
	Image  *image.NRGBA
	Format imaging.Format
}

// MIME returns the media type the source is written back as.
func (s Source) MIME() string {
	return formatMIME[s.Format]
}

// ParseDataURL splits a data URL into its media type and decoded payload.
func ParseDataURL(s string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL: missing payload")
	}

	isBase64 := false
	params := strings.Split(meta, ";")
	mime = params[0]
	for _, p := range params[1:] {
		if p == "base64" {
			isBase64 = true
		}
	}

	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// Some encoders omit the padding.
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
	} else {
		var unescaped string
		unescaped, err = url.PathUnescape(payload)
		data = []byte(unescaped)
	}
	if err != nil {
		return "", nil, fmt.Errorf("malformed data URL payload: %w", err)
	}
	return mime, data, nil
}

// FormatDataURL encodes data as a base64 data URL of the given media type.
func FormatDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeSource decodes the opaque source image representation (a data URL) into a raster.
// It does not touch any session state and is safe to call from any goroutine.
func DecodeSource(src string) (Source, error) {
	_, data, err := ParseDataURL(src)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an encoded image into a raster whose origin is (0, 0).
// The EXIF orientation of JPEG photos is applied, so the raster matches what a browser would show.
func DecodeBytes(data []byte) (Source, error) {
	if !filetype.IsImage(data) {
		return Source{}, ErrUnsupportedImage
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	if img.Bounds().Empty() {
		return Source{}, fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}
	return Source{
		Image:  imaging.Clone(img),
		Format: sourceFormat(data),
	}, nil
}

// sourceFormat picks the format a decoded image is written back as.
// Formats without a lossless round trip (GIF palettes, WebP without an encoder) are written as PNG.
func sourceFormat(data []byte) imaging.Format {
	kind, err := filetype.Match(data)
	if err != nil {
		return imaging.PNG
	}
	f, err := imaging.FormatFromExtension(kind.Extension)
	if err != nil || f == imaging.GIF {
		return imaging.PNG
	}
	return f
}

// Encode writes the raster in the given format.
func Encode(w io.Writer, img image.Image, format imaging.Format) error {
	return imaging.Encode(w, img, format, imaging.JPEGQuality(jpegQuality))
}

// EncodeDataURL encodes the raster as a data URL of the given format.
func EncodeDataURL(img image.Image, format imaging.Format) (string, error) {
	mime, ok := formatMIME[format]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, format)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return "", fmt.Errorf("unable to encode image: %w", err)
	}
	return FormatDataURL(mime, buf.Bytes()), nil
}

// LoadDataURL wraps raw image bytes into a data URL suitable for a new project.
// The original encoding is kept.
func LoadDataURL(data []byte) (string, error) {
	mime, err := utils.DetectContentType(data)
	if err != nil || !strings.HasPrefix(mime, "image/") {
		return "", ErrUnsupportedImage
	}
	return FormatDataURL(mime, data), nil
}
