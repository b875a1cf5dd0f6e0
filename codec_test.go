package colorwheel

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_DataURL(t *testing.T) {
	mime, data, err := ParseDataURL("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, "hello", string(data))

	_, data, err = ParseDataURL("data:image/png;base64,aGVsbG8")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	mime, data, err = ParseDataURL("data:text/plain;charset=utf-8,hello%20world")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mime)
	assert.Equal(t, "hello world", string(data))

	for _, bad := range []string{"", "image/png;base64,AAAA", "data:image/png;base64", "data:image/png;base64,!!!"} {
		_, _, err := ParseDataURL(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, "data:image/png;base64,aGVsbG8=", FormatDataURL("image/png", []byte("hello")))
}

func TestCodec_DecodePNG(t *testing.T) {
	img := gradient(32, 24)

	src, err := DecodeSource(pngDataURL(t, img))
	require.NoError(t, err)
	assert.Equal(t, imaging.PNG, src.Format)
	assert.Equal(t, "image/png", src.MIME())
	assert.Equal(t, img.Pix, src.Image.Pix)
	assert.Equal(t, image.Rect(0, 0, 32, 24), src.Image.Bounds())
}

func TestCodec_DecodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, newRaster(16, 8, grey), nil))

	src, err := DecodeBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, imaging.JPEG, src.Format)
	assert.Equal(t, image.Pt(16, 8), src.Image.Bounds().Size())
}

func TestCodec_GIFSavedAsPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, newRaster(4, 4, red), nil))

	src, err := DecodeBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, imaging.PNG, src.Format)
}

func TestCodec_Unsupported(t *testing.T) {
	_, err := DecodeBytes([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = DecodeSource("data:image/png;base64,bm90IGFuIGltYWdl")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = DecodeSource("/tmp/car.png")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	// A valid PNG signature followed by garbage.
	_, err = DecodeBytes([]byte("\x89PNG\r\n\x1a\n garbage"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestCodec_EncodeDataURL(t *testing.T) {
	img := gradient(10, 10)

	for _, f := range []imaging.Format{imaging.PNG, imaging.JPEG, imaging.BMP, imaging.TIFF} {
		url, err := EncodeDataURL(img, f)
		require.NoError(t, err, f.String())

		src, err := DecodeSource(url)
		require.NoError(t, err, f.String())
		assert.Equal(t, f, src.Format)
		assert.Equal(t, img.Bounds(), src.Image.Bounds())
	}

	_, err := EncodeDataURL(img, imaging.Format(99))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestCodec_LoadDataURL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, newRaster(4, 4, grey), nil))

	url, err := LoadDataURL(buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, url, "data:image/jpeg;base64,")

	_, err = LoadDataURL([]byte("plain text"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
