package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/h2non/filetype"
)

// maxDownloadSize caps the size of a remotely fetched source image.
const maxDownloadSize = 64 << 20

// ErrImageTooLarge is returned when a remote image exceeds the download size limit.
var ErrImageTooLarge = errors.New("image too large")

// DownloadImage downloads the image from the internet and returns its raw bytes.
// The payload is rejected if its content does not look like an image.
func DownloadImage(ctx context.Context, uri string) ([]byte, error) {
	return download(ctx, uri, maxDownloadSize)
}

func download(ctx context.Context, uri string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request for URI %s: %w", uri, err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to download image file from URI %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download image file from URI %s, status %v", uri, res.Status)
	}

	if res.ContentLength > limit {
		return nil, fmt.Errorf("%w: %d bytes, the limit is %d", ErrImageTooLarge, res.ContentLength, limit)
	}
	// One byte past the limit tells a truncated body apart from one of exactly the limit.
	data, err := io.ReadAll(io.LimitReader(res.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: the limit is %d bytes", ErrImageTooLarge, limit)
	}

	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("the downloaded file is not a valid image type")
	}
	return data, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// DetectContentType detects the MIME type of the data by inspecting its magic numbers.
// Only the header is inspected, the rest of the buffer is ignored.
func DetectContentType(data []byte) (string, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return "", fmt.Errorf("unable to detect content type: %w", err)
	}
	if kind == filetype.Unknown {
		return "", fmt.Errorf("unknown content type")
	}
	return kind.MIME.Value, nil
}
