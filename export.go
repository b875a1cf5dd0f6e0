package colorwheel

import (
	"bytes"
	"encoding/json"
	"image"
	"io"
	"time"

	"github.com/disintegration/imaging"
)

// Export is the JSON document written by ExportJSON.
type Export struct {
	Name      string `json:"name"`
	Image     string `json:"image"`
	Timestamp string `json:"timestamp"`
}

// ExportPNG writes the current raster as PNG. The history is not touched.
func (s *Session) ExportPNG(w io.Writer) error {
	if s.state == Uninitialized {
		return ErrNotReady
	}
	return Encode(w, s.raster, imaging.PNG)
}

// ExportJSON writes the project name, the current raster as a PNG data URL and the export time.
func (s *Session) ExportJSON(w io.Writer) error {
	if s.state == Uninitialized {
		return ErrNotReady
	}
	var buf bytes.Buffer
	if err := Encode(&buf, s.raster, imaging.PNG); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(Export{
		Name:      s.project.Name,
		Image:     FormatDataURL("image/png", buf.Bytes()),
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
}

// ExportImage returns a copy of the current raster scaled down to fit in a maxSize square.
// Rasters already smaller than that, or a non-positive maxSize, give a full size copy.
func (s *Session) ExportImage(maxSize int) (*image.NRGBA, error) {
	if s.state == Uninitialized {
		return nil, ErrNotReady
	}
	if maxSize <= 0 {
		return imaging.Clone(s.raster), nil
	}
	return imaging.Fit(s.raster, maxSize, maxSize, imaging.Lanczos), nil
}
