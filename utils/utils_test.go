package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"
)

func TestUtils_ParseHex(t *testing.T) {
	testCases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#FF6B35", color.NRGBA{R: 0xff, G: 0x6b, B: 0x35, A: 0xff}},
		{"ff6b35", color.NRGBA{R: 0xff, G: 0x6b, B: 0x35, A: 0xff}},
		{"#0a0a0a", color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}},
		{"#f00", color.NRGBA{R: 0xff, A: 0xff}},
		{"#00000080", color.NRGBA{A: 0x80}},
	}

	for _, tc := range testCases {
		got, err := ParseHex(tc.in)
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseHex(%q): got %v want %v", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "#12", "#GGGGGG", "#12345"} {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) should have failed", in)
		}
	}
}

func TestUtils_HexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#FF0000", "#0066FF", "#D4AF37", "#000000"} {
		if got := RGBToHex(HexToRGBA(hex)); got != hex {
			t.Errorf("expected %s, got %s", hex, got)
		}
	}
	if got := RGBToHex(color.NRGBA{R: 1, G: 2, B: 3, A: 0}); got != "#010203" {
		t.Errorf("alpha should be ignored, got %s", got)
	}
}

func TestUtils_Math(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Errorf("Min returned the wrong value")
	}
	if Max(3.5, 1.0) != 3.5 {
		t.Errorf("Max returned the wrong value")
	}
	if Abs(-4) != 4 {
		t.Errorf("Abs returned the wrong value")
	}
	if Clamp(1.4, 0, 1) != 1 || Clamp(-2, 0, 10) != 0 || Clamp(5, 0, 10) != 5 {
		t.Errorf("Clamp returned the wrong value")
	}
	if !Contains([]string{"a", "b"}, "b") || Contains([]string{"a"}, "c") {
		t.Errorf("Contains returned the wrong value")
	}
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	if !IsValidUrl("https://github.com/esimov/colorwheel/") {
		t.Errorf("A valid URL should have been provided")
	}
	if IsValidUrl("testdata/car.jpg") {
		t.Errorf("A local path should not be a valid URL")
	}
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("could not encode test image: %v", err)
	}

	ctype, err := DetectContentType(buf.Bytes())
	if err != nil {
		t.Fatalf("could not detect content type: %v", err)
	}
	if ctype != "image/png" {
		t.Errorf("Content type expected to be image/png, got: %v", ctype)
	}

	if _, err := DetectContentType([]byte("plain text")); err == nil {
		t.Errorf("plain text should not be detected as a known type")
	}
}

func TestUtils_FormatTime(t *testing.T) {
	if got := FormatTime(1500 * time.Millisecond); got != "1.50s" {
		t.Errorf("unexpected format: %s", got)
	}
	if got := FormatTime(61 * time.Second); got != "1m 1.00s" {
		t.Errorf("unexpected format: %s", got)
	}
}

func TestUtils_SpinnerStartStop(t *testing.T) {
	buf := new(bytes.Buffer)
	s := newSpinner(buf, "working", time.Millisecond, false)
	s.StopMsg = "done"
	s.Start()
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop()
	s.Stop()

	if !bytes.Contains(buf.Bytes(), []byte("done")) {
		t.Errorf("stop message should have been printed, got %q", buf.String())
	}
}
