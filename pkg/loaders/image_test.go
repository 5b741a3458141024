package loaders

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWritePNG_RoundTrip(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "frame.png")

	// 2x2: white, red / green, blue
	pix := []uint8{
		255, 255, 255, 255, 0, 0,
		0, 255, 0, 0, 0, 255,
	}

	if err := WritePNG(testFile, pix, 2, 2); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	imageData, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if imageData.Width != 2 || imageData.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}
	if !bytes.Equal(imageData.Pix, pix) {
		t.Errorf("Pixels differ after round trip: %v", imageData.Pix)
	}
}

func TestWritePNG_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		pix      []uint8
		width    int
		height   int
	}{
		{"short buffer", filepath.Join(dir, "a.png"), make([]uint8, 5), 2, 1},
		{"zero size", filepath.Join(dir, "b.png"), nil, 0, 0},
		{"missing directory", filepath.Join(dir, "missing", "c.png"), make([]uint8, 3), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := WritePNG(tt.filename, tt.pix, tt.width, tt.height); err == nil {
				t.Errorf("Expected error")
			}
		})
	}
}

func TestLoadImage_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Errorf("Expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := LoadImage(garbage); err == nil {
		t.Errorf("Expected error for invalid image data")
	}
}
