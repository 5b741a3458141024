package renderer

import (
	"image/color"
	"testing"
)

func TestFrame_SetAndToImage(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red := color.RGBA{R: 200, A: 255}

	frame := NewFrame(3, 2, white)
	if len(frame.Pix) != 3*2*3 {
		t.Fatalf("Expected 18 bytes, got %d", len(frame.Pix))
	}

	frame.Set(2, 1, red)
	if frame.At(2, 1) != red || frame.At(0, 0) != white {
		t.Errorf("Unexpected pixels after Set")
	}
	// Row-major RGB
	if frame.Pix[(1*3+2)*3] != 200 {
		t.Errorf("Expected red channel at row 1 column 2")
	}

	img := frame.ToImage()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("Unexpected image bounds %v", img.Bounds())
	}
	if img.RGBAAt(2, 1) != red || img.RGBAAt(1, 1) != white {
		t.Errorf("Image pixels do not match frame")
	}
}
