package renderer

import (
	"image"
	"image/color"
)

// Frame is a rendered image stored as row-major 8-bit RGB, top row first
type Frame struct {
	Width  int
	Height int
	Pix    []uint8 // 3 bytes per pixel
}

// NewFrame creates a frame filled with the given color
func NewFrame(width, height int, fill color.RGBA) *Frame {
	pix := make([]uint8, width*height*3)
	for i := 0; i < len(pix); i += 3 {
		pix[i] = fill.R
		pix[i+1] = fill.G
		pix[i+2] = fill.B
	}
	return &Frame{Width: width, Height: height, Pix: pix}
}

// Set writes the pixel at (x, y)
func (f *Frame) Set(x, y int, c color.RGBA) {
	i := (y*f.Width + x) * 3
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
}

// At returns the pixel at (x, y)
func (f *Frame) At(x, y int) color.RGBA {
	i := (y*f.Width + x) * 3
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: 255}
}

// ToImage converts the frame to an opaque RGBA image
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, f.At(x, y))
		}
	}
	return img
}
