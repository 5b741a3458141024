package loaders

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"os"
)

// ImageData contains an image as row-major 8-bit RGB, top row first
type ImageData struct {
	Width  int
	Height int
	Pix    []uint8 // 3 bytes per pixel
}

// WritePNG encodes a row-major 8-bit RGB buffer as a PNG file
func WritePNG(filename string, pix []uint8, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pix) != width*height*3 {
		return fmt.Errorf("pixel buffer has %d bytes, expected %d for %dx%d RGB", len(pix), width*height*3, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			img.SetRGBA(x, y, color.RGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: 255})
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	return nil
}

// LoadImage loads a PNG or JPEG image as 8-bit RGB. Alpha is dropped.
func LoadImage(filename string) (*ImageData, error) {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pix := make([]uint8, width*height*3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.RGBA)
			i := (y*width + x) * 3
			pix[i] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pix:    pix,
	}, nil
}
