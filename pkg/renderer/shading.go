package renderer

import (
	"image/color"
	"math"

	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/Arideno/graphics-engine/pkg/geometry"
	"github.com/Arideno/graphics-engine/pkg/lights"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetLights() []lights.Light
	Intersect(ray core.Ray) (*geometry.Intersection, bool)
}

// PixelResult is the shading outcome for a single pixel
type PixelResult struct {
	Hit       bool    // Whether the primary ray hit anything
	Product   float64 // Raw signed lighting term; 1 when the scene has no lights
	Intensity float64 // max(0, Product)
}

// Shade evaluates the pixel at (x, y) with y = 0 as the top image row
func Shade(scene Scene, x, y int) PixelResult {
	camera := scene.GetCamera()
	ray := camera.RayForPixel(x, camera.Height()-1-y)

	hit, isHit := scene.Intersect(ray)
	if !isHit {
		return PixelResult{}
	}

	product := 1.0
	if sceneLights := scene.GetLights(); len(sceneLights) > 0 {
		product = sceneLights[0].Intensity(hit.Normal())
	}

	return PixelResult{
		Hit:       true,
		Product:   product,
		Intensity: math.Max(0, product),
	}
}

// Color scales the base color by the intensity; misses get the background
func (p PixelResult) Color(base, background color.RGBA) color.RGBA {
	if !p.Hit {
		return background
	}
	return color.RGBA{
		R: scaleChannel(base.R, p.Intensity),
		G: scaleChannel(base.G, p.Intensity),
		B: scaleChannel(base.B, p.Intensity),
		A: 255,
	}
}

// Glyph buckets the raw lighting term into a text-mode character
func (p PixelResult) Glyph() byte {
	switch {
	case !p.Hit:
		return ' '
	case p.Product < 0, math.IsNaN(p.Product):
		return ' '
	case p.Product < 0.2:
		return '.'
	case p.Product < 0.5:
		return '*'
	case p.Product < 0.8:
		return 'O'
	default:
		return '#'
	}
}

// scaleChannel multiplies an 8-bit channel, clamping to [0, 255]
func scaleChannel(channel uint8, intensity float64) uint8 {
	v := float64(channel) * intensity
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
