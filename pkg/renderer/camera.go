package renderer

import (
	"math"

	"github.com/Arideno/graphics-engine/pkg/core"
)

// Camera is a pinhole camera looking down -Z. It maps pixel coordinates,
// with y growing upwards, to primary rays.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	width           int
	height          int
}

// NewCamera creates a camera at origin with the given vertical field of view
// in degrees. The image width is derived from the height and aspect ratio.
func NewCamera(origin core.Vec3, vfov, aspectRatio float64, height int) *Camera {
	theta := vfov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2.0)
	viewportWidth := aspectRatio * viewportHeight
	focalLength := 1.0

	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, viewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, focalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
		width:           int(float64(height) * aspectRatio),
		height:          height,
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.height
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// RayForPixel returns the ray through the center of pixel (x, y), where
// y = 0 is the bottom row
func (c *Camera) RayForPixel(x, y int) core.Ray {
	s := (float64(x) + 0.5) / float64(c.width)
	t := (float64(y) + 0.5) / float64(c.height)
	return c.GetRay(s, t)
}
