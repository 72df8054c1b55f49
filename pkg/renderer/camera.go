package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// fieldOfView is fixed at 90 degrees.
const fieldOfView = 90.0

// Camera generates primary rays from the camera pose and image dimensions.
// Pixel (0,0) is the top-left of the view. Behavior is undefined for zero
// width or height; positive dimensions are the caller's responsibility.
type Camera struct {
	origin     core.Vec3
	topLeft    core.Vec3
	xIncrement core.Vec3
	yIncrement core.Vec3
}

// NewCamera creates a camera at position with the given yaw in degrees
func NewCamera(width, height int, position core.Vec3, yawDegrees float64) *Camera {
	yaw := yawDegrees * math.Pi / 180
	forward := core.NewVec3(math.Sin(yaw), 0, -math.Cos(yaw))
	up := core.NewVec3(0, 1, 0)
	right := up.Cross(forward).Negate()

	halfWidth := math.Tan(fieldOfView / 2 * math.Pi / 180)
	halfHeight := halfWidth * float64(height) / float64(width)

	topLeft := forward.Add(up.Multiply(halfHeight)).Subtract(right.Multiply(halfWidth))

	return &Camera{
		origin:     position,
		topLeft:    topLeft,
		xIncrement: right.Multiply(2 * halfWidth / float64(width)),
		yIncrement: up.Multiply(2 * halfHeight / float64(height)),
	}
}

// GetRay generates the primary ray for pixel (x, y)
func (c *Camera) GetRay(x, y int) core.Ray {
	direction := c.topLeft.
		Add(c.xIncrement.Multiply(float64(x))).
		Subtract(c.yIncrement.Multiply(float64(y)))

	return core.NewRay(c.origin, direction.Normalize())
}
