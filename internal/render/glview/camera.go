package glview

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a target point and supplies the view and projection
// matrices.
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Target   mgl32.Vec3
	Distance float32
	// Yaw and Pitch are in degrees. Pitch is clamped so the camera never
	// passes over the pole.
	Yaw, Pitch float32
}

// NewCamera returns a camera looking down at target from distance away.
func NewCamera(width, height int, target mgl32.Vec3, distance float32) *Camera {
	return &Camera{
		AspectRatio: float32(width) / float32(max(height, 1)),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		Target:      target,
		Distance:    distance,
		Yaw:         -90,
		Pitch:       45,
	}
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl32.Vec3 {
	yaw, pitch := float64(mgl32.DegToRad(c.Yaw)), float64(mgl32.DegToRad(c.Pitch))
	offset := mgl32.Vec3{
		float32(math.Cos(pitch) * math.Cos(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Sin(yaw)),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// ViewMatrix returns the view transform from Eye towards Target.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

// Orbit rotates the camera around its target.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 360))
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, 5, 89)
}

// Zoom scales the distance to the target by factor.
func (c *Camera) Zoom(factor float32) {
	c.Distance = mgl32.Clamp(c.Distance*factor, 1, c.FarPlane/2)
}
