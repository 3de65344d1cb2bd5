package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the render-facing pose. Once an entity owns a RigidBody,
// Position is written only by the transform sync pass.
type Transform struct {
	Position mgl64.Vec2
	Scale    mgl64.Vec2
	Rotation float64
}

// NewTransform returns a unit-scale, unrotated pose at pos.
func NewTransform(pos mgl64.Vec2) *Transform {
	return &Transform{Position: pos, Scale: mgl64.Vec2{1, 1}}
}
