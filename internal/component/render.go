package component

// Sprite is read by the renderer together with Transform.
type Sprite struct {
	Asset string
	Scale float64
}
