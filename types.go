package pixwin

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Rect represents a rectangle with position and size.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32 // Width and height
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 {
	return Vec2{X: r.X, Y: r.Y}
}

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 {
	return Vec2{X: r.W, Y: r.H}
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// QuadInstance is the per-draw instance data uploaded to the quad program.
// Memory layout matches the two vec2 vertex attributes (position, size).
type QuadInstance struct {
	Position [2]float32 // Top-left corner in centered-origin window space
	Size     [2]float32 // Quad extent in framebuffer pixels
}

// Color is an 8-bit per channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// DefaultClearColor is the neutral gray new windows are cleared to.
var DefaultClearColor = Color{R: 80, G: 80, B: 80, A: 255}

// RGB creates an opaque color from individual components (0-255).
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Normalized returns the color components scaled to 0.0-1.0.
func (c Color) Normalized() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// minf returns the minimum of two float32 values.
func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
