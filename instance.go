package pixwin

// instance is one live window: its native handle, pixel buffer, texture,
// quad program, clear color, framebuffer size and callbacks.
//
// managed is stored for the host and never acted on by the library.
type instance struct {
	handle     Handle
	window     Window
	buffer     PixelBuffer
	texture    Texture
	program    *QuadProgram
	clearColor Color
	width      int
	height     int
	managed    bool
	callbacks  callbacks
}

// size returns the framebuffer size as a vector.
func (inst *instance) size() Vec2 {
	return Vec2{X: float32(inst.width), Y: float32(inst.height)}
}
