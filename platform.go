package pixwin

// Platform is the windowing subsystem a Context drives.
// backend/opengl provides the GLFW implementation.
type Platform interface {
	// Init brings up the windowing subsystem. Repeated calls are no-ops.
	Init(cfg GraphicsConfig) error

	// CreateWindow opens a native window of the given logical size and
	// routes its input events to sink.
	CreateWindow(title string, width, height int, sink EventSink) (Window, error)

	// LoadDevice resolves GPU entry points. It must be called with a
	// current context; repeated calls return the same Device.
	LoadDevice() (Device, error)

	// PollEvents dispatches pending events and returns immediately.
	PollEvents()

	// WaitEvents blocks until at least one event arrives, then dispatches.
	WaitEvents()

	// WaitEventsTimeout blocks for at most timeout seconds.
	WaitEventsTimeout(timeout float64)

	// Terminate shuts the subsystem down.
	Terminate()
}

// Window is a native window with its own rendering context.
// Implementations must be comparable: the registry uses Window values as
// keys to resolve incoming events.
type Window interface {
	ClipboardProvider

	MakeContextCurrent()
	SwapInterval(interval int)
	ContentScale() (x, y float32)
	FramebufferSize() (width, height int)
	SwapBuffers()
	ShouldClose() bool
	SetTitle(title string)
	Destroy()
}

// EventSink receives native input events. Window values passed in compare
// equal to the value returned by Platform.CreateWindow for the same window.
type EventSink interface {
	Key(w Window, key Key, scancode int, action Action, mods ModifierKey)
	Char(w Window, char rune)
	CursorPos(w Window, x, y float64)
	MouseButton(w Window, button MouseButton, action Action, mods ModifierKey)
	Focus(w Window, focused bool)
	FramebufferSize(w Window, width, height int, xscale, yscale float32)
}

// ShaderStage selects the pipeline stage a shader is compiled for.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// String returns the stage name used in log output.
func (s ShaderStage) String() string {
	if s == StageVertex {
		return "vertex"
	}
	return "fragment"
}

// VertexAttrib describes one float vertex attribute in an instance buffer.
type VertexAttrib struct {
	Location   uint32
	Components int32
	Stride     int32
	Offset     uintptr
	Divisor    uint32
}

// Device is the subset of GPU operations the renderer needs.
// All calls run against the context made current by Window.MakeContextCurrent.
type Device interface {
	GenTexture() uint32
	DeleteTexture(id uint32)

	// UploadTexture binds id, sets linear filtering and clamp-to-edge
	// wrapping, re-declares storage at width x height and uploads pixels.
	UploadTexture(id uint32, format PixelFormat, width, height int, pixels []byte)

	// CompileShader compiles source. The returned id is valid even when
	// err reports a compile failure.
	CompileShader(stage ShaderStage, source string) (uint32, error)

	// LinkProgram links the two shaders into a program and reports link failures.
	LinkProgram(vertex, fragment uint32) (uint32, error)
	DeleteShader(id uint32)
	DeleteProgram(id uint32)

	NewInstanceBuffer(size int, attribs []VertexAttrib) (vao, vbo uint32)
	DeleteInstanceBuffer(vao, vbo uint32)

	Viewport(width, height int)
	Clear(c Color)
	Uniform2f(program uint32, name string, x, y float32)

	// DrawQuad uploads inst into vbo and draws one instanced triangle-strip quad.
	DrawQuad(program, vao, vbo, texture uint32, inst QuadInstance)

	// ReadPixels reads the current framebuffer as bottom-up RGBA rows.
	ReadPixels(width, height int) []byte
}
