package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/pixwin"
)

// Platform implements pixwin.Platform on GLFW.
// All methods must be called from the main OS thread.
type Platform struct {
	initialized bool
	device      *Device
}

var _ pixwin.Platform = (*Platform)(nil)

// NewPlatform creates an uninitialized GLFW platform.
func NewPlatform() *Platform {
	return &Platform{}
}

// Init initializes GLFW and sets the context hints used by every window.
// Repeated calls are no-ops until Terminate.
func (p *Platform) Init(cfg pixwin.GraphicsConfig) error {
	if p.initialized {
		return nil
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.ContextVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.ContextVersionMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, boolHint(cfg.ForwardCompatible))
	glfw.WindowHint(glfw.Visible, boolHint(cfg.Visible))

	p.initialized = true
	return nil
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

// CreateWindow opens a window and installs event trampolines forwarding to sink.
func (p *Platform) CreateWindow(title string, width, height int, sink pixwin.EventSink) (pixwin.Window, error) {
	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfw create window: %w", err)
	}

	t := &trampolines{sink: sink}
	w.SetKeyCallback(t.keyCallback)
	w.SetCharCallback(t.charCallback)
	w.SetCursorPosCallback(t.cursorPosCallback)
	w.SetMouseButtonCallback(t.mouseButtonCallback)
	w.SetFocusCallback(t.focusCallback)
	w.SetFramebufferSizeCallback(t.framebufferSizeCallback)

	return Window{w: w}, nil
}

// LoadDevice resolves OpenGL entry points once. A context must be current.
func (p *Platform) LoadDevice() (pixwin.Device, error) {
	if p.device != nil {
		return p.device, nil
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	p.device = &Device{}
	return p.device, nil
}

// PollEvents processes pending events.
func (p *Platform) PollEvents() {
	glfw.PollEvents()
}

// WaitEvents sleeps until an event arrives, then processes it.
func (p *Platform) WaitEvents() {
	glfw.WaitEvents()
}

// WaitEventsTimeout sleeps for at most timeout seconds.
func (p *Platform) WaitEventsTimeout(timeout float64) {
	glfw.WaitEventsTimeout(timeout)
}

// Terminate destroys remaining windows and shuts GLFW down.
func (p *Platform) Terminate() {
	if !p.initialized {
		return
	}
	glfw.Terminate()
	p.initialized = false
	p.device = nil
}

// Window wraps a GLFW window. It is a value type: two Windows wrapping the
// same *glfw.Window compare equal, which lets event trampolines resolve the
// native handle through the pixwin registry.
type Window struct {
	w *glfw.Window
}

var _ pixwin.Window = Window{}

// Native returns the underlying GLFW window.
func (w Window) Native() *glfw.Window { return w.w }

func (w Window) MakeContextCurrent() { w.w.MakeContextCurrent() }

// SwapInterval sets the swap interval of the current context.
func (w Window) SwapInterval(interval int) { glfw.SwapInterval(interval) }

func (w Window) ContentScale() (x, y float32) { return w.w.GetContentScale() }

func (w Window) FramebufferSize() (width, height int) { return w.w.GetFramebufferSize() }

func (w Window) SwapBuffers() { w.w.SwapBuffers() }

func (w Window) ShouldClose() bool { return w.w.ShouldClose() }

func (w Window) SetTitle(title string) { w.w.SetTitle(title) }

func (w Window) Destroy() { w.w.Destroy() }

// GetText returns the clipboard contents.
func (w Window) GetText() string { return w.w.GetClipboardString() }

// SetText copies text to the clipboard.
func (w Window) SetText(text string) { w.w.SetClipboardString(text) }

// trampolines adapts GLFW callbacks to a pixwin.EventSink.
// Native values are forwarded unmodified.
type trampolines struct {
	sink pixwin.EventSink
}

func (t *trampolines) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	t.sink.Key(Window{w: w}, pixwin.Key(key), scancode, pixwin.Action(action), pixwin.ModifierKey(mods))
}

func (t *trampolines) charCallback(w *glfw.Window, char rune) {
	t.sink.Char(Window{w: w}, char)
}

func (t *trampolines) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	t.sink.CursorPos(Window{w: w}, xpos, ypos)
}

func (t *trampolines) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	t.sink.MouseButton(Window{w: w}, pixwin.MouseButton(button), pixwin.Action(action), pixwin.ModifierKey(mods))
}

func (t *trampolines) focusCallback(w *glfw.Window, focused bool) {
	t.sink.Focus(Window{w: w}, focused)
}

func (t *trampolines) framebufferSizeCallback(w *glfw.Window, width, height int) {
	xscale, yscale := w.GetContentScale()
	t.sink.FramebufferSize(Window{w: w}, width, height, xscale, yscale)
}
