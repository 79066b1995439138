package pixwin

import (
	"fmt"
	"log/slog"
)

// Status is the result code of a per-window operation.
type Status uint8

const (
	// StatusOK reports success.
	StatusOK Status = 0
	// StatusInvalidHandle reports an unknown or disposed handle, or a
	// request rejected before it could touch the window's state.
	StatusInvalidHandle Status = 1
)

// String returns a short name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidHandle:
		return "invalid handle"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Context owns every window created through it. It replaces process-wide
// state: independent contexts never see each other's windows.
//
// All methods must be called from the thread that initialized the platform.
type Context struct {
	platform    Platform
	cfg         Config
	logger      *slog.Logger
	instances   *Registry[Window, *instance]
	device      Device
	initialized bool
	sink        EventSink
}

// Option configures a Context.
type Option func(*Context)

// WithConfig sets the configuration. The default is DefaultConfig().
func WithConfig(cfg Config) Option {
	return func(c *Context) { c.cfg = cfg }
}

// WithLogger sets the logger. Passing nil keeps the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Context driving platform.
func New(platform Platform, opts ...Option) *Context {
	c := &Context{
		platform:  platform,
		cfg:       DefaultConfig(),
		logger:    defaultLogger,
		instances: NewRegistry[Window, *instance](),
	}
	c.sink = dispatcher{c: c}

	for _, opt := range opts {
		opt(c)
	}
	if !c.cfg.Defaults.PixelFormat.Valid() {
		c.cfg.Defaults.PixelFormat = FormatRGBA
	}

	return c
}

// Config returns the active configuration.
func (c *Context) Config() Config {
	return c.cfg
}

// init brings the platform up once per Context.
func (c *Context) init() error {
	if c.initialized {
		return nil
	}
	if err := c.platform.Init(c.cfg.Graphics); err != nil {
		return fmt.Errorf("platform init: %w", err)
	}
	c.initialized = true
	return nil
}

// loadDevice resolves GPU entry points on the first window only.
func (c *Context) loadDevice() (Device, error) {
	if c.device != nil {
		return c.device, nil
	}
	dev, err := c.platform.LoadDevice()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceLoad, err)
	}
	c.device = dev
	return dev, nil
}

// CreateWindow opens a window of windowWidth x windowHeight logical pixels
// showing a bufferWidth x bufferHeight pixel buffer in the default format.
// onClose may be nil.
//
// On failure nothing is registered and InvalidHandle is returned with the
// error.
func (c *Context) CreateWindow(title string, bufferWidth, bufferHeight, windowWidth, windowHeight int, onClose CloseFunc) (Handle, error) {
	format := c.cfg.Defaults.PixelFormat
	if _, err := byteSize(format, bufferWidth, bufferHeight); err != nil {
		return InvalidHandle, err
	}
	if err := c.init(); err != nil {
		return InvalidHandle, err
	}

	win, err := c.platform.CreateWindow(title, windowWidth, windowHeight, c.sink)
	if err != nil {
		return InvalidHandle, fmt.Errorf("create window: %w", err)
	}

	inst := &instance{
		window:     win,
		clearColor: c.cfg.ClearColor(),
	}

	win.MakeContextCurrent()
	win.SwapInterval(c.cfg.Graphics.SwapInterval)

	// The framebuffer is larger than the logical size on HiDPI displays.
	xscale, yscale := win.ContentScale()
	if xscale <= 0 {
		xscale = 1
	}
	if yscale <= 0 {
		yscale = 1
	}
	inst.width = int(float32(windowWidth) * xscale)
	inst.height = int(float32(windowHeight) * yscale)

	dev, err := c.loadDevice()
	if err != nil {
		win.Destroy()
		return InvalidHandle, err
	}

	inst.program, err = NewQuadProgram(dev, c.logger)
	if err != nil {
		win.Destroy()
		return InvalidHandle, err
	}

	// Dimensions were validated above.
	_ = inst.buffer.Resize(format, bufferWidth, bufferHeight)
	inst.texture.Allocate(dev)
	inst.callbacks.close.replace(onClose, onClose != nil, nil)

	h, err := c.instances.Insert(win, inst)
	if err != nil {
		inst.texture.Release(dev)
		inst.program.Delete(dev)
		win.Destroy()
		return InvalidHandle, err
	}
	inst.handle = h

	c.platform.PollEvents()

	c.logger.Info("window created",
		"handle", uint64(h),
		"title", title,
		"buffer", fmt.Sprintf("%dx%d", bufferWidth, bufferHeight),
		"framebuffer", fmt.Sprintf("%dx%d", inst.width, inst.height))
	return h, nil
}

// Dispose destroys the window of h and everything it owns, then releases
// its callbacks. The handle is invalid afterwards.
func (c *Context) Dispose(h Handle) Status {
	// Unregister first so no pending event can resolve to a dying instance.
	inst, ok := c.instances.Remove(h)
	if !ok {
		return StatusInvalidHandle
	}

	// GL objects belong to the window's context; release them while it exists.
	inst.window.MakeContextCurrent()
	inst.texture.Release(c.device)
	inst.program.Delete(c.device)
	inst.window.Destroy()
	inst.buffer.Reset()
	inst.callbacks.releaseAll()

	c.logger.Info("window disposed", "handle", uint64(h))
	return StatusOK
}

// Render draws one frame of h, swaps buffers, polls events and invokes the
// close callback if the window was asked to close.
func (c *Context) Render(h Handle) Status {
	inst, ok := c.instances.Get(h)
	if !ok {
		return StatusInvalidHandle
	}

	c.drawFrame(inst)
	inst.window.SwapBuffers()
	c.platform.PollEvents()

	// An event handler may have disposed the window during the poll.
	if _, ok := c.instances.Get(h); !ok {
		return StatusOK
	}

	if inst.window.ShouldClose() {
		if fn, ok := inst.callbacks.close.get(); ok {
			fn(h)
		}
	}
	return StatusOK
}

// drawFrame renders the letterboxed buffer into the current back buffer.
func (c *Context) drawFrame(inst *instance) {
	dev := c.device

	inst.window.MakeContextCurrent()
	inst.width, inst.height = inst.window.FramebufferSize()
	dev.Viewport(inst.width, inst.height)
	inst.program.SetResolution(dev, inst.width, inst.height)
	dev.Clear(inst.clearColor)

	inst.texture.Sync(dev, &inst.buffer)

	win := inst.size()
	quad := Letterbox(win, inst.buffer.Size())
	if quad.Empty() {
		return
	}
	inst.program.Draw(dev, &inst.texture, CenteredInstance(win, quad))
}

// ReplacePixels copies pix into the buffer of h, resizing it to
// width x height in the current format. pix shorter than
// width*height*bytesPerPixel is rejected and the buffer is left unchanged.
func (c *Context) ReplacePixels(h Handle, pix []byte, width, height int) Status {
	inst, ok := c.instances.Get(h)
	if !ok {
		return StatusInvalidHandle
	}
	if err := inst.buffer.Replace(pix, width, height); err != nil {
		c.logger.Warn("pixel replacement rejected", "handle", uint64(h), "err", err)
		return StatusInvalidHandle
	}
	return StatusOK
}

// SetTitle updates the window title.
func (c *Context) SetTitle(h Handle, title string) Status {
	inst, ok := c.instances.Get(h)
	if !ok {
		return StatusInvalidHandle
	}
	inst.window.SetTitle(title)
	return StatusOK
}

// SetPixelFormat switches the buffer to "rgb", "rgba" or "bgra".
// An unrecognized name leaves the format unchanged.
func (c *Context) SetPixelFormat(h Handle, name string) Status {
	inst, ok := c.instances.Get(h)
	if !ok {
		return StatusInvalidHandle
	}
	format, ok := ParsePixelFormat(name)
	if !ok {
		c.logger.Debug("pixel format ignored", "handle", uint64(h), "format", name)
		return StatusOK
	}
	if err := inst.buffer.SetFormat(format); err != nil {
		c.logger.Warn("pixel format rejected", "handle", uint64(h), "format", name, "err", err)
		return StatusInvalidHandle
	}
	return StatusOK
}

// PixelFormat returns the current buffer format of h.
func (c *Context) PixelFormat(h Handle) (PixelFormat, Status) {
	inst, ok := c.instances.Get(h)
	if !ok {
		return 0, StatusInvalidHandle
	}
	return inst.buffer.Format(), StatusOK
}

// SetClearColor sets the letterbox color. Alpha is always opaque.
func (c *Context) SetClearColor(h Handle, r, g, b uint8) Status {
	inst, ok := c.instances.Get(h)
	if !ok {
		return StatusInvalidHandle
	}
	inst.clearColor = RGB(r, g, b)
	return StatusOK
}

// AwaitEvents blocks until an event arrives and dispatches it.
// h only identifies the calling window.
func (c *Context) AwaitEvents(h Handle) Status {
	if _, ok := c.instances.Get(h); !ok {
		return StatusInvalidHandle
	}
	c.platform.WaitEvents()
	return StatusOK
}

// AwaitEventsTimeout blocks for at most seconds. A non-positive timeout polls.
func (c *Context) AwaitEventsTimeout(h Handle, seconds float64) Status {
	if _, ok := c.instances.Get(h); !ok {
		return StatusInvalidHandle
	}
	if seconds <= 0 {
		c.platform.PollEvents()
		return StatusOK
	}
	c.platform.WaitEventsTimeout(seconds)
	return StatusOK
}

// SetManaged records whether the host manages the window's lifecycle.
func (c *Context) SetManaged(h Handle, managed bool) Status {
	inst, ok := c.instances.Get(h)
	if !ok {
		return StatusInvalidHandle
	}
	inst.managed = managed
	return StatusOK
}

// Managed returns the flag stored by SetManaged.
func (c *Context) Managed(h Handle) (bool, Status) {
	inst, ok := c.instances.Get(h)
	if !ok {
		return false, StatusInvalidHandle
	}
	return inst.managed, StatusOK
}

// FramebufferSize returns the size measured at creation or by the last render.
func (c *Context) FramebufferSize(h Handle) (width, height int, status Status) {
	inst, ok := c.instances.Get(h)
	if !ok {
		return 0, 0, StatusInvalidHandle
	}
	return inst.width, inst.height, StatusOK
}

// BufferSize returns the pixel buffer dimensions of h.
func (c *Context) BufferSize(h Handle) (width, height int, status Status) {
	inst, ok := c.instances.Get(h)
	if !ok {
		return 0, 0, StatusInvalidHandle
	}
	return inst.buffer.Width(), inst.buffer.Height(), StatusOK
}

// Handles returns the live windows in creation order.
func (c *Context) Handles() []Handle {
	return c.instances.Handles()
}

// Len returns the number of live windows.
func (c *Context) Len() int {
	return c.instances.Len()
}

// Close disposes every window in creation order and terminates the platform.
func (c *Context) Close() {
	for _, h := range c.instances.Handles() {
		c.Dispose(h)
	}
	if c.initialized {
		c.platform.Terminate()
		c.initialized = false
		c.device = nil
	}
}
