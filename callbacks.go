package pixwin

// CloseFunc is invoked from Render when the window was asked to close.
// The handler decides whether to Dispose.
type CloseFunc func(h Handle)

// KeyFunc receives key events.
type KeyFunc func(h Handle, key Key, scancode int, action Action, mods ModifierKey)

// CharFunc receives typed Unicode code points.
type CharFunc func(h Handle, char rune)

// FramebufferSizeFunc receives framebuffer resizes and the current content scale.
type FramebufferSizeFunc func(h Handle, width, height int, xscale, yscale float32)

// CursorPosFunc receives cursor positions in window coordinates.
type CursorPosFunc func(h Handle, x, y float64)

// MouseButtonFunc receives mouse button events.
type MouseButtonFunc func(h Handle, button MouseButton, action Action, mods ModifierKey)

// FocusFunc receives focus changes.
type FocusFunc func(h Handle, focused bool)

// CallbackKind names a callback slot.
type CallbackKind uint8

const (
	CallbackClose CallbackKind = iota
	CallbackKey
	CallbackChar
	CallbackFramebufferSize
	CallbackCursorPos
	CallbackMouseButton
	CallbackFocus
)

// String returns the slot name used in log output.
func (k CallbackKind) String() string {
	switch k {
	case CallbackClose:
		return "close"
	case CallbackKey:
		return "key"
	case CallbackChar:
		return "char"
	case CallbackFramebufferSize:
		return "framebuffer_size"
	case CallbackCursorPos:
		return "cursor_pos"
	case CallbackMouseButton:
		return "mouse_button"
	case CallbackFocus:
		return "focus"
	default:
		return "unknown"
	}
}

// CallbackOption configures a callback registration.
type CallbackOption func(*callbackOptions)

type callbackOptions struct {
	release func()
}

// WithRelease attaches a hook run exactly once when the handler is replaced,
// cleared, or its window is disposed. Bridges use it to drop references
// they hold on the foreign side.
func WithRelease(release func()) CallbackOption {
	return func(o *callbackOptions) { o.release = release }
}

// slot holds one registered handler and the hook that releases it.
type slot[F any] struct {
	fn      F
	set     bool
	release func()
}

// replace stores fn, releasing the previous handler first.
func (s *slot[F]) replace(fn F, set bool, opts []CallbackOption) {
	s.clear()
	if !set {
		return
	}
	var o callbackOptions
	for _, opt := range opts {
		opt(&o)
	}
	s.fn = fn
	s.set = true
	s.release = o.release
}

// clear drops the handler and runs its release hook.
func (s *slot[F]) clear() {
	release := s.release
	var zero F
	s.fn = zero
	s.set = false
	s.release = nil
	if release != nil {
		release()
	}
}

// get returns the handler if one is registered.
func (s *slot[F]) get() (F, bool) {
	return s.fn, s.set
}

// callbacks is the set of optional per-instance handlers.
type callbacks struct {
	close           slot[CloseFunc]
	key             slot[KeyFunc]
	char            slot[CharFunc]
	framebufferSize slot[FramebufferSizeFunc]
	cursorPos       slot[CursorPosFunc]
	mouseButton     slot[MouseButtonFunc]
	focus           slot[FocusFunc]
}

// releaseAll clears every slot.
func (cb *callbacks) releaseAll() {
	cb.close.clear()
	cb.key.clear()
	cb.char.clear()
	cb.framebufferSize.clear()
	cb.cursorPos.clear()
	cb.mouseButton.clear()
	cb.focus.clear()
}

// SetCloseCallback registers the handler invoked when the window should close.
// A nil fn clears the slot.
func (c *Context) SetCloseCallback(h Handle, fn CloseFunc, opts ...CallbackOption) Status {
	return c.setCallback(h, CallbackClose, func(inst *instance) {
		inst.callbacks.close.replace(fn, fn != nil, opts)
	})
}

// SetKeyCallback registers the key event handler. A nil fn clears the slot.
func (c *Context) SetKeyCallback(h Handle, fn KeyFunc, opts ...CallbackOption) Status {
	return c.setCallback(h, CallbackKey, func(inst *instance) {
		inst.callbacks.key.replace(fn, fn != nil, opts)
	})
}

// SetCharCallback registers the text input handler. A nil fn clears the slot.
func (c *Context) SetCharCallback(h Handle, fn CharFunc, opts ...CallbackOption) Status {
	return c.setCallback(h, CallbackChar, func(inst *instance) {
		inst.callbacks.char.replace(fn, fn != nil, opts)
	})
}

// SetFramebufferSizeCallback registers the resize handler. A nil fn clears the slot.
func (c *Context) SetFramebufferSizeCallback(h Handle, fn FramebufferSizeFunc, opts ...CallbackOption) Status {
	return c.setCallback(h, CallbackFramebufferSize, func(inst *instance) {
		inst.callbacks.framebufferSize.replace(fn, fn != nil, opts)
	})
}

// SetCursorPosCallback registers the cursor position handler. A nil fn clears the slot.
func (c *Context) SetCursorPosCallback(h Handle, fn CursorPosFunc, opts ...CallbackOption) Status {
	return c.setCallback(h, CallbackCursorPos, func(inst *instance) {
		inst.callbacks.cursorPos.replace(fn, fn != nil, opts)
	})
}

// SetMouseButtonCallback registers the mouse button handler. A nil fn clears the slot.
func (c *Context) SetMouseButtonCallback(h Handle, fn MouseButtonFunc, opts ...CallbackOption) Status {
	return c.setCallback(h, CallbackMouseButton, func(inst *instance) {
		inst.callbacks.mouseButton.replace(fn, fn != nil, opts)
	})
}

// SetFocusCallback registers the focus handler. A nil fn clears the slot.
func (c *Context) SetFocusCallback(h Handle, fn FocusFunc, opts ...CallbackOption) Status {
	return c.setCallback(h, CallbackFocus, func(inst *instance) {
		inst.callbacks.focus.replace(fn, fn != nil, opts)
	})
}

func (c *Context) setCallback(h Handle, kind CallbackKind, apply func(*instance)) Status {
	inst, ok := c.instances.Get(h)
	if !ok {
		return StatusInvalidHandle
	}
	apply(inst)
	c.logger.Debug("callback registered", "handle", uint64(h), "kind", kind.String())
	return StatusOK
}
