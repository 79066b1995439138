package pixwin

// dispatcher routes native events to per-window callbacks. It resolves the
// native window through the registry; events for unknown windows or empty
// callback slots are dropped.
type dispatcher struct {
	c *Context
}

var _ EventSink = dispatcher{}

// resolve finds the instance for w.
func (d dispatcher) resolve(w Window, kind CallbackKind) (Handle, *instance, bool) {
	h, inst, ok := d.c.instances.Lookup(w)
	if !ok {
		d.c.logger.Debug("event dropped: unknown window", "kind", kind.String())
		return InvalidHandle, nil, false
	}
	return h, inst, true
}

func (d dispatcher) Key(w Window, key Key, scancode int, action Action, mods ModifierKey) {
	h, inst, ok := d.resolve(w, CallbackKey)
	if !ok {
		return
	}
	if fn, ok := inst.callbacks.key.get(); ok {
		fn(h, key, scancode, action, mods)
	}
}

func (d dispatcher) Char(w Window, char rune) {
	h, inst, ok := d.resolve(w, CallbackChar)
	if !ok {
		return
	}
	if fn, ok := inst.callbacks.char.get(); ok {
		fn(h, char)
	}
}

func (d dispatcher) CursorPos(w Window, x, y float64) {
	h, inst, ok := d.resolve(w, CallbackCursorPos)
	if !ok {
		return
	}
	if fn, ok := inst.callbacks.cursorPos.get(); ok {
		fn(h, x, y)
	}
}

func (d dispatcher) MouseButton(w Window, button MouseButton, action Action, mods ModifierKey) {
	h, inst, ok := d.resolve(w, CallbackMouseButton)
	if !ok {
		return
	}
	if fn, ok := inst.callbacks.mouseButton.get(); ok {
		fn(h, button, action, mods)
	}
}

func (d dispatcher) Focus(w Window, focused bool) {
	h, inst, ok := d.resolve(w, CallbackFocus)
	if !ok {
		return
	}
	if fn, ok := inst.callbacks.focus.get(); ok {
		fn(h, focused)
	}
}

func (d dispatcher) FramebufferSize(w Window, width, height int, xscale, yscale float32) {
	h, inst, ok := d.resolve(w, CallbackFramebufferSize)
	if !ok {
		return
	}
	if fn, ok := inst.callbacks.framebufferSize.get(); ok {
		fn(h, width, height, xscale, yscale)
	}
}

// Events returns the sink native events for this context's windows are
// delivered to. Platforms receive it in CreateWindow; bridges that pump
// events themselves can feed it directly.
func (c *Context) Events() EventSink {
	return c.sink
}
