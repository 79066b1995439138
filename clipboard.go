package pixwin

// ClipboardProvider abstracts system clipboard access.
// Every Window implements it; the GLFW backend forwards to
// glfw.Window.GetClipboardString / SetClipboardString.
type ClipboardProvider interface {
	// GetText retrieves text from the system clipboard.
	// Returns empty string if clipboard is empty or contains non-text data.
	GetText() string

	// SetText copies text to the system clipboard.
	SetText(text string)
}

// Clipboard returns the clipboard text through the window of h.
func (c *Context) Clipboard(h Handle) (string, Status) {
	inst, ok := c.instances.Get(h)
	if !ok {
		return "", StatusInvalidHandle
	}
	return inst.window.GetText(), StatusOK
}

// SetClipboard copies text to the clipboard through the window of h.
func (c *Context) SetClipboard(h Handle, text string) Status {
	inst, ok := c.instances.Get(h)
	if !ok {
		return StatusInvalidHandle
	}
	inst.window.SetText(text)
	return StatusOK
}
