package pixwin

// Texture is a GPU texture object synced from a PixelBuffer.
// The handle is only valid to bind or upload while Allocated reports true.
type Texture struct {
	id        uint32
	allocated bool
}

// ID returns the GPU handle.
func (t *Texture) ID() uint32 { return t.id }

// Allocated reports whether the handle is live.
func (t *Texture) Allocated() bool { return t.allocated }

// Allocate creates a new texture object, deleting the previous one first.
func (t *Texture) Allocate(dev Device) {
	if t.allocated {
		dev.DeleteTexture(t.id)
	}
	t.id = dev.GenTexture()
	t.allocated = true
}

// Sync uploads the whole buffer. It is a no-op if the texture is not
// allocated or the buffer holds no texels.
func (t *Texture) Sync(dev Device, buf *PixelBuffer) {
	if !t.allocated || buf.Len() == 0 {
		return
	}
	dev.UploadTexture(t.id, buf.Format(), buf.Width(), buf.Height(), buf.Bytes())
}

// Release deletes the texture object if allocated.
func (t *Texture) Release(dev Device) {
	if !t.allocated {
		return
	}
	dev.DeleteTexture(t.id)
	t.id = 0
	t.allocated = false
}
