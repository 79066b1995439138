package pixwin

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// NRGBA converts the buffer to a straight-alpha image. RGB buffers become
// opaque and BGRA buffers are swizzled. The result does not alias the buffer.
func (b *PixelBuffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	n := b.width * b.height
	src := b.pix
	dst := img.Pix

	switch b.format {
	case FormatRGBA:
		copy(dst, src)
	case FormatRGB:
		for i := 0; i < n; i++ {
			dst[i*4+0] = src[i*3+0]
			dst[i*4+1] = src[i*3+1]
			dst[i*4+2] = src[i*3+2]
			dst[i*4+3] = 0xFF
		}
	case FormatBGRA:
		for i := 0; i < n; i++ {
			dst[i*4+0] = src[i*4+2]
			dst[i*4+1] = src[i*4+1]
			dst[i*4+2] = src[i*4+0]
			dst[i*4+3] = src[i*4+3]
		}
	}
	return img
}

// ReplaceImage draws img into the buffer of h at its native size and
// switches the buffer to RGBA.
func (c *Context) ReplaceImage(h Handle, img image.Image) Status {
	inst, ok := c.instances.Get(h)
	if !ok {
		return StatusInvalidHandle
	}

	bounds := img.Bounds()
	if err := inst.buffer.Resize(FormatRGBA, bounds.Dx(), bounds.Dy()); err != nil {
		c.logger.Warn("image replacement rejected", "handle", uint64(h), "err", err)
		return StatusInvalidHandle
	}

	// Draw straight into the buffer storage.
	dst := &image.NRGBA{
		Pix:    inst.buffer.Bytes(),
		Stride: bounds.Dx() * 4,
		Rect:   image.Rect(0, 0, bounds.Dx(), bounds.Dy()),
	}
	xdraw.Copy(dst, image.Point{}, img, bounds, xdraw.Src, nil)
	return StatusOK
}

// Snapshot returns a copy of the CPU-side buffer of h as an image.
func (c *Context) Snapshot(h Handle) (*image.NRGBA, Status) {
	inst, ok := c.instances.Get(h)
	if !ok {
		return nil, StatusInvalidHandle
	}
	return inst.buffer.NRGBA(), StatusOK
}

// Capture draws one frame of h without presenting it and reads the
// framebuffer back, letterbox included.
func (c *Context) Capture(h Handle) (*image.NRGBA, Status) {
	inst, ok := c.instances.Get(h)
	if !ok {
		return nil, StatusInvalidHandle
	}

	c.drawFrame(inst)
	w, ht := inst.width, inst.height
	pix := c.device.ReadPixels(w, ht)

	img := image.NewNRGBA(image.Rect(0, 0, w, ht))
	stride := w * 4
	// GL rows run bottom-up.
	for y := 0; y < ht; y++ {
		src := (ht - 1 - y) * stride
		if src+stride > len(pix) {
			continue
		}
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], pix[src:src+stride])
	}
	return img, StatusOK
}

// ScaleImage resamples img to width x height. A nil scaler uses
// ApproxBiLinear; use xdraw.NearestNeighbor for pixel art and QR codes.
func ScaleImage(img image.Image, width, height int, scaler xdraw.Scaler) *image.NRGBA {
	if scaler == nil {
		scaler = xdraw.ApproxBiLinear
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
