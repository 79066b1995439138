package pixwin

import (
	"fmt"
	"math"
)

// PixelBuffer is the CPU-side image a window displays.
// The GPU texture is synced from it every frame.
//
// Invariant: len(Bytes()) == Width()*Height()*Format().BytesPerPixel()
// whenever the buffer is non-empty.
type PixelBuffer struct {
	width  int
	height int
	format PixelFormat
	pix    []byte
}

// NewPixelBuffer creates a zero-filled buffer.
func NewPixelBuffer(format PixelFormat, width, height int) (*PixelBuffer, error) {
	b := &PixelBuffer{format: format}
	if err := b.Resize(format, width, height); err != nil {
		return nil, err
	}
	return b, nil
}

// Width returns the buffer width in texels.
func (b *PixelBuffer) Width() int { return b.width }

// Height returns the buffer height in texels.
func (b *PixelBuffer) Height() int { return b.height }

// Format returns the channel layout.
func (b *PixelBuffer) Format() PixelFormat { return b.format }

// Len returns the byte size of the buffer.
func (b *PixelBuffer) Len() int { return len(b.pix) }

// Bytes returns the raw pixel bytes. The slice aliases the buffer.
func (b *PixelBuffer) Bytes() []byte { return b.pix }

// Allocated reports whether storage has been created.
func (b *PixelBuffer) Allocated() bool { return b.pix != nil }

// Size returns the width and height as a vector.
func (b *PixelBuffer) Size() Vec2 {
	return Vec2{X: float32(b.width), Y: float32(b.height)}
}

// byteSize computes width*height*bpp, rejecting negative and overflowing sizes.
func byteSize(format PixelFormat, width, height int) (int, error) {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return 0, ErrUnknownFormat
	}
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width != 0 && height > math.MaxInt/bpp/width {
		return 0, fmt.Errorf("%w: %dx%d overflows", ErrInvalidSize, width, height)
	}
	return width * height * bpp, nil
}

// Resize sets the buffer dimensions and format.
//
// Resizing to the current (format, width, height) keeps the same backing
// array. The first allocation is zero-filled. Later resizes keep the bytes
// that overlap the old length; the contents of any grown region are
// unspecified.
func (b *PixelBuffer) Resize(format PixelFormat, width, height int) error {
	size, err := byteSize(format, width, height)
	if err != nil {
		return err
	}

	if b.pix != nil && b.format == format && b.width == width && b.height == height && len(b.pix) == size {
		return nil
	}

	switch {
	case b.pix == nil:
		b.pix = make([]byte, size)
	case size <= cap(b.pix):
		b.pix = b.pix[:size]
	default:
		b.pix = append(b.pix, make([]byte, size-len(b.pix))...)
	}

	b.format = format
	b.width = width
	b.height = height
	return nil
}

// SetFormat changes the channel layout, resizing so the invariant holds.
func (b *PixelBuffer) SetFormat(format PixelFormat) error {
	return b.Resize(format, b.width, b.height)
}

// Replace resizes the buffer to width x height in the current format and
// copies pix into it. pix must hold at least width*height*bpp bytes;
// a shorter slice returns ErrShortBuffer and leaves the buffer untouched.
func (b *PixelBuffer) Replace(pix []byte, width, height int) error {
	size, err := byteSize(b.format, width, height)
	if err != nil {
		return err
	}
	if len(pix) < size {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrShortBuffer, len(pix), size)
	}
	if err := b.Resize(b.format, width, height); err != nil {
		return err
	}
	copy(b.pix, pix[:size])
	return nil
}

// Reset frees the storage.
func (b *PixelBuffer) Reset() {
	b.pix = nil
	b.width = 0
	b.height = 0
}
