package pixwin

import "errors"

var (
	// ErrDeviceLoad is returned when GPU entry points cannot be resolved.
	ErrDeviceLoad = errors.New("pixwin: graphics device load failed")

	// ErrShaderLink is returned when the quad program fails to link.
	ErrShaderLink = errors.New("pixwin: shader program link failed")

	// ErrShortBuffer is returned when replacement pixels are smaller than
	// width*height*bytesPerPixel.
	ErrShortBuffer = errors.New("pixwin: pixel data shorter than buffer size")

	// ErrInvalidSize is returned for negative or overflowing buffer dimensions.
	ErrInvalidSize = errors.New("pixwin: invalid buffer size")

	// ErrUnknownFormat is returned for pixel formats outside rgb, rgba and bgra.
	ErrUnknownFormat = errors.New("pixwin: unknown pixel format")
)

// ErrDuplicateKey is returned when a registry already tracks a key.
var ErrDuplicateKey = errors.New("pixwin: key already registered")
