/*
Package pixwin presents CPU-side pixel buffers in native windows.

Each window owns a pixel buffer, a GPU texture mirroring it and a small
shader program that draws the texture as one letterboxed quad. Windows are
addressed by opaque Handles handed out by a Context; disposing a window
invalidates its Handle and later operations on it report
StatusInvalidHandle instead of touching freed state.

# Quick Start

	ctx := pixwin.New(opengl.NewPlatform())
	defer ctx.Close()

	h, err := ctx.CreateWindow("demo", 320, 240, 640, 480, func(h pixwin.Handle) {
	    ctx.Dispose(h)
	})
	if err != nil {
	    return err
	}

	for ctx.Len() > 0 {
	    ctx.ReplacePixels(h, frame, 320, 240)
	    ctx.Render(h)
	}

# Letterboxing

The buffer keeps its aspect ratio. It is scaled by
min(windowWidth/bufferWidth, windowHeight/bufferHeight) and centered; the
uncovered area shows the clear color (SetClearColor, default gray 80).

# Pixel Formats

Buffers hold "rgba" (4 bytes), "rgb" (3 bytes) or "bgra" (4 bytes) texels.
SetPixelFormat resizes the buffer so its length always equals
width*height*BytesPerPixel.

# Events

Key, text, cursor, mouse button, focus and framebuffer-size events are
delivered synchronously from Render, AwaitEvents and AwaitEventsTimeout to
the callbacks registered on the window. Events for windows that are not
registered, or whose callback slot is empty, are dropped. Callbacks may
call back into the Context, including Dispose on their own window.

# Threading

A Context and its Platform must be used from one OS thread, normally the
main thread locked with runtime.LockOSThread.

# Backends

The Platform, Window and Device interfaces decouple the package from GLFW
and OpenGL. backend/opengl implements them with go-gl; tests use fakes.
*/
package pixwin
