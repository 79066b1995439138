package pixwin

// Letterbox fits a buffer of size buf inside a window of size win while
// preserving aspect ratio, and centers it.
//
// The scale is min(win.X/buf.X, win.Y/buf.Y): the buffer's limiting axis
// maps onto the window's matching extent. When the window shares the
// buffer's orientation this is the window extent on the buffer's longer
// side divided by that side; when it does not, the other axis limits and
// the quad never overflows the window.
//
// The returned rectangle is in top-left window coordinates. A zero-sized
// buffer or window yields an empty rectangle.
func Letterbox(win, buf Vec2) Rect {
	if win.X <= 0 || win.Y <= 0 || buf.X <= 0 || buf.Y <= 0 {
		return Rect{}
	}

	scale := minf(win.X/buf.X, win.Y/buf.Y)
	size := buf.Mul(scale)

	var offset Vec2
	if size.X < win.X {
		offset.X = (win.X - size.X) / 2
	}
	if size.Y < win.Y {
		offset.Y = (win.Y - size.Y) / 2
	}

	return Rect{X: offset.X, Y: offset.Y, W: size.X, H: size.Y}
}

// CenteredInstance converts a top-left rectangle into the quad program's
// centered-origin space by subtracting half the window size.
func CenteredInstance(win Vec2, r Rect) QuadInstance {
	pos := r.Min().Sub(win.Mul(0.5))
	return QuadInstance{
		Position: [2]float32{pos.X, pos.Y},
		Size:     [2]float32{r.W, r.H},
	}
}
