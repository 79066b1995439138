package pixwin_test

import (
	"testing"

	"github.com/go-theft-auto/pixwin"
)

func TestEventsRouteToOwningWindow(t *testing.T) {
	ctx, p := newTestContext(t)
	a := mustCreate(t, ctx, "a", 1, 1, 10, 10)
	b := mustCreate(t, ctx, "b", 1, 1, 10, 10)

	var got []pixwin.Handle
	onChar := func(h pixwin.Handle, char rune) {
		if char != 'x' {
			t.Errorf("expected 'x', got %q", char)
		}
		got = append(got, h)
	}
	ctx.SetCharCallback(a, onChar)
	ctx.SetCharCallback(b, onChar)

	sink := ctx.Events()
	sink.Char(p.windows[1], 'x')
	sink.Char(p.windows[0], 'x')

	if len(got) != 2 || got[0] != b || got[1] != a {
		t.Errorf("expected [b a], got %v", got)
	}
}

func TestEventsForwardArguments(t *testing.T) {
	ctx, p := newTestContext(t)
	h := mustCreate(t, ctx, "w", 1, 1, 10, 10)
	w := p.windows[0]
	sink := p.sink

	var (
		key       pixwin.Key
		scancode  int
		action    pixwin.Action
		mods      pixwin.ModifierKey
		cursor    [2]float64
		button    pixwin.MouseButton
		focused   bool
		fbSize    [2]int
		fbScale   [2]float32
		gotHandle []pixwin.Handle
	)
	record := func(h pixwin.Handle) { gotHandle = append(gotHandle, h) }

	ctx.SetKeyCallback(h, func(h pixwin.Handle, k pixwin.Key, sc int, a pixwin.Action, m pixwin.ModifierKey) {
		record(h)
		key, scancode, action, mods = k, sc, a, m
	})
	ctx.SetCursorPosCallback(h, func(h pixwin.Handle, x, y float64) {
		record(h)
		cursor = [2]float64{x, y}
	})
	ctx.SetMouseButtonCallback(h, func(h pixwin.Handle, b pixwin.MouseButton, a pixwin.Action, m pixwin.ModifierKey) {
		record(h)
		button = b
	})
	ctx.SetFocusCallback(h, func(h pixwin.Handle, f bool) {
		record(h)
		focused = f
	})
	ctx.SetFramebufferSizeCallback(h, func(h pixwin.Handle, width, height int, xs, ys float32) {
		record(h)
		fbSize = [2]int{width, height}
		fbScale = [2]float32{xs, ys}
	})

	sink.Key(w, pixwin.KeyEscape, 9, pixwin.Repeat, pixwin.ModShift|pixwin.ModControl)
	sink.CursorPos(w, 12.5, 7.25)
	sink.MouseButton(w, pixwin.MouseButtonRight, pixwin.Press, 0)
	sink.Focus(w, true)
	sink.FramebufferSize(w, 640, 480, 2, 2)

	if key != pixwin.KeyEscape || scancode != 9 || action != pixwin.Repeat || mods != pixwin.ModShift|pixwin.ModControl {
		t.Errorf("unexpected key event: %v %d %v %v", key, scancode, action, mods)
	}
	if cursor != [2]float64{12.5, 7.25} {
		t.Errorf("unexpected cursor %v", cursor)
	}
	if button != pixwin.MouseButtonRight {
		t.Errorf("unexpected button %v", button)
	}
	if !focused {
		t.Error("expected focus event")
	}
	if fbSize != [2]int{640, 480} || fbScale != [2]float32{2, 2} {
		t.Errorf("unexpected framebuffer event %v %v", fbSize, fbScale)
	}
	if len(gotHandle) != 5 {
		t.Fatalf("expected 5 callbacks, got %d", len(gotHandle))
	}
	for _, got := range gotHandle {
		if got != h {
			t.Errorf("callback received handle %d, want %d", got, h)
		}
	}
}

func TestEventsDropped(t *testing.T) {
	ctx, p, logs := newLoggedContext(t)
	h := mustCreate(t, ctx, "w", 1, 1, 10, 10)
	sink := p.sink

	// Registered window, empty slots: nothing happens.
	sink.Key(p.windows[0], pixwin.KeyA, 0, pixwin.Press, 0)
	sink.Char(p.windows[0], 'a')
	sink.CursorPos(p.windows[0], 1, 1)
	sink.MouseButton(p.windows[0], pixwin.MouseButtonLeft, pixwin.Press, 0)
	sink.Focus(p.windows[0], false)
	sink.FramebufferSize(p.windows[0], 1, 1, 1, 1)

	// Unknown window.
	calls := 0
	ctx.SetKeyCallback(h, func(pixwin.Handle, pixwin.Key, int, pixwin.Action, pixwin.ModifierKey) { calls++ })
	stranger := &fakeWindow{rec: p.rec, title: "stranger"}
	sink.Key(stranger, pixwin.KeyA, 0, pixwin.Press, 0)
	if calls != 0 {
		t.Error("events for unknown windows must be dropped")
	}
	if !containsLog(logs, "event dropped") {
		t.Error("expected a debug record for the dropped event")
	}

	// Disposed window.
	ctx.Dispose(h)
	sink.Key(p.windows[0], pixwin.KeyA, 0, pixwin.Press, 0)
	if calls != 0 {
		t.Error("events for disposed windows must be dropped")
	}
}

func TestCallbackReplacementReleases(t *testing.T) {
	ctx, _ := newTestContext(t)
	h := mustCreate(t, ctx, "w", 1, 1, 10, 10)

	releases := map[string]int{}
	release := func(name string) pixwin.CallbackOption {
		return pixwin.WithRelease(func() { releases[name]++ })
	}
	noop := func(pixwin.Handle, rune) {}

	ctx.SetCharCallback(h, noop, release("first"))
	ctx.SetCharCallback(h, noop, release("second"))
	if releases["first"] != 1 || releases["second"] != 0 {
		t.Fatalf("replacing should release only the old handler: %v", releases)
	}

	ctx.SetCharCallback(h, nil)
	if releases["second"] != 1 {
		t.Fatalf("clearing should release the handler: %v", releases)
	}

	ctx.SetCharCallback(h, noop, release("third"))
	ctx.SetFocusCallback(h, func(pixwin.Handle, bool) {}, release("focus"))
	ctx.Dispose(h)

	want := map[string]int{"first": 1, "second": 1, "third": 1, "focus": 1}
	for name, n := range want {
		if releases[name] != n {
			t.Errorf("release %q ran %d times, want %d", name, releases[name], n)
		}
	}
}

func TestCloseCallbackReplaced(t *testing.T) {
	ctx, p := newTestContext(t)

	first, second := 0, 0
	h, err := ctx.CreateWindow("w", 1, 1, 10, 10, func(pixwin.Handle) { first++ })
	if err != nil {
		t.Fatal(err)
	}
	ctx.SetCloseCallback(h, func(pixwin.Handle) { second++ })
	p.windows[0].shouldClose = true
	ctx.Render(h)

	if first != 0 || second != 1 {
		t.Errorf("expected only the replacement to run, got first=%d second=%d", first, second)
	}
}

func TestCallbackKindString(t *testing.T) {
	tests := map[pixwin.CallbackKind]string{
		pixwin.CallbackClose:           "close",
		pixwin.CallbackKey:             "key",
		pixwin.CallbackChar:            "char",
		pixwin.CallbackFramebufferSize: "framebuffer_size",
		pixwin.CallbackCursorPos:       "cursor_pos",
		pixwin.CallbackMouseButton:     "mouse_button",
		pixwin.CallbackFocus:           "focus",
		pixwin.CallbackKind(99):        "unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("CallbackKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
