package pixwin_test

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-theft-auto/pixwin"
)

// recorder keeps an ordered log of platform and device calls shared by all fakes.
type recorder struct {
	calls []string
}

func (r *recorder) record(call string) {
	r.calls = append(r.calls, call)
}

// index returns the position of the first call equal to name, or -1.
func (r *recorder) index(name string) int {
	for i, c := range r.calls {
		if c == name {
			return i
		}
	}
	return -1
}

// fakePlatform is a test platform that opens no real windows.
type fakePlatform struct {
	rec    *recorder
	device *fakeDevice

	initErr   error
	createErr error
	loadErr   error

	scale float32

	inits        int
	polls        int
	waits        int
	waitTimeouts []float64
	terminated   bool

	windows []*fakeWindow
	sink    pixwin.EventSink

	// onPoll runs inside PollEvents/WaitEvents to simulate event delivery.
	onPoll func()
}

func newFakePlatform() *fakePlatform {
	rec := &recorder{}
	return &fakePlatform{rec: rec, device: newFakeDevice(rec), scale: 1}
}

func (p *fakePlatform) Init(cfg pixwin.GraphicsConfig) error {
	p.inits++
	p.rec.record("init")
	return p.initErr
}

func (p *fakePlatform) CreateWindow(title string, width, height int, sink pixwin.EventSink) (pixwin.Window, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	w := &fakeWindow{
		rec:    p.rec,
		title:  title,
		fbW:    int(float32(width) * p.scale),
		fbH:    int(float32(height) * p.scale),
		xscale: p.scale,
		yscale: p.scale,
	}
	p.windows = append(p.windows, w)
	p.sink = sink
	p.rec.record("create " + title)
	return w, nil
}

func (p *fakePlatform) LoadDevice() (pixwin.Device, error) {
	p.rec.record("load device")
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return p.device, nil
}

func (p *fakePlatform) PollEvents() {
	p.polls++
	if p.onPoll != nil {
		p.onPoll()
	}
}

func (p *fakePlatform) WaitEvents() {
	p.waits++
	if p.onPoll != nil {
		p.onPoll()
	}
}

func (p *fakePlatform) WaitEventsTimeout(timeout float64) {
	p.waitTimeouts = append(p.waitTimeouts, timeout)
	if p.onPoll != nil {
		p.onPoll()
	}
}

func (p *fakePlatform) Terminate() {
	p.terminated = true
	p.rec.record("terminate")
}

// fakeWindow is a pointer type so it is comparable by identity.
type fakeWindow struct {
	rec *recorder

	title          string
	fbW, fbH       int
	xscale, yscale float32

	swapInterval int
	swaps        int
	shouldClose  bool
	destroyed    bool
	clipboard    string

	onDestroy func()
}

func (w *fakeWindow) MakeContextCurrent() { w.rec.record("current " + w.title) }
func (w *fakeWindow) SwapInterval(interval int) { w.swapInterval = interval }
func (w *fakeWindow) ContentScale() (x, y float32) { return w.xscale, w.yscale }
func (w *fakeWindow) FramebufferSize() (int, int) { return w.fbW, w.fbH }
func (w *fakeWindow) SwapBuffers() { w.swaps++ }
func (w *fakeWindow) ShouldClose() bool { return w.shouldClose }
func (w *fakeWindow) SetTitle(title string) { w.title = title }
func (w *fakeWindow) GetText() string { return w.clipboard }
func (w *fakeWindow) SetText(text string) { w.clipboard = text }

func (w *fakeWindow) Destroy() {
	if w.onDestroy != nil {
		w.onDestroy()
	}
	w.destroyed = true
	w.rec.record("destroy " + w.title)
}

type upload struct {
	id     uint32
	format pixwin.PixelFormat
	w, h   int
	pix    []byte
}

// fakeDevice tracks GPU object lifetimes in maps keyed by id.
type fakeDevice struct {
	rec    *recorder
	nextID uint32

	textures map[uint32]bool
	shaders  map[uint32]bool
	programs map[uint32]bool
	buffers  int

	compileErr map[pixwin.ShaderStage]error
	linkErr    error

	uploads  []upload
	draws    []pixwin.QuadInstance
	clears   []pixwin.Color
	viewport [2]int
	uniforms map[string][2]float32
}

func newFakeDevice(rec *recorder) *fakeDevice {
	return &fakeDevice{
		rec:        rec,
		textures:   make(map[uint32]bool),
		shaders:    make(map[uint32]bool),
		programs:   make(map[uint32]bool),
		compileErr: make(map[pixwin.ShaderStage]error),
		uniforms:   make(map[string][2]float32),
	}
}

func (d *fakeDevice) next() uint32 {
	d.nextID++
	return d.nextID
}

func (d *fakeDevice) GenTexture() uint32 {
	id := d.next()
	d.textures[id] = true
	return id
}

func (d *fakeDevice) DeleteTexture(id uint32) {
	delete(d.textures, id)
	d.rec.record("delete texture")
}

func (d *fakeDevice) UploadTexture(id uint32, format pixwin.PixelFormat, width, height int, pixels []byte) {
	d.uploads = append(d.uploads, upload{
		id:     id,
		format: format,
		w:      width,
		h:      height,
		pix:    append([]byte(nil), pixels...),
	})
}

func (d *fakeDevice) CompileShader(stage pixwin.ShaderStage, source string) (uint32, error) {
	id := d.next()
	d.shaders[id] = true
	return id, d.compileErr[stage]
}

func (d *fakeDevice) LinkProgram(vertex, fragment uint32) (uint32, error) {
	if d.linkErr != nil {
		return 0, d.linkErr
	}
	id := d.next()
	d.programs[id] = true
	return id, nil
}

func (d *fakeDevice) DeleteShader(id uint32) { delete(d.shaders, id) }

func (d *fakeDevice) DeleteProgram(id uint32) {
	delete(d.programs, id)
	d.rec.record("delete program")
}

func (d *fakeDevice) NewInstanceBuffer(size int, attribs []pixwin.VertexAttrib) (vao, vbo uint32) {
	d.buffers++
	return d.next(), d.next()
}

func (d *fakeDevice) DeleteInstanceBuffer(vao, vbo uint32) { d.buffers-- }

func (d *fakeDevice) Viewport(width, height int) { d.viewport = [2]int{width, height} }

func (d *fakeDevice) Clear(c pixwin.Color) { d.clears = append(d.clears, c) }

func (d *fakeDevice) Uniform2f(program uint32, name string, x, y float32) {
	d.uniforms[name] = [2]float32{x, y}
}

func (d *fakeDevice) DrawQuad(program, vao, vbo, texture uint32, inst pixwin.QuadInstance) {
	d.draws = append(d.draws, inst)
}

// ReadPixels returns bottom-up rows where every byte of row y equals y.
func (d *fakeDevice) ReadPixels(width, height int) []byte {
	pix := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		row := pix[y*width*4 : (y+1)*width*4]
		for i := range row {
			row[i] = byte(y)
		}
	}
	return pix
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestContext returns a Context over a fake platform with logging discarded.
func newTestContext(t *testing.T) (*pixwin.Context, *fakePlatform) {
	t.Helper()
	p := newFakePlatform()
	return pixwin.New(p, pixwin.WithLogger(discardLogger())), p
}

// newLoggedContext returns a Context whose log output is captured in buf.
func newLoggedContext(t *testing.T) (*pixwin.Context, *fakePlatform, *bytes.Buffer) {
	t.Helper()
	p := newFakePlatform()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return pixwin.New(p, pixwin.WithLogger(logger)), p, buf
}

// mustCreate opens a window or fails the test.
func mustCreate(t *testing.T, ctx *pixwin.Context, title string, bufW, bufH, winW, winH int) pixwin.Handle {
	t.Helper()
	h, err := ctx.CreateWindow(title, bufW, bufH, winW, winH, nil)
	if err != nil {
		t.Fatalf("CreateWindow(%q) returned error: %v", title, err)
	}
	if h == pixwin.InvalidHandle {
		t.Fatalf("CreateWindow(%q) returned InvalidHandle", title)
	}
	return h
}

func containsLog(buf *bytes.Buffer, msg string) bool {
	return strings.Contains(buf.String(), msg)
}
