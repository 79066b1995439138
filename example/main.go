// Example opens pixel-buffer windows in one of several modes:
//
//	square    a 2048x2048 gray RGB buffer letterboxed into a 1024x1024 window
//	iterator  a 400x400 buffer showing "Index: N"; Left/Right step N
//	multi     five 200x200 windows logging key and text input
//	qr        a QR code of -text scaled with nearest-neighbor filtering
//
// Press S in any window to save its buffer as PNG, Escape to close it.
//
//	go run ./example/ -mode iterator
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"runtime"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/go-theft-auto/pixwin"
	"github.com/go-theft-auto/pixwin/backend/opengl"
)

var logger = pixwin.DefaultLogger()

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	mode := flag.String("mode", "square", "square, iterator, multi or qr")
	configPath := flag.String("config", "pixwin.toml", "path to TOML config")
	text := flag.String("text", "https://github.com/go-theft-auto/pixwin", "qr payload")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if err := run(*mode, *configPath, *text, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(mode, configPath, text string, verbose bool) error {
	cfg, err := pixwin.LoadConfig(configPath)
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	pixwin.SetLogLevel(level)
	if verbose {
		pixwin.SetVerbose(true)
	}

	ctx := pixwin.New(opengl.NewPlatform(), pixwin.WithConfig(cfg))
	defer ctx.Close()

	switch mode {
	case "square":
		err = square(ctx)
	case "iterator":
		err = iterator(ctx)
	case "multi":
		err = multi(ctx)
	case "qr":
		err = qr(ctx, text)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return err
	}

	return loop(ctx)
}

// loop renders every live window until all of them are disposed.
func loop(ctx *pixwin.Context) error {
	for ctx.Len() > 0 {
		for _, h := range ctx.Handles() {
			ctx.Render(h)
		}
		if hs := ctx.Handles(); len(hs) > 0 {
			ctx.AwaitEventsTimeout(hs[0], 1.0/30.0)
		}
	}
	return nil
}

// open creates a window that disposes itself on close and binds the
// shared S/Escape keys. onKey may be nil.
func open(ctx *pixwin.Context, title string, bufW, bufH, winW, winH int, onKey pixwin.KeyFunc) (pixwin.Handle, error) {
	h, err := ctx.CreateWindow(title, bufW, bufH, winW, winH, func(h pixwin.Handle) {
		ctx.Dispose(h)
	})
	if err != nil {
		return pixwin.InvalidHandle, fmt.Errorf("create %q: %w", title, err)
	}

	ctx.SetKeyCallback(h, func(h pixwin.Handle, key pixwin.Key, scancode int, action pixwin.Action, mods pixwin.ModifierKey) {
		if action != pixwin.Press {
			return
		}
		switch key {
		case pixwin.KeyEscape:
			ctx.Dispose(h)
			return
		case pixwin.KeyS:
			if err := savePNG(ctx, h); err != nil {
				logger.Error("snapshot failed", "err", err)
			}
		}
		if onKey != nil {
			onKey(h, key, scancode, action, mods)
		}
	})
	return h, nil
}

func savePNG(ctx *pixwin.Context, h pixwin.Handle) error {
	img, status := ctx.Snapshot(h)
	if status != pixwin.StatusOK {
		return fmt.Errorf("snapshot: %s", status)
	}
	name := fmt.Sprintf("pixwin-%d.png", uint32(h))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	logger.Info("snapshot saved", "file", name)
	return nil
}

func square(ctx *pixwin.Context) error {
	const bufSize, winSize = 2048, 1024

	h, err := open(ctx, "Square test", bufSize, bufSize, winSize, winSize, nil)
	if err != nil {
		return err
	}
	ctx.SetPixelFormat(h, "rgb")

	pix := make([]byte, bufSize*bufSize*3)
	for i := range pix {
		pix[i] = 20
	}
	ctx.ReplacePixels(h, pix, bufSize, bufSize)
	return nil
}

// labeler draws centered text, preferring a TrueType face.
type labeler struct {
	ft   *freetype.Context
	face font.Face
}

func newLabeler(size float64) *labeler {
	l := &labeler{face: basicfont.Face7x13}

	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		logger.Warn("truetype parse failed, using basicfont", "err", err)
		return l
	}
	l.ft = freetype.NewContext()
	l.ft.SetFont(tt)
	l.ft.SetFontSize(size)
	l.ft.SetDPI(72)
	l.ft.SetSrc(image.NewUniform(color.NRGBA{R: 50, G: 50, B: 50, A: 255}))
	l.face = truetype.NewFace(tt, &truetype.Options{Size: size, DPI: 72})
	return l
}

func (l *labeler) draw(dst *image.NRGBA, text string) {
	b := dst.Bounds()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{R: 50, G: 50, B: 50, A: 255}),
		Face: l.face,
	}
	width := d.MeasureString(text).Ceil()
	ascent := l.face.Metrics().Ascent.Ceil()
	dot := fixed.P((b.Dx()-width)/2, (b.Dy()+ascent)/2)

	if l.ft == nil {
		d.Dot = dot
		d.DrawString(text)
		return
	}
	l.ft.SetDst(dst)
	l.ft.SetClip(b)
	if _, err := l.ft.DrawString(text, dot); err != nil {
		logger.Warn("draw label failed", "err", err)
	}
}

func iterator(ctx *pixwin.Context) error {
	const size = 400
	labels := newLabeler(26)
	index := 0

	var h pixwin.Handle
	frame := func() {
		canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
		draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
		labels.draw(canvas, fmt.Sprintf("Index: %d", index))
		ctx.ReplaceImage(h, canvas)
		ctx.SetTitle(h, fmt.Sprintf("iterator %d", index))
	}

	var err error
	h, err = open(ctx, "iterator", size, size, size, size, func(h pixwin.Handle, key pixwin.Key, _ int, _ pixwin.Action, _ pixwin.ModifierKey) {
		switch key {
		case pixwin.KeyRight:
			index++
		case pixwin.KeyLeft:
			index--
		default:
			return
		}
		frame()
	})
	if err != nil {
		return err
	}
	frame()
	return nil
}

func multi(ctx *pixwin.Context) error {
	for i := 0; i < 5; i++ {
		h, err := open(ctx, fmt.Sprintf("test %d", i), 200, 200, 200, 200, func(h pixwin.Handle, key pixwin.Key, scancode int, action pixwin.Action, mods pixwin.ModifierKey) {
			logger.Info("key", "window", i, "key", pixwin.KeyName(key), "scancode", scancode, "mods", int(mods))
		})
		if err != nil {
			return err
		}
		ctx.SetClearColor(h, 200, 200, 200)
		ctx.SetCharCallback(h, func(h pixwin.Handle, char rune) {
			logger.Info("text", "window", i, "codepoint", int(char))
		})
		ctx.SetFocusCallback(h, func(h pixwin.Handle, focused bool) {
			logger.Debug("focus", "window", i, "focused", focused)
		})
	}
	return nil
}

func qr(ctx *pixwin.Context, text string) error {
	const bufSize, winSize = 512, 600

	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("qr encode: %w", err)
	}
	// Render at module resolution and upscale without smoothing.
	small := code.Image(-1)

	h, err := open(ctx, "qr", bufSize, bufSize, winSize, winSize, func(h pixwin.Handle, key pixwin.Key, _ int, _ pixwin.Action, mods pixwin.ModifierKey) {
		if key == pixwin.KeyC && mods.Has(pixwin.ModControl) {
			ctx.SetClipboard(h, text)
		}
	})
	if err != nil {
		return err
	}
	ctx.SetClearColor(h, 255, 255, 255)
	ctx.ReplaceImage(h, pixwin.ScaleImage(small, bufSize, bufSize, xdraw.NearestNeighbor))
	return nil
}
