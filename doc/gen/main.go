// Command gen renders letterboxed buffers in hidden windows, captures the
// framebuffer and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	go run ./doc/gen/
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-theft-auto/pixwin"
	"github.com/go-theft-auto/pixwin/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	outDir := flag.String("out", filepath.Join("doc", "imgs"), "output directory")
	flag.Parse()

	if err := run(*outDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single capture.
type screenshot struct {
	name       string     // filename without extension
	winW, winH int        // logical window size
	bufW, bufH int        // pixel buffer size
	format     string     // buffer format name
	clear      color.RGBA // letterbox color
	frames     int        // frames to render before capture (0 = default 2)
}

func run(outDir string) error {
	cfg := pixwin.DefaultConfig()
	cfg.Graphics.Visible = false

	ctx := pixwin.New(opengl.NewPlatform(), pixwin.WithConfig(cfg))
	defer ctx.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(ctx, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d buffer in %dx%d window)\n", s.name, s.bufW, s.bufH, s.winW, s.winH)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(ctx *pixwin.Context, s screenshot, outDir string) error {
	// Fresh window per screenshot so framebuffer sizes never leak between captures.
	h, err := ctx.CreateWindow(s.name, s.bufW, s.bufH, s.winW, s.winH, nil)
	if err != nil {
		return err
	}
	defer ctx.Dispose(h)

	ctx.SetClearColor(h, s.clear.R, s.clear.G, s.clear.B)
	ctx.SetPixelFormat(h, s.format)
	format, _ := ctx.PixelFormat(h)
	pix := testPattern(format, s.bufW, s.bufH)
	if status := ctx.ReplacePixels(h, pix, s.bufW, s.bufH); status != pixwin.StatusOK {
		return fmt.Errorf("replace pixels: %s", status)
	}

	frames := 2
	if s.frames > 0 {
		frames = s.frames
	}
	var img *image.NRGBA
	for i := 0; i < frames; i++ {
		shot, status := ctx.Capture(h)
		if status != pixwin.StatusOK {
			return fmt.Errorf("capture: %s", status)
		}
		img = shot
	}

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// testPattern fills a buffer with a checkerboard over a horizontal gradient
// so orientation and aspect are visible in the capture.
func testPattern(format pixwin.PixelFormat, w, h int) []byte {
	bpp := format.BytesPerPixel()
	pix := make([]byte, w*h*bpp)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: uint8(x * 255 / max(w-1, 1)), G: uint8(y * 255 / max(h-1, 1)), B: 160, A: 255}
			if (x/16+y/16)%2 == 0 {
				c.B = 40
			}
			i := (y*w + x) * bpp
			switch format {
			case pixwin.FormatBGRA:
				pix[i], pix[i+1], pix[i+2], pix[i+3] = c.B, c.G, c.R, c.A
			case pixwin.FormatRGB:
				pix[i], pix[i+1], pix[i+2] = c.R, c.G, c.B
			default:
				pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
			}
		}
	}
	return pix
}

// buildScreenshots returns the letterbox cases to render.
func buildScreenshots() []screenshot {
	gray := color.RGBA{R: 80, G: 80, B: 80, A: 255}
	return []screenshot{
		{name: "landscape-in-landscape", winW: 800, winH: 600, bufW: 400, bufH: 200, format: "rgba", clear: gray},
		{name: "portrait-in-landscape", winW: 800, winH: 600, bufW: 200, bufH: 400, format: "rgba", clear: gray},
		{name: "landscape-in-portrait", winW: 400, winH: 600, bufW: 320, bufH: 180, format: "rgb", clear: gray},
		{name: "portrait-in-portrait", winW: 400, winH: 600, bufW: 90, bufH: 160, format: "bgra", clear: gray},
		{name: "square-in-landscape", winW: 640, winH: 360, bufW: 256, bufH: 256, format: "rgb", clear: color.RGBA{R: 20, G: 20, B: 30, A: 255}},
		{name: "exact-fit", winW: 320, winH: 240, bufW: 320, bufH: 240, format: "rgba", clear: gray},
	}
}
