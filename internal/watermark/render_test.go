package watermark

import (
	"image"
	"image/color"
	"testing"
)

func newRenderer(t *testing.T, cfg Config) *Renderer {
	t.Helper()
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestStampDrawsText(t *testing.T) {
	r := newRenderer(t, Config{
		FontSize: 18,
		Color:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Anchor:   Center,
		Padding:  0,
	})

	src := image.NewNRGBA(image.Rect(0, 0, 160, 80))
	for i := range src.Pix {
		if i%4 == 3 {
			src.Pix[i] = 0xff // opaque black
		}
	}

	out := r.Stamp(src, "2023-07-15")
	if got, want := out.Bounds(), src.Bounds(); got != want {
		t.Fatalf("bounds %v, want %v", got, want)
	}

	nrgba, ok := out.(*image.NRGBA)
	if !ok {
		t.Fatalf("expected *image.NRGBA, got %T", out)
	}
	changed := false
	for i := 0; i < len(nrgba.Pix); i += 4 {
		if nrgba.Pix[i] != 0 || nrgba.Pix[i+1] != 0 || nrgba.Pix[i+2] != 0 {
			changed = true
			break
		}
	}
	if !changed {
		t.Fatalf("no pixel changed, text was not drawn")
	}
}

func TestStampFlattensAlpha(t *testing.T) {
	r := newRenderer(t, Config{
		FontSize: 12,
		Color:    color.NRGBA{R: 255, G: 255, B: 255, A: 128},
		Anchor:   BottomRight,
		Padding:  4,
	})

	// Fully transparent source: the stamped copy must come out opaque.
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	out := r.Stamp(src, "x").(*image.NRGBA)
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 0xff {
			t.Fatalf("pixel %d has alpha %d, want 255", i/4, out.Pix[i])
		}
	}
}

func TestStampLeavesSourceUntouched(t *testing.T) {
	r := newRenderer(t, Config{
		FontSize: 14,
		Color:    color.NRGBA{R: 200, G: 10, B: 10, A: 255},
		Anchor:   TopLeft,
		Padding:  2,
	})

	src := image.NewNRGBA(image.Rect(0, 0, 60, 60))
	before := make([]uint8, len(src.Pix))
	copy(before, src.Pix)

	r.Stamp(src, "stamp")
	for i := range src.Pix {
		if src.Pix[i] != before[i] {
			t.Fatalf("source pixel data modified at index %d", i)
		}
	}
}

func TestNewRendererBadFontFallsThrough(t *testing.T) {
	// A bogus custom path must not fail construction; the chain ends at
	// the embedded face.
	r := newRenderer(t, Config{
		FontSize: 16,
		FontPath: "/nonexistent/font.ttf",
		Color:    color.NRGBA{A: 255},
		Anchor:   Center,
	})
	if r.face == nil {
		t.Fatalf("renderer has no font face")
	}
}
