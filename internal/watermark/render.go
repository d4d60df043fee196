package watermark

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"runtime"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Config carries the rendering parameters resolved during option validation.
type Config struct {
	FontSize int
	FontPath string // optional TTF path; empty selects a system or embedded font
	Color    color.NRGBA
	Anchor   Anchor
	Padding  int
}

// Renderer stamps a text string onto images with a fixed font, color and
// placement. A Renderer is built once per run and is safe for concurrent
// use: Stamp never mutates shared state.
type Renderer struct {
	face    font.Face
	color   color.NRGBA
	anchor  Anchor
	padding int
}

// NewRenderer builds a Renderer, resolving the font chain: the custom
// font path if given, then a platform font, then the embedded Go Regular
// face. A face that fails to load falls through to the next candidate.
func NewRenderer(cfg Config) (*Renderer, error) {
	face, err := loadFace(cfg.FontPath, float64(cfg.FontSize))
	if err != nil {
		return nil, err
	}
	return &Renderer{
		face:    face,
		color:   cfg.Color,
		anchor:  cfg.Anchor,
		padding: cfg.Padding,
	}, nil
}

// Stamp draws text onto a transparent overlay of src's dimensions,
// composites the overlay over src and returns the result flattened to an
// opaque image. src is left untouched.
func (r *Renderer) Stamp(src image.Image, text string) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	overlay := gg.NewContext(width, height)
	overlay.SetFontFace(r.face)
	overlay.SetRGBA255(int(r.color.R), int(r.color.G), int(r.color.B), int(r.color.A))

	tw, th := overlay.MeasureString(text)
	x, y := r.anchor.Point(width, height, int(math.Ceil(tw)), int(math.Ceil(th)), r.padding)

	// (x, y) is the text's top-left corner; gg anchors on the baseline.
	overlay.DrawStringAnchored(text, float64(x), float64(y), 0, 1)

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), src, bounds.Min, draw.Src)
	draw.Draw(out, out.Bounds(), overlay.Image(), image.Point{}, draw.Over)
	flatten(out)
	return out
}

// flatten drops the alpha channel. The usual output formats here (jpeg,
// bmp) cannot carry it, so every format gets the same opaque result.
func flatten(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

func loadFace(path string, size float64) (font.Face, error) {
	if path != "" {
		if face, err := faceFromFile(path, size); err == nil {
			return face, nil
		}
	}
	for _, candidate := range systemFonts() {
		if face, err := faceFromFile(candidate, size); err == nil {
			return face, nil
		}
	}
	ft, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	return truetype.NewFace(ft, &truetype.Options{Size: size}), nil
}

func faceFromFile(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	ft, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return truetype.NewFace(ft, &truetype.Options{Size: size}), nil
}

func systemFonts() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Windows\Fonts\arial.ttf`}
	case "darwin":
		return []string{"/Library/Fonts/Arial.ttf", "/System/Library/Fonts/Supplemental/Arial.ttf"}
	default:
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/TTF/DejaVuSans.ttf",
		}
	}
}
