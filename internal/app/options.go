package app

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"photostamp/internal/datefmt"
	"photostamp/internal/watermark"
)

// Defaults for the CLI flag surface.
const (
	DefaultFontSize    = 36
	DefaultFontColor   = "255,255,255,128"
	DefaultPosition    = string(watermark.BottomRight)
	DefaultDateFormat  = "%Y-%m-%d"
	DefaultUnknownText = "未知日期"
	DefaultPadding     = 20
)

// Options represents user-provided CLI parameters.
type Options struct {
	InputPath    string
	FontSize     int
	FontColor    string
	Position     string
	CustomFont   string
	DateFormat   string
	UnknownText  string
	Padding      int
	Parallel     bool
	Workers      int
	LogLevel     string
	LogFile      string
	PrintSummary bool

	// Derived by Validate.
	Color      color.NRGBA
	Anchor     watermark.Anchor
	DateLayout string
}

// Validate performs basic validation, assigns defaults and derives the
// parsed color, anchor and date layout. Every rejection happens here,
// before any file is touched.
func (o *Options) Validate() error {
	o.InputPath = strings.TrimSpace(o.InputPath)
	o.FontColor = strings.TrimSpace(o.FontColor)
	o.Position = strings.TrimSpace(o.Position)
	o.CustomFont = strings.TrimSpace(o.CustomFont)
	o.LogLevel = strings.TrimSpace(o.LogLevel)
	o.LogFile = strings.TrimSpace(o.LogFile)

	if o.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if o.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %d", o.FontSize)
	}
	if o.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %d", o.Padding)
	}

	if o.FontColor == "" {
		o.FontColor = DefaultFontColor
	}
	parsed, err := ParseColor(o.FontColor)
	if err != nil {
		return err
	}
	o.Color = parsed

	if o.Position == "" {
		o.Position = DefaultPosition
	}
	anchor, err := watermark.ParseAnchor(o.Position)
	if err != nil {
		return err
	}
	o.Anchor = anchor

	if o.CustomFont != "" {
		if _, err := os.Stat(o.CustomFont); err != nil {
			return fmt.Errorf("custom font %s: %w", o.CustomFont, err)
		}
	}

	if o.DateFormat == "" {
		o.DateFormat = DefaultDateFormat
	}
	layout, err := datefmt.Layout(o.DateFormat)
	if err != nil {
		return err
	}
	// Trial-format now so a broken template surfaces at startup.
	_ = time.Now().Format(layout)
	o.DateLayout = layout

	if o.UnknownText == "" {
		o.UnknownText = DefaultUnknownText
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.LogFile == "" {
		defaultPath, err := defaultLogPath()
		if err != nil {
			return err
		}
		o.LogFile = defaultPath
	}
	return nil
}

// ParseColor parses "r,g,b" or "r,g,b,a" with each channel in 0..255.
// A missing alpha defaults to 128.
func ParseColor(s string) (color.NRGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf(`font color must be "r,g,b" or "r,g,b,a", got %q`, s)
	}

	channels := make([]uint8, 0, 4)
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 255 {
			return color.NRGBA{}, fmt.Errorf("font color channel %q must be an integer in 0..255", part)
		}
		channels = append(channels, uint8(n))
	}

	parsed := color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: 128}
	if len(channels) == 4 {
		parsed.A = channels[3]
	}
	return parsed, nil
}

func defaultLogPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	dir := filepath.Dir(exe)
	// When running via `go run`, executable resides in temp; prefer current working dir then.
	if strings.HasPrefix(dir, os.TempDir()) {
		cwd, err := os.Getwd()
		if err == nil {
			dir = cwd
		}
	}
	return filepath.Join(dir, "photostamp.log"), nil
}
