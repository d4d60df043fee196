package app

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"photostamp/internal/watermark"
)

func validOptions() Options {
	return Options{
		InputPath:  "photos",
		FontSize:   DefaultFontSize,
		FontColor:  DefaultFontColor,
		Position:   DefaultPosition,
		DateFormat: DefaultDateFormat,
		Padding:    DefaultPadding,
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"255,255,255,128", color.NRGBA{255, 255, 255, 128}},
		{"255,255,255", color.NRGBA{255, 255, 255, 128}}, // alpha defaults to 128
		{"0, 0, 0, 255", color.NRGBA{0, 0, 0, 255}},
		{"10,20,30,0", color.NRGBA{10, 20, 30, 0}},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseColorRejectsMalformed(t *testing.T) {
	for _, in := range []string{"1,2", "1,2,3,4,5", "256,0,0", "-1,0,0", "a,b,c", "", "255;255;255"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) should fail", in)
		}
	}
}

func TestValidateDerivesFields(t *testing.T) {
	opts := validOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if opts.Color != (color.NRGBA{255, 255, 255, 128}) {
		t.Errorf("color = %+v", opts.Color)
	}
	if opts.Anchor != watermark.BottomRight {
		t.Errorf("anchor = %s", opts.Anchor)
	}
	if opts.DateLayout != "2006-01-02" {
		t.Errorf("layout = %q", opts.DateLayout)
	}
	if opts.UnknownText != DefaultUnknownText {
		t.Errorf("unknown text = %q", opts.UnknownText)
	}
	if opts.Workers < 1 {
		t.Errorf("workers = %d", opts.Workers)
	}
	if opts.LogLevel != "info" || opts.LogFile == "" {
		t.Errorf("logging defaults not set: level=%q file=%q", opts.LogLevel, opts.LogFile)
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
	}{
		{"empty input", func(o *Options) { o.InputPath = " " }},
		{"zero font size", func(o *Options) { o.FontSize = 0 }},
		{"negative padding", func(o *Options) { o.Padding = -1 }},
		{"malformed color", func(o *Options) { o.FontColor = "1,2" }},
		{"invalid position", func(o *Options) { o.Position = "middle" }},
		{"bad date format", func(o *Options) { o.DateFormat = "%Q" }},
		{"missing custom font", func(o *Options) { o.CustomFont = "/nope/font.ttf" }},
	}
	for _, tc := range cases {
		opts := validOptions()
		tc.mutate(&opts)
		if err := opts.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestValidateAcceptsExistingCustomFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, []byte("ttf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	opts := validOptions()
	opts.CustomFont = path
	if err := opts.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
