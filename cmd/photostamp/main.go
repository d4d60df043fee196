package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"photostamp/internal/app"
	"photostamp/internal/config"
	"photostamp/internal/watermark"
)

func main() {
	var opts app.Options
	var configPath string

	pflag.IntVar(&opts.FontSize, "font-size", app.DefaultFontSize, "Watermark font size in points")
	pflag.StringVar(&opts.FontColor, "font-color", app.DefaultFontColor, "Watermark color as r,g,b or r,g,b,a (each 0-255)")
	pflag.StringVar(&opts.Position, "position", app.DefaultPosition, "Watermark position: "+strings.Join(watermark.AnchorNames(), ", "))
	pflag.StringVar(&opts.CustomFont, "custom-font", "", "Path to a TTF font file")
	pflag.StringVar(&opts.DateFormat, "date-format", app.DefaultDateFormat, "Date template with strftime directives, e.g. %Y-%m-%d")
	pflag.StringVar(&opts.UnknownText, "unknown-text", app.DefaultUnknownText, "Text stamped when no capture date is found")
	pflag.IntVar(&opts.Padding, "padding", app.DefaultPadding, "Distance from the image edge in pixels")
	pflag.BoolVar(&opts.Parallel, "parallel", false, "Process files through a worker pool")
	pflag.IntVar(&opts.Workers, "workers", 0, "Worker count for --parallel (defaults to the CPU count)")
	pflag.StringVarP(&opts.LogLevel, "log-level", "l", "info", "Logging level for both file and console outputs")
	pflag.StringVar(&opts.LogFile, "log-file", "", "Optional log file path (defaults to a file next to the binary)")
	pflag.StringVar(&configPath, "config", "", "Optional YAML file with flag defaults")

	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <photo file or directory>\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(1)
	}
	opts.InputPath = pflag.Arg(0)
	opts.PrintSummary = true

	if configPath != "" {
		fileCfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "photostamp failed: %v\n", err)
			os.Exit(1)
		}
		applyConfig(&opts, fileCfg)
	}

	sum, err := app.Run(context.Background(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "photostamp failed: %v\n", err)
		os.Exit(1)
	}
	if sum.Processed == 0 {
		os.Exit(1)
	}
}

// applyConfig fills options from the YAML defaults file, keeping every
// value the user set explicitly on the command line.
func applyConfig(opts *app.Options, cfg config.Config) {
	set := pflag.CommandLine.Changed

	if !set("font-size") && cfg.FontSize != 0 {
		opts.FontSize = cfg.FontSize
	}
	if !set("font-color") && cfg.FontColor != "" {
		opts.FontColor = cfg.FontColor
	}
	if !set("position") && cfg.Position != "" {
		opts.Position = cfg.Position
	}
	if !set("custom-font") && cfg.CustomFont != "" {
		opts.CustomFont = cfg.CustomFont
	}
	if !set("date-format") && cfg.DateFormat != "" {
		opts.DateFormat = cfg.DateFormat
	}
	if !set("unknown-text") && cfg.UnknownText != "" {
		opts.UnknownText = cfg.UnknownText
	}
	if !set("padding") && cfg.Padding != nil {
		opts.Padding = *cfg.Padding
	}
	if !set("parallel") && cfg.Parallel != nil {
		opts.Parallel = *cfg.Parallel
	}
	if !set("workers") && cfg.Workers != 0 {
		opts.Workers = cfg.Workers
	}
	if !set("log-level") && cfg.LogLevel != "" {
		opts.LogLevel = cfg.LogLevel
	}
	if !set("log-file") && cfg.LogFile != "" {
		opts.LogFile = cfg.LogFile
	}
}
