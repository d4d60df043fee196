package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nir0k/logger"

	"photostamp/internal/batch"
	"photostamp/internal/media"
	"photostamp/internal/watermark"
)

// Run is the main entry point for the CLI workflow.
func Run(ctx context.Context, opts Options) (batch.Summary, error) {
	if err := opts.Validate(); err != nil {
		return batch.Summary{}, err
	}

	cfg := logger.LogConfig{
		FilePath:       opts.LogFile,
		Format:         "standard",
		FileLevel:      opts.LogLevel,
		ConsoleLevel:   opts.LogLevel,
		ConsoleOutput:  true,
		EnableRotation: true,
		RotationConfig: logger.RotationConfig{
			MaxSize:    25,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
	}
	logInstance, err := logger.NewLogger(cfg)
	if err != nil {
		return batch.Summary{}, err
	}

	infof := logInstance.Infof
	warnf := logInstance.Warningf
	errorf := logInstance.Errorf

	infof("Starting PhotoStamp with input=%s position=%s fontSize=%d color=%s dateFormat=%s padding=%d parallel=%t workers=%d",
		opts.InputPath, opts.Position, opts.FontSize, opts.FontColor, opts.DateFormat, opts.Padding, opts.Parallel, opts.Workers)

	renderer, err := watermark.NewRenderer(watermark.Config{
		FontSize: opts.FontSize,
		FontPath: opts.CustomFont,
		Color:    opts.Color,
		Anchor:   opts.Anchor,
		Padding:  opts.Padding,
	})
	if err != nil {
		return batch.Summary{}, err
	}

	tasks, err := buildTasks(opts, infof, warnf)
	if err != nil {
		return batch.Summary{}, err
	}

	process := func(ctx context.Context, task batch.Task) error {
		text := opts.UnknownText
		ts, found, err := media.CaptureTime(task.Input)
		if err != nil {
			return err
		}
		if found {
			text = ts.Format(opts.DateLayout)
		} else {
			warnf("No capture date in %s, using fallback text (task %s)", task.Input, task.ID)
		}

		src, err := imaging.Open(task.Input)
		if err != nil {
			return fmt.Errorf("decode %s: %w", task.Input, err)
		}
		stamped := renderer.Stamp(src, text)
		if err := imaging.Save(stamped, task.Output); err != nil {
			return fmt.Errorf("save %s: %w", task.Output, err)
		}

		infof("Stamped %s (%q) -> %s (task %s)", task.Input, text, task.Output, task.ID)
		return nil
	}

	sum := batch.Run(ctx, tasks, opts.Parallel, opts.Workers, func(ctx context.Context, task batch.Task) error {
		err := process(ctx, task)
		if err != nil {
			errorf("Failed to process %s: %v (task %s)", task.Input, err, task.ID)
		}
		return err
	})

	summary := fmt.Sprintf("Finished. total=%d processed=%d failed=%d", sum.Total, sum.Processed, len(sum.Failed))
	if list := sum.FailedList(); list != "" {
		summary += " [" + list + "]"
	}
	if opts.PrintSummary {
		fmt.Println(summary)
	}
	infof("%s", summary)
	return sum, nil
}

// buildTasks resolves the input path into tasks and creates the output
// directory. The directory is created even when nothing is eligible.
func buildTasks(opts Options, infof, warnf func(string, ...interface{})) ([]batch.Task, error) {
	info, err := os.Stat(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("input path %s: %w", opts.InputPath, err)
	}

	if !info.IsDir() {
		if !media.SupportedImage(opts.InputPath) {
			return nil, fmt.Errorf("unsupported image file: %s", opts.InputPath)
		}
		parent := filepath.Dir(filepath.Clean(opts.InputPath))
		outputDir := filepath.Join(parent, filepath.Base(parent)+"_watermark")
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", outputDir, err)
		}
		task := batch.NewTask(opts.InputPath, filepath.Join(outputDir, filepath.Base(opts.InputPath)))
		infof("Queued %s as task %s", task.Input, task.ID)
		return []batch.Task{task}, nil
	}

	inputDir := filepath.Clean(opts.InputPath)
	outputDir := filepath.Join(filepath.Dir(inputDir), filepath.Base(inputDir)+"_watermark")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	files, err := media.CollectImages(inputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		warnf("No supported images found in %s", inputDir)
		return nil, nil
	}

	tasks := make([]batch.Task, 0, len(files))
	for _, path := range files {
		task := batch.NewTask(path, filepath.Join(outputDir, filepath.Base(path)))
		infof("Queued %s as task %s", task.Input, task.ID)
		tasks = append(tasks, task)
	}
	return tasks, nil
}
