package media

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/evanoberholster/imagemeta"
	"github.com/rwcarlsen/goexif/exif"
)

// exifTimeLayout is the fixed encoding EXIF uses for its date tags.
const exifTimeLayout = "2006:01:02 15:04:05"

// CaptureTime extracts the capture timestamp embedded in the image at
// path. A missing or unreadable timestamp is reported through found=false
// and is not an error; only failing to open the file is.
func CaptureTime(path string) (ts time.Time, found bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if ts, ok := primaryCaptureTime(file); ok {
		return ts, true, nil
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return time.Time{}, false, nil
	}
	if ts, ok := fallbackCaptureTime(file); ok {
		return ts, true, nil
	}
	return time.Time{}, false, nil
}

// primaryCaptureTime reads the DateTime tag of the primary IFD.
// The decoder is panic-guarded; a malformed file must not take the run down.
func primaryCaptureTime(r io.ReadSeeker) (ts time.Time, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ts, ok = time.Time{}, false
		}
	}()

	ex, err := imagemeta.Decode(r)
	if err != nil {
		return time.Time{}, false
	}
	mod := ex.ModifyDate()
	if mod.IsZero() {
		return time.Time{}, false
	}
	return mod, true
}

// fallbackCaptureTime walks the usual date tags in preference order,
// parsing each with the fixed EXIF layout.
func fallbackCaptureTime(r io.Reader) (time.Time, bool) {
	ex, err := exif.Decode(r)
	if err != nil {
		return time.Time{}, false
	}

	for _, name := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTime, exif.DateTimeDigitized} {
		tag, err := ex.Get(name)
		if err != nil || tag == nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		ts, err := time.Parse(exifTimeLayout, raw)
		if err != nil {
			continue
		}
		return ts, true
	}
	return time.Time{}, false
}
