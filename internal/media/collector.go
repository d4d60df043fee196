package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedImage reports whether the provided path has a supported image extension.
func SupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return imageExt[ext]
}

// CollectImages lists the supported image files directly inside dir, in
// enumeration order. Subdirectories are not descended into.
func CollectImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var results []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if SupportedImage(path) {
			results = append(results, path)
		}
	}
	return results, nil
}

var imageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tiff": true,
	".bmp":  true,
}
