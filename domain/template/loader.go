package template

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder for image.Decode
	_ "image/png"  // register PNG decoder for image.Decode
	"os"
	"path/filepath"
	"strings"
)

// imageExts are the asset file extensions the loader accepts. The filename
// stem (case-sensitive) becomes the template name.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Load scans dir for image assets and returns a populated library. A missing
// directory is created and yields an empty library, since templates are
// user-authored and may not exist yet. Undecodable files are skipped and
// reported alongside the library.
func Load(dir string) (*Library, []error) {
	lib := NewLibrary()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
				return lib, []error{fmt.Errorf("failed to create template directory %s: %w", dir, mkErr)}
			}
			return lib, nil
		}
		return lib, []error{fmt.Errorf("failed to read template directory %s: %w", dir, err)}
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !imageExts[ext] {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		img, err := decodeFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to decode template %s: %w", entry.Name(), err))
			continue
		}
		lib.Register(name, img)
	}

	return lib, errs
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
