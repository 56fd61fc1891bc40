package format

import "path/filepath"

// Detect returns the format implied by the extension of path.
func Detect(path string) (Format, bool) {
	if path == "" || path == "-" {
		return 0, false
	}
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, false
	}
	for _, f := range AllFormats() {
		for _, sfx := range f.Suffixes() {
			if ext == sfx {
				return f, true
			}
		}
	}
	return 0, false
}

// Resolve returns the format detected from path, or def when detection is
// inconclusive.
func Resolve(path string, def Format) Format {
	if f, ok := Detect(path); ok {
		return f
	}
	return def
}
