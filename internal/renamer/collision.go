package renamer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fileExists checks if a file exists at the given path.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// UniqueName resolves a target-name collision by appending a numeric suffix
// before the extension: "20240312_invoice.pdf" becomes
// "20240312_invoice_2.pdf", then "_3", and so on until the name is free.
// If no file exists at the destination the name is returned unchanged.
func UniqueName(dir, filename string) string {
	if !fileExists(filepath.Join(dir, filename)) {
		return filename
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", base, n, ext)
		if !fileExists(filepath.Join(dir, candidate)) {
			return candidate
		}
	}
}
