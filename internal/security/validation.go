// Package security provides validation for paths supplied by export plugins.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateFilePath checks that a file name returned by an export plugin stays
// inside baseDir once joined to it. Absolute names and any ".." element are
// rejected outright.
func ValidateFilePath(filePath, baseDir string) error {
	if filePath == "" {
		return fmt.Errorf("empty file path")
	}

	if filepath.IsAbs(filePath) || strings.HasPrefix(filePath, "/") {
		return fmt.Errorf("absolute file paths are not allowed: %s", filePath)
	}

	for _, part := range strings.FieldsFunc(filePath, isSeparator) {
		if part == ".." {
			return fmt.Errorf("file path contains directory traversal (..): %s", filePath)
		}
	}

	// Ensure the final path would be within baseDir.
	cleanBase := filepath.Clean(baseDir)
	cleanFinal := filepath.Join(cleanBase, filePath)
	if cleanFinal == cleanBase {
		return fmt.Errorf("file path does not name a file: %s", filePath)
	}
	if cleanBase != "." && !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) {
		return fmt.Errorf("file path would escape %s: %s", baseDir, filePath)
	}

	return nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
