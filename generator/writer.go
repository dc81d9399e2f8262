package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/algorandfoundation/rustgen/internal/fileutil"
)

// WriteFiles writes every generated file under outputDir, creating
// directories as needed. File paths must stay inside outputDir.
func WriteFiles(result *GenerateResult, outputDir string) error {
	for _, file := range result.Files {
		clean := filepath.Clean(file.Path)
		if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
			return fmt.Errorf("generated file path escapes output directory: %s", file.Path)
		}
		target := filepath.Join(outputDir, clean)
		if err := os.MkdirAll(filepath.Dir(target), fileutil.DirDefault); err != nil {
			return fmt.Errorf("creating directory for %s: %w", file.Path, err)
		}
		if err := os.WriteFile(target, []byte(file.Content), fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("writing %s: %w", file.Path, err)
		}
	}
	return nil
}
