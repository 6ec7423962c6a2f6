package preconditions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Check verifies that the inputs can be read and the output can be written
func Check(inputs []string, output string) error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"inputs", func() error { return ValidateFiles(inputs) }},
		{"output", func() error { return ValidateOutputPath(output) }},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s: %w", check.name, err)
		}
	}

	return nil
}

// ValidateFiles checks if YAML files exist and are readable
func ValidateFiles(paths []string) error {
	for _, filePath := range paths {
		info, err := os.Stat(filePath)
		if err != nil {
			return fmt.Errorf("cannot access file %s: %w", filePath, err)
		}

		if info.IsDir() {
			return fmt.Errorf("%s is a directory, not a file", filePath)
		}

		if !isYAMLFile(filePath) {
			return fmt.Errorf("%s is not a YAML file (must end in .yaml or .yml)", filePath)
		}

		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("cannot read file %s: %w", filePath, err)
		}
		file.Close()
	}

	return nil
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ValidateOutputPath checks if the directory of the output path exists and is writable.
// An empty path means stdout and always passes.
func ValidateOutputPath(path string) error {
	if path == "" {
		return nil
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s does not exist", dir)
	}
	if !info.IsDir() || (info.Mode()&0200) == 0 {
		return fmt.Errorf("output directory %s is not writable", dir)
	}

	return nil
}
