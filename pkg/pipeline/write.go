package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saasfactory/archviz/pkg/render"
)

// OutputPath resolves where one artifact is written.
//
//   - empty output: render.FileName(title, f) in the working directory
//   - existing directory: render.FileName(title, f) inside it
//   - a file path with a single format: used as-is
//   - a file path with several formats: its extension is swapped per format
func OutputPath(output, title string, f render.Format, multi bool) string {
	if output == "" {
		return render.FileName(title, f)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, render.FileName(title, f))
	}
	if !multi {
		return output
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + f.Ext()
}

// WriteArtifacts writes every artifact of res to disk in the order of
// formats and returns the paths written.
func WriteArtifacts(res *Result, formats []render.Format, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := res.Artifacts[f]
		if !ok {
			return paths, fmt.Errorf("no %s artifact in result", f)
		}
		path := OutputPath(output, res.Title, f, len(formats) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
