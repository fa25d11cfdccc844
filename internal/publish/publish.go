package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"loops-cli/internal/model"
)

type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

type WriteOptions struct {
	Render    RenderOptions
	Overwrite bool
}

type WriteResult struct {
	Written string `json:"written"`
	Format  Format `json:"format"`
}

// Render returns l in the requested export format.
func Render(l model.Loop, f Format, opt RenderOptions) (string, error) {
	switch f {
	case FormatMarkdown, "":
		return RenderLoopMarkdown(l, opt), nil
	case FormatHTML:
		return RenderLoopHTML(l, opt)
	default:
		return "", errors.New("unknown export format: " + string(f))
	}
}

// WriteLoop renders l and writes it to outPath, creating parent directories.
func WriteLoop(l model.Loop, f Format, outPath string, opt WriteOptions) (WriteResult, error) {
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		return WriteResult{}, errors.New("missing --out")
	}
	outPath = filepath.Clean(outPath)
	content, err := Render(l, f, opt.Render)
	if err != nil {
		return WriteResult{}, err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return WriteResult{}, err
	}
	if err := writeFile(outPath, []byte(content), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	if f == "" {
		f = FormatMarkdown
	}
	return WriteResult{Written: outPath, Format: f}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
