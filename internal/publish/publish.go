// Package publish exports shopping lists as markdown files.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"shoplist-cli/internal/model"
)

type WriteOptions struct {
	OpenOnly  bool
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteList writes <toDir>/lists/<id>.md.
func WriteList(l model.ShoppingList, toDir string, opt WriteOptions) (WriteResult, error) {
	if strings.TrimSpace(l.ID) == "" {
		return WriteResult{}, errors.New("missing list id")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	outDir := filepath.Join(toDir, "lists")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, l.ID+".md")
	md := RenderListMarkdown(l, RenderOptions{OpenOnly: opt.OpenOnly})
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

// WriteAll writes an index.md plus one page per list. It stops on the first
// error; files already written are kept.
func WriteAll(lists []model.ShoppingList, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderIndexMarkdown(lists)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	written := []string{indexPath}
	for _, l := range lists {
		res, err := WriteList(l, toDir, opt)
		if err != nil {
			return WriteResult{Written: written}, err
		}
		written = append(written, res.Written...)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
