package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/kanjiquiz/internal/model"
)

// WriteDir writes ds as busyu.json and yoji.json under dir, replacing each
// file atomically. Empty record sets are skipped.
func WriteDir(dir string, ds model.Dataset) error {
	if len(ds.Radicals) == 0 && len(ds.Idioms) == 0 {
		return ErrEmptyDataset
	}
	if len(ds.Radicals) > 0 {
		if err := writeJSON(filepath.Join(dir, RadicalsFile), ds.Radicals); err != nil {
			return err
		}
	}
	if len(ds.Idioms) > 0 {
		if err := writeJSON(filepath.Join(dir, IdiomsFile), ds.Idioms); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dataset dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "dataset-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp dataset: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	enc := json.NewEncoder(writer)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", filepath.Base(path), err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
