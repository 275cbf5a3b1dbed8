// Package dataset reads raw radical and idiom records from JSON.
package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/verte-zerg/kanjiquiz/internal/model"
)

// File names inside a dataset directory.
const (
	RadicalsFile = "busyu.json"
	IdiomsFile   = "yoji.json"
)

// ErrEmptyDataset is returned when a source holds no records at all.
var ErrEmptyDataset = errors.New("dataset is empty")

//go:embed data/busyu.json data/yoji.json
var sample embed.FS

// Sample returns the bundled starter dataset.
func Sample() (model.Dataset, error) {
	return load(func(name string) (io.ReadCloser, error) {
		return sample.Open("data/" + name)
	})
}

// LoadDir reads busyu.json and yoji.json from dir. Either file may be absent,
// but not both.
func LoadDir(dir string) (model.Dataset, error) {
	return load(func(name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(dir, name))
	})
}

// ReadRadicals decodes a JSON array of radical records.
func ReadRadicals(r io.Reader) ([]model.RadicalRecord, error) {
	var records []model.RadicalRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode radicals: %w", err)
	}
	return records, nil
}

// ReadIdioms decodes a JSON array of idiom records.
func ReadIdioms(r io.Reader) ([]model.IdiomRecord, error) {
	var records []model.IdiomRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode idioms: %w", err)
	}
	return records, nil
}

// ReadRadicalsFile decodes radical records from path.
func ReadRadicalsFile(path string) ([]model.RadicalRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dataset.
			_ = cerr
		}
	}()
	return ReadRadicals(file)
}

// ReadIdiomsFile decodes idiom records from path.
func ReadIdiomsFile(path string) ([]model.IdiomRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dataset.
			_ = cerr
		}
	}()
	return ReadIdioms(file)
}

func load(open func(name string) (io.ReadCloser, error)) (model.Dataset, error) {
	var ds model.Dataset
	found := false

	rc, err := open(RadicalsFile)
	switch {
	case err == nil:
		found = true
		ds.Radicals, err = ReadRadicals(rc)
		_ = rc.Close()
		if err != nil {
			return model.Dataset{}, fmt.Errorf("%s: %w", RadicalsFile, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return model.Dataset{}, err
	}

	rc, err = open(IdiomsFile)
	switch {
	case err == nil:
		found = true
		ds.Idioms, err = ReadIdioms(rc)
		_ = rc.Close()
		if err != nil {
			return model.Dataset{}, fmt.Errorf("%s: %w", IdiomsFile, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return model.Dataset{}, err
	}

	if !found || (len(ds.Radicals) == 0 && len(ds.Idioms) == 0) {
		return model.Dataset{}, ErrEmptyDataset
	}
	return ds, nil
}
