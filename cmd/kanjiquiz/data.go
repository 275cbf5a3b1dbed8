package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/verte-zerg/kanjiquiz/internal/dataset"
	"github.com/verte-zerg/kanjiquiz/internal/model"
	"github.com/verte-zerg/kanjiquiz/internal/store"
)

// Dataset sources, in lookup order.
const (
	sourceDir    = "data dir"
	sourceStore  = "sqlite store"
	sourceSample = "bundled sample"
)

// loadDataset picks the active dataset: an explicit data dir wins; otherwise
// each record set comes from the SQLite store when it has been imported, and
// from the bundled sample when it has not.
func loadDataset(logger *slog.Logger) (model.Dataset, string, error) {
	if dir := strings.TrimSpace(globalDataDir); dir != "" {
		ds, err := dataset.LoadDir(dir)
		if err != nil {
			return model.Dataset{}, "", fmt.Errorf("failed to load dataset from %s: %w", dir, err)
		}
		return ds, sourceDir, nil
	}

	sample, err := dataset.Sample()
	if err != nil {
		return model.Dataset{}, "", fmt.Errorf("failed to load bundled dataset: %w", err)
	}
	stored, err := loadStoredDataset(context.Background())
	if err != nil {
		logger.Warn("sqlite store unavailable, using bundled sample", "db", globalDBPath, "err", err)
		return sample, sourceSample, nil
	}

	ds := sample
	source := sourceSample
	if len(stored.Radicals) > 0 {
		ds.Radicals = stored.Radicals
		source = sourceStore
	}
	if len(stored.Idioms) > 0 {
		ds.Idioms = stored.Idioms
		source = sourceStore
	}
	logger.Debug("dataset resolved", "source", source, "radicals", len(ds.Radicals), "idioms", len(ds.Idioms))
	return ds, source, nil
}

func loadStoredDataset(ctx context.Context) (model.Dataset, error) {
	if _, err := os.Stat(globalDBPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Dataset{}, nil
		}
		return model.Dataset{}, err
	}
	st, err := store.Open(globalDBPath)
	if err != nil {
		return model.Dataset{}, err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return st.LoadDataset(ctx)
}

// importDataset replaces the stored record sets named by the non-empty paths.
func importDataset(ctx context.Context, w io.Writer, logger *slog.Logger, busyuPath, yojiPath string) error {
	var (
		radicals []model.RadicalRecord
		idioms   []model.IdiomRecord
		err      error
	)
	if busyuPath != "" {
		if radicals, err = dataset.ReadRadicalsFile(busyuPath); err != nil {
			return fmt.Errorf("failed to read %s: %w", busyuPath, err)
		}
		if len(radicals) == 0 {
			return fmt.Errorf("%s: %w", busyuPath, dataset.ErrEmptyDataset)
		}
	}
	if yojiPath != "" {
		if idioms, err = dataset.ReadIdiomsFile(yojiPath); err != nil {
			return fmt.Errorf("failed to read %s: %w", yojiPath, err)
		}
		if len(idioms) == 0 {
			return fmt.Errorf("%s: %w", yojiPath, dataset.ErrEmptyDataset)
		}
	}

	st, err := store.Open(globalDBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if radicals != nil {
		if err := st.ReplaceRadicals(ctx, radicals); err != nil {
			return fmt.Errorf("failed to import radicals: %w", err)
		}
		logger.Info("radicals imported", "file", busyuPath, "records", len(radicals))
	}
	if idioms != nil {
		if err := st.ReplaceIdioms(ctx, idioms); err != nil {
			return fmt.Errorf("failed to import idioms: %w", err)
		}
		logger.Info("idioms imported", "file", yojiPath, "records", len(idioms))
	}
	nRadicals, nIdioms, err := st.Counts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}
	_, err = fmt.Fprintf(w, "Store %s now holds %d radicals and %d idioms\n", globalDBPath, nRadicals, nIdioms)
	return err
}
