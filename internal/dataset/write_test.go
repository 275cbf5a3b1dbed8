package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kanjiquiz/internal/model"
)

func TestWriteDirRoundTrip(t *testing.T) {
	ds, err := Sample()
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, WriteDir(dir, ds))

	back, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, ds, back)

	leftovers, err := filepath.Glob(filepath.Join(dir, "dataset-*.json"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestWriteDirSkipsEmptySet(t *testing.T) {
	dir := t.TempDir()
	ds := model.Dataset{Idioms: []model.IdiomRecord{{Radical: "一期一会", Reading: "いちごいちえ", Meaning: "m", Kanken: 3}}}
	require.NoError(t, WriteDir(dir, ds))
	_, err := os.Stat(filepath.Join(dir, RadicalsFile))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	data, err := os.ReadFile(filepath.Join(dir, IdiomsFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "一期一会")
}

func TestWriteDirEmpty(t *testing.T) {
	err := WriteDir(t.TempDir(), model.Dataset{})
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}
