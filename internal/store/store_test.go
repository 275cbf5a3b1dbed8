package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kanjiquiz/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "kanjiquiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestRadicalsRoundTripKeepsOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	records := []model.RadicalRecord{
		{Radical: "木", Reading: "きへん", Kanji: []model.KanjiRecord{
			{Char: "林", Onyomi: []string{"リン"}, Kunyomi: []string{"はやし"}, Meaning: []string{"はやし。"}, Grade: "小学１年", Kanken: 10, Kakusuu: 8},
			{Char: "樽", Kunyomi: []string{"たる"}, Kanken: 1.5},
		}},
		{Radical: "乙", Reading: "おつ"},
		{Radical: "日", Reading: "ひへん", Kanji: []model.KanjiRecord{{Char: "明"}}},
	}
	require.NoError(t, st.ReplaceRadicals(ctx, records))

	ds, err := st.LoadDataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, ds.Radicals)
	assert.Empty(t, ds.Idioms)
}

func TestReplaceRadicalsOverwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.ReplaceRadicals(ctx, []model.RadicalRecord{{Radical: "木", Reading: "き"}, {Radical: "日", Reading: "ひ"}}))
	require.NoError(t, st.ReplaceRadicals(ctx, []model.RadicalRecord{{Radical: "口", Reading: "くち"}}))

	radicals, idioms, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, radicals)
	assert.Equal(t, 0, idioms)
}

func TestReplaceRadicalsRepeatedRadicalFirstWins(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	err := st.ReplaceRadicals(ctx, []model.RadicalRecord{
		{Radical: "木", Reading: "きへん", Kanji: []model.KanjiRecord{{Char: "林"}}},
		{Radical: "口", Reading: "くち"},
		{Radical: "木", Reading: "き"},
	})
	require.NoError(t, err)

	ds, err := st.LoadDataset(ctx)
	require.NoError(t, err)
	require.Len(t, ds.Radicals, 2)
	assert.Equal(t, "きへん", ds.Radicals[0].Reading)
	require.Len(t, ds.Radicals[0].Kanji, 1)
	assert.Equal(t, "口", ds.Radicals[1].Radical)

	radicals, _, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, radicals)
}

func TestReplaceRadicalsFailureRollsBack(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.ReplaceRadicals(ctx, []model.RadicalRecord{{Radical: "木", Reading: "き"}}))
	_, err := st.db.Exec(`CREATE TRIGGER reject_kanji BEFORE INSERT ON kanji
		WHEN NEW.char = '✗' BEGIN SELECT RAISE(ABORT, 'rejected'); END;`)
	require.NoError(t, err)

	err = st.ReplaceRadicals(ctx, []model.RadicalRecord{{Radical: "口", Kanji: []model.KanjiRecord{{Char: "✗"}}}})
	require.Error(t, err)

	ds, err := st.LoadDataset(ctx)
	require.NoError(t, err)
	require.Len(t, ds.Radicals, 1)
	assert.Equal(t, "木", ds.Radicals[0].Radical)
}

func TestIdiomsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	records := []model.IdiomRecord{
		{Radical: "一期一会", Reading: "いちごいちえ", Meaning: "m1", Kanken: 3},
		{Radical: "四面楚歌", Reading: "しめんそか", Meaning: "m2", Synonym: "孤立無援", Note: "n", Kanken: 2.5},
	}
	require.NoError(t, st.ReplaceIdioms(ctx, records))
	ds, err := st.LoadDataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, ds.Idioms)

	_, idioms, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, idioms)
}
