package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlyone/internal/structures"
	"onlyone/internal/testutil"
)

func testStoreConfig(dir string) *structures.Config {
	return &structures.Config{
		Store: structures.StoreConfig{
			GroupID: "group.test",
			Dir:     dir,
		},
	}
}

func newTestStore(t *testing.T, dir string) *SharedStore {
	t.Helper()
	s, err := NewSharedStore(testStoreConfig(dir), &testutil.MockCompressor{}, &testutil.MockLogger{}, &testutil.MockMetrics{})
	require.NoError(t, err)
	return s
}

func TestSharedStore_SetGetString(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	s.SetString(KeyTodayQuestionID, "7")
	assert.Equal(t, "7", s.String(KeyTodayQuestionID))
	assert.Equal(t, "", s.String("missing"))
}

func TestSharedStore_StringSlice(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	s.SetStringSlice(KeyUsedQuestionIDs, []string{"1", "4", "9"})
	assert.Equal(t, []string{"1", "4", "9"}, s.StringSlice(KeyUsedQuestionIDs))
	assert.Empty(t, s.StringSlice("missing"))
}

func TestSharedStore_Float64(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	s.SetFloat64(KeyAnswersLastModified, 1756500000.25)
	assert.Equal(t, 1756500000.25, s.Float64(KeyAnswersLastModified))
	assert.Zero(t, s.Float64("missing"))
}

func TestSharedStore_BytesRoundtrip(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	blob := []byte{0x00, 0x01, 0xfe, 0xff}
	s.SetBytes(KeySavedAnswers, blob)
	assert.Equal(t, blob, s.Bytes(KeySavedAnswers))
	assert.Nil(t, s.Bytes("missing"))
}

func TestSharedStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	a := newTestStore(t, dir)
	a.SetMany(map[string]any{
		KeyTodayQuestionID: "3",
		KeyQuestionDate:    "2026-08-30",
		KeyUsedQuestionIDs: []string{"3"},
	})

	b := newTestStore(t, dir)
	assert.Equal(t, "3", b.String(KeyTodayQuestionID))
	assert.Equal(t, "2026-08-30", b.String(KeyQuestionDate))
	assert.Equal(t, []string{"3"}, b.StringSlice(KeyUsedQuestionIDs))
}

func TestSharedStore_ReloadSeesOtherWriter(t *testing.T) {
	dir := t.TempDir()
	a := newTestStore(t, dir)
	b := newTestStore(t, dir)

	a.SetString(KeyTodayQuestionID, "11")
	assert.Empty(t, b.String(KeyTodayQuestionID))

	require.NoError(t, b.Reload())
	assert.Equal(t, "11", b.String(KeyTodayQuestionID))
}

func TestSharedStore_Remove(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	s.SetString(KeyTodayQuestionID, "2")
	s.SetString(KeyQuestionDate, "2026-08-30")
	s.Remove(KeyTodayQuestionID, KeyQuestionDate)

	assert.Empty(t, s.String(KeyTodayQuestionID))

	reopened := newTestStore(t, dir)
	assert.Empty(t, reopened.String(KeyTodayQuestionID))
}

func TestSharedStore_MissingFileStartsEmpty(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	assert.Empty(t, s.String(KeyTodayQuestionID))
}

func TestSharedStore_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	conf := testStoreConfig(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "group.test.store"), []byte("not json"), 0o644))

	logger := &testutil.MockLogger{}
	s, err := NewSharedStore(conf, &testutil.MockCompressor{}, logger, &testutil.MockMetrics{})
	require.NoError(t, err)
	assert.Empty(t, s.String(KeyTodayQuestionID))
	assert.Equal(t, 1, logger.LevelCount("warn"))
}

func TestSharedStore_UnusableDirFailsFast(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "occupied")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewSharedStore(testStoreConfig(filepath.Join(blocker, "sub")), &testutil.MockCompressor{}, &testutil.MockLogger{}, &testutil.MockMetrics{})
	assert.Error(t, err)
}

func TestSharedStore_PersistObservesMetrics(t *testing.T) {
	metrics := &testutil.MockMetrics{}
	s, err := NewSharedStore(testStoreConfig(t.TempDir()), &testutil.MockCompressor{}, &testutil.MockLogger{}, metrics)
	require.NoError(t, err)

	s.SetString(KeyTodayQuestionID, "1")
	s.SetString(KeyTodayQuestionID, "2")
	assert.Equal(t, 2, metrics.Persists)
}

func TestSharedStore_WritesSurviveConcurrentReload(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				assert.NoError(t, s.Reload())
			}
		}
	}()

	const writes = 500
	for i := 0; i < writes; i++ {
		s.SetString(fmt.Sprintf("key-%d", i), "v")
	}
	close(stop)
	wg.Wait()

	reopened := newTestStore(t, dir)
	for i := 0; i < writes; i++ {
		key := fmt.Sprintf("key-%d", i)
		assert.Equal(t, "v", reopened.String(key), key)
	}
}

func TestSharedStore_NoTmpFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)
	s.SetString(KeyTodayQuestionID, "1")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "group.test.store", entries[0].Name())
}
