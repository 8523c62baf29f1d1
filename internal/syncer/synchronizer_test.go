package syncer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlyone/internal/store"
	"onlyone/internal/structures"
	"onlyone/internal/testutil"
)

func syncConfig(dir string) *structures.Config {
	return &structures.Config{
		Store: structures.StoreConfig{GroupID: "group.test", Dir: dir},
		Sync: structures.SyncConfig{
			PollInterval:  time.Second,
			RecencyWindow: 2 * time.Second,
		},
	}
}

func newSyncFixture(t *testing.T, dir string) (*Synchronizer, *store.SharedStore, *testutil.MockMetrics) {
	t.Helper()
	conf := syncConfig(dir)
	metrics := &testutil.MockMetrics{}
	st, err := store.NewSharedStore(conf, &testutil.MockCompressor{}, &testutil.MockLogger{}, metrics)
	require.NoError(t, err)
	s := NewSynchronizer(conf, st, &testutil.MockLogger{}, metrics).(*Synchronizer)
	return s, st, metrics
}

// subscribeCounter registers a handler and returns a channel receiving one
// token per delivery.
func subscribeCounter(s *Synchronizer) chan struct{} {
	ch := make(chan struct{}, 16)
	s.Subscribe(func() { ch <- struct{}{} })
	return ch
}

func waitDelivery(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestNotifyChanged_StampsStoreAndFires(t *testing.T) {
	s, st, _ := newSyncFixture(t, t.TempDir())
	ch := subscribeCounter(s)

	before := unixSeconds(time.Now())
	s.NotifyChanged()
	waitDelivery(t, ch)

	stamp := st.Float64(store.KeyAnswersLastModified)
	assert.GreaterOrEqual(t, stamp, before)
	assert.LessOrEqual(t, stamp, unixSeconds(time.Now()))
}

func TestPoll_FiresOnFreshForeignStamp(t *testing.T) {
	dir := t.TempDir()
	s, _, metrics := newSyncFixture(t, dir)
	ch := subscribeCounter(s)

	// A sibling process writes and stamps the shared file.
	other, otherStore, _ := newSyncFixture(t, dir)
	otherStore.SetString("SavedAnswers", "payload")
	other.NotifyChanged()

	s.Poll()
	waitDelivery(t, ch)
	assert.Equal(t, 1, metrics.SyncPolls)
	assert.Equal(t, 1, metrics.Reloads())
}

func TestPoll_IgnoresOwnStamp(t *testing.T) {
	s, _, metrics := newSyncFixture(t, t.TempDir())
	s.NotifyChanged()
	reloadsAfterNotify := metrics.Reloads()

	s.Poll()
	assert.Equal(t, reloadsAfterNotify, metrics.Reloads())
}

func TestPoll_IgnoresStaleStamp(t *testing.T) {
	s, st, metrics := newSyncFixture(t, t.TempDir())

	// Stamp well outside the recency window.
	st.SetFloat64(store.KeyAnswersLastModified, unixSeconds(time.Now())-60)
	s.Poll()
	assert.Zero(t, metrics.Reloads())

	// The stale stamp is remembered, so it never fires later either.
	s.Poll()
	assert.Zero(t, metrics.Reloads())
}

func TestPoll_NoStampNoFire(t *testing.T) {
	s, _, metrics := newSyncFixture(t, t.TempDir())

	s.Poll()
	s.Poll()
	assert.Equal(t, 2, metrics.SyncPolls)
	assert.Zero(t, metrics.Reloads())
}

func TestPoll_FiresOncePerStamp(t *testing.T) {
	dir := t.TempDir()
	s, _, metrics := newSyncFixture(t, dir)

	other, _, _ := newSyncFixture(t, dir)
	other.NotifyChanged()

	s.Poll()
	s.Poll()
	s.Poll()
	assert.Equal(t, 1, metrics.Reloads())
}

func TestForceSynchronize_AlwaysFires(t *testing.T) {
	s, _, metrics := newSyncFixture(t, t.TempDir())
	ch := subscribeCounter(s)

	s.ForceSynchronize()
	waitDelivery(t, ch)
	s.ForceSynchronize()
	waitDelivery(t, ch)
	assert.Equal(t, 2, metrics.Reloads())
}

func TestForceSynchronize_ReloadsForeignData(t *testing.T) {
	dir := t.TempDir()
	s, st, _ := newSyncFixture(t, dir)
	_, otherStore, _ := newSyncFixture(t, dir)

	otherStore.SetString("TodayQuestionId", "9")
	assert.Empty(t, st.String("TodayQuestionId"))

	s.ForceSynchronize()
	assert.Equal(t, "9", st.String("TodayQuestionId"))
}

func TestSubscribe_AllHandlersInvoked(t *testing.T) {
	s, _, _ := newSyncFixture(t, t.TempDir())
	first := subscribeCounter(s)
	second := subscribeCounter(s)

	s.ForceSynchronize()
	waitDelivery(t, first)
	waitDelivery(t, second)
}

func TestInitAndStop(t *testing.T) {
	dir := t.TempDir()
	conf := syncConfig(dir)
	conf.Sync.PollInterval = 50 * time.Millisecond
	conf.Sync.WatchStore = false
	metrics := &testutil.MockMetrics{}
	st, err := store.NewSharedStore(conf, &testutil.MockCompressor{}, &testutil.MockLogger{}, metrics)
	require.NoError(t, err)
	s := NewSynchronizer(conf, st, &testutil.MockLogger{}, metrics).(*Synchronizer)

	s.Init()
	assert.Eventually(t, func() bool {
		return metrics.Polls() > 0
	}, 2*time.Second, 10*time.Millisecond)
	s.Stop()
}

func TestWatchStore_TriggersPollOnForeignWrite(t *testing.T) {
	dir := t.TempDir()
	conf := syncConfig(dir)
	// Long interval so only the file watch can plausibly trigger the poll.
	conf.Sync.PollInterval = time.Hour
	conf.Sync.WatchStore = true
	metrics := &testutil.MockMetrics{}
	st, err := store.NewSharedStore(conf, &testutil.MockCompressor{}, &testutil.MockLogger{}, metrics)
	require.NoError(t, err)
	s := NewSynchronizer(conf, st, &testutil.MockLogger{}, metrics).(*Synchronizer)
	s.Init()
	defer s.Stop()
	ch := subscribeCounter(s)

	other, _, _ := newSyncFixture(t, dir)
	other.NotifyChanged()

	waitDelivery(t, ch)
}

func TestUnixSeconds(t *testing.T) {
	at := time.Unix(1756500000, 250_000_000)
	assert.InDelta(t, 1756500000.25, unixSeconds(at), 1e-6)
}
