package syncer

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/roylee0704/gron"
	"go.uber.org/atomic"

	"onlyone/internal/providers"
	"onlyone/internal/store"
	"onlyone/internal/structures"
	"onlyone/internal/syncer/interfaces"
)

// Synchronizer approximates "the other process changed the data" without a
// real event bus. Writers stamp AnswersLastModified and subscribers find out
// through a fixed-interval poll of the shared store, optionally accelerated
// by a watch on the store file. Delivery is best effort only: a write
// followed by process suspension inside one poll interval is picked up on the
// next ForceSynchronize.
type Synchronizer struct {
	config  *structures.Config
	store   *store.SharedStore
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	cron     *gron.Cron
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	lastSeen atomic.Float64

	mu       sync.Mutex
	handlers []func()
}

func NewSynchronizer(config *structures.Config, st *store.SharedStore, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.SynchronizerInterface {
	return &Synchronizer{
		config:  config,
		store:   st,
		logger:  logger,
		metrics: metrics,
		stopCh:  make(chan struct{}),
	}
}

func (s *Synchronizer) Init() {
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Sync.PollInterval), s.Poll)
	s.cron.Start()

	if s.config.Sync.WatchStore {
		if err := s.initWatcher(); err != nil {
			s.logger.Warnf(providers.TypeApp, "Store watch unavailable, poll only: %s", err)
		}
	}

	s.logger.Infof(providers.TypeApp, "Synchronizer polling every %s (window %s)",
		s.config.Sync.PollInterval, s.config.Sync.RecencyWindow)
}

func (s *Synchronizer) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	close(s.stopCh)
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}

func (s *Synchronizer) Subscribe(handler func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// NotifyChanged marks the shared store as freshly written and broadcasts to
// same-process subscribers. Called after every repository mutation.
func (s *Synchronizer) NotifyChanged() {
	now := unixSeconds(time.Now())
	s.store.SetFloat64(store.KeyAnswersLastModified, now)
	// Our own stamp must not re-trigger the poll path.
	s.lastSeen.Store(now)
	s.fire()
}

// ForceSynchronize reloads unconditionally, the equivalent of the original
// app's foreground/activate hook.
func (s *Synchronizer) ForceSynchronize() {
	if err := s.store.Reload(); err != nil {
		s.logger.Warnf(providers.TypeApp, "Store reload failed: %s", err)
	}
	s.fire()
}

// Poll is one check cycle: reload the store and fire when another process
// stamped a fresh AnswersLastModified. Only stamps inside the recency window
// count as "new"; older ones are recorded but not delivered, matching the
// original heuristic.
func (s *Synchronizer) Poll() {
	s.metrics.IncSyncPolls()

	if err := s.store.Reload(); err != nil {
		s.logger.Warnf(providers.TypeApp, "Store reload failed: %s", err)
		return
	}

	lastModified := s.store.Float64(store.KeyAnswersLastModified)
	if lastModified <= 0 || lastModified == s.lastSeen.Load() {
		return
	}
	s.lastSeen.Store(lastModified)

	age := unixSeconds(time.Now()) - lastModified
	if age > s.config.Sync.RecencyWindow.Seconds() {
		return
	}

	s.fire()
}

// fire delivers asynchronously so a subscriber reloading under its own lock
// never deadlocks against the mutation that triggered the signal.
func (s *Synchronizer) fire() {
	s.metrics.IncSyncReloads()

	s.mu.Lock()
	handlers := make([]func(), len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	go func() {
		for _, h := range handlers {
			h()
		}
	}()
}

func (s *Synchronizer) initWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: the store file is replaced by rename on every
	// write, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(s.store.Path())); err != nil {
		watcher.Close()
		return err
	}
	s.watcher = watcher

	go func() {
		name := filepath.Base(s.store.Path())
		for {
			select {
			case <-s.stopCh:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) == name && event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
					s.Poll()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warnf(providers.TypeApp, "Store watch error: %s", err)
			}
		}
	}()
	return nil
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
