package store

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"onlyone/internal/providers"
	"onlyone/internal/structures"
)

// Persisted key layout shared by every process in the group.
const (
	KeyTodayQuestionID     = "TodayQuestionId"
	KeyQuestionDate        = "QuestionDate"
	KeyUsedQuestionIDs     = "UsedQuestionIds"
	KeySavedAnswers        = "SavedAnswers"
	KeyAnswersLastModified = "AnswersLastModified"
)

// SharedStore is the group-scoped key/value store behind every process of the
// app. One compressed JSON object per file, rewritten whole on each mutation.
// There is no cross-process locking: the last writer wins and the synchronizer
// only approximates change notification.
type SharedStore struct {
	mu         sync.RWMutex
	path       string
	values     map[string]any
	compressor CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewSharedStore(conf *structures.Config, compressor CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (*SharedStore, error) {
	if err := os.MkdirAll(conf.Store.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("shared store dir %q unavailable: %w", conf.Store.Dir, err)
	}

	s := &SharedStore{
		path:       filepath.Join(conf.Store.Dir, conf.Store.GroupID+".store"),
		values:     make(map[string]any),
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}

	if err := s.Reload(); err != nil {
		logger.Warnf(providers.TypeApp, "Shared store %s unreadable, starting empty: %s", s.path, err)
	}
	return s, nil
}

func (s *SharedStore) Path() string {
	return s.path
}

// Reload replaces the in-memory values with whatever is on disk. A missing
// file yields an empty store; a corrupt file is reported but not fatal.
// The file read happens under the same lock as mutations, so a reload can
// never roll back a write that landed between reading and swapping the map.
func (s *SharedStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	data, err := s.compressor.Decompress(raw)
	if err != nil {
		return fmt.Errorf("decompress store: %w", err)
	}

	values := make(map[string]any)
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("decode store: %w", err)
	}

	s.values = values
	return nil
}

func (s *SharedStore) String(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cast.ToString(s.values[key])
}

func (s *SharedStore) StringSlice(key string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cast.ToStringSlice(s.values[key])
}

func (s *SharedStore) Float64(key string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cast.ToFloat64(s.values[key])
}

// Bytes returns a binary value stored with SetBytes, or nil when absent or
// undecodable.
func (s *SharedStore) Bytes(key string) []byte {
	encoded := s.String(key)
	if encoded == "" {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Store key %s holds invalid binary data: %s", key, err)
		return nil
	}
	return data
}

func (s *SharedStore) SetString(key, value string) {
	s.SetMany(map[string]any{key: value})
}

func (s *SharedStore) SetStringSlice(key string, value []string) {
	s.SetMany(map[string]any{key: value})
}

func (s *SharedStore) SetFloat64(key string, value float64) {
	s.SetMany(map[string]any{key: value})
}

func (s *SharedStore) SetBytes(key string, value []byte) {
	s.SetMany(map[string]any{key: base64.StdEncoding.EncodeToString(value)})
}

// SetMany applies all values and persists once.
func (s *SharedStore) SetMany(values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
	s.persistLocked()
}

func (s *SharedStore) Remove(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	s.persistLocked()
}

// persistLocked writes the current values to disk. Callers hold mu, which
// keeps mutation, snapshot and file write one atomic step relative to Reload.
func (s *SharedStore) persistLocked() {
	start := time.Now()

	jsonData, err := json.Marshal(s.values)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error encoding shared store: %s", err)
		return
	}

	data, err := s.compressor.Compress(jsonData)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error compressing shared store: %s", err)
		return
	}

	if err := s.writeAtomic(data); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error persisting shared store: %s", err)
		return
	}

	s.metrics.ObservePersistenceDuration(time.Since(start))
}

func (s *SharedStore) writeAtomic(data []byte) error {
	tmpFile := s.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, s.path)
}
