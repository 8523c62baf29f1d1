package providers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"onlyone/internal/providers"
	"onlyone/internal/structures"
	"onlyone/internal/testutil"
)

func cacheConfig(enabled bool, sizeMB int) *structures.Config {
	return &structures.Config{
		Sync:  structures.SyncConfig{PollInterval: time.Second},
		Cache: structures.CacheConfig{Enabled: enabled, Size: sizeMB},
	}
}

func TestCacheProvider_SetGet(t *testing.T) {
	cache := providers.NewCacheProvider(cacheConfig(true, 8), &testutil.MockLogger{})

	cache.Set("answers:list", []byte(`[{"id":"a"}]`))
	val, ok := cache.Get("answers:list")
	assert.True(t, ok)
	assert.Equal(t, []byte(`[{"id":"a"}]`), val)
}

func TestCacheProvider_MissingKey(t *testing.T) {
	cache := providers.NewCacheProvider(cacheConfig(true, 8), &testutil.MockLogger{})

	_, ok := cache.Get("never-set")
	assert.False(t, ok)
}

func TestCacheProvider_Del(t *testing.T) {
	cache := providers.NewCacheProvider(cacheConfig(true, 8), &testutil.MockLogger{})

	cache.Set("answers:list", []byte("stale"))
	cache.Del("answers:list")
	_, ok := cache.Get("answers:list")
	assert.False(t, ok)
}

func TestCacheProvider_DisabledIsNoop(t *testing.T) {
	cache := providers.NewCacheProvider(cacheConfig(false, 8), &testutil.MockLogger{})

	cache.Set("key", []byte("value"))
	_, ok := cache.Get("key")
	assert.False(t, ok)
}

func TestCacheProvider_ZeroSizeIsNoop(t *testing.T) {
	cache := providers.NewCacheProvider(cacheConfig(true, 0), &testutil.MockLogger{})

	cache.Set("key", []byte("value"))
	_, ok := cache.Get("key")
	assert.False(t, ok)
}

func TestCacheProvider_EmptyKey(t *testing.T) {
	cache := providers.NewCacheProvider(cacheConfig(true, 8), &testutil.MockLogger{})

	_, ok := cache.Get("")
	assert.False(t, ok)
}
