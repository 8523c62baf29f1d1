package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"onlyone/internal/providers"
	"onlyone/internal/testutil"
)

func TestInstrumentedCache_CountsHitsAndMisses(t *testing.T) {
	metrics := &testutil.MockMetrics{}
	cache := providers.NewInstrumentedCacheProvider(cacheConfig(true, 8), &testutil.MockLogger{}, metrics)

	_, ok := cache.Get("cold")
	assert.False(t, ok)
	assert.Equal(t, 1, metrics.CacheMisses)

	cache.Set("warm", []byte("data"))
	val, ok := cache.Get("warm")
	assert.True(t, ok)
	assert.Equal(t, []byte("data"), val)
	assert.Equal(t, 1, metrics.CacheHits)
	assert.Equal(t, 1, metrics.CacheMisses)
}

func TestInstrumentedCache_DisabledSkipsCounting(t *testing.T) {
	metrics := &testutil.MockMetrics{}
	cache := providers.NewInstrumentedCacheProvider(cacheConfig(false, 8), &testutil.MockLogger{}, metrics)

	_, ok := cache.Get("anything")
	assert.False(t, ok)
	assert.Zero(t, metrics.CacheMisses)
	assert.Zero(t, metrics.CacheHits)
}
