package params

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLoadsOnce(t *testing.T) {
	calls := 0
	cache := NewCache(func(category string) ([]Parameter, error) {
		calls++
		return []Parameter{{ID: category + "-001", Value: 1}}, nil
	})

	first, err := cache.Get("HV Battery & BMS", false)
	require.NoError(t, err)
	second, err := cache.Get("HV Battery & BMS", false)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestCacheForceRefresh(t *testing.T) {
	calls := 0
	cache := NewCache(func(category string) ([]Parameter, error) {
		calls++
		return []Parameter{{ID: category, Value: float64(calls)}}, nil
	})

	_, err := cache.Get("HV Battery & BMS", false)
	require.NoError(t, err)
	refreshed, err := cache.Get("HV Battery & BMS", true)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2.0, refreshed[0].Value)

	// The refreshed entry replaces the cached one.
	again, err := cache.Get("HV Battery & BMS", false)
	require.NoError(t, err)
	assert.Equal(t, 2.0, again[0].Value)
	assert.Equal(t, 2, calls)
}

func TestCacheUnknownCategory(t *testing.T) {
	cache := NewCache(func(string) ([]Parameter, error) { return nil, nil })
	_, err := cache.Get("Flux Capacitor", false)
	assert.Error(t, err)
}

func TestCacheLoaderError(t *testing.T) {
	boom := errors.New("upstream down")
	cache := NewCache(func(string) ([]Parameter, error) { return nil, boom })
	_, err := cache.Get("HV Battery & BMS", false)
	assert.ErrorIs(t, err, boom)
}

func TestCategoriesAllKnown(t *testing.T) {
	require.Len(t, Categories, 14)
	cache := NewCache(SyntheticLoader("SN-1", rand.New(rand.NewSource(1))))
	for _, c := range Categories {
		got, err := cache.Get(c, false)
		require.NoError(t, err, c)
		require.NotEmpty(t, got, c)
		for _, p := range got {
			assert.Equal(t, "SN-1", p.SerialNo)
			assert.NotEmpty(t, p.ID)
			assert.NotEmpty(t, p.Unit)
		}
	}
}

func TestSyntheticLoaderRowCount(t *testing.T) {
	load := SyntheticLoader("SN-2", rand.New(rand.NewSource(7)))
	rows, err := load("MCU")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(rows), 4)
	assert.LessOrEqual(t, len(rows), 8)
}
