package store

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

func TestMemoryStoreGetSet(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	_, ok := s.Get("missing")
	assert.False(t, ok)

	events := &model.DigitalEventSeries{Times: []int64{1, 2}}
	s.Set("events", model.Events(events))

	got, ok := s.Get("events")
	require.True(t, ok)
	series, ok := got.AsEvents()
	require.True(t, ok)
	assert.Same(t, events, series)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreDeleteAndReset(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	s.Set("b", model.Tensor(&model.TensorData{}))
	s.Set("a", model.Tensor(&model.TensorData{}))
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	assert.Equal(t, []string{"b"}, s.Keys())

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Keys())
}

func TestMemoryStoreConcurrentWrites(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set(strconv.Itoa(i), model.Analog(&model.AnalogTimeSeries{}))
			_, _ = s.Get(strconv.Itoa(i))
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, s.Len())
}
