package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/pmcfetch/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndSeen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Seen("PMC1234567"))

	f.Add("PMC1234567")

	assert.True(t, f.Seen("PMC1234567"))
	assert.False(t, f.Seen("PMC7654321"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	for i := 0; i < 3; i++ {
		f.Add(fmt.Sprintf("PMC%d", i))
	}

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_NoFalseNegatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	for i := 0; i < 1000; i++ {
		f.Add(fmt.Sprintf("PMC%d", i))
	}
	for i := 0; i < 1000; i++ {
		assert.True(t, f.Seen(fmt.Sprintf("PMC%d", i)))
	}
}
