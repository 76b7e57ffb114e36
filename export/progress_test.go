package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_MonotonicAndCompletes(t *testing.T) {
	observed := make([]int, 0)
	p := NewProgress(7, func(percent int) {
		observed = append(observed, percent)
	})

	for i := 0; i < 7; i++ {
		p.Settle()
	}

	assert.Equal(t, 100, p.Percent())
	assert.Len(t, observed, 7)
	last := -1
	for _, percent := range observed {
		assert.GreaterOrEqual(t, percent, last)
		assert.LessOrEqual(t, percent, 100)
		last = percent
	}
	assert.Equal(t, 100, observed[len(observed)-1])
}

func TestProgress_FloorsPartialPercentages(t *testing.T) {
	p := NewProgress(3, nil)
	p.Settle()
	assert.Equal(t, 33, p.Percent())
	p.Settle()
	assert.Equal(t, 66, p.Percent())
	p.Settle()
	assert.Equal(t, 100, p.Percent())
}

func TestProgress_ExtraSettlesDoNotOverflow(t *testing.T) {
	p := NewProgress(2, nil)
	p.Settle()
	p.Settle()
	p.Settle()
	assert.Equal(t, 100, p.Percent())
}

func TestProgress_ZeroTotalIsDone(t *testing.T) {
	p := NewProgress(0, nil)
	assert.Equal(t, 100, p.Percent())
}
