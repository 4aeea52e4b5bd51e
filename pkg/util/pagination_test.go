package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	off, lim := Calculate(0, 0)
	assert.Equal(t, 0, off)
	assert.Equal(t, DefaultPageSize, lim)

	off, lim = Calculate(3, 10)
	assert.Equal(t, 20, off)
	assert.Equal(t, 10, lim)

	_, lim = Calculate(1, 1000)
	assert.Equal(t, MaxPageSize, lim)

	off, lim = Calculate(math.MaxInt, 10)
	assert.Equal(t, (MaxPage-1)*10, off)
	assert.Equal(t, 10, lim)
	assert.Equal(t, MaxPage, NewMeta(math.MaxInt, off, lim, 5).Page)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(-3))
	assert.Equal(t, 4, ClampPage(4))
	assert.Equal(t, MaxPage, ClampPage(MaxPage+1))
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(2, 10, 10, 25)
	assert.Equal(t, int64(3), m.TotalPages)
	assert.True(t, m.HasPrev)
	assert.True(t, m.HasNext)

	m = NewMeta(3, 20, 10, 25)
	assert.False(t, m.HasNext)
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 5, ParseIntDefault("", 5))
	assert.Equal(t, 5, ParseIntDefault("abc", 5))
	assert.Equal(t, 7, ParseIntDefault("7", 5))
}
