package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllBlank(t *testing.T) {
	assert.True(t, AllBlank())
	assert.True(t, AllBlank("", "   ", "\n\t"))
	assert.False(t, AllBlank("", "x", ""))
}

func TestJoinBlocks(t *testing.T) {
	assert.Equal(t, "a\n\nb\n\nc", JoinBlocks("a", "b", "c"))
	assert.Equal(t, "solo", JoinBlocks("solo"))
}

func TestTruncate(t *testing.T) {
	t.Run("short strings pass through", func(t *testing.T) {
		assert.Equal(t, "hello", Truncate("hello", 10))
	})

	t.Run("long strings get an ellipsis", func(t *testing.T) {
		got := Truncate("hello world", 8)
		assert.Equal(t, "hello w…", got)
	})

	t.Run("zero width yields empty", func(t *testing.T) {
		assert.Equal(t, "", Truncate("hello", 0))
	})
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "first", FirstLine("first\nsecond"))
	assert.Equal(t, "only", FirstLine("only"))
	assert.Equal(t, "", FirstLine("\nrest"))
}
