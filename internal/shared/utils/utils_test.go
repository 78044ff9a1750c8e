package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc", "1.5"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}
}

func TestFoldCaseHandlesCyrillic(t *testing.T) {
	assert.Equal(t, FoldCase("лев толстой"), FoldCase("Лев ТОЛСТОЙ"))
	assert.Equal(t, FoldCase("mark twain"), FoldCase("Mark Twain"))
}

func TestSearchKey(t *testing.T) {
	surname := "Twain"
	assert.Equal(t, "mark twain", SearchKey("Mark", &surname))
	assert.Equal(t, "mark", SearchKey(" Mark ", nil))

	blank := "  "
	assert.Equal(t, "mark", SearchKey("Mark", &blank))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(9, 1, 5))
	assert.Equal(t, 1, Clamp(-3, 1, 5))
	assert.Equal(t, 3, Clamp(3, 1, 5))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\x`, EscapeLike(`c:\x`))
	assert.Equal(t, `%tw\%ain%`, ContainsPattern("tw%ain"))
}

func TestSortOrder(t *testing.T) {
	assert.Equal(t, "DESC", SortOrder("desc"))
	assert.Equal(t, "DESC", SortOrder(" DESC "))
	assert.Equal(t, "ASC", SortOrder("asc"))
	assert.Equal(t, "ASC", SortOrder("sideways"))
}
