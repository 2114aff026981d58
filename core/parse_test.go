package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDelimited(t *testing.T) {
	t.Run("basic rows", func(t *testing.T) {
		records := ParseDelimited("a,b,c\n1,2,3\n4,5,6")
		assert.Len(t, records, 2)
		assert.Equal(t, "1", records[0]["a"])
		assert.Equal(t, "6", records[1]["c"])
	})

	t.Run("drops rows with mismatched field count", func(t *testing.T) {
		records := ParseDelimited("a,b\n1,2\nonly-one\n3,4,5\n6,7")
		assert.Len(t, records, 2)
		assert.Equal(t, "1", records[0]["a"])
		assert.Equal(t, "6", records[1]["a"])
	})

	t.Run("trims whitespace and handles CRLF", func(t *testing.T) {
		records := ParseDelimited(" a , b \r\n 1 , 2 \r\n")
		assert.Len(t, records, 1)
		assert.Equal(t, "1", records[0]["a"])
		assert.Equal(t, "2", records[0]["b"])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ParseDelimited(""))
		assert.Empty(t, ParseDelimited("header,only"))
	})
}

// TestToNumber pins the lenient coercion contract: bad input is 0,
// never an error.
func TestToNumber(t *testing.T) {
	assert.Equal(t, 0.0, ToNumber(""))
	assert.Equal(t, 0.0, ToNumber("  "))
	assert.Equal(t, 0.0, ToNumber("abc"))
	assert.Equal(t, 0.0, ToNumber("NaN"))
	assert.Equal(t, 0.0, ToNumber("+Inf"))
	assert.Equal(t, 42.0, ToNumber("42"))
	assert.Equal(t, -3.5, ToNumber(" -3.5 "))
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 0, ToInt("junk"))
	assert.Equal(t, 12, ToInt("12.9"))
	assert.Equal(t, -7, ToInt("-7"))
}
