package pagination

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeOffsetToken(t *testing.T) {
	token := EncodeOffsetToken(40)
	assert.NotEmpty(t, token)

	offset, err := DecodeOffsetToken(token)
	require.NoError(t, err)
	assert.Equal(t, 40, offset)

	offset, err = DecodeOffsetToken("")
	require.NoError(t, err)
	assert.Zero(t, offset)
}

func TestDecodeOffsetToken_Invalid(t *testing.T) {
	raw := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }
	for _, token := range []string{"%%%", raw("not-an-offset"), raw("off:-3"), raw("off:x")} {
		_, err := DecodeOffsetToken(token)
		assert.Error(t, err, token)
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, next, err := Page(items, 2, "")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, page)
	require.NotNil(t, next)

	page, next, err = Page(items, 2, *next)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, page)
	require.NotNil(t, next)

	page, next, err = Page(items, 2, *next)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, page)
	assert.Nil(t, next)

	page, next, err = Page(items, 2, EncodeOffsetToken(10))
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Nil(t, next)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-1))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxLimit, ClampLimit(MaxLimit+1))
}
