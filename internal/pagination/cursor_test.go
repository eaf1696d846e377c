package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageCursorRoundTrip(t *testing.T) {
	token := EncodeMessage(MessageCursor{Seq: 42})
	require.NotEmpty(t, token)

	c, err := DecodeMessage(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.Seq)
}

func TestDecodeMessageEmptyTokenIsStart(t *testing.T) {
	c, err := DecodeMessage("")
	require.NoError(t, err)
	assert.Equal(t, int64(0), c.Seq)
}

func TestDecodeMessageInvalidToken(t *testing.T) {
	_, err := DecodeMessage("not-base64!!")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLikerCursorRoundTrip(t *testing.T) {
	token := EncodeLiker(LikerCursor{SwiperID: 7, UpdatedUnix: 1700000000000})
	c, err := DecodeLiker(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.SwiperID)
	assert.Equal(t, int64(1700000000000), c.UpdatedUnix)
	assert.Equal(t, int64(1700000000000), c.UpdatedAt().UnixMilli())
}
