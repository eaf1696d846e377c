package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid pagination token")

// MessageCursor marks a position in a match's message stream. Seq is the
// per-match sequence of the last message the client has seen.
type MessageCursor struct {
	Seq int64 `json:"seq"`
}

// LikerCursor marks a position in a likers listing, keyed by the decision's
// update time (millis) with swiper id as tie-break.
type LikerCursor struct {
	SwiperID    int64 `json:"swiper_id"`
	UpdatedUnix int64 `json:"updated_unix"`
}

// UpdatedAt converts the cursor timestamp back to a time value.
func (c LikerCursor) UpdatedAt() time.Time {
	return time.UnixMilli(c.UpdatedUnix)
}

// EncodeMessage converts a message cursor into an opaque Base64 token.
func EncodeMessage(c MessageCursor) string {
	return encode(c)
}

// DecodeMessage parses a token into a message cursor.
// Empty token means start of stream.
func DecodeMessage(token string) (MessageCursor, error) {
	var c MessageCursor
	if token == "" {
		return c, nil
	}
	if err := decode(token, &c); err != nil {
		return MessageCursor{}, err
	}
	return c, nil
}

// EncodeLiker converts a liker cursor into an opaque Base64 token.
func EncodeLiker(c LikerCursor) string {
	return encode(c)
}

// DecodeLiker parses a token into a liker cursor.
// Empty token means first page.
func DecodeLiker(token string) (LikerCursor, error) {
	var c LikerCursor
	if token == "" {
		return c, nil
	}
	if err := decode(token, &c); err != nil {
		return LikerCursor{}, err
	}
	return c, nil
}

func encode(v any) string {
	b, _ := json.Marshal(v)
	return base64.URLEncoding.EncodeToString(b)
}

func decode(token string, v any) error {
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return ErrInvalidToken
	}
	if err := json.Unmarshal(b, v); err != nil {
		return ErrInvalidToken
	}
	return nil
}
