package sqlite

import (
	"encoding/base64"
	"encoding/json"

	"github.com/quillstack/docqa/internal/core/domain"
)

// pageCursor is the SQLite store's continuation token payload: the sort
// key of the last document on the previous page.
type pageCursor struct {
	// UploadedAt is the last document's upload time in unix nanoseconds.
	UploadedAt int64 `json:"ua"`

	// ID is the last document's identifier, breaking upload-time ties.
	ID string `json:"id"`
}

// encodeCursor serialises the cursor to a base64-encoded JSON string.
func encodeCursor(c *pageCursor) string {
	if c == nil {
		return ""
	}
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// decodeCursor deserialises a cursor. The empty token means "start from
// the beginning" and returns nil; garbage fails with
// domain.ErrInvalidCursor.
func decodeCursor(token string) (*pageCursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrInvalidCursor
	}
	var c pageCursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, domain.ErrInvalidCursor
	}
	if c.ID == "" {
		return nil, domain.ErrInvalidCursor
	}
	return &c, nil
}
