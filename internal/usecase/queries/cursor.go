package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gear-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.Mark(errs.New("invalid cursor"), errs.ErrValidation)

// Cursor points just past the last row of a page ordered by (time DESC, id DESC).
type Cursor struct {
	At time.Time
	ID uuid.UUID
}

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeCursor(c Cursor) string {
	data := fmt.Sprintf("%s:%d-%s", CursorVersionV1, c.At.UnixMicro(), c.ID.String())
	return base64.RawURLEncoding.EncodeToString([]byte(data))
}

func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}

	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return nil, ErrInvalidCursor
	}

	micros, rawID, ok := strings.Cut(payload, "-")
	if !ok {
		return nil, ErrInvalidCursor
	}

	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}

	return &Cursor{At: time.UnixMicro(ts).UTC(), ID: id}, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
