package pagekit

import (
	"encoding/base64"
	"fmt"
)

var _encoder = base64.RawURLEncoding

// Cursor marks a position inside a dataset. The two implementations are
// KeysetCursor (comparison conditions against the last returned element) and
// OffsetCursor (a plain numeric offset). Cursors are opaque to clients: they
// travel as base64 tokens produced by String and parsed by the Decode
// functions.
//
// Cursors carry no database knowledge. The ext subpackages translate them
// into driver terms (gorm clauses, SQL text, bson filters).
type Cursor interface {
	String() string
	IsEmpty() bool
	validate(orderings Orderings) error
}

// EncodeToken wraps raw bytes into the canonical token encoding. Adapters
// with driver-native paging state (cqlpage) use it so their tokens look the
// same on the wire as keyset and offset tokens.
func EncodeToken(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	return _encoder.EncodeToString(raw)
}

// DecodeToken reverses EncodeToken. An empty token decodes to nil, meaning
// the first page. Decode failures wrap ErrInvalidToken.
func DecodeToken(token string) ([]byte, error) {
	if len(token) == 0 {
		return nil, nil
	}

	raw, err := _encoder.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return raw, nil
}
