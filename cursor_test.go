package pagekit

import (
	"errors"
	"testing"
)

func Test_EncodeToken_DecodeToken(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		token := EncodeToken([]byte("page-state"))
		if token == "" {
			t.Fatalf("expected non-empty token")
		}

		raw, err := DecodeToken(token)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if string(raw) != "page-state" {
			t.Errorf("raw=%q want %q", raw, "page-state")
		}
	})

	t.Run("empty encodes to empty", func(t *testing.T) {
		if got := EncodeToken(nil); got != "" {
			t.Errorf("EncodeToken(nil)=%q want empty", got)
		}
	})

	t.Run("empty decodes to nil", func(t *testing.T) {
		raw, err := DecodeToken("")
		if err != nil || raw != nil {
			t.Errorf("DecodeToken(\"\")=(%v,%v) want (nil,nil)", raw, err)
		}
	})

	t.Run("garbage wraps ErrInvalidToken", func(t *testing.T) {
		_, err := DecodeToken("%%%")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err=%v want ErrInvalidToken", err)
		}
	})
}
