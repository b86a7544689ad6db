package email_test

import (
	"testing"

	"github.com/akbarovz/gadgethub/internal/email"
)

func Test_ParseAddress(t *testing.T) {
	okTests := map[string]string{
		"plain address":     "alice@example.com",
		"subdomain":         "alice@mail.example.com",
		"padded with space": " alice@example.com ",
	}

	for name, raw := range okTests {
		t.Run("ok, "+name, func(t *testing.T) {
			_, err := email.ParseAddress(raw)
			if err != nil {
				t.Errorf("failed to parse %q: %v", raw, err)
			}
		})
	}

	failTests := map[string]string{
		"empty":            "",
		"no at sign":       "alice.example.com",
		"no local part":    "@example.com",
		"named address":    "Alice <alice@example.com>",
		"trailing comment": "alice@example.com(comment)",
	}

	for name, raw := range failTests {
		t.Run("fail, "+name, func(t *testing.T) {
			_, err := email.ParseAddress(raw)
			if err == nil {
				t.Errorf("expected error parsing %q, got none", raw)
			}
		})
	}
}
