package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	type testCase struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}

	tests := []testCase{{
		name:      "standard scheme",
		header:    "Bearer abc123",
		wantToken: "abc123",
		wantOK:    true,
	}, {
		name:      "lowercase scheme",
		header:    "bearer abc123",
		wantToken: "abc123",
		wantOK:    true,
	}, {
		name:      "uppercase scheme",
		header:    "BEARER abc123",
		wantToken: "abc123",
		wantOK:    true,
	}, {
		name:   "no header",
		header: "",
		wantOK: false,
	}, {
		name:   "wrong scheme",
		header: "Basic abc123",
		wantOK: false,
	}, {
		name:   "scheme without token",
		header: "Bearer ",
		wantOK: false,
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/auth/me", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			token, ok := BearerToken(r)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantToken, token)
		})
	}
}
