package websocket

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func originRequest(t *testing.T, origin string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, "/api/v1/trips/1/chat/ws", nil)
	assert.NoError(t, err)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestOriginCheckerEmptyAllowlistAllowsAll(t *testing.T) {
	check := originChecker("")
	assert.True(t, check(originRequest(t, "https://evil.example")))
	assert.True(t, check(originRequest(t, "")))
}

func TestOriginCheckerAllowlist(t *testing.T) {
	check := originChecker("https://tripshare.app, app.tripshare.app")

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"full origin match", "https://tripshare.app", true},
		{"full origin match, different case", "HTTPS://TRIPSHARE.APP", true},
		{"host-only entry matches any scheme", "http://app.tripshare.app", true},
		{"unlisted origin", "https://evil.example", false},
		{"listed host on unlisted subdomain", "https://sub.tripshare.app", false},
		{"no origin header passes non-browser clients", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, check(originRequest(t, tt.origin)))
		})
	}
}
