package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL_SchemeNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no scheme gets https", "dash.example.com", "https://dash.example.com"},
		{"no scheme with port gets https", "192.168.1.5:8080", "https://192.168.1.5:8080"},
		{"http localhost kept", "http://localhost:8080", "http://localhost:8080"},
		{"http loopback kept", "http://127.0.0.1:9000", "http://127.0.0.1:9000"},
		{"http private net kept", "http://192.168.1.50:9000", "http://192.168.1.50:9000"},
		{"http private net trailing slash", "http://192.168.1.50:9000/", "http://192.168.1.50:9000"},
		{"http public host upgraded", "http://dash.example.com", "https://dash.example.com"},
		{"http public host with port upgraded", "http://dash.example.com:8443", "https://dash.example.com:8443"},
		{"https kept", "https://dash.example.com", "https://dash.example.com"},
		{"trailing slash stripped", "https://dash.example.com/", "https://dash.example.com"},
		{"surrounding space ignored", "  dash.example.com  ", "https://dash.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := BaseURL(tt.in)
			require.NotNil(t, u)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestBaseURL_Invalid(t *testing.T) {
	// Scheme-only and host-less inputs must come back nil, never as a URL
	// whose "host" is a scheme fragment.
	assert.Nil(t, BaseURL(""))
	assert.Nil(t, BaseURL("/"))
	assert.Nil(t, BaseURL("http://"))
	assert.Nil(t, BaseURL("http:///"))
	assert.Nil(t, BaseURL("https://"))
	assert.Nil(t, BaseURL("http:///dashboard"))
	assert.Nil(t, BaseURL("https://exa mple.com"))
}

func TestBaseURL_RunsOnEveryRead(t *testing.T) {
	// The normalization is a security control: a stored http:// URL for a
	// public host must come back upgraded no matter how it was saved.
	cfg := Config{ServerURL: "http://dash.example.com/"}
	u := cfg.BaseURL()
	require.NotNil(t, u)
	assert.Equal(t, "https", u.Scheme)
}

func TestBasicAuthHeader(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		assert.Equal(t, "Basic YTpi", BasicAuthHeader("a", "b"))
	})

	t.Run("empty username", func(t *testing.T) {
		assert.Empty(t, BasicAuthHeader("", "secret"))
	})

	t.Run("empty password", func(t *testing.T) {
		assert.Empty(t, BasicAuthHeader("user", ""))
	})

	t.Run("colon in password is not escaped", func(t *testing.T) {
		// base64("u:p:q")
		assert.Equal(t, "Basic dTpwOnE=", BasicAuthHeader("u", "p:q"))
	})
}
