package config

import (
	"encoding/base64"
	"net"
	"net/url"
	"strings"
)

// BaseURL normalizes the configured server URL and parses it, returning nil
// when the value is empty or unparsable. Normalization runs on every read,
// never just at save time, so a stored value can't be replayed with a
// downgraded scheme.
//
// Rules: a missing scheme gets https://; plain http:// survives only for
// loopback and 192.168.* hosts and is upgraded to https:// everywhere
// else; one trailing slash is stripped. The scheme runs first so that a
// bare "http://" or "/" cannot masquerade as a host after trimming.
func BaseURL(raw string) *url.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	switch {
	case strings.HasPrefix(raw, "https://"):
		// already fine
	case strings.HasPrefix(raw, "http://"):
		if !isPrivateHost(hostOf(raw[len("http://"):])) {
			raw = "https://" + raw[len("http://"):]
		}
	default:
		raw = "https://" + raw
	}
	raw = strings.TrimSuffix(raw, "/")

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil
	}
	return u
}

// hostOf isolates the host part of "host[:port][/path...]".
func hostOf(rest string) string {
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if host, _, err := net.SplitHostPort(rest); err == nil {
		return host
	}
	return rest
}

// isPrivateHost reports whether plain HTTP is acceptable: loopback or a
// 192.168.* private-network literal.
func isPrivateHost(host string) bool {
	return host == "localhost" ||
		host == "127.0.0.1" ||
		strings.HasPrefix(host, "192.168.")
}

// BasicAuthHeader returns the Authorization value for the given credentials,
// or "" when either is empty. Colons inside the username are not escaped;
// that ambiguity is inherent to HTTP basic auth.
func BasicAuthHeader(username, password string) string {
	if username == "" || password == "" {
		return ""
	}
	cred := username + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(cred))
}

// BaseURL applies the normalization rules to the snapshot's server URL.
func (c Config) BaseURL() *url.URL {
	return BaseURL(c.ServerURL)
}

// BasicAuthHeader returns the Authorization value for the snapshot's
// credentials, or "" when they are incomplete.
func (c Config) BasicAuthHeader() string {
	return BasicAuthHeader(c.Username, c.Password)
}

// IsConfigured reports whether the snapshot carries a usable base URL.
func (c Config) IsConfigured() bool {
	return c.BaseURL() != nil
}
