package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newBufferedLogger() (*Logger, *bytes.Buffer) {
	l := New(Config{Level: "debug", Format: "json"})
	var buf bytes.Buffer
	l.log.SetOutput(&buf)
	return l, &buf
}

func TestWithFieldsCarriesCorrelationKeys(t *testing.T) {
	// The request-level call sites build their whole entry in one
	// WithFields call: component plus request id plus whatever else.
	l, buf := newBufferedLogger()

	l.WithFields(logrus.Fields{"component": "api", "request_id": "01JXYZ"}).
		WithError(errors.New("connection refused")).
		Debug("GET /api/overview")

	out := buf.String()
	assert.Contains(t, out, `"component":"api"`)
	assert.Contains(t, out, `"request_id":"01JXYZ"`)
	assert.Contains(t, out, `"error":"connection refused"`)
	assert.Contains(t, out, "GET /api/overview")
}

func TestSingleFieldHelpers(t *testing.T) {
	l, buf := newBufferedLogger()

	l.WithComponent("session").Warn("idle timeout, locking")
	l.WithBot("wx").Info("allocation updated")
	l.WithRequestID("01JABC").Debug("poll cycle")

	out := buf.String()
	assert.Contains(t, out, `"component":"session"`)
	assert.Contains(t, out, `"bot_id":"wx"`)
	assert.Contains(t, out, `"request_id":"01JABC"`)
}

func TestLevelFiltering(t *testing.T) {
	l := New(Config{Level: "warn", Format: "json"})
	var buf bytes.Buffer
	l.log.SetOutput(&buf)

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}
