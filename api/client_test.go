package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/botdeck/config"
	"github.com/rustyeddy/botdeck/logger"
)

// staticSource serves a fixed config snapshot. httptest URLs are
// http://127.0.0.1:PORT, which the loopback rule keeps on plain http.
type staticSource struct {
	cfg config.Config
}

func (s staticSource) Snapshot() config.Config { return s.cfg }

func newTestClient(serverURL string) *Client {
	return New(staticSource{cfg: config.Config{
		ServerURL: serverURL,
		Username:  "a",
		Password:  "b",
	}}, logger.Discard())
}

func TestFetchOverview_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/overview", r.URL.Path)
		assert.Equal(t, "Basic YTpi", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{
			"bots": {
				"wx": {"name":"Weather","short":"WX","color":"#4DD8A6","healthy":true,"mode":"live","pnl":12.5,"error":null,"win_rate":61.5,"completed":13}
			},
			"total_pnl": 12.5
		}`)
	}))
	defer server.Close()

	ov, err := newTestClient(server.URL).FetchOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, ov.Bots, 1)

	bot := ov.Bots["wx"]
	assert.Equal(t, "wx", bot.ID, "map key injected as bot id")
	assert.Equal(t, "Weather", bot.Name)
	assert.True(t, bot.Healthy)
	assert.True(t, bot.Pnl.Equal(decimal.NewFromFloat(12.5)))
	require.NotNil(t, bot.WinRate)
	assert.Equal(t, 61.5, *bot.WinRate)
	assert.Nil(t, bot.Running, "absent optional field stays nil")
	assert.True(t, ov.TotalPnl.Equal(decimal.NewFromFloat(12.5)))
}

func TestFetchCapital_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/capital", r.URL.Path)
		io.WriteString(w, `{
			"real_balance": 10000,
			"total_allocated": 5000,
			"unallocated": 5000,
			"accounts": [{"id":"wx","label":"Weather","allocation":3000,"pnl":-200,"effective":2800,"color":"#4DD8A6"}]
		}`)
	}))
	defer server.Close()

	snap, err := newTestClient(server.URL).FetchCapital(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5000), snap.TotalAllocated)
	require.NotNil(t, snap.RealBalance)
	assert.Equal(t, int64(10000), *snap.RealBalance)
	require.Len(t, snap.Accounts, 1)
	assert.Equal(t, int64(3000), snap.Accounts[0].Allocation)
	assert.Equal(t, int64(-200), snap.Accounts[0].Pnl)
	assert.Equal(t, int64(2800), snap.Accounts[0].Effective)
}

func TestFetchTransfers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/capital/transfers", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		io.WriteString(w, `{"transfers":[
			{"from":"unallocated","to":"wx","amount":1000,"ts":"2025-06-01T10:00:00Z"},
			{"from":"unallocated","to":"wx","amount":1000,"ts":"2025-06-01T10:00:00Z"}
		]}`)
	}))
	defer server.Close()

	transfers, err := newTestClient(server.URL).FetchTransfers(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, transfers, 2)

	// Identical wire rows still get distinct render identities.
	assert.NotEmpty(t, transfers[0].RowID())
	assert.NotEqual(t, transfers[0].RowID(), transfers[1].RowID())
}

func TestMutations(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotBody = nil
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&gotBody)
		}
		io.WriteString(w, `{"ok": true}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	t.Run("allocate sends dollars as a number", func(t *testing.T) {
		err := client.AllocateCapital(ctx, "wx", "Weather", decimal.NewFromFloat(99.5))
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/api/capital/allocate", gotPath)
		assert.Equal(t, "wx", gotBody["bot_id"])
		assert.Equal(t, "Weather", gotBody["label"])
		// JSON number, not a string: the server does float math on it.
		assert.Equal(t, 99.5, gotBody["amount"])
	})

	t.Run("transfer accepts the unallocated sentinel", func(t *testing.T) {
		err := client.TransferCapital(ctx, UnallocatedPool, "wx", decimal.NewFromInt(25))
		require.NoError(t, err)
		assert.Equal(t, "/api/capital/transfer", gotPath)
		assert.Equal(t, "unallocated", gotBody["from"])
		assert.Equal(t, "wx", gotBody["to"])
		assert.Equal(t, float64(25), gotBody["amount"])
	})

	t.Run("remove is a DELETE on the bot path", func(t *testing.T) {
		err := client.RemoveAllocation(ctx, "wx")
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, "/api/capital/wx", gotPath)
	})
}

func TestFetchBotCapitalLimit(t *testing.T) {
	t.Run("with allocation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/capital/wx/limit", r.URL.Path)
			io.WriteString(w, `{"allocation_cents": 3000}`)
		}))
		defer server.Close()

		limit, err := newTestClient(server.URL).FetchBotCapitalLimit(context.Background(), "wx")
		require.NoError(t, err)
		require.NotNil(t, limit.AllocationCents)
		assert.Equal(t, int64(3000), *limit.AllocationCents)
	})

	t.Run("without allocation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"allocation_cents": null}`)
		}))
		defer server.Close()

		limit, err := newTestClient(server.URL).FetchBotCapitalLimit(context.Background(), "wx")
		require.NoError(t, err)
		assert.Nil(t, limit.AllocationCents)
	})
}

func TestStatusClassification(t *testing.T) {
	// The same policy applies no matter which endpoint answered.
	tests := []struct {
		code  int
		check func(t *testing.T, err error)
	}{
		{401, func(t *testing.T, err error) { assert.True(t, IsUnauthorized(err)) }},
		{404, func(t *testing.T, err error) { assert.True(t, IsNotFound(err)) }},
		{500, func(t *testing.T, err error) { assert.True(t, IsServerError(err)) }},
		{503, func(t *testing.T, err error) { assert.True(t, IsServerError(err)) }},
		{418, func(t *testing.T, err error) {
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, 418, se.Code)
			assert.False(t, IsUnauthorized(err))
			assert.False(t, IsServerError(err))
		}},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.code)
		}))
		client := newTestClient(server.URL)

		_, errOverview := client.FetchOverview(context.Background())
		_, errCapital := client.FetchCapital(context.Background())
		tt.check(t, errOverview)
		tt.check(t, errCapital)

		server.Close()
	}
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("not configured short-circuits", func(t *testing.T) {
		hits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
		}))
		defer server.Close()

		client := New(staticSource{cfg: config.Config{ServerURL: ""}}, logger.Discard())
		_, err := client.FetchOverview(context.Background())
		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.Zero(t, hits, "no network call may happen without a base URL")
	})

	t.Run("bad payload is a decode error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `<html>not json</html>`)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchOverview(context.Background())
		assert.True(t, IsDecodeError(err))
		assert.False(t, IsTransportError(err), "reachable-but-bad-payload is not a transport failure")
	})

	t.Run("unreachable server is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused from here on

		_, err := newTestClient(server.URL).FetchOverview(context.Background())
		assert.True(t, IsTransportError(err))
		assert.False(t, IsDecodeError(err))
	})

	t.Run("no auth header without credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			io.WriteString(w, `{"bots":{},"total_pnl":0}`)
		}))
		defer server.Close()

		client := New(staticSource{cfg: config.Config{ServerURL: server.URL}}, logger.Discard())
		_, err := client.FetchOverview(context.Background())
		require.NoError(t, err)
	})
}
