package api

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Overview is the /api/overview response: one status snapshot per bot plus
// the fleet-wide P&L. Replaced wholesale on every poll, never merged.
type Overview struct {
	Bots     map[string]BotStatus `json:"bots"`
	TotalPnl decimal.Decimal      `json:"total_pnl"`
}

// BotStatus is one bot's health and performance snapshot. The server keys
// bots by id in the overview map; FetchOverview copies that key into ID.
// The trailing pointer fields are bot-specific and absent for bots that
// don't report them.
type BotStatus struct {
	ID string `json:"-"`

	Name    string          `json:"name"`
	Short   string          `json:"short"`
	Color   string          `json:"color"`
	Healthy bool            `json:"healthy"`
	Mode    string          `json:"mode"`
	Pnl     decimal.Decimal `json:"pnl"`
	Error   *string         `json:"error"`

	WinRate       *float64         `json:"win_rate,omitempty"`
	Completed     *int             `json:"completed,omitempty"`
	Wins          *int             `json:"wins,omitempty"`
	OpenPositions *int             `json:"open_positions,omitempty"`
	DailyTrades   *int             `json:"daily_trades,omitempty"`
	Running       *bool            `json:"running,omitempty"`
	RealizedPnl   *decimal.Decimal `json:"realized_pnl,omitempty"`
}

// CapitalSnapshot is the /api/capital response. All amounts are integer
// cents; Effective is server-computed as Allocation+Pnl and never
// recomputed client-side.
type CapitalSnapshot struct {
	RealBalance    *int64           `json:"real_balance"`
	TotalAllocated int64            `json:"total_allocated"`
	Unallocated    *int64           `json:"unallocated"`
	Accounts       []CapitalAccount `json:"accounts"`
}

// CapitalAccount is one bot's capital allocation, in cents.
type CapitalAccount struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Allocation int64  `json:"allocation"`
	Pnl        int64  `json:"pnl"`
	Effective  int64  `json:"effective"`
	Color      string `json:"color"`
}

// UnallocatedPool is the sentinel account id for capital not assigned to
// any bot, accepted by TransferCapital as either endpoint.
const UnallocatedPool = "unallocated"

// Transfer is one capital movement, amount in cents. Immutable once
// received; the list is replaced wholesale per poll.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
	TS     string `json:"ts"`

	rowID string
}

// RowID is a client-synthesized identity used only for list rendering.
// Two transfers between the same accounts in the same second with the same
// amount are indistinguishable on the wire, so a random suffix breaks the
// tie. Never sent to the server.
func (t Transfer) RowID() string {
	return t.rowID
}

func (t *Transfer) assignRowID() {
	t.rowID = fmt.Sprintf("%s-%s-%s-%d-%s", t.From, t.To, t.TS, t.Amount, uuid.NewString()[:8])
}

type transfersResponse struct {
	Transfers []Transfer `json:"transfers"`
}

// CapitalLimit is the /api/capital/{botID}/limit response. AllocationCents
// is nil when the bot has no allocation.
type CapitalLimit struct {
	AllocationCents *int64 `json:"allocation_cents"`
}

// Mutation request bodies. Amounts go out in decimal dollars, not cents;
// the server expects that unit split and the client must not unify it.
// json.Number keeps the value a bare JSON number on the wire.

type allocateRequest struct {
	BotID  string      `json:"bot_id"`
	Label  string      `json:"label"`
	Amount json.Number `json:"amount"`
}

type transferRequest struct {
	From   string      `json:"from"`
	To     string      `json:"to"`
	Amount json.Number `json:"amount"`
}

func dollars(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
