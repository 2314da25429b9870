package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditEvent_KeepsChangeType(t *testing.T) {
	acc := domain.Account{Code: "1100", Name: "Cash and Bank", AccountType: domain.Asset, Status: domain.AccountActive, Balance: decimal.NewFromInt(500)}
	after := acc
	after.Status = domain.AccountInactive

	event := domain.AuditEvent{
		EventID:  "e-1",
		Action:   domain.ActionAccountStatus,
		EntityID: "acc-1",
		Actor:    "operator",
		At:       time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		Change:   domain.AccountChange{Before: domain.SnapshotAccount(acc), After: domain.SnapshotAccount(after)},
	}

	raw, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"kind":"account"`)

	var decoded domain.AuditEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	change, ok := decoded.Change.(domain.AccountChange)
	require.True(t, ok, "expected AccountChange, got %T", decoded.Change)
	assert.Equal(t, domain.AccountActive, change.Before.Status)
	assert.Equal(t, domain.AccountInactive, change.After.Status)
	assert.True(t, change.Before.Balance.Equal(decimal.NewFromInt(500)))
}

func TestDecodeAuditChange_UnknownKind(t *testing.T) {
	_, err := domain.DecodeAuditChange("vendor", []byte(`{}`))
	assert.Error(t, err)

	change, err := domain.DecodeAuditChange("", nil)
	assert.NoError(t, err)
	assert.Nil(t, change)
}

func TestSnapshotJournal_LinksReversal(t *testing.T) {
	rev := "j-rev"
	entry := domain.JournalEntry{
		Status:             domain.Reversed,
		Reference:          "JE-002",
		ReversingJournalID: &rev,
		Lines: []domain.JournalLine{
			{AccountID: "rent", Debit: decimal.NewFromInt(30000)},
			{AccountID: "cash", Credit: decimal.NewFromInt(30000)},
		},
	}

	snap := domain.SnapshotJournal(entry)

	assert.Equal(t, "j-rev", snap.LinkedJournalID)
	assert.Equal(t, 2, snap.LineCount)
	assert.True(t, snap.Amount.Equal(decimal.NewFromInt(30000)))
}
