// Package seed loads charts of accounts into a ledger.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	"gopkg.in/yaml.v3"
)

// ChartAccount is one account in a chart file. Parent refers to another
// account by code and must appear earlier in the chart or already exist.
type ChartAccount struct {
	Code   string             `yaml:"code"`
	Name   string             `yaml:"name"`
	Type   domain.AccountType `yaml:"type"`
	Parent string             `yaml:"parent,omitempty"`
}

// DefaultChart is the starter Fin-Pulse chart of accounts.
var DefaultChart = []ChartAccount{
	{Code: "1000", Name: "Assets", Type: domain.Asset},
	{Code: "1100", Name: "Cash and Bank", Type: domain.Asset, Parent: "1000"},
	{Code: "2000", Name: "Liabilities", Type: domain.Liability},
	{Code: "2100", Name: "Accounts Payable", Type: domain.Liability, Parent: "2000"},
	{Code: "3000", Name: "Equity", Type: domain.Equity},
	{Code: "4000", Name: "Revenue", Type: domain.Revenue},
	{Code: "5000", Name: "Expenses", Type: domain.Expense},
	{Code: "5100", Name: "Utilities", Type: domain.Expense, Parent: "5000"},
	{Code: "5200", Name: "Rent", Type: domain.Expense, Parent: "5000"},
	{Code: "5300", Name: "Marketing", Type: domain.Expense, Parent: "5000"},
}

// Apply creates every chart account whose code is not yet in the ledger and
// returns the accounts it created. Existing codes are left untouched, so
// applying the same chart twice is a no-op.
func Apply(ctx context.Context, engine *ledger.Engine, chart []ChartAccount, actor string) ([]domain.Account, error) {
	var created []domain.Account
	for i, item := range chart {
		if _, err := engine.AccountByCode(item.Code); err == nil {
			continue
		}

		parentID := ""
		if item.Parent != "" {
			parent, err := engine.AccountByCode(item.Parent)
			if err != nil {
				return created, fmt.Errorf("chart entry %d (%s): parent %s: %w", i, item.Code, item.Parent, err)
			}
			parentID = parent.AccountID
		}

		acc, err := engine.CreateAccount(ctx, ledger.NewAccount{
			Code:            item.Code,
			Name:            item.Name,
			AccountType:     item.Type,
			ParentAccountID: parentID,
			CreatedBy:       actor,
		})
		if errors.Is(err, ledger.ErrDuplicateCode) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("chart entry %d (%s): %w", i, item.Code, err)
		}
		created = append(created, acc)
	}
	return created, nil
}

// ReadChart decodes a YAML list of chart accounts.
func ReadChart(r io.Reader) ([]ChartAccount, error) {
	var chart []ChartAccount
	if err := yaml.NewDecoder(r).Decode(&chart); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode chart: %w", err)
	}
	return chart, nil
}

// WriteChart encodes chart as YAML.
func WriteChart(w io.Writer, chart []ChartAccount) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(chart); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return enc.Close()
}
