package accounting

import (
	"fmt"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a journal line amount based on account type.
// This is used by the ledger engine and the store so both apply the same convention.
func CalculateSignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	net := line.Debit.Sub(line.Credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// BalanceChanges nets the signed effect of lines per account.
// accountTypes must contain every account referenced by lines.
func BalanceChanges(lines []domain.JournalLine, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account ID %s", line.AccountID)
		}
		signed, err := CalculateSignedAmount(line, accountType)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] = changes[line.AccountID].Add(signed)
	}
	return changes, nil
}

// NormalColumns places a normal-side balance into trial balance columns.
// Debit-normal accounts report in the debit column, the rest in the credit
// column; a negative balance is shown as a positive amount on the other side.
func NormalColumns(balance decimal.Decimal, accountType domain.AccountType) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	debitSide := accountType.IsDebitNormal()
	if balance.IsNegative() {
		debitSide = !debitSide
		balance = balance.Neg()
	}
	if debitSide {
		debit = balance
	} else {
		credit = balance
	}
	return debit, credit
}
