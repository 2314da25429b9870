package models

import "github.com/shopspring/decimal"

// Template is a row of the recurring_templates table.
type Template struct {
	TemplateID  string `db:"template_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}

// TemplateLine is a row of the template_lines table.
type TemplateLine struct {
	TemplateID string          `db:"template_id"`
	LineNo     int             `db:"line_no"`
	LineID     string          `db:"line_id"`
	AccountID  string          `db:"account_id"`
	Debit      decimal.Decimal `db:"debit"`
	Credit     decimal.Decimal `db:"credit"`
	Notes      string          `db:"notes"`
}
