package domain

// RecurringTemplate is a named, pre-validated set of journal lines
// (e.g. "Monthly Rent") that can be posted repeatedly.
type RecurringTemplate struct {
	TemplateID  string        `json:"templateID"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines"`
	AuditFields
}
