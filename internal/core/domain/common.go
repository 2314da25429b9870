package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps creation and update with the same actor and time.
func NewAuditFields(actor string, at time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     at,
		CreatedBy:     actor,
		LastUpdatedAt: at,
		LastUpdatedBy: actor,
	}
}

// Touch records an update.
func (f *AuditFields) Touch(actor string, at time.Time) {
	f.LastUpdatedAt = at
	f.LastUpdatedBy = actor
}
